package auth

// AuthResponse carries the session token at the top level; the web client
// reads response.token directly.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// user data in responses (without sensitive info)
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MeResponse is the authenticated user's identity.
type MeResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
