package response

// ErrorResponse is the failure payload every endpoint returns. Clients
// surface the error field to the user verbatim, so it must always be set.
type ErrorResponse struct {
	Error string `json:"error"`
}
