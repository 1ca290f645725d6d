package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// UserProfile is the authenticated user's identity.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// nusIDPattern matches an NUS student ID, optionally already carrying the
// school domain.
var nusIDPattern = regexp.MustCompile(`^[Ee]\d{7}(@u\.nus\.edu)?$`)

// NormalizeNUSEmail canonicalizes an NUS student ID into its full school
// email: the leading letter is uppercased and the @u.nus.edu domain is
// appended when missing. Anything that is not an NUS ID passes through
// unchanged, so regular email accounts still work.
func NormalizeNUSEmail(email string) string {
	if !nusIDPattern.MatchString(email) {
		return email
	}
	rest := email[1:]
	if strings.HasSuffix(rest, "@u.nus.edu") {
		return "E" + rest
	}
	return "E" + rest + "@u.nus.edu"
}

// Login authenticates and stores the session token. NUS IDs are normalized
// to their full school email before submission. Failed attempts are
// retried up to the configured attempt count with a fixed delay between
// them; the caller sees a single failure outcome after the final attempt.
// Login has no server-side effect on failure, which is why a blind retry is
// tolerable here and nowhere else.
func (c *Client) Login(ctx context.Context, email, password string) error {
	email = NormalizeNUSEmail(email)

	var lastErr error
	for attempt := 0; attempt < c.loginAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.loginDelay); err != nil {
				return err
			}
		}

		var resp loginResponse
		err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp)
		if err == nil {
			if resp.Token == "" {
				return errors.New("login succeeded but no token in response")
			}
			if err := c.tokens.Save(resp.Token); err != nil {
				return fmt.Errorf("store session token: %w", err)
			}
			return nil
		}
		lastErr = err

		// Respect cancellation between attempts.
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("login failed after %d attempts: %w", c.loginAttempts, lastErr)
}

// Logout clears the stored session token. Purely local.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Authenticated reports whether a session token is present. Route guards
// key off this: token present means booking pages, absent means auth pages.
func (c *Client) Authenticated() bool {
	token, err := c.tokens.Token()
	return err == nil && token != ""
}
