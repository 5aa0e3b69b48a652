package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/bilimpath/bilim/internal/session"
)

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a token. The backend expects form-encoded
// username/password, not JSON.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	raw, err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()),
		"Sign-in failed")
	if err != nil {
		return TokenResponse{}, err
	}

	var tok TokenResponse
	if err := decode(raw, &tok, "Sign-in failed"); err != nil {
		return TokenResponse{}, err
	}
	if tok.AccessToken == "" {
		return TokenResponse{}, &Error{Fallback: "No token received"}
	}
	return tok, nil
}

// RegisterInput is the registration payload. Exactly one of the code fields
// is set depending on role: students join with an invite code, teachers with
// an institution code.
type RegisterInput struct {
	Email           string       `json:"email"`
	Password        string       `json:"password"`
	FullName        string       `json:"full_name"`
	Role            session.Role `json:"role"`
	InviteCode      string       `json:"invite_code,omitempty"`
	InstitutionCode string       `json:"institution_code,omitempty"`
}

// Register creates an account. The response body is opaque to the client;
// success is only used to chain into Login.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	_, err := c.postJSON(ctx, "/auth/register", nil, in, "Registration failed")
	return err
}
