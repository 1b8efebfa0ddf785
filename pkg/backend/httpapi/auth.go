package httpapi

import (
	"context"
	"net/http"

	"emailfinder/pkg/domain"
	"emailfinder/pkg/serrors"
)

type userPayload struct {
	User domain.User `json:"user"`
}

func (c *Client) authenticate(ctx context.Context, endpoint, path string, body any) (domain.Session, error) {
	var s domain.Session
	if err := c.do(ctx, call{endpoint: endpoint, method: http.MethodPost, path: path, body: body}, &s); err != nil {
		return domain.Session{}, err
	}
	if s.Token == "" {
		return domain.Session{}, serrors.With(serrors.ErrInternal, "%s: response did not include a token", endpoint)
	}

	return s, nil
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	return c.authenticate(ctx, "auth.register", "/api/auth/register", reg)
}

// Login exchanges credentials for a session. Rejected credentials surface as
// serrors.ErrUnauthorized.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	return c.authenticate(ctx, "auth.login", "/api/auth/login", creds)
}

// Logout invalidates token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, call{endpoint: "auth.logout", method: http.MethodPost, path: "/api/auth/logout", token: token}, nil)
}

// ForgotPassword asks the backend to mail a reset link to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	return c.do(ctx, call{endpoint: "auth.forgot_password", method: http.MethodPost, path: "/api/auth/forgot-password", body: body}, nil)
}

// ResetPassword completes a forgot-password flow.
func (c *Client) ResetPassword(ctx context.Context, reset domain.PasswordReset) error {
	return c.do(ctx, call{endpoint: "auth.reset_password", method: http.MethodPost, path: "/api/auth/reset-password", body: reset}, nil)
}

// Me returns the user token belongs to.
func (c *Client) Me(ctx context.Context, token string) (domain.User, error) {
	var p userPayload
	if err := c.do(ctx, call{endpoint: "auth.me", method: http.MethodGet, path: "/api/auth/me", token: token}, &p); err != nil {
		return domain.User{}, err
	}

	return p.User, nil
}

// UpdateProfile applies update and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, update domain.ProfileUpdate) (domain.User, error) {
	var p userPayload
	if err := c.do(ctx, call{endpoint: "auth.profile", method: http.MethodPut, path: "/api/auth/profile", token: token, body: update}, &p); err != nil {
		return domain.User{}, err
	}

	return p.User, nil
}

// ChangePassword changes the password of the signed-in user.
func (c *Client) ChangePassword(ctx context.Context, token string, change domain.PasswordChange) error {
	return c.do(ctx, call{endpoint: "auth.change_password", method: http.MethodPut, path: "/api/auth/change-password", token: token, body: change}, nil)
}
