package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/nfrund/writerfolio/internal/domain"
)

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	r, err := jsonRequest(http.MethodPost, "/admin/login", "", creds)
	if err != nil {
		return "", err
	}
	var out loginResponse
	if err := c.do(ctx, r, &out); err != nil {
		// Some backends answer 400, 403 or 404 for bad credentials.
		var apiErr *Error
		if errors.As(err, &apiErr) && (apiErr.Kind == KindValidation || apiErr.Kind == KindNotFound || apiErr.Kind == KindForbidden) {
			apiErr.Kind = KindUnauthorized
		}
		return "", err
	}
	if out.Token == "" {
		return "", &Error{Kind: KindMalformed, Op: "POST /admin/login", Status: http.StatusOK, Message: "response has no token"}
	}
	return out.Token, nil
}

// CreateAdmin registers another admin account. It requires a valid token.
func (c *Client) CreateAdmin(ctx context.Context, token string, creds domain.Credentials) error {
	r, err := jsonRequest(http.MethodPost, "/admin/create", token, creds)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// SendContact posts a public contact form message.
func (c *Client) SendContact(ctx context.Context, msg domain.ContactMessage) error {
	r, err := jsonRequest(http.MethodPost, "/contact", "", msg)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}
