// Package passwordreset wraps the password-reset request and
// confirmation endpoints.
package passwordreset

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/transport"
)

// ResetParams carry the new password along with the email the reset was
// requested for.
type ResetParams struct {
	Email                string
	Password             string
	PasswordConfirmation string
}

type Service struct {
	client *transport.Client
}

func New(client *transport.Client) *Service {
	return &Service{client: client}
}

// Request asks the API to email a reset link.
func (s *Service) Request(ctx context.Context, email string) (*api.PasswordResetCreateResponse, error) {
	var resp api.PasswordResetCreateResponse
	body := map[string]map[string]string{"password_reset": {"email": email}}
	if err := s.client.DoJSON(ctx, http.MethodPost, "password_resets", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reset submits a new password using the emailed reset token.
func (s *Service) Reset(ctx context.Context, resetToken string, params ResetParams) (*api.PasswordResetUpdateResponse, error) {
	body := map[string]any{
		"email": params.Email,
		"user": map[string]string{
			"password":              params.Password,
			"password_confirmation": params.PasswordConfirmation,
		},
	}
	var resp api.PasswordResetUpdateResponse
	if err := s.client.DoJSON(ctx, http.MethodPatch, "password_resets/"+url.PathEscape(resetToken), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
