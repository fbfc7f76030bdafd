// Package activation wraps the account-activation endpoints.
package activation

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/transport"
)

type Service struct {
	client *transport.Client
}

func New(client *transport.Client) *Service {
	return &Service{client: client}
}

// Resend asks the API to send the activation email again.
func (s *Service) Resend(ctx context.Context, email string) (*api.ActivationResponse, error) {
	var resp api.ActivationResponse
	body := map[string]map[string]string{"resend_activation_email": {"email": email}}
	if err := s.client.DoJSON(ctx, http.MethodPost, "account_activations", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Activate confirms the account using the emailed activation token.
func (s *Service) Activate(ctx context.Context, activationToken, email string) (*api.ActivationUpdateResponse, error) {
	var resp api.ActivationUpdateResponse
	body := map[string]string{"email": email}
	if err := s.client.DoJSON(ctx, http.MethodPatch, "account_activations/"+url.PathEscape(activationToken), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
