// Package relationships wraps the follow/unfollow endpoints.
package relationships

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

// Follow starts following the given user.
func (s *Service) Follow(ctx context.Context, followedID string) (*api.CreateRelationshipResponse, error) {
	var resp api.CreateRelationshipResponse
	body := map[string]string{"followed_id": followedID}
	if err := s.client.DoJSON(ctx, http.MethodPost, "relationships", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unfollow removes the relationship with the given ID.
func (s *Service) Unfollow(ctx context.Context, id string) (*api.DestroyRelationshipResponse, error) {
	var resp api.DestroyRelationshipResponse
	if err := s.client.DoJSON(ctx, http.MethodDelete, "relationships/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
