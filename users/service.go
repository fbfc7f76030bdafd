// Package users wraps the user resource endpoints: listing, profiles,
// signup, edit/update, deletion, and the follower/following pages.
package users

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/transport"
)

// CreateParams are the signup form values, nested under "user" on the wire.
type CreateParams struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// UpdateParams are the profile edit values, nested under "user" on the wire.
type UpdateParams struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type Service struct {
	client *transport.Client
}

func New(client *transport.Client) *Service {
	return &Service{client: client}
}

// List fetches a page of users.
func (s *Service) List(ctx context.Context, params api.ListParams) (*api.UserListResponse, error) {
	var resp api.UserListResponse
	if err := s.client.DoJSON(ctx, http.MethodGet, "users?"+pageQuery(params.Page), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a user profile with a page of their microposts.
func (s *Service) Get(ctx context.Context, id string, params api.ListParams) (*api.UserShowResponse, error) {
	var resp api.UserShowResponse
	path := fmt.Sprintf("users/%s?%s", url.PathEscape(id), pageQuery(params.Page))
	if err := s.client.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Edit fetches the editable profile fields.
func (s *Service) Edit(ctx context.Context, id string) (*api.UserEditResponse, error) {
	var resp api.UserEditResponse
	if err := s.client.DoJSON(ctx, http.MethodGet, "users/"+url.PathEscape(id)+"/edit", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update submits profile changes.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*api.UserUpdateResponse, error) {
	var resp api.UserUpdateResponse
	body := map[string]UpdateParams{"user": params}
	if err := s.client.DoJSON(ctx, http.MethodPatch, "users/"+url.PathEscape(id), body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create signs up a new user.
func (s *Service) Create(ctx context.Context, params CreateParams) (*api.UserCreateResponse, error) {
	var resp api.UserCreateResponse
	body := map[string]CreateParams{"user": params}
	if err := s.client.DoJSON(ctx, http.MethodPost, "users", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a user (admin only, enforced server-side).
func (s *Service) Delete(ctx context.Context, id string) (*api.DeleteResponse, error) {
	var resp api.DeleteResponse
	if err := s.client.DoJSON(ctx, http.MethodDelete, "users/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Followers fetches a page of the user's followers.
func (s *Service) Followers(ctx context.Context, id string, page int) (*api.FollowResponse, error) {
	var resp api.FollowResponse
	path := fmt.Sprintf("users/%s/followers?page=%d", url.PathEscape(id), page)
	if err := s.client.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Following fetches a page of the users this user follows.
func (s *Service) Following(ctx context.Context, id string, page int) (*api.FollowResponse, error) {
	var resp api.FollowResponse
	path := fmt.Sprintf("users/%s/following?page=%d", url.PathEscape(id), page)
	if err := s.client.DoJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func pageQuery(page int) string {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	return values.Encode()
}
