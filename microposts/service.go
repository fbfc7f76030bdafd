// Package microposts wraps the feed and micropost endpoints.
package microposts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/transport"
)

type Service struct {
	client *transport.Client
}

func New(client *transport.Client) *Service {
	return &Service{client: client}
}

// Feed fetches a page of the logged-in user's feed. The feed lives at
// the API root, so the path is just the query string.
func (s *Service) Feed(ctx context.Context, page int) (*api.FeedResponse, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	var resp api.FeedResponse
	if err := s.client.DoJSON(ctx, http.MethodGet, "?"+values.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create posts a new micropost. The body is a multipart form because an
// image upload may ride along with the content.
func (s *Service) Create(ctx context.Context, content string, image io.Reader, imageName string) (*api.MicropostResponse, error) {
	fields := map[string]string{"micropost[content]": content}
	var resp api.MicropostResponse
	if err := s.client.DoMultipart(ctx, http.MethodPost, "microposts", fields, "micropost[image]", imageName, image, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes one of the logged-in user's microposts.
func (s *Service) Delete(ctx context.Context, id int64) (*api.MicropostResponse, error) {
	var resp api.MicropostResponse
	if err := s.client.DoJSON(ctx, http.MethodDelete, fmt.Sprintf("microposts/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
