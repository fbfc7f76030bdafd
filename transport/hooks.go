package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-microblog-client/api"
	"github.com/jrsteele09/go-microblog-client/internal/apierrors"
)

// authEndpointPrefixes are exempt from 401 recovery. Refreshing must
// never refresh-on-401 for the refresh call itself, and a 401 from the
// login or who-am-I endpoints means the credentials themselves were
// rejected.
var authEndpointPrefixes = []string{"login", "refresh", "sessions"}

func isAuthEndpoint(path string) bool {
	trimmed := strings.TrimPrefix(path, "/")
	for _, prefix := range authEndpointPrefixes {
		if trimmed == prefix || strings.HasPrefix(trimmed, prefix+"/") || strings.HasPrefix(trimmed, prefix+"?") {
			return true
		}
	}
	return false
}

// attachBearer is the built-in request hook. When a token pair is
// stored it sends both tokens in one header: "Bearer <access> <refresh>".
// Without a stored pair the header is omitted entirely. Every request
// is also stamped with a unique X-Request-ID.
func (c *Client) attachBearer(req *http.Request) error {
	req.Header.Set("X-Request-ID", uuid.New().String())

	pair, err := c.tokens.Get()
	if err != nil {
		c.logger.Warn().Err(err).Msg("token read failed, sending unauthenticated")
		return nil
	}
	if pair == nil || pair.AccessToken == "" || pair.AccessToken == "undefined" {
		return nil
	}
	req.Header.Set("Authorization", strings.TrimSpace(fmt.Sprintf("Bearer %s %s", pair.AccessToken, pair.RefreshToken)))
	return nil
}

// recoverUnauthorized is the built-in response hook. On a 401 from a
// non-auth endpoint it makes exactly one refresh call and, when that
// succeeds, re-issues the original request once and returns the retried
// response as the final result. A failed refresh clears all stored
// tokens, notifies the auth-failure callback, and hands back the
// original 401 unchanged.
func (c *Client) recoverUnauthorized(ctx context.Context, req Request, res *http.Response) (*http.Response, error) {
	if res.StatusCode != http.StatusUnauthorized || isAuthEndpoint(req.Path) {
		return res, nil
	}

	pair, err := c.tokens.Get()
	if err != nil || pair == nil || pair.RefreshToken == "" {
		return res, nil
	}

	c.logger.Debug().Str("path", req.Path).Msg("unauthorized, attempting token refresh")

	replacement, err := c.refresh(ctx, pair.RefreshToken)
	if err != nil {
		c.logger.Debug().Err(err).Msg("token refresh failed, clearing session")
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.logger.Warn().Err(clearErr).Msg("failed to clear tokens after refresh failure")
		}
		if c.onAuthFailure != nil {
			c.onAuthFailure()
		}
		return res, nil
	}

	if err := c.tokens.Update(replacement.Token, replacement.RememberToken); err != nil {
		c.logger.Warn().Err(err).Msg("failed to store refreshed tokens")
	}

	retried, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	_ = res.Body.Close()
	return retried, nil
}

// refresh exchanges the refresh token for a new pair via POST refresh.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*api.RefreshAccess, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, apierrors.Wrapf(err, "[Client.refresh] marshal")
	}

	res, err := c.send(ctx, Request{
		Method:      http.MethodPost,
		Path:        "refresh",
		Body:        payload,
		ContentType: contentTypeJSON,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, apierrors.Wrapf(apierrors.ErrInvalidRefreshToken, "[Client.refresh] status %d", res.StatusCode)
	}

	var parsed api.RefreshResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apierrors.Wrapf(apierrors.ErrMalformedResponse, "[Client.refresh] %v", err)
	}
	if parsed.Tokens == nil || parsed.Tokens.Access.Token == "" {
		return nil, apierrors.Wrapf(apierrors.ErrMalformedResponse, "[Client.refresh] missing tokens in response")
	}
	return &parsed.Tokens.Access, nil
}
