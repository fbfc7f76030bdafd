package relationships_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-microblog-client/relationships"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/token/memrepo"
	"github.com/jrsteele09/go-microblog-client/transport"
)

func newTestService(t *testing.T, handler http.Handler) *relationships.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	manager, err := token.NewManager(memrepo.New(), memrepo.New())
	require.NoError(t, err)

	client, err := transport.New(server.URL, manager)
	require.NoError(t, err)

	return relationships.New(client)
}

func TestFollowSendsFollowedID(t *testing.T) {
	var gotBody map[string]string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/relationships", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"follow":true}`)
	}))

	resp, err := service.Follow(context.Background(), "7")
	require.NoError(t, err)
	require.Equal(t, "7", gotBody["followed_id"])
	require.True(t, resp.Follow)
}

func TestUnfollowDeletesByID(t *testing.T) {
	var gotURL, gotMethod string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		gotMethod = r.Method
		fmt.Fprint(w, `{"unfollow":true}`)
	}))

	resp, err := service.Unfollow(context.Background(), "15")
	require.NoError(t, err)
	require.Equal(t, "/relationships/15", gotURL)
	require.Equal(t, http.MethodDelete, gotMethod)
	require.True(t, resp.Unfollow)
}
