package activation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-microblog-client/activation"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/token/memrepo"
	"github.com/jrsteele09/go-microblog-client/transport"
)

func newTestService(t *testing.T, handler http.Handler) *activation.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	manager, err := token.NewManager(memrepo.New(), memrepo.New())
	require.NoError(t, err)

	client, err := transport.New(server.URL, manager)
	require.NoError(t, err)

	return activation.New(client)
}

func TestResendNestsEmail(t *testing.T) {
	var gotBody map[string]map[string]string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/account_activations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"flash":["info","Activation email resent"]}`)
	}))

	resp, err := service.Resend(context.Background(), "carol@example.com")
	require.NoError(t, err)
	require.Equal(t, "carol@example.com", gotBody["resend_activation_email"]["email"])
	require.Equal(t, "Activation email resent", resp.Flash.Message)
}

func TestActivateSubmitsEmailWithToken(t *testing.T) {
	var gotBody map[string]string
	var gotURL string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"user":{"id":9,"name":"Carol","email":"carol@example.com"},"flash":["success","Account activated!"]}`)
	}))

	resp, err := service.Activate(context.Background(), "activation-token-9", "carol@example.com")
	require.NoError(t, err)
	require.Equal(t, "/account_activations/activation-token-9", gotURL)
	require.Equal(t, "carol@example.com", gotBody["email"])
	require.Equal(t, "Carol", resp.User.Name)
	require.Equal(t, "Account activated!", resp.Flash.Message)
}
