package passwordreset_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-microblog-client/passwordreset"
	"github.com/jrsteele09/go-microblog-client/token"
	"github.com/jrsteele09/go-microblog-client/token/memrepo"
	"github.com/jrsteele09/go-microblog-client/transport"
)

func newTestService(t *testing.T, handler http.Handler) *passwordreset.Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	manager, err := token.NewManager(memrepo.New(), memrepo.New())
	require.NoError(t, err)

	client, err := transport.New(server.URL, manager)
	require.NoError(t, err)

	return passwordreset.New(client)
}

func TestRequestNestsEmail(t *testing.T) {
	var gotBody map[string]map[string]string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/password_resets", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"flash":["info","Email sent with password reset instructions"]}`)
	}))

	resp, err := service.Request(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", gotBody["password_reset"]["email"])
	require.Equal(t, "info", resp.Flash.Level)
}

func TestResetSubmitsNewPassword(t *testing.T) {
	var gotBody struct {
		Email string `json:"email"`
		User  struct {
			Password             string `json:"password"`
			PasswordConfirmation string `json:"password_confirmation"`
		} `json:"user"`
	}
	var gotURL string
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		require.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"user_id":"7","flash":["success","Password has been reset."]}`)
	}))

	resp, err := service.Reset(context.Background(), "reset-token-123", passwordreset.ResetParams{
		Email:                "alice@example.com",
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	require.NoError(t, err)
	require.Equal(t, "/password_resets/reset-token-123", gotURL)
	require.Equal(t, "alice@example.com", gotBody.Email)
	require.Equal(t, "newpassword", gotBody.User.Password)
	require.Equal(t, "7", resp.UserID)
}
