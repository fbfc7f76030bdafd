package api_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-microblog-client/api"
)

func TestFlashUnmarshalTuple(t *testing.T) {
	var flash api.Flash
	require.NoError(t, json.Unmarshal([]byte(`["success","Welcome to the Sample App!"]`), &flash))
	require.Equal(t, "success", flash.Level)
	require.Equal(t, "Welcome to the Sample App!", flash.Message)
}

func TestFlashUnmarshalRejectsObject(t *testing.T) {
	var flash api.Flash
	require.Error(t, json.Unmarshal([]byte(`{"level":"info"}`), &flash))
}

func TestFlashMarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(api.Flash{Level: "info", Message: "done"})
	require.NoError(t, err)
	require.JSONEq(t, `["info","done"]`, string(data))

	var decoded api.Flash
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "info", decoded.Level)
	require.Equal(t, "done", decoded.Message)
}

func TestFlashInsideResponse(t *testing.T) {
	var resp api.MicropostResponse
	require.NoError(t, json.Unmarshal([]byte(`{"flash":["success","Micropost created!"]}`), &resp))
	require.NotNil(t, resp.Flash)
	require.Equal(t, "Micropost created!", resp.Flash.Message)
}
