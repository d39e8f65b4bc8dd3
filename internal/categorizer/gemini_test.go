package categorizer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
	assert.True(t, errors.IsAPIKeyError(err))
}

func TestNewDefaults(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)
	assert.Equal(t, constants.DefaultGeminiModel, c.Model())

	c, err = New("key", WithModel("gemini-2.5-pro"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", c.Model())
}

func TestCategorize(t *testing.T) {
	var body string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": `{"0":"theme"}`}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	reply, err := c.Categorize(context.Background(), "be brief", "0. nova | https://nova.dev | dark")
	require.NoError(t, err)
	assert.Equal(t, `{"0":"theme"}`, reply)

	assert.True(t, strings.HasSuffix(path, "models/"+constants.DefaultGeminiModel+":generateContent"), path)
	assert.Contains(t, body, "be brief")
	assert.Contains(t, body, "0. nova | https://nova.dev | dark")
}

func TestCategorizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	c, err := New("key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Categorize(context.Background(), "sys", "prompt")
	require.Error(t, err)

	var apiErr *errors.APIError
	assert.ErrorAs(t, err, &apiErr)
}
