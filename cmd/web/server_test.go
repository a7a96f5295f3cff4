package main

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	server := startTestServer(t)
	client := server.Client()

	t.Run("healthy", func(t *testing.T) {
		resp, err := client.Get(ctx, "/api/healthy")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":"ok"}`, string(body))
	})

	t.Run("secure headers", func(t *testing.T) {
		resp, err := client.Get(ctx, "/")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "script-src 'nonce-")
		assert.Equal(t, "deny", resp.Header.Get("X-Frame-Options"))
	})

	t.Run("static files", func(t *testing.T) {
		resp, err := client.Get(ctx, "/static/main.css")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := client.Get(ctx, "/sermons")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		_, err := client.SelectProfile(ctx, "Deborah", "")
		require.NoError(t, err)
		_, err = client.SubmitForm(ctx, "/", "/assessments", url.Values{"c": {"1"}, "h": {"1"}, "f": {"1"}})
		require.NoError(t, err)
		resp, err := client.Get(ctx, "/calculator?c=2&h=1&f=1")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		resp, err = client.Get(ctx, "/metrics")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `soverain_entries_saved_total{type="Assessment"} 1`)
		assert.Contains(t, string(body), `soverain_alignments_computed_total{label="Aligned"} 1`)
		assert.Contains(t, string(body), `soverain_inputs_rejected_total{reason="out_of_range"} 1`)
	})
}
