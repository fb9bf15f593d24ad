package github

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xsukax/go-gitsnap/internal/config"
	"github.com/xsukax/go-gitsnap/internal/errors"
	"github.com/xsukax/go-gitsnap/internal/progress"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *bytes.Buffer) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.APIBaseURL = srv.URL
	cfg.CodeloadBaseURL = srv.URL
	cfg.MetadataTimeoutSeconds = 5
	cfg.DownloadTimeoutSeconds = 5

	client := NewClient(cfg, nil)
	warnings := new(bytes.Buffer)
	client.warnOut = warnings
	return client, warnings
}

func TestDefaultBranch(t *testing.T) {
	t.Run("returns branch from metadata", func(t *testing.T) {
		client, warnings := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/alice/tools", r.URL.Path)
			assert.Equal(t, "gitsnap/1.0", r.Header.Get("User-Agent"))
			w.Write([]byte(`{"default_branch": "trunk"}`))
		}))

		branch := client.DefaultBranch(context.Background(), "alice", "tools")
		assert.Equal(t, "trunk", branch)
		assert.Empty(t, warnings.String())
	})

	t.Run("falls back to main on HTTP error", func(t *testing.T) {
		client, warnings := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusForbidden)
		}))

		branch := client.DefaultBranch(context.Background(), "alice", "tools")
		assert.Equal(t, "main", branch)
		assert.Contains(t, warnings.String(), "Warning: Could not fetch default branch")
	})

	t.Run("falls back to main on invalid JSON", func(t *testing.T) {
		client, warnings := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))

		branch := client.DefaultBranch(context.Background(), "alice", "tools")
		assert.Equal(t, "main", branch)
		assert.NotEmpty(t, warnings.String())
	})

	t.Run("falls back to main when field is empty", func(t *testing.T) {
		client, warnings := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))

		branch := client.DefaultBranch(context.Background(), "alice", "tools")
		assert.Equal(t, "main", branch)
		assert.Contains(t, warnings.String(), "no default branch field")
	})

	t.Run("falls back to main when server is unreachable", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.APIBaseURL = "http://127.0.0.1:1" // nothing listens here
		cfg.MetadataTimeoutSeconds = 1
		client := NewClient(cfg, nil)
		warnings := new(bytes.Buffer)
		client.warnOut = warnings

		branch := client.DefaultBranch(context.Background(), "alice", "tools")
		assert.Equal(t, "main", branch)
		assert.NotEmpty(t, warnings.String())
	})
}

func TestFetchSnapshot(t *testing.T) {
	t.Run("returns archive bytes", func(t *testing.T) {
		payload := []byte("PK\x03\x04fake-zip-payload")
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/alice/tools/zip/refs/heads/main", r.URL.Path)
			assert.Equal(t, "gitsnap/1.0", r.Header.Get("User-Agent"))
			w.Write(payload)
		}))

		data, err := client.FetchSnapshot(context.Background(), "alice", "tools", "main")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("wraps non-success responses as download failures", func(t *testing.T) {
		client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))

		_, err := client.FetchSnapshot(context.Background(), "alice", "tools", "main")
		assert.ErrorIs(t, err, errors.ErrDownloadFailure)
	})

	t.Run("wraps transport errors as download failures", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.CodeloadBaseURL = "http://127.0.0.1:1"
		cfg.DownloadTimeoutSeconds = 1
		client := NewClient(cfg, nil)

		_, err := client.FetchSnapshot(context.Background(), "alice", "tools", "main")
		assert.ErrorIs(t, err, errors.ErrDownloadFailure)
	})

	t.Run("reports progress to the tracker", func(t *testing.T) {
		payload := bytes.Repeat([]byte("z"), 100*1024)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write(payload)
		}))
		t.Cleanup(srv.Close)

		cfg := config.DefaultConfig()
		cfg.CodeloadBaseURL = srv.URL
		cfg.DownloadTimeoutSeconds = 5
		tracker := &progress.DefaultTracker{}
		client := NewClient(cfg, tracker)

		tracker.Start("download")
		data, err := client.FetchSnapshot(context.Background(), "alice", "tools", "main")
		require.NoError(t, err)
		assert.Len(t, data, len(payload))
		assert.Equal(t, int64(len(payload)), tracker.CurrentOperation.LastCurrent)
	})
}
