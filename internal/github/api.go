// Package github talks to the two anonymous GitHub endpoints a snapshot clone
// needs: the repository metadata API and the codeload archive host.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/xsukax/go-gitsnap/internal/config"
	"github.com/xsukax/go-gitsnap/internal/errors"
	"github.com/xsukax/go-gitsnap/internal/progress"
)

// RepoMetadata represents the subset of repository metadata the clone needs
type RepoMetadata struct {
	DefaultBranch string `json:"default_branch"`
}

// Client handles GitHub API and snapshot download operations
type Client struct {
	httpClient      *http.Client
	apiBaseURL      string
	codeloadBaseURL string
	userAgent       string
	metadataTimeout time.Duration
	downloadTimeout time.Duration
	tracker         progress.Tracker
	warnOut         io.Writer
}

// NewClient creates a GitHub client from the loaded configuration. The
// tracker, when non-nil, receives byte-level progress during snapshot
// downloads.
func NewClient(cfg *config.Config, tracker progress.Tracker) *Client {
	return &Client{
		httpClient:      &http.Client{},
		apiBaseURL:      cfg.APIBaseURL,
		codeloadBaseURL: cfg.CodeloadBaseURL,
		userAgent:       cfg.UserAgent,
		metadataTimeout: time.Duration(cfg.MetadataTimeoutSeconds) * time.Second,
		downloadTimeout: time.Duration(cfg.DownloadTimeoutSeconds) * time.Second,
		tracker:         tracker,
		warnOut:         os.Stderr,
	}
}

// DefaultBranch returns the repository's default branch. The lookup is a
// best-effort hint: on any network or parse failure it prints a warning and
// returns "main" rather than an error, so an unavailable API never blocks the
// clone.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) string {
	ctx, cancel := context.WithTimeout(ctx, c.metadataTimeout)
	defer cancel()

	meta, err := c.repoMetadata(ctx, owner, repo)
	if err != nil || meta.DefaultBranch == "" {
		if err == nil {
			err = fmt.Errorf("metadata has no default branch field")
		}
		fmt.Fprintf(c.warnOut, "Warning: Could not fetch default branch (%v), trying 'main'...\n", err)
		return "main"
	}
	return meta.DefaultBranch
}

func (c *Client) repoMetadata(ctx context.Context, owner, repo string) (*RepoMetadata, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.apiBaseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository metadata: %w", err)
	}
	defer resp.Body.Close()

	var meta RepoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode repository metadata: %w", err)
	}

	return &meta, nil
}

// FetchSnapshot downloads the ZIP snapshot of a branch from the codeload
// endpoint and returns its raw bytes.
func (c *Client) FetchSnapshot(ctx context.Context, owner, repo, branch string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/%s/zip/refs/heads/%s", c.codeloadBaseURL, owner, repo, branch)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", errors.ErrDownloadFailure, err)
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDownloadFailure, err)
	}
	defer resp.Body.Close()

	data, err := c.readAll(resp.Body, resp.ContentLength)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read archive: %v", errors.ErrDownloadFailure, err)
	}

	return data, nil
}

// readAll reads the full body, reporting progress to the tracker when the
// total size is known up front.
func (c *Client) readAll(body io.Reader, total int64) ([]byte, error) {
	if c.tracker == nil {
		return io.ReadAll(body)
	}

	var data []byte
	buf := make([]byte, 32*1024)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			c.tracker.Update(int64(len(data)), total)
		}
		if err == io.EOF {
			return data, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// sendRequest sends an HTTP request with the identifying client header
func (c *Client) sendRequest(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if strings.HasPrefix(req.URL.String(), c.apiBaseURL) {
		req.Header.Set("Accept", "application/vnd.github.v3+json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("GitHub request failed: %s: %s", resp.Status, string(body))
	}

	return resp, nil
}
