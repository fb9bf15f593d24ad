// Package urlutils provides utilities for handling GitHub repository URLs.
// It supports classifying clone sources and extracting the owner/repository
// pair from HTTPS URLs.
package urlutils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xsukax/go-gitsnap/internal/errors"
)

// IsURL reports whether s parses as an HTTP or HTTPS URL. Anything else is
// treated as a local filesystem path.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ParseGitHubRef extracts the owner and repository name from a GitHub URL.
// It accepts URLs in the following formats:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo.git
//
// Path segments beyond owner and repository are ignored. A trailing .git
// suffix on the repository name is stripped.
func ParseGitHubRef(rawURL string) (owner, repo string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", errors.ErrMalformedReference, err)
	}

	if !strings.EqualFold(u.Hostname(), "github.com") {
		return "", "", fmt.Errorf("%w: only GitHub HTTPS URLs are supported for remote clones", errors.ErrUnsupportedSource)
	}

	var parts []string
	for _, p := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: expected https://github.com/<owner>/<repo>[.git]", errors.ErrMalformedReference)
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	return owner, repo, nil
}
