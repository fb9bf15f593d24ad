package clone

import (
	"path/filepath"

	"github.com/xsukax/go-gitsnap/internal/fsutils"
	"github.com/xsukax/go-gitsnap/internal/urlutils"
)

// Source is the classified form of the raw source argument. It is a closed
// variant: every source is either a RemoteRef or a LocalRef, decided once and
// consumed by exactly one handler.
type Source interface {
	isSource()
}

// RemoteRef identifies a GitHub repository to snapshot
type RemoteRef struct {
	Owner string
	Repo  string
}

func (RemoteRef) isSource() {}

// LocalRef identifies a local directory to copy
type LocalRef struct {
	Path string
}

func (LocalRef) isSource() {}

// ClassifySource decides whether raw names a remote repository or a local
// path. Strings parsing as http/https URLs are remote; everything else is a
// local path, with ~ expanded.
func ClassifySource(raw string) (Source, error) {
	if urlutils.IsURL(raw) {
		owner, repo, err := urlutils.ParseGitHubRef(raw)
		if err != nil {
			return nil, err
		}
		return RemoteRef{Owner: owner, Repo: repo}, nil
	}

	abs, err := filepath.Abs(fsutils.ExpandUser(raw))
	if err != nil {
		return nil, err
	}
	return LocalRef{Path: abs}, nil
}
