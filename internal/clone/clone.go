// Package clone orchestrates the acquisition pipeline: source classification,
// destination guarding, the remote snapshot path with its branch fallback, and
// the local copy path.
package clone

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xsukax/go-gitsnap/internal/archive"
	"github.com/xsukax/go-gitsnap/internal/config"
	"github.com/xsukax/go-gitsnap/internal/errors"
	"github.com/xsukax/go-gitsnap/internal/fsutils"
	"github.com/xsukax/go-gitsnap/internal/github"
	"github.com/xsukax/go-gitsnap/internal/progress"
)

// Options contains configuration for a clone run
type Options struct {
	Source      string
	Destination string          // Optional: defaults to the repo name or source basename
	Config      *config.Config  // Optional: defaults are used when nil
	Out         io.Writer       // Message stream, defaults to stdout
	Tracker     progress.Tracker
	Context     context.Context // Context for cancellation
}

// Result records what a successful clone actually did
type Result struct {
	Owner  string
	Repo   string
	Branch string // The branch that actually downloaded, fallback included
	Dest   string
	Local  bool
}

// gitHubClient is the slice of the GitHub client the pipeline needs; a seam
// for tests.
type gitHubClient interface {
	DefaultBranch(ctx context.Context, owner, repo string) string
	FetchSnapshot(ctx context.Context, owner, repo, branch string) ([]byte, error)
}

// Seams for mocking in tests
var (
	newGitHubClient = func(cfg *config.Config, tracker progress.Tracker) gitHubClient {
		return github.NewClient(cfg, tracker)
	}
	extractSnapshot = archive.ExtractSnapshot
)

// Run classifies the source and executes the matching pipeline.
func Run(opts Options) (*Result, error) {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}

	src, err := ClassifySource(opts.Source)
	if err != nil {
		return nil, errors.New("clone", err)
	}

	switch ref := src.(type) {
	case RemoteRef:
		return cloneRemote(opts, ref)
	case LocalRef:
		return cloneLocal(opts, ref)
	default:
		return nil, errors.New("clone", fmt.Errorf("unknown source kind"))
	}
}

// cloneRemote runs the snapshot pipeline: resolve branch, download with one
// fallback retry, extract into the guarded destination.
func cloneRemote(opts Options, ref RemoteRef) (*Result, error) {
	dest := opts.Destination
	if dest == "" {
		dest = ref.Repo
	}
	dest, err := filepath.Abs(dest)
	if err != nil {
		return nil, errors.New("clone", fmt.Errorf("%w: cannot resolve destination: %v", errors.ErrIOFailure, err))
	}

	fmt.Fprintf(opts.Out, "Cloning into '%s'...\n", dest)
	if err := fsutils.EnsureEmptyDir(dest); err != nil {
		return nil, errors.New("clone", err)
	}

	client := newGitHubClient(opts.Config, opts.Tracker)

	fmt.Fprintf(opts.Out, "Fetching repository information for %s/%s...\n", ref.Owner, ref.Repo)
	branch := client.DefaultBranch(opts.Context, ref.Owner, ref.Repo)

	data, branch, err := fetchWithFallback(opts, client, ref, branch)
	if err != nil {
		return nil, errors.New("clone", err)
	}

	fmt.Fprintln(opts.Out, "Extracting archive...")
	if err := extractSnapshot(data, dest); err != nil {
		return nil, errors.New("extract", err)
	}

	fmt.Fprintf(opts.Out, "Successfully cloned %s/%s (branch: %s) into '%s'\n", ref.Owner, ref.Repo, branch, dest)
	return &Result{Owner: ref.Owner, Repo: ref.Repo, Branch: branch, Dest: dest}, nil
}

// fetchWithFallback downloads the snapshot for the resolved branch, retrying
// once against the complementary conventional name. GitHub defaults have
// historically been either main or master, and the metadata lookup that
// produced the first candidate may itself have been unavailable.
func fetchWithFallback(opts Options, client gitHubClient, ref RemoteRef, branch string) ([]byte, string, error) {
	data, err := fetchBranch(opts, client, ref, branch)
	if err == nil {
		return data, branch, nil
	}

	fallback := "master"
	if branch == "master" {
		fallback = "main"
	}
	fmt.Fprintf(opts.Out, "Branch '%s' failed, trying '%s'...\n", branch, fallback)

	data, retryErr := fetchBranch(opts, client, ref, fallback)
	if retryErr != nil {
		return nil, "", fmt.Errorf("failed to download GitHub archive: %w", retryErr)
	}
	return data, fallback, nil
}

func fetchBranch(opts Options, client gitHubClient, ref RemoteRef, branch string) ([]byte, error) {
	if opts.Tracker != nil {
		opts.Tracker.Start(fmt.Sprintf("Downloading %s/%s (branch: %s)", ref.Owner, ref.Repo, branch))
	}
	data, err := client.FetchSnapshot(opts.Context, ref.Owner, ref.Repo, branch)
	if opts.Tracker != nil {
		if err != nil {
			opts.Tracker.Error(err)
		} else {
			opts.Tracker.Complete()
		}
	}
	return data, err
}

// cloneLocal copies a local directory tree byte for byte, version control
// metadata included.
func cloneLocal(opts Options, ref LocalRef) (*Result, error) {
	info, err := os.Stat(ref.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("clone", fmt.Errorf("%w: source path '%s' does not exist", errors.ErrSourceNotFound, ref.Path))
		}
		return nil, errors.New("clone", fmt.Errorf("%w: cannot stat '%s': %v", errors.ErrIOFailure, ref.Path, err))
	}
	if !info.IsDir() {
		return nil, errors.New("clone", fmt.Errorf("%w: source path '%s' is not a directory", errors.ErrSourceNotADirectory, ref.Path))
	}

	dest := opts.Destination
	if dest == "" {
		dest = filepath.Base(ref.Path)
	}
	dest, err = filepath.Abs(dest)
	if err != nil {
		return nil, errors.New("clone", fmt.Errorf("%w: cannot resolve destination: %v", errors.ErrIOFailure, err))
	}

	fmt.Fprintf(opts.Out, "Cloning local directory into '%s'...\n", dest)
	if err := fsutils.EnsureEmptyDir(dest); err != nil {
		return nil, errors.New("clone", err)
	}

	// The guard just verified the destination is an empty directory; the copy
	// needs a nonexistent target.
	if err := os.Remove(dest); err != nil {
		return nil, errors.New("clone", fmt.Errorf("%w: cannot replace '%s': %v", errors.ErrIOFailure, dest, err))
	}

	if err := fsutils.CopyTree(ref.Path, dest); err != nil {
		return nil, errors.New("copy", err)
	}

	fmt.Fprintf(opts.Out, "Successfully cloned local directory '%s' into '%s'\n", ref.Path, dest)
	return &Result{Dest: dest, Local: true}, nil
}
