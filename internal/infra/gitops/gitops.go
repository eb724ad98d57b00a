// Package gitops implements the engine's version-control capability on
// go-git: inspection, clone, fetch against "origin", and remote lookup.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/domain/fleet"
)

// Git implements fleet.Operator.
type Git struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Git {
	if log == nil {
		log = zap.NewNop()
	}
	return &Git{log: log}
}

// LocalState inspects path. Absence and not-a-repository degrade to flags
// in the returned state; once a working copy opens, errors reading its
// HEAD or status propagate.
func (g *Git) LocalState(path string) (fleet.LocalState, error) {
	state := fleet.LocalState{Path: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, fmt.Errorf("stat %s: %w", path, err)
	}
	state.Exists = true

	r, err := git.PlainOpen(path)
	if err != nil {
		// Exists but is not (or is a corrupt) repository.
		return state, nil
	}
	state.IsGitRepo = true

	head, err := r.Head()
	switch {
	case err == nil:
		if head.Name().IsBranch() {
			state.Branch = head.Name().Short()
		}
	case errors.Is(err, plumbing.ErrReferenceNotFound):
		// Unborn HEAD: no branch yet.
	default:
		return state, fmt.Errorf("read HEAD of %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return state, fmt.Errorf("open worktree of %s: %w", path, err)
	}
	status, err := wt.Status()
	if err != nil {
		return state, fmt.Errorf("read status of %s: %w", path, err)
	}
	// Status lists untracked files, so any entry means dirty.
	state.HasUncommitted = !status.IsClean()

	return state, nil
}

// Clone clones url into path. A depth of 0 keeps the full history.
func (g *Git) Clone(ctx context.Context, url, path string, depth int) error {
	g.log.Debug("clone", zap.String("url", url), zap.String("path", path), zap.Int("depth", depth))

	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:   url,
		Depth: depth,
	})
	if err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}

// Pull fetches from "origin". updated is false when the remote had
// nothing new.
func (g *Git) Pull(ctx context.Context, path string) (bool, error) {
	g.log.Debug("pull", zap.String("path", path))

	r, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	err = r.FetchContext(ctx, &git.FetchOptions{RemoteName: git.DefaultRemoteName})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch origin: %w", err)
	}
	return true, nil
}

// RemoteURL returns the first URL configured for the remote named
// "origin".
func (g *Git) RemoteURL(path string) (string, error) {
	r, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	remote, err := r.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", fmt.Errorf("remote origin: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote origin has no URL")
	}
	return urls[0], nil
}
