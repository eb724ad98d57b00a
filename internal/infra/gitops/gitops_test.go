package gitops

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	r, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	wt, err := r.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()}
	if _, err := wt.Commit("initial", &git.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir
}

func TestLocalStateMissingPath(t *testing.T) {
	g := New(nil)
	path := filepath.Join(t.TempDir(), "does-not-exist")

	state, err := g.LocalState(path)
	if err != nil {
		t.Fatalf("LocalState: %v", err)
	}
	if state.Exists {
		t.Fatalf("Exists = true, want false")
	}
	if state.Path != path {
		t.Fatalf("Path = %q, want %q", state.Path, path)
	}
}

func TestLocalStateNotARepository(t *testing.T) {
	g := New(nil)
	dir := t.TempDir()

	state, err := g.LocalState(dir)
	if err != nil {
		t.Fatalf("LocalState: %v", err)
	}
	if !state.Exists {
		t.Fatalf("Exists = false, want true")
	}
	if state.IsGitRepo {
		t.Fatalf("IsGitRepo = true, want false")
	}
}

func TestLocalStateCleanRepository(t *testing.T) {
	g := New(nil)
	dir := initRepoWithCommit(t)

	state, err := g.LocalState(dir)
	if err != nil {
		t.Fatalf("LocalState: %v", err)
	}
	if !state.IsGitRepo {
		t.Fatalf("IsGitRepo = false, want true")
	}
	if state.Branch == "" {
		t.Fatalf("Branch is empty, want checked-out branch")
	}
	if state.HasUncommitted {
		t.Fatalf("HasUncommitted = true, want clean")
	}
}

func TestLocalStateUntrackedFileIsDirty(t *testing.T) {
	g := New(nil)
	dir := initRepoWithCommit(t)
	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("wip\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	state, err := g.LocalState(dir)
	if err != nil {
		t.Fatalf("LocalState: %v", err)
	}
	if !state.HasUncommitted {
		t.Fatalf("HasUncommitted = false, want dirty")
	}
}

func TestCloneAndPullUpToDate(t *testing.T) {
	g := New(nil)
	src := initRepoWithCommit(t)
	dest := filepath.Join(t.TempDir(), "clone")
	ctx := context.Background()

	if err := g.Clone(ctx, src, dest, 0); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	state, err := g.LocalState(dest)
	if err != nil {
		t.Fatalf("LocalState: %v", err)
	}
	if !state.IsGitRepo {
		t.Fatalf("IsGitRepo = false after clone, want true")
	}

	updated, err := g.Pull(ctx, dest)
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if updated {
		t.Fatalf("updated = true, want false for up-to-date clone")
	}
}

func TestCloneMissingSource(t *testing.T) {
	g := New(nil)
	dest := filepath.Join(t.TempDir(), "clone")

	err := g.Clone(context.Background(), filepath.Join(t.TempDir(), "nope"), dest, 0)
	if err == nil {
		t.Fatalf("Clone from missing source succeeded, want error")
	}
}

func TestPullNotARepository(t *testing.T) {
	g := New(nil)

	if _, err := g.Pull(context.Background(), t.TempDir()); err == nil {
		t.Fatalf("Pull on non-repository succeeded, want error")
	}
}

func TestRemoteURL(t *testing.T) {
	g := New(nil)
	src := initRepoWithCommit(t)
	dest := filepath.Join(t.TempDir(), "clone")
	if err := g.Clone(context.Background(), src, dest, 0); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	url, err := g.RemoteURL(dest)
	if err != nil {
		t.Fatalf("RemoteURL: %v", err)
	}
	if url != src {
		t.Fatalf("RemoteURL = %q, want %q", url, src)
	}

	if _, err := g.RemoteURL(src); err == nil {
		t.Fatalf("RemoteURL without origin succeeded, want error")
	}
}
