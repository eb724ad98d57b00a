package fleet

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
)

type fakeOps struct {
	mu sync.Mutex

	states     map[string]LocalState
	stateErr   map[string]error
	cloneErr   map[string]error
	pullErr    map[string]error
	pullResult map[string]bool

	cloned []string
	pulled []string
}

func newFakeOps() *fakeOps {
	return &fakeOps{
		states:     make(map[string]LocalState),
		stateErr:   make(map[string]error),
		cloneErr:   make(map[string]error),
		pullErr:    make(map[string]error),
		pullResult: make(map[string]bool),
	}
}

func (f *fakeOps) LocalState(path string) (LocalState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.stateErr[path]; err != nil {
		return LocalState{}, err
	}
	state, ok := f.states[path]
	if !ok {
		return LocalState{Path: path}, nil
	}
	return state, nil
}

func (f *fakeOps) Clone(ctx context.Context, url, path string, depth int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.cloneErr[path]; err != nil {
		return err
	}
	f.cloned = append(f.cloned, path)
	return nil
}

func (f *fakeOps) Pull(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.pullErr[path]; err != nil {
		return false, err
	}
	f.pulled = append(f.pulled, path)
	return f.pullResult[path], nil
}

func testRepo(name string) repo.Repository {
	return repo.Repository{
		Name:     name,
		FullName: "acme/" + name,
		CloneURL: fmt.Sprintf("https://github.com/acme/%s.git", name),
		SSHURL:   fmt.Sprintf("git@github.com:acme/%s.git", name),
	}
}

func TestSyncOneClonesMissingRepo(t *testing.T) {
	ops := newFakeOps()
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if !res.WasCloned {
		t.Fatalf("WasCloned = false, want true")
	}
	want := filepath.Join("/ws", "alpha")
	if len(ops.cloned) != 1 || ops.cloned[0] != want {
		t.Fatalf("cloned = %v, want [%s]", ops.cloned, want)
	}
}

func TestSyncOnePullsExistingCleanRepo(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.states[path] = LocalState{Path: path, Exists: true, IsGitRepo: true, Branch: "main"}
	ops.pullResult[path] = true
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if res.WasCloned {
		t.Fatalf("WasCloned = true, want false")
	}
	if len(ops.pulled) != 1 {
		t.Fatalf("pulled = %v, want one entry", ops.pulled)
	}
}

func TestSyncOneUpToDateWhenRemoteHasNothingNew(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.states[path] = LocalState{Path: path, Exists: true, IsGitRepo: true}
	ops.pullResult[path] = false
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusUpToDate {
		t.Fatalf("Status = %q, want %q", res.Status, StatusUpToDate)
	}
}

func TestSyncOneSkipsDirtyWithoutForce(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.states[path] = LocalState{Path: path, Exists: true, IsGitRepo: true, HasUncommitted: true}
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusSkipped {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSkipped)
	}
	if res.Err != SkipReasonUncommitted {
		t.Fatalf("Err = %q, want %q", res.Err, SkipReasonUncommitted)
	}
	if len(ops.pulled) != 0 {
		t.Fatalf("pulled = %v, want none", ops.pulled)
	}
}

func TestSyncOneForcePullsDirtyRepo(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.states[path] = LocalState{Path: path, Exists: true, IsGitRepo: true, HasUncommitted: true}
	ops.pullResult[path] = true
	opts := DefaultOptions()
	opts.Force = true
	e := NewEngine(ops, "/ws", opts, nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusSuccess {
		t.Fatalf("Status = %q, want %q", res.Status, StatusSuccess)
	}
	if len(ops.pulled) != 1 {
		t.Fatalf("pulled = %v, want one entry", ops.pulled)
	}
}

func TestSyncOneDryRunNeverMutates(t *testing.T) {
	ops := newFakeOps()
	existing := filepath.Join("/ws", "beta")
	ops.states[existing] = LocalState{Path: existing, Exists: true, IsGitRepo: true}
	opts := DefaultOptions()
	opts.DryRun = true
	e := NewEngine(ops, "/ws", opts, nil)

	missing := e.SyncOne(context.Background(), testRepo("alpha"))
	present := e.SyncOne(context.Background(), testRepo("beta"))

	if missing.Status != StatusPending {
		t.Fatalf("missing Status = %q, want %q", missing.Status, StatusPending)
	}
	if present.Status != StatusUpToDate {
		t.Fatalf("present Status = %q, want %q", present.Status, StatusUpToDate)
	}
	if len(ops.cloned) != 0 || len(ops.pulled) != 0 {
		t.Fatalf("dry run mutated: cloned=%v pulled=%v", ops.cloned, ops.pulled)
	}
}

func TestSyncOneCloneOnlyLeavesExistingUntouched(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.states[path] = LocalState{Path: path, Exists: true, IsGitRepo: true}
	opts := DefaultOptions()
	opts.CloneOnly = true
	e := NewEngine(ops, "/ws", opts, nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusUpToDate {
		t.Fatalf("Status = %q, want %q", res.Status, StatusUpToDate)
	}
	if len(ops.pulled) != 0 {
		t.Fatalf("pulled = %v, want none", ops.pulled)
	}
}

func TestSyncOneInspectFailureIsFailed(t *testing.T) {
	ops := newFakeOps()
	path := filepath.Join("/ws", "alpha")
	ops.stateErr[path] = errors.New("permission denied")
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	res := e.SyncOne(context.Background(), testRepo("alpha"))

	if res.Status != StatusFailed {
		t.Fatalf("Status = %q, want %q", res.Status, StatusFailed)
	}
	if res.Err == "" {
		t.Fatalf("Err is empty, want failure reason")
	}
}

func TestSyncOneUsesSSHURLWhenConfigured(t *testing.T) {
	var gotURL string
	ops := newFakeOps()
	e := NewEngine(operatorFunc{
		state: func(path string) (LocalState, error) { return LocalState{Path: path}, nil },
		clone: func(ctx context.Context, url, path string, depth int) error {
			gotURL = url
			return nil
		},
		pull: ops.Pull,
	}, "/ws", DefaultOptions(), nil)

	e.SyncOne(context.Background(), testRepo("alpha"))

	if gotURL != "git@github.com:acme/alpha.git" {
		t.Fatalf("clone url = %q, want ssh url", gotURL)
	}
}

type operatorFunc struct {
	state func(string) (LocalState, error)
	clone func(context.Context, string, string, int) error
	pull  func(context.Context, string) (bool, error)
}

func (o operatorFunc) LocalState(path string) (LocalState, error) { return o.state(path) }
func (o operatorFunc) Clone(ctx context.Context, url, path string, depth int) error {
	return o.clone(ctx, url, path, depth)
}
func (o operatorFunc) Pull(ctx context.Context, path string) (bool, error) { return o.pull(ctx, path) }

func TestSyncProducesOneResultPerRepoInOrder(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 16} {
		ops := newFakeOps()
		opts := DefaultOptions()
		opts.Concurrency = workers
		e := NewEngine(ops, "/ws", opts, nil)

		var repos []repo.Repository
		for i := 0; i < 9; i++ {
			repos = append(repos, testRepo(fmt.Sprintf("repo-%d", i)))
		}
		results := e.Sync(context.Background(), repos)

		if len(results) != len(repos) {
			t.Fatalf("concurrency %d: got %d results, want %d", workers, len(results), len(repos))
		}
		for i, res := range results {
			if res.Repo.Name != repos[i].Name {
				t.Fatalf("concurrency %d: results[%d] = %q, want %q", workers, i, res.Repo.Name, repos[i].Name)
			}
		}
	}
}

func TestSyncIsolatesFailures(t *testing.T) {
	ops := newFakeOps()
	ops.cloneErr[filepath.Join("/ws", "repo-2")] = errors.New("network unreachable")
	e := NewEngine(ops, "/ws", DefaultOptions(), nil)

	repos := []repo.Repository{testRepo("repo-1"), testRepo("repo-2"), testRepo("repo-3")}
	results := e.Sync(context.Background(), repos)

	if results[1].Status != StatusFailed {
		t.Fatalf("results[1].Status = %q, want %q", results[1].Status, StatusFailed)
	}
	for _, i := range []int{0, 2} {
		if results[i].Status != StatusSuccess {
			t.Fatalf("results[%d].Status = %q, want %q", i, results[i].Status, StatusSuccess)
		}
	}
}

func TestSyncEmptyInput(t *testing.T) {
	e := NewEngine(newFakeOps(), "/ws", DefaultOptions(), nil)
	results := e.Sync(context.Background(), nil)
	if len(results) != 0 {
		t.Fatalf("got %d results, want 0", len(results))
	}
}
