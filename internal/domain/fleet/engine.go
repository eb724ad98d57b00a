package fleet

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
	"github.com/gitfleet/gitfleet/internal/infra/output"
	"go.uber.org/zap"
)

// Operator is the version-control capability the engine drives. An error
// returned from any call is confined to the repository it concerns.
type Operator interface {
	// LocalState inspects path. A missing path or a directory that is
	// not a working copy is not an error; a failure reading a confirmed
	// working copy is.
	LocalState(path string) (LocalState, error)

	// Clone clones url into path. A depth of 0 keeps the full history.
	Clone(ctx context.Context, url, path string, depth int) error

	// Pull fetches from the remote named "origin". updated is false
	// when the remote had nothing new.
	Pull(ctx context.Context, path string) (updated bool, err error)
}

// SkipReasonUncommitted is the skip message attached when a dirty working
// copy blocks a sync without --force.
const SkipReasonUncommitted = "Uncommitted changes detected"

// Engine runs the per-repository decision procedure and fans it out over
// a bounded worker pool. It keeps no state between runs.
type Engine struct {
	ops  Operator
	root string
	opts Options
	log  *zap.Logger
}

// NewEngine builds an engine rooted at workspaceRoot. A nil logger is
// replaced with a no-op logger.
func NewEngine(ops Operator, workspaceRoot string, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{ops: ops, root: workspaceRoot, opts: opts, log: log}
}

// SyncOne decides and executes the action for a single repository. It
// never returns an error: every failure is classified into the result.
func (e *Engine) SyncOne(ctx context.Context, r repo.Repository) Result {
	start := time.Now()
	path := filepath.Join(e.root, r.Name)

	state, err := e.ops.LocalState(path)
	if err != nil {
		e.log.Error("inspect failed", zap.String("repo", r.Name), zap.Error(err))
		return finish(Result{Repo: r, Status: StatusFailed, Path: path, Err: err.Error()}, start)
	}

	if e.opts.DryRun {
		status := StatusUpToDate // would sync
		if !state.Exists {
			status = StatusPending // would clone
		}
		return finish(Result{Repo: r, Status: status, Path: path}, start)
	}

	if !state.Exists {
		url := r.URL(e.opts.UseSSH)
		e.log.Info("cloning", zap.String("repo", r.Name), zap.String("url", url), zap.Int("depth", e.opts.Depth))
		if err := e.ops.Clone(ctx, url, path, e.opts.Depth); err != nil {
			e.log.Error("clone failed", zap.String("repo", r.Name), zap.Error(err))
			return finish(Result{Repo: r, Status: StatusFailed, Path: path, Err: err.Error()}, start)
		}
		return finish(Result{Repo: r, Status: StatusSuccess, Path: path, WasCloned: true}, start)
	}

	if e.opts.CloneOnly {
		return finish(Result{Repo: r, Status: StatusUpToDate, Path: path}, start)
	}

	if state.HasUncommitted && !e.opts.Force {
		e.log.Warn("skipping dirty working copy", zap.String("repo", r.Name), zap.String("path", path))
		return finish(Result{Repo: r, Status: StatusSkipped, Path: path, Err: SkipReasonUncommitted}, start)
	}

	updated, err := e.ops.Pull(ctx, path)
	if err != nil {
		e.log.Error("pull failed", zap.String("repo", r.Name), zap.Error(err))
		return finish(Result{Repo: r, Status: StatusFailed, Path: path, Err: err.Error()}, start)
	}
	status := StatusUpToDate
	if updated {
		status = StatusSuccess
	}
	return finish(Result{Repo: r, Status: status, Path: path}, start)
}

// Sync fans the decision procedure out over a bounded worker pool and
// returns one result per input repository, in input order. A failure in
// one repository never affects the others. The input list is assumed
// de-duplicated by name; two same-named entries would contend for one
// local path.
func (e *Engine) Sync(ctx context.Context, repos []repo.Repository) []Result {
	workers := e.opts.workers()
	if len(repos) < workers {
		workers = len(repos)
	}
	e.log.Info("starting sync", zap.Int("repos", len(repos)), zap.Int("concurrency", workers))

	results := make([]Result, len(repos))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				r := repos[idx]
				output.Step(fmt.Sprintf("sync %s", r.Name))
				results[idx] = e.SyncOne(ctx, r)
			}
		}()
	}
	for idx := range repos {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	sum := Summarize(results)
	e.log.Info("sync complete",
		zap.Int("successful", sum.Successful),
		zap.Int("failed", sum.Failed),
		zap.Int("skipped", sum.Skipped),
	)
	return results
}

func finish(r Result, start time.Time) Result {
	r.Duration = time.Since(start)
	return r
}
