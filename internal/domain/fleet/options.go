package fleet

import "github.com/gitfleet/gitfleet/internal/domain/repo"

// Options is the policy for one synchronization run. It is immutable for
// the duration of the run and shared read-only across workers.
type Options struct {
	// Concurrency is the worker pool size. Values below 1 are clamped
	// to 1 at run time.
	Concurrency int

	// DryRun reports the action that would be taken without mutating
	// anything.
	DryRun bool

	// Force syncs even when the working copy has uncommitted changes.
	Force bool

	// Depth truncates clone history; 0 keeps the full history.
	Depth int

	// UseSSH selects the secure-shell clone endpoint over HTTPS.
	UseSSH bool

	// CloneOnly leaves existing working copies untouched instead of
	// pulling them.
	CloneOnly bool

	// Names restricts the run to the listed repositories. The caller
	// applies it before handing the list to the engine; an empty list
	// means all.
	Names []string

	// Filter narrows the repository list. Applied by the caller, like
	// Names.
	Filter *repo.Filter
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Concurrency: 5,
		UseSSH:      true,
	}
}

func (o Options) workers() int {
	if o.Concurrency < 1 {
		return 1
	}
	return o.Concurrency
}
