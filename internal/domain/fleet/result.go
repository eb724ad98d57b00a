package fleet

import (
	"time"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
)

// Result records the outcome of synchronizing one repository. Exactly one
// is produced per repository per run, and it is immutable once created.
type Result struct {
	Repo      repo.Repository
	Status    Status
	Path      string
	Err       string // human-readable failure or skip reason
	WasCloned bool

	// CommitsFetched is reserved and currently always zero.
	CommitsFetched int

	Duration time.Duration
}

// Summary aggregates result counts for one run.
type Summary struct {
	Total      int
	Successful int // Success + UpToDate
	Failed     int
	Skipped    int
	Cloned     int
	Elapsed    time.Duration
}

// Summarize computes the run summary from a result set.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Status.IsSuccessful() {
			s.Successful++
		}
		switch r.Status {
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
		if r.WasCloned {
			s.Cloned++
		}
		s.Elapsed += r.Duration
	}
	return s
}
