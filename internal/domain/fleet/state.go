package fleet

import "time"

// LocalState is the derived state of the working copy at a local path.
// It is recomputed on every inspection and never cached across calls.
// When Exists is false every other field stays at its zero value.
type LocalState struct {
	Path           string
	Exists         bool
	IsGitRepo      bool
	Branch         string // empty when detached or unborn
	HasUncommitted bool

	// Reserved: never populated by the current inspector. Kept so the
	// result surface does not change when ahead/behind tracking lands.
	CommitsAhead  *int
	CommitsBehind *int
	LastSync      *time.Time
}
