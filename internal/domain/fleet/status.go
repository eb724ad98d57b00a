package fleet

// Status classifies the outcome of synchronizing one repository. It is a
// closed set: every decision-procedure branch maps to exactly one value.
type Status int

const (
	// StatusPending means not yet processed. Dry runs reuse it to report
	// "would clone" for a repository that does not exist locally.
	StatusPending Status = iota
	StatusInProgress
	StatusSuccess
	StatusFailed
	StatusSkipped
	StatusUpToDate
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in-progress"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	case StatusUpToDate:
		return "up-to-date"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the status is a final outcome.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusSkipped, StatusUpToDate:
		return true
	default:
		return false
	}
}

// IsSuccessful reports whether the outcome counts as a success.
func (s Status) IsSuccessful() bool {
	return s == StatusSuccess || s == StatusUpToDate
}
