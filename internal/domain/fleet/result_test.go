package fleet

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	results := []Result{
		{Status: StatusSuccess, WasCloned: true, Duration: 2 * time.Second},
		{Status: StatusSuccess, Duration: time.Second},
		{Status: StatusUpToDate, Duration: time.Second},
		{Status: StatusFailed, Err: "clone failed"},
		{Status: StatusSkipped, Err: SkipReasonUncommitted},
	}

	sum := Summarize(results)

	if sum.Total != 5 {
		t.Fatalf("Total = %d, want 5", sum.Total)
	}
	if sum.Successful != 3 {
		t.Fatalf("Successful = %d, want 3", sum.Successful)
	}
	if sum.Failed != 1 {
		t.Fatalf("Failed = %d, want 1", sum.Failed)
	}
	if sum.Skipped != 1 {
		t.Fatalf("Skipped = %d, want 1", sum.Skipped)
	}
	if sum.Cloned != 1 {
		t.Fatalf("Cloned = %d, want 1", sum.Cloned)
	}
	if sum.Elapsed != 4*time.Second {
		t.Fatalf("Elapsed = %s, want 4s", sum.Elapsed)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	if sum.Total != 0 || sum.Successful != 0 || sum.Failed != 0 || sum.Skipped != 0 {
		t.Fatalf("Summarize(nil) = %+v, want zero counts", sum)
	}
}
