package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gitfleet/gitfleet/internal/domain/fleet"
	"github.com/gitfleet/gitfleet/internal/ui"
)

func renderResults(renderer *ui.Renderer, results []fleet.Result) {
	for i, res := range results {
		prefix := "├─ "
		if i == len(results)-1 {
			prefix = "└─ "
		}
		switch res.Status {
		case fleet.StatusFailed:
			renderer.TreeLineError(prefix, fmt.Sprintf("%s: %s", res.Repo.Name, res.Err))
		case fleet.StatusSkipped:
			renderer.TreeLineWarn(prefix, fmt.Sprintf("%s: %s", res.Repo.Name, res.Err))
		default:
			renderer.TreeLineStatus(prefix, res.Repo.Name, statusLabel(res))
		}
	}
}

func statusLabel(res fleet.Result) string {
	if res.WasCloned {
		return "cloned"
	}
	return res.Status.String()
}

func renderSummary(renderer *ui.Renderer, sum fleet.Summary) {
	renderer.Bullet(fmt.Sprintf("total: %d, successful: %d, failed: %d, skipped: %d, cloned: %d",
		sum.Total, sum.Successful, sum.Failed, sum.Skipped, sum.Cloned))
}

type reportEntry struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Path       string `json:"path"`
	Error      string `json:"error,omitempty"`
	Cloned     bool   `json:"cloned,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type reportSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Cloned     int `json:"cloned"`
}

type report struct {
	Org     string        `json:"org"`
	DryRun  bool          `json:"dry_run"`
	Results []reportEntry `json:"results"`
	Summary reportSummary `json:"summary"`
}

func writeJSONReport(org string, dryRun bool, results []fleet.Result) error {
	rep := report{Org: org, DryRun: dryRun, Results: []reportEntry{}}
	for _, res := range results {
		rep.Results = append(rep.Results, reportEntry{
			Name:       res.Repo.Name,
			Status:     res.Status.String(),
			Path:       res.Path,
			Error:      res.Err,
			Cloned:     res.WasCloned,
			DurationMS: res.Duration.Milliseconds(),
		})
	}
	sum := fleet.Summarize(results)
	rep.Summary = reportSummary{
		Total:      sum.Total,
		Successful: sum.Successful,
		Failed:     sum.Failed,
		Skipped:    sum.Skipped,
		Cloned:     sum.Cloned,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
