package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
	"github.com/gitfleet/gitfleet/internal/infra/config"
	"github.com/gitfleet/gitfleet/internal/infra/github"
	"github.com/gitfleet/gitfleet/internal/infra/output"
	"github.com/gitfleet/gitfleet/internal/ui"
)

func isHelpArg(arg string) bool {
	switch strings.TrimSpace(arg) {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func envBool(key string) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return false
	}
	switch strings.ToLower(val) {
	case "0", "false", "no", "off":
		return false
	default:
		return true
	}
}

func compactError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "unknown error"
	}
	return strings.Join(strings.Fields(msg), " ")
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}

// mergeFilter layers command-line filter flags over the configured
// filter.
func mergeFilter(base repo.Filter, pattern, language string, minStars int, includeArchived, includeForks bool) repo.Filter {
	f := base
	if strings.TrimSpace(pattern) != "" {
		f.Include = append(append([]string(nil), f.Include...), strings.TrimSpace(pattern))
	}
	if strings.TrimSpace(language) != "" {
		f.Language = language
	}
	if minStars > 0 {
		f.MinStars = minStars
	}
	if includeArchived {
		f.ExcludeArchived = false
	}
	if includeForks {
		f.ExcludeForks = false
	}
	return f
}

// fetchRepos lists the organization's repositories and applies the
// filter.
func fetchRepos(ctx context.Context, cfg config.Config, log *zap.Logger, f repo.Filter) ([]repo.Repository, error) {
	client := github.NewClient(cfg.General.Org, cfg.GitHub.Host, log)
	output.Step(fmt.Sprintf("list repositories (org: %s)", cfg.General.Org))
	repos, err := client.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := repo.Apply(repos, f)
	if err != nil {
		return nil, err
	}
	output.Log(fmt.Sprintf("%d repositories, %d after filter", len(repos), len(filtered)))
	return filtered, nil
}

// dedupeNames trims and de-duplicates names while preserving order.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

// selectByName resolves an allowlist against the fetched repositories,
// preserving allowlist order. An unknown name is an error.
func selectByName(repos []repo.Repository, names []string) ([]repo.Repository, error) {
	byName := make(map[string]repo.Repository, len(repos))
	for _, r := range repos {
		byName[r.Name] = r
	}
	var out []repo.Repository
	for _, name := range dedupeNames(names) {
		r, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown repository: %s", name)
		}
		out = append(out, r)
	}
	return out, nil
}

// selectInteractive opens the repository picker.
func selectInteractive(title string, repos []repo.Repository, cfg config.Config, theme ui.Theme, useColor bool) ([]repo.Repository, error) {
	var choices []ui.PromptChoice
	for _, r := range repos {
		label := r.Name
		if cfg.UI.ShowDescriptions && strings.TrimSpace(r.Description) != "" {
			label = fmt.Sprintf("%s - %s", r.Name, r.Description)
		}
		choices = append(choices, ui.PromptChoice{Label: label, Value: r.Name})
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("no repositories to select from")
	}
	keys := ui.KeyMap{Up: cfg.UI.Keys.Up, Down: cfg.UI.Keys.Down, Quit: cfg.UI.Keys.Quit}
	selected, err := ui.PromptRepoMultiSelect(title, choices, keys, theme, useColor)
	if err != nil {
		return nil, err
	}
	return selectByName(repos, selected)
}
