package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
	"github.com/gitfleet/gitfleet/internal/infra/config"
	"github.com/gitfleet/gitfleet/internal/infra/github"
	"github.com/gitfleet/gitfleet/internal/ui"
)

func runList(ctx context.Context, cfg config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var format string
	var filterPat string
	var archived bool
	var forks bool
	var language string
	var minStars int
	var helpFlag bool
	fs.StringVar(&format, "format", "table", "output format: table or json")
	fs.StringVar(&filterPat, "filter", "", "glob pattern for repository names")
	fs.BoolVar(&archived, "archived", false, "include archived repositories")
	fs.BoolVar(&forks, "forks", false, "include forks")
	fs.StringVar(&language, "language", "", "only repositories with this primary language")
	fs.IntVar(&minStars, "min-stars", 0, "only repositories with at least this many stars")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		printListHelp(os.Stdout)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if helpFlag {
		printListHelp(os.Stdout)
		return nil
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("usage: gitfleet list [flags]")
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	client := github.NewClient(cfg.General.Org, cfg.GitHub.Host, log)
	repos, err := client.ListRepositories(ctx)
	if err != nil {
		return err
	}
	f := mergeFilter(cfg.Filter, filterPat, language, minStars, archived, forks)
	filtered, err := repo.Apply(repos, f)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(filtered)
	}

	writeListText(cfg, filtered)
	return nil
}

func writeListText(cfg config.Config, repos []repo.Repository) {
	theme := ui.DefaultTheme()
	useColor := stdoutIsTerminal()
	renderer := ui.NewRenderer(os.Stdout, theme, useColor)

	renderer.Header(fmt.Sprintf("gitfleet list (org: %s)", cfg.General.Org))
	renderer.Blank()
	renderer.Section("Result")
	if len(repos) == 0 {
		renderer.Bullet("no repositories found")
		return
	}
	for _, r := range repos {
		if cfg.UI.Compact {
			renderer.Bullet(r.Name)
			continue
		}
		desc := ""
		if cfg.UI.ShowDescriptions {
			desc = r.Description
		}
		renderer.BulletWithDescription(r.Name, desc, repoSuffix(r))
	}
	renderer.Bullet(fmt.Sprintf("%d repositories", len(repos)))
}

func repoSuffix(r repo.Repository) string {
	var parts []string
	if strings.TrimSpace(r.Language) != "" {
		parts = append(parts, r.Language)
	}
	if r.Stars > 0 {
		parts = append(parts, fmt.Sprintf("★%d", r.Stars))
	}
	if r.Archived {
		parts = append(parts, "archived")
	}
	if r.Fork {
		parts = append(parts, "fork")
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
