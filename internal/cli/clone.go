package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/domain/fleet"
	"github.com/gitfleet/gitfleet/internal/infra/config"
	"github.com/gitfleet/gitfleet/internal/infra/gitops"
	"github.com/gitfleet/gitfleet/internal/infra/output"
	"github.com/gitfleet/gitfleet/internal/ui"
)

func runClone(ctx context.Context, cfg config.Config, log *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("clone", flag.ContinueOnError)
	var all bool
	var filterPat string
	var depth int
	var sshFlag, httpsFlag bool
	var concurrency int
	var helpFlag bool
	fs.BoolVar(&all, "all", false, "clone every repository that passes the filter")
	fs.StringVar(&filterPat, "filter", "", "glob pattern for repository names")
	fs.IntVar(&depth, "depth", cfg.Git.Depth, "clone depth, 0 for full history")
	fs.BoolVar(&sshFlag, "ssh", false, "clone over ssh")
	fs.BoolVar(&httpsFlag, "https", false, "clone over https")
	fs.IntVar(&concurrency, "concurrency", cfg.Sync.Concurrency, "worker pool size")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		printCloneHelp(os.Stdout)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if helpFlag {
		printCloneHelp(os.Stdout)
		return nil
	}
	if sshFlag && httpsFlag {
		return fmt.Errorf("--ssh and --https are mutually exclusive")
	}

	useSSH := cfg.Git.SSH
	if sshFlag {
		useSSH = true
	}
	if httpsFlag {
		useSSH = false
	}

	theme := ui.DefaultTheme()
	useColor := stdoutIsTerminal()
	renderer := ui.NewRenderer(os.Stdout, theme, useColor)
	output.SetStepLogger(renderer)
	defer output.SetStepLogger(nil)

	renderer.Header(fmt.Sprintf("gitfleet clone (org: %s)", cfg.General.Org))
	renderer.Blank()
	renderer.Section("Steps")

	f := mergeFilter(cfg.Filter, filterPat, "", 0, false, false)
	repos, err := fetchRepos(ctx, cfg, log, f)
	if err != nil {
		return err
	}

	names := fs.Args()
	targets := repos
	switch {
	case len(names) > 0:
		targets, err = selectByName(repos, names)
		if err != nil {
			return err
		}
	case all || filterPat != "":
		// targets already filtered
	case useColor:
		targets, err = selectInteractive("gitfleet clone", repos, cfg, theme, useColor)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("specify repositories, --all, or --filter")
	}
	if len(targets) == 0 {
		renderer.Warn("no repositories matched")
		return nil
	}

	root, err := cfg.WorkspaceRoot()
	if err != nil {
		return err
	}
	opts := fleet.Options{
		Concurrency: concurrency,
		Depth:       depth,
		UseSSH:      useSSH,
		CloneOnly:   true,
	}

	engine := fleet.NewEngine(gitops.New(log), root, opts, log)
	results := engine.Sync(ctx, targets)

	renderer.Blank()
	renderer.Section("Result")
	renderResults(renderer, results)
	sum := fleet.Summarize(results)
	renderSummary(renderer, sum)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d repositories failed", sum.Failed, sum.Total)
	}
	return nil
}
