package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gitfleet/gitfleet/internal/infra/config"
	"github.com/gitfleet/gitfleet/internal/infra/logging"
)

// Run parses global flags, loads configuration and dispatches to the
// selected command.
func Run() error {
	fs := flag.NewFlagSet("gitfleet", flag.ContinueOnError)
	var configFlag string
	verboseFlag := envBool("GITFLEET_VERBOSE")
	var helpFlag bool
	fs.StringVar(&configFlag, "config", "", "override config file path")
	fs.BoolVar(&verboseFlag, "verbose", verboseFlag, "show detailed logs")
	fs.BoolVar(&verboseFlag, "v", verboseFlag, "show detailed logs")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		printGlobalHelp(os.Stdout)
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	args := fs.Args()
	if helpFlag {
		if len(args) > 0 && printCommandHelp(args[0], os.Stdout) {
			return nil
		}
		printGlobalHelp(os.Stdout)
		return nil
	}
	if len(args) == 0 {
		printGlobalHelp(os.Stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) > 1 && printCommandHelp(args[1], os.Stdout) {
			return nil
		}
		printGlobalHelp(os.Stdout)
		return nil
	}

	cfgPath := configFlag
	if cfgPath == "" {
		var err error
		cfgPath, err = config.Path()
		if err != nil {
			return err
		}
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return err
	}

	log := logging.New(verboseFlag)
	defer func() { _ = log.Sync() }()
	log.Debug("config loaded", zap.String("path", cfgPath), zap.String("org", cfg.General.Org))

	ctx := context.Background()
	switch args[0] {
	case "list", "ls":
		return runList(ctx, cfg, log, args[1:])
	case "clone":
		return runClone(ctx, cfg, log, args[1:])
	case "sync":
		return runSync(ctx, cfg, log, args[1:])
	case "config":
		return runConfig(cfg, cfgPath, args[1:])
	case "version":
		printVersion(os.Stdout)
		return nil
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}
