package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"gopkg.in/yaml.v3"

	"github.com/gitfleet/gitfleet/internal/infra/config"
)

func runConfig(cfg config.Config, cfgPath string, args []string) error {
	if len(args) == 0 || isHelpArg(args[0]) {
		printConfigHelp(os.Stdout)
		return nil
	}
	switch args[0] {
	case "init":
		return runConfigInit(cfgPath, args[1:])
	case "show":
		return runConfigShow(cfg, args[1:])
	case "path":
		if len(args) > 1 {
			return fmt.Errorf("usage: gitfleet config path")
		}
		fmt.Fprintln(os.Stdout, cfgPath)
		return nil
	case "edit":
		return runConfigEdit(cfgPath, args[1:])
	default:
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
}

func runConfigInit(cfgPath string, args []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)
	var force bool
	var helpFlag bool
	fs.BoolVar(&force, "force", false, "overwrite an existing config file")
	fs.BoolVar(&helpFlag, "help", false, "show help")
	fs.BoolVar(&helpFlag, "h", false, "show help")
	fs.SetOutput(os.Stdout)
	fs.Usage = func() {
		printConfigHelp(os.Stdout)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if helpFlag {
		printConfigHelp(os.Stdout)
		return nil
	}
	if fs.NArg() != 0 {
		return fmt.Errorf("usage: gitfleet config init [--force]")
	}

	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("config already exists: %s (use --force to overwrite)", cfgPath)
	}
	if err := config.Save(cfgPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", cfgPath)
	return nil
}

func runConfigShow(cfg config.Config, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: gitfleet config show")
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		_ = enc.Close()
		return fmt.Errorf("marshal config: %w", err)
	}
	return enc.Close()
}

func runConfigEdit(cfgPath string, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: gitfleet config edit")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config not found: %s (run 'gitfleet config init' first)", cfgPath)
		}
		return err
	}
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, cfgPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", editor, err)
	}
	return nil
}
