package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/gitfleet/gitfleet/internal/ui"
)

func printGlobalHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: gitfleet <command> [flags] [args]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Commands:"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "list [flags]", "list the organization's repositories (alias: ls)"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "clone [flags] [repos...]", "clone missing repositories into the workspace"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "sync [flags] [repos...]", "clone missing and pull existing repositories"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "config <subcommand>", "config file commands (init/show/path/edit)"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "version", "print gitfleet version"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "help [command]", "show help for a command"))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Global flags:"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--config <path>", "override config file path"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--verbose, -v", "show detailed logs"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--help, -h", "show help"))
}

func printCommandHelp(cmd string, w io.Writer) bool {
	switch cmd {
	case "list", "ls":
		printListHelp(w)
	case "clone":
		printCloneHelp(w)
	case "sync":
		printSyncHelp(w)
	case "config":
		printConfigHelp(w)
	case "version":
		printVersion(w)
	default:
		return false
	}
	return true
}

func printListHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: gitfleet list [--format table|json] [--filter <glob>] [--archived] [--forks] [--language <name>] [--min-stars <n>]")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--format", "output format: table or json"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--filter <glob>", "glob pattern for repository names"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--archived", "include archived repositories"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--forks", "include forks"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--language <name>", "only repositories with this primary language"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--min-stars <n>", "only repositories with at least n stars"))
}

func printCloneHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: gitfleet clone [--all] [--filter <glob>] [--depth <n>] [--ssh | --https] [--concurrency <n>] [repos...]")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--all", "clone every repository that passes the filter"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--filter <glob>", "glob pattern for repository names"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--depth <n>", "clone depth, 0 for full history"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--ssh, --https", "select clone transport"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--concurrency <n>", "worker pool size"))
	fmt.Fprintln(w, "  without repos or --all, an interactive picker opens on a terminal")
}

func printSyncHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: gitfleet sync [--all] [--filter <glob>] [--concurrency <n>] [--dry-run] [--force] [--depth <n>] [--ssh | --https] [--format table|json] [repos...]")
	fmt.Fprintln(w, helpFlag(theme, useColor, "--all", "sync every repository that passes the filter"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--filter <glob>", "glob pattern for repository names"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--concurrency <n>", "worker pool size"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--dry-run, -n", "report actions without mutating anything"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--force", "sync even with uncommitted changes"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--depth <n>", "clone depth, 0 for full history"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--ssh, --https", "select clone transport"))
	fmt.Fprintln(w, helpFlag(theme, useColor, "--format", "output format: table or json"))
}

func printConfigHelp(w io.Writer) {
	theme, useColor := helpTheme(w)
	fmt.Fprintln(w, "Usage: gitfleet config <subcommand>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, helpSectionTitle(theme, useColor, "Subcommands:"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "init [--force]", "write the default config file"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "show", "print the effective configuration"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "path", "print the config file path"))
	fmt.Fprintln(w, helpCommand(theme, useColor, "edit", "open the config file in $EDITOR"))
}

func helpTheme(w io.Writer) (ui.Theme, bool) {
	theme := ui.DefaultTheme()
	if file, ok := w.(*os.File); ok {
		return theme, isatty.IsTerminal(file.Fd())
	}
	return theme, false
}

func helpSectionTitle(theme ui.Theme, useColor bool, title string) string {
	if !useColor {
		return title
	}
	return theme.SectionTitle.Render(title)
}

func helpCommand(theme ui.Theme, useColor bool, name, description string) string {
	if useColor {
		return fmt.Sprintf("  %s  %s", theme.Accent.Render(name), description)
	}
	return fmt.Sprintf("  %-30s %s", name, description)
}

func helpFlag(theme ui.Theme, useColor bool, flag, description string) string {
	if useColor {
		return fmt.Sprintf("  %s  %s", theme.Accent.Render(flag), description)
	}
	return fmt.Sprintf("  %-18s %s", flag, description)
}
