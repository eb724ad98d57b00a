// Package config loads and stores the gitfleet configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gitfleet/gitfleet/internal/domain/repo"
)

const (
	dirName  = "gitfleet"
	fileName = "config.yaml"
)

// Config is the full on-disk configuration.
type Config struct {
	General General     `yaml:"general"`
	Sync    Sync        `yaml:"sync"`
	Filter  repo.Filter `yaml:"filter"`
	UI      UI          `yaml:"ui"`
	Git     Git         `yaml:"git"`
	GitHub  GitHub      `yaml:"github"`
}

type General struct {
	Org           string `yaml:"org"`
	WorkspaceRoot string `yaml:"workspace_root"`
}

type Sync struct {
	Concurrency      int  `yaml:"concurrency"`
	AutoPull         bool `yaml:"auto_pull"`
	CheckUncommitted bool `yaml:"check_uncommitted"`
}

type UI struct {
	Keys             Keys `yaml:"keys"`
	ShowDescriptions bool `yaml:"show_descriptions"`
	Compact          bool `yaml:"compact"`
}

type Keys struct {
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
	Quit string `yaml:"quit"`
}

type Git struct {
	SSH   bool `yaml:"ssh"`
	Depth int  `yaml:"depth"`
}

type GitHub struct {
	Host string `yaml:"host"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sync: Sync{
			Concurrency:      5,
			AutoPull:         true,
			CheckUncommitted: true,
		},
		UI: UI{
			Keys:             Keys{Up: "k", Down: "j", Quit: "q"},
			ShowDescriptions: true,
		},
		Git: Git{SSH: true},
	}
}

// Path returns the configuration file path under the user config
// directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, dirName, fileName), nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the built-in
// defaults when it does not. Any other failure is an error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			cfg.applyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("stat config: %w", err)
	}
	return Load(path)
}

// Save writes cfg to path atomically, creating parent directories as
// needed.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		_ = enc.Close()
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close config encoder: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace config file: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod config file: %w", err)
	}
	return nil
}

// WorkspaceRoot resolves the workspace root, defaulting to ~/<org> when
// unset.
func (c Config) WorkspaceRoot() (string, error) {
	if c.General.WorkspaceRoot != "" {
		return expandHome(c.General.WorkspaceRoot)
	}
	if c.General.Org == "" {
		return "", fmt.Errorf("workspace root is not configured and no org is set")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, c.General.Org), nil
}

func (c *Config) applyDefaults() {
	if c.Sync.Concurrency < 1 {
		c.Sync.Concurrency = 5
	}
	if c.UI.Keys.Up == "" {
		c.UI.Keys.Up = "k"
	}
	if c.UI.Keys.Down == "" {
		c.UI.Keys.Down = "j"
	}
	if c.UI.Keys.Quit == "" {
		c.UI.Keys.Quit = "q"
	}
}

func expandHome(path string) (string, error) {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
