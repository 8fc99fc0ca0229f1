// Package config handles wr configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults applied when neither the config file nor a flag sets a value.
const (
	DefaultDataDir      = "data"
	DefaultDatabasePath = "wine.db"
	DefaultPageSize     = 10
	DefaultPrompt       = "> "
	DefaultOutput       = "template"
)

// Config represents the wr configuration file.
type Config struct {
	// DataDir holds Wine.csv, Review.csv and Reviewer.csv.
	DataDir string `toml:"data_dir"`

	// DatabasePath is the SQLite file. ":memory:" keeps the data for one session only.
	DatabasePath string `toml:"database_path"`

	// SchemaPath is the SQL script run before loading. Defaults to schema.sql in DataDir.
	SchemaPath string `toml:"schema_path"`

	// TemplateDir optionally overrides wine.tmpl, review.tmpl and reviewer.tmpl.
	TemplateDir string `toml:"template_dir"`

	// PageSize is the initial number of results per page.
	PageSize int `toml:"page_size"`

	// Prompt is the shell prompt symbol.
	Prompt string `toml:"prompt"`

	// HistoryFile stores shell line history. Empty disables history.
	HistoryFile string `toml:"history_file"`

	// Output is the result format: template, table, json or yaml.
	Output string `toml:"output"`

	Log LogConfig `toml:"log"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields. Paths starting with ~ are expanded.
func (c *Config) ApplyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.SchemaPath == "" {
		c.SchemaPath = filepath.Join(c.DataDir, "schema.sql")
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}

	c.DataDir = ExpandHome(c.DataDir)
	c.DatabasePath = ExpandHome(c.DatabasePath)
	c.SchemaPath = ExpandHome(c.SchemaPath)
	c.TemplateDir = ExpandHome(c.TemplateDir)
	c.HistoryFile = ExpandHome(c.HistoryFile)
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return &config, nil
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return ExpandHome(explicitConfigPath)
	}
	return DefaultPath()
}

// LoadResolved loads the config at the resolved path. A missing file is only
// an error when the path was given explicitly.
func LoadResolved(explicitConfigPath string) (*Config, error) {
	if strings.TrimSpace(explicitConfigPath) == "" {
		return Load()
	}
	return LoadFrom(ResolveConfigPath(explicitConfigPath))
}

// DefaultPath returns the default config file path.
// Checks ~/.config/wr/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "wr", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "wr", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
