package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/srv/wine"
database_path = ":memory:"
page_size = 25
prompt = "wine> "
output = "table"

[log]
level = "debug"
format = "json"

[ui]
accent = "39"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataDir != "/srv/wine" || cfg.DatabasePath != ":memory:" {
		t.Errorf("unexpected paths: %+v", cfg)
	}
	if cfg.PageSize != 25 || cfg.Prompt != "wine> " || cfg.Output != "table" {
		t.Errorf("unexpected session settings: %+v", cfg)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log settings: %+v", cfg.Log)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected accent 39, got %q", cfg.UI.Accent)
	}
}

func TestLoadFromErrors(t *testing.T) {
	t.Run("invalid toml", func(t *testing.T) {
		if _, err := LoadFrom(writeConfig(t, "page_size = ")); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadFrom(writeConfig(t, "page_sise = 5\n"))
		if err == nil || !strings.Contains(err.Error(), "page_sise") {
			t.Fatalf("expected unknown key error, got %v", err)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := LoadResolved(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Fatal("expected error for missing explicit config")
		}
	})
}

func TestApplyDefaults(t *testing.T) {
	cfg := Default()
	if cfg.DataDir != DefaultDataDir || cfg.DatabasePath != DefaultDatabasePath {
		t.Errorf("unexpected default paths: %+v", cfg)
	}
	if cfg.SchemaPath != filepath.Join(DefaultDataDir, "schema.sql") {
		t.Errorf("expected schema next to data, got %q", cfg.SchemaPath)
	}
	if cfg.PageSize != DefaultPageSize || cfg.Prompt != DefaultPrompt || cfg.Output != DefaultOutput {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	custom := &Config{DataDir: "/srv/wine", PageSize: -1}
	custom.ApplyDefaults()
	if custom.SchemaPath != filepath.Join("/srv/wine", "schema.sql") {
		t.Errorf("expected schema under custom data dir, got %q", custom.SchemaPath)
	}
	if custom.PageSize != DefaultPageSize {
		t.Errorf("expected non-positive page size to reset, got %d", custom.PageSize)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/wine.db", filepath.Join(home, "wine.db")},
		{"/abs/wine.db", "/abs/wine.db"},
		{"rel/~/wine.db", "rel/~/wine.db"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExpandHome(tt.in); got != tt.want {
			t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveConfigPath(t *testing.T) {
	if got := ResolveConfigPath("/tmp/wr.toml"); got != "/tmp/wr.toml" {
		t.Errorf("expected explicit path, got %q", got)
	}
	if got := ResolveConfigPath("  "); got != DefaultPath() {
		t.Errorf("expected default path, got %q", got)
	}
}
