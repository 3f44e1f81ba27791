package driver

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "prompt: \"lox> \"\nhistory_file: .hist\nmax_call_depth: 128\nlog_level: DEBUG\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Prompt != "lox> " {
		t.Fatalf("prompt = %q", cfg.Prompt)
	}
	if cfg.MaxCallDepth != 128 {
		t.Fatalf("max_call_depth = %d", cfg.MaxCallDepth)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
	hist, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath error: %v", err)
	}
	if want := filepath.Join(dir, ".hist"); hist != want {
		t.Fatalf("history path = %q, want %q", hist, want)
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Prompt != def.Prompt || cfg.MaxCallDepth != def.MaxCallDepth || cfg.LogLevel != def.LogLevel {
		t.Fatalf("expected defaults, got %#v", cfg)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "prompt: \"> \"\ncolour: true\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "prompt: \"\"\nmax_call_depth: 0\nlog_level: loud\n")
	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %v", verr.Issues)
	}
	if !strings.HasPrefix(verr.Error(), "config validation failed:") {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "prompt: \"> \"\n")
	child := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfig(child)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if want := filepath.Join(root, ConfigFileName); found != want {
		t.Fatalf("FindConfig = %q, want %q", found, want)
	}
}

func TestResolveConfigPrefersEnvironment(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(explicit, []byte("max_call_depth: 7\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigEnvVar, explicit)

	cfg, err := ResolveConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.MaxCallDepth != 7 || cfg.Path != explicit {
		t.Fatalf("unexpected config %#v", cfg)
	}
}

func TestHistoryPathExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := DefaultConfig()
	got, err := cfg.HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath error: %v", err)
	}
	if want := filepath.Join(home, ".lox_history"); got != want {
		t.Fatalf("HistoryPath = %q, want %q", got, want)
	}
	cfg.HistoryFile = ""
	if got, _ := cfg.HistoryPath(); got != "" {
		t.Fatalf("expected history to be disabled, got %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"Info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for input, want := range cases {
		got, err := ParseLogLevel(input)
		if err != nil || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
