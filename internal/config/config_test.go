package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.Path == "" {
		t.Fatal("default history path is empty")
	}
	if cfg.Logging.Verbose {
		t.Fatal("verbose defaults to false")
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
logging:
  verbose: true
engine:
  max_iterations: 50
history:
  path: /tmp/covex-test.db
  disabled: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Logging.Verbose {
		t.Error("Logging.Verbose = false, want true")
	}
	if cfg.Engine.MaxIterations != 50 {
		t.Errorf("Engine.MaxIterations = %d, want 50", cfg.Engine.MaxIterations)
	}
	if cfg.History.Path != "/tmp/covex-test.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if !cfg.History.Disabled {
		t.Error("History.Disabled = false, want true")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func TestLoadFillsEmptyHistoryPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("history:\n  path: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.History.Path == "" {
		t.Fatal("empty history path not defaulted")
	}
}
