package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("full config", func(t *testing.T) {
		content := `
workspace:
  root: ` + tmpDir + `
  denied_paths:
    - secrets
tools:
  view:
    enabled: true
    max_lines: 100
  edit:
    enabled: true
    max_file_size_kb: 256
    read_before_edit_msgs: 5
log:
  path: tagedit.log
  development: true
`
		path := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Workspace.Root != tmpDir {
			t.Errorf("Workspace.Root = %q, want %q", cfg.Workspace.Root, tmpDir)
		}
		if cfg.Tools.View.MaxLines != 100 {
			t.Errorf("View.MaxLines = %d, want 100", cfg.Tools.View.MaxLines)
		}
		if cfg.Tools.Edit.MaxFileSizeKB != 256 {
			t.Errorf("Edit.MaxFileSizeKB = %d, want 256", cfg.Tools.Edit.MaxFileSizeKB)
		}
		if cfg.Tools.Edit.ReadBeforeEditMsgs != 5 {
			t.Errorf("Edit.ReadBeforeEditMsgs = %d, want 5", cfg.Tools.Edit.ReadBeforeEditMsgs)
		}
		if !cfg.Log.Development || cfg.Log.Path != "tagedit.log" {
			t.Errorf("Log = %+v", cfg.Log)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := filepath.Join(tmpDir, "minimal.yaml")
		if err := os.WriteFile(path, []byte("tools:\n  edit:\n    enabled: true\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Tools.View.MaxLines != 500 {
			t.Errorf("View.MaxLines default = %d, want 500", cfg.Tools.View.MaxLines)
		}
		if cfg.Tools.Edit.MaxFileSizeKB != 1024 {
			t.Errorf("Edit.MaxFileSizeKB default = %d, want 1024", cfg.Tools.Edit.MaxFileSizeKB)
		}
		if cfg.Workspace.Root == "" {
			t.Error("Workspace.Root not defaulted")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(tmpDir, "nope.yaml")); err == nil {
			t.Error("Load() on missing file succeeded")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yaml")
		if err := os.WriteFile(path, []byte("workspace: ["), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Error("Load() on invalid yaml succeeded")
		}
	})
}

func TestIsPathDenied(t *testing.T) {
	cfg := Default()
	cfg.Workspace.Root = "/ws"
	cfg.Workspace.DeniedPaths = []string{"secrets", "/etc"}

	tests := []struct {
		path   string
		denied bool
	}{
		{"/ws/secrets/key.pem", true},
		{"/ws/secrets", true},
		{"/ws/secretsandmore.txt", false},
		{"/etc/passwd", true},
		{"/ws/src/main.go", false},
	}
	for _, tt := range tests {
		if got := cfg.IsPathDenied(tt.path); got != tt.denied {
			t.Errorf("IsPathDenied(%q) = %v, want %v", tt.path, got, tt.denied)
		}
	}
}

func TestIsToolEnabled(t *testing.T) {
	cfg := Default()
	if !cfg.IsToolEnabled("view") || !cfg.IsToolEnabled("edit") {
		t.Error("default config should enable view and edit")
	}
	if cfg.IsToolEnabled("shell") {
		t.Error("unknown tool reported enabled")
	}
	cfg.Tools.Edit.Enabled = false
	if cfg.IsToolEnabled("edit") {
		t.Error("disabled edit tool reported enabled")
	}
}
