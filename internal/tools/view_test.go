package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kvit-s/tagedit/internal/config"
	"github.com/kvit-s/tagedit/internal/engine"
)

// newTestConfig creates a config for tool tests
func newTestConfig(tmpDir string) *config.Config {
	cfg := config.Default()
	cfg.Workspace.Root = tmpDir
	return cfg
}

func callTool(t *testing.T, tool Tool, args map[string]any) (map[string]any, error) {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	res, err := tool.Call(context.Background(), raw)
	if err != nil {
		return nil, err
	}
	m, ok := res.(map[string]any)
	if !ok {
		t.Fatalf("tool result type = %T, want map[string]any", res)
	}
	return m, nil
}

func TestViewFileTool(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := newTestConfig(tmpDir)
	tool := NewViewFileTool(cfg)

	path := filepath.Join(tmpDir, "sample.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("tags lines with the engine fingerprint", func(t *testing.T) {
		res, err := callTool(t, tool, map[string]any{"path": "sample.txt"})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		content, _ := res["content"].(string)
		lines := strings.Split(content, "\n")
		if len(lines) != 3 {
			t.Fatalf("got %d lines, want 3", len(lines))
		}
		want := fmt.Sprintf("2#%s│beta", engine.Fingerprint("beta"))
		if lines[1] != want {
			t.Errorf("line 2 = %q, want %q", lines[1], want)
		}
		if res["total_lines"] != 3 {
			t.Errorf("total_lines = %v, want 3", res["total_lines"])
		}
	})

	t.Run("tags round-trip through the edit engine", func(t *testing.T) {
		res, err := callTool(t, tool, map[string]any{"path": "sample.txt"})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		content, _ := res["content"].(string)
		tagText := strings.SplitN(strings.Split(content, "\n")[0], "│", 2)[0]
		tag, err := engine.ParseTag(tagText)
		if err != nil {
			t.Fatalf("ParseTag(%q) error = %v", tagText, err)
		}
		if err := tag.Validate([]string{"alpha", "beta", "gamma"}); err != nil {
			t.Errorf("view-produced tag failed validation: %v", err)
		}
	})

	t.Run("line range", func(t *testing.T) {
		res, err := callTool(t, tool, map[string]any{"path": "sample.txt", "from": 2, "to": 2})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		content, _ := res["content"].(string)
		if strings.Count(content, "\n") != 0 || !strings.HasSuffix(content, "│beta") {
			t.Errorf("content = %q, want just line 2", content)
		}
	})

	t.Run("max lines truncation", func(t *testing.T) {
		cfg.Tools.View.MaxLines = 2
		defer func() { cfg.Tools.View.MaxLines = 500 }()

		res, err := callTool(t, tool, map[string]any{"path": "sample.txt"})
		if err != nil {
			t.Fatalf("Call() error = %v", err)
		}
		if res["truncated"] != true {
			t.Error("expected truncated=true")
		}
		if res["to"] != 2 {
			t.Errorf("to = %v, want 2", res["to"])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := callTool(t, tool, map[string]any{"path": "nope.txt"})
		te, ok := err.(*ToolError)
		if !ok || te.Type != ToolErrorRuntime {
			t.Errorf("error = %v, want runtime ToolError", err)
		}
	})

	t.Run("denied path", func(t *testing.T) {
		cfg.Workspace.DeniedPaths = []string{"secrets"}
		defer func() { cfg.Workspace.DeniedPaths = nil }()

		secret := filepath.Join(tmpDir, "secrets", "k.txt")
		if err := os.MkdirAll(filepath.Dir(secret), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(secret, []byte("x\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := callTool(t, tool, map[string]any{"path": "secrets/k.txt"}); err == nil {
			t.Error("expected error for denied path")
		}
	})

	t.Run("records the read", func(t *testing.T) {
		if _, err := callTool(t, tool, map[string]any{"path": "sample.txt"}); err != nil {
			t.Fatal(err)
		}
		if !globalReadTracker.WasReadRecently(path, globalReadTracker.CurrentMessageID(), 1) {
			t.Error("view did not record the read")
		}
	})
}
