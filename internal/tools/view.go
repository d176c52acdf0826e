package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kvit-s/tagedit/internal/config"
	"github.com/kvit-s/tagedit/internal/engine"
)

// ViewFileTool renders a file as tagged lines: every line is prefixed with
// its LINE#HASH tag, which is the only way the agent obtains tags for edit
// requests. The fingerprint here and in the edit engine is the same
// function; the two must never diverge.
type ViewFileTool struct {
	Config *config.Config
}

// NewViewFileTool creates a new ViewFileTool
func NewViewFileTool(cfg *config.Config) *ViewFileTool {
	return &ViewFileTool{Config: cfg}
}

func (t *ViewFileTool) Name() string {
	return "view"
}

func (t *ViewFileTool) Description() string {
	return "Read a file as tagged lines. Each line is shown as LINE#HASH│content; use the LINE#HASH tags to address lines in the edit tool."
}

func (t *ViewFileTool) JSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "File path, absolute or relative to the workspace root",
			},
			"from": map[string]any{
				"type":        "integer",
				"description": "First line to show (1-based, default 1)",
			},
			"to": map[string]any{
				"type":        "integer",
				"description": "Last line to show (inclusive, default end of file)",
			},
		},
		"required": []string{"path"},
	}
}

func (t *ViewFileTool) Check(ctx context.Context, args json.RawMessage) error {
	return nil
}

func (t *ViewFileTool) PromptCategory() string { return "filesystem" }
func (t *ViewFileTool) PromptOrder() int       { return 10 }
func (t *ViewFileTool) PromptSection() string {
	return strings.TrimSpace(`
### view
Shows file content as tagged lines ("12#k3f9a│..."). Tags encode both the
line number and a fingerprint of the line content, so they go stale when the
file changes. Always view a file (or the region you are editing) before
submitting edits, and view again after any failed edit that reports a stale
tag.`)
}

func (t *ViewFileTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Path string `json:"path"`
		From *int   `json:"from"`
		To   *int   `json:"to"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, SemanticErrorf("invalid arguments: %v", err)
	}
	if params.Path == "" {
		return nil, SemanticError("missing required field 'path'")
	}

	fullPath, _, err := NormalizeAndValidatePath(t.Config.Workspace.Root, params.Path)
	if err != nil {
		return nil, SemanticErrorf("invalid path: %v", err)
	}
	if t.Config.IsPathDenied(fullPath) {
		return nil, RuntimeErrorf("access denied: %s", params.Path)
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, RuntimeErrorf("file does not exist: %s", params.Path)
		}
		return nil, RuntimeErrorf("read file: %v", err)
	}

	doc := engine.Decode(raw)
	total := len(doc.Lines)

	from := 1
	if params.From != nil {
		from = *params.From
	}
	to := total
	if params.To != nil {
		to = *params.To
	}
	if from < 1 {
		from = 1
	}
	if to > total {
		to = total
	}
	if from > to && total > 0 {
		return nil, SemanticErrorf("invalid line range %d-%d (file has %d lines)", from, to, total)
	}

	truncated := false
	if max := t.Config.Tools.View.MaxLines; max > 0 && to-from+1 > max {
		to = from + max - 1
		truncated = true
	}

	var sb strings.Builder
	for i := from; i <= to; i++ {
		line := doc.Lines[i-1]
		fmt.Fprintf(&sb, "%d#%s│%s\n", i, engine.Fingerprint(line), line)
	}

	globalReadTracker.RecordRead(fullPath, globalReadTracker.CurrentMessageID())

	result := map[string]any{
		"success":     true,
		"path":        params.Path,
		"total_lines": total,
		"from":        from,
		"to":          to,
		"content":     strings.TrimSuffix(sb.String(), "\n"),
	}
	if truncated {
		result["truncated"] = true
		result["message"] = fmt.Sprintf("Output limited to %d lines; use 'from'/'to' to view the rest", t.Config.Tools.View.MaxLines)
	}
	return result, nil
}
