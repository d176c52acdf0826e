package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvit-s/tagedit/internal/config"
	"github.com/kvit-s/tagedit/internal/engine"
)

// BatchEditTool applies one atomic batch of tagged line edits to a file.
// It owns the read→apply→write sequence around the engine: the fingerprint
// check in the engine detects a single intervening writer between view and
// edit, and the atomic temp-file write keeps partially written files off
// disk. Two concurrent batches against the same file must still be
// serialized by the caller (the CLI takes a workspace lock).
type BatchEditTool struct {
	Config        *config.Config
	WorkspaceRoot string
}

// NewBatchEditTool creates a new BatchEditTool
func NewBatchEditTool(cfg *config.Config) *BatchEditTool {
	return &BatchEditTool{
		Config:        cfg,
		WorkspaceRoot: cfg.Workspace.Root,
	}
}

func (t *BatchEditTool) Name() string {
	return "edit"
}

func (t *BatchEditTool) Description() string {
	return "Apply a batch of line edits addressed by LINE#HASH tags from the view tool. The whole batch is validated against the current file content and applied atomically, or rejected without touching the file."
}

func (t *BatchEditTool) JSONSchema() map[string]any {
	tagProp := func(desc string) map[string]any {
		return map[string]any{"type": "string", "description": desc}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "File path, absolute or relative to the workspace root",
			},
			"edits": map[string]any{
				"type":        "array",
				"description": "Edit requests, applied as one atomic batch",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"op": map[string]any{
							"type": "string",
							"enum": []string{"set", "replace", "append", "prepend", "insert"},
						},
						"tag":    tagProp("Tag of the line to replace (op=set)"),
						"first":  tagProp("Tag of the first line of the range (op=replace)"),
						"last":   tagProp("Tag of the last line of the range (op=replace)"),
						"after":  tagProp("Anchor tag; content goes after it (op=append, op=insert). Omit for end-of-file append."),
						"before": tagProp("Anchor tag; content goes before it (op=prepend, op=insert). Omit for start-of-file prepend."),
						"content": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Replacement lines without terminators; empty deletes the addressed lines",
						},
					},
					"required": []string{"op"},
				},
			},
		},
		"required": []string{"path", "edits"},
	}
}

func (t *BatchEditTool) Check(ctx context.Context, args json.RawMessage) error {
	if t.Config.Tools.Edit.ReadBeforeEditMsgs <= 0 {
		return nil
	}

	var params struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return SemanticErrorf("invalid arguments: %v", err)
	}

	fullPath, _, err := NormalizeAndValidatePath(t.WorkspaceRoot, params.Path)
	if err != nil {
		return SemanticErrorf("invalid path: %v", err)
	}

	if !globalReadTracker.WasReadRecently(fullPath, globalReadTracker.CurrentMessageID(), t.Config.Tools.Edit.ReadBeforeEditMsgs) {
		return SemanticErrorWithDetails(
			fmt.Sprintf("file not viewed recently: use view on '%s' before editing it (tags come from view output)", params.Path),
			map[string]any{
				"error":     "file_not_viewed",
				"path":      params.Path,
				"next_step": fmt.Sprintf("view {\"path\": \"%s\"}", params.Path),
			},
		)
	}
	return nil
}

func (t *BatchEditTool) PromptCategory() string { return "filesystem" }
func (t *BatchEditTool) PromptOrder() int       { return 20 }
func (t *BatchEditTool) PromptSection() string {
	return strings.TrimSpace(`
### edit
Submits a batch of line edits addressed by the LINE#HASH tags shown by view.
Five ops: set (one line), replace (tag range), append/prepend (insert after/
before a tag, or at file end/start when the anchor is omitted), insert
(between two tags). The batch is all-or-nothing: if any tag is stale or two
edits overlap, nothing is applied. On a stale_tag error, view the file again
and rebuild the batch with fresh tags.`)
}

func (t *BatchEditTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		Path  string          `json:"path"`
		Edits json.RawMessage `json:"edits"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, SemanticErrorf("invalid arguments: %v", err)
	}
	if params.Path == "" {
		return nil, SemanticError("missing required field 'path'")
	}
	if len(params.Edits) == 0 {
		return nil, SemanticError("missing required field 'edits'")
	}

	reqs, err := engine.DecodeRequests(params.Edits)
	if err != nil {
		return nil, engineError(err)
	}

	fullPath, _, err := NormalizeAndValidatePath(t.WorkspaceRoot, params.Path)
	if err != nil {
		return nil, SemanticErrorf("invalid path: %v", err)
	}
	if t.Config.IsPathDenied(fullPath) {
		return nil, RuntimeErrorf("access denied: %s", params.Path)
	}

	raw, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, RuntimeErrorf("file does not exist: %s (edit only mutates existing files)", params.Path)
		}
		return nil, RuntimeErrorf("read file: %v", err)
	}

	if max := t.Config.Tools.Edit.MaxFileSizeKB; max > 0 && len(raw) > max*1024 {
		return nil, RuntimeErrorf("file too large to edit: %d KB (limit %d KB)", len(raw)/1024, max)
	}

	result, newRaw, err := engine.Apply(raw, reqs)
	if err != nil {
		return nil, engineError(err)
	}

	diff, err := UnifiedDiff(string(raw), string(newRaw), params.Path)
	if err != nil {
		return nil, fmt.Errorf("generate diff: %w", err)
	}

	// A pure no-op batch is still a success; skip the write.
	if result.FirstChanged != 0 {
		if err := WriteFileAtomic(fullPath, newRaw); err != nil {
			return nil, RuntimeErrorf("write file: %v", err)
		}
	}

	out := map[string]any{
		"success": true,
		"path":    params.Path,
		"edits":   len(reqs),
		"diff":    diff,
	}
	if len(result.NoopEdits) > 0 {
		out["noop_edits"] = result.NoopEdits
	}
	if result.FirstChanged == 0 {
		out["message"] = "Batch was a no-op: file already matches the requested content"
	} else {
		out["first_changed_line"] = result.FirstChanged
		out["message"] = "Edit batch applied"
	}
	return out, nil
}

// WriteFileAtomic writes content to a file atomically using temp file + rename
func WriteFileAtomic(fullPath string, content []byte) error {
	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".edit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // no-op after a successful rename

	if _, err := tempFile.Write(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Keep the original file permissions
	if info, err := os.Stat(fullPath); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}

// engineError maps an engine validation/conflict error to a semantic
// ToolError with structured details the agent can act on.
func engineError(err error) *ToolError {
	details := map[string]any{}

	var editErr *engine.EditError
	if errors.As(err, &editErr) {
		details["edit"] = editErr.Edit
	}

	var (
		reqErr    *engine.RequestError
		malformed *engine.MalformedTagError
		oor       *engine.OutOfRangeError
		stale     *engine.StaleTagError
		badRange  *engine.InvalidRangeError
		conflict  *engine.ConflictError
	)
	switch {
	case errors.As(err, &stale):
		details["error"] = "stale_tag"
		details["tag"] = stale.Tag.String()
		details["expected_fingerprint"] = stale.Tag.Fingerprint
		details["actual_fingerprint"] = stale.Actual
		details["next_step"] = "view the file again and rebuild the batch with fresh tags"
	case errors.As(err, &oor):
		details["error"] = "out_of_range"
		details["tag"] = oor.Tag.String()
		details["file_lines"] = oor.Lines
		details["next_step"] = "view the file again and rebuild the batch with fresh tags"
	case errors.As(err, &malformed):
		details["error"] = "malformed_tag"
		details["tag"] = malformed.Text
	case errors.As(err, &badRange):
		details["error"] = "invalid_range"
		details["first"] = badRange.First.String()
		details["last"] = badRange.Last.String()
	case errors.As(err, &conflict):
		details["error"] = "conflict"
		details["edits"] = []int{conflict.OtherEdit, conflict.Edit}
	case errors.As(err, &reqErr):
		details["error"] = "invalid_request"
	}

	return SemanticErrorWithDetails(err.Error(), details)
}
