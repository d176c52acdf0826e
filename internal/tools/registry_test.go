package tools

import (
	"strings"
	"testing"
)

func TestRegistry(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := newTestConfig(tmpDir)

	r := NewRegistry()
	r.Enable(NewViewFileTool(cfg))
	r.Enable(NewBatchEditTool(cfg))

	t.Run("lookup", func(t *testing.T) {
		if r.Get("view") == nil || r.Get("edit") == nil {
			t.Error("registered tools not found")
		}
		if r.Get("shell") != nil {
			t.Error("unregistered tool found")
		}
		if !r.IsEnabled("edit") {
			t.Error("edit not enabled")
		}
	})

	t.Run("specs are sorted and complete", func(t *testing.T) {
		specs := r.Specs()
		if len(specs) != 2 {
			t.Fatalf("len(specs) = %d, want 2", len(specs))
		}
		if specs[0].Function.Name != "edit" || specs[1].Function.Name != "view" {
			t.Errorf("spec order = %s, %s; want edit, view", specs[0].Function.Name, specs[1].Function.Name)
		}
		for _, spec := range specs {
			if spec.Type != "function" || spec.Function.Description == "" || spec.Function.Parameters == nil {
				t.Errorf("incomplete spec: %+v", spec)
			}
		}
	})

	t.Run("prompt orders view before edit", func(t *testing.T) {
		prompt := r.GenerateToolPrompt()
		viewIdx := strings.Index(prompt, "### view")
		editIdx := strings.Index(prompt, "### edit")
		if viewIdx == -1 || editIdx == -1 {
			t.Fatalf("prompt missing sections: %q", prompt)
		}
		if viewIdx > editIdx {
			t.Error("view section should precede edit section")
		}
		if !strings.Contains(prompt, CategoryHeaders["filesystem"]) {
			t.Error("prompt missing category header")
		}
	})

	t.Run("disable", func(t *testing.T) {
		r.Disable("view")
		if r.IsEnabled("view") {
			t.Error("disabled tool still enabled")
		}
		if got := r.ListTools(); len(got) != 1 || got[0] != "edit" {
			t.Errorf("ListTools() = %v, want [edit]", got)
		}
	})
}
