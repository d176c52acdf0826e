package tools

import (
	"sort"
	"strings"
)

// ToolSpec is the OpenAI-compatible function spec shape exported for the
// agent's tool declarations.
type ToolSpec struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

// toolDoc holds a tool's documentation with its sort order
type toolDoc struct {
	order   int
	section string
}

// CategoryHeaders defines the section headers for each category
var CategoryHeaders = map[string]string{
	"filesystem": "## File Tools Reference",
}

// Registry manages enabled tools
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Enable adds a tool to the registry (makes it available for use)
func (r *Registry) Enable(t Tool) {
	r.tools[t.Name()] = t
}

// Disable removes a tool from the registry
func (r *Registry) Disable(name string) {
	delete(r.tools, name)
}

// Get retrieves a tool by name
func (r *Registry) Get(name string) Tool {
	return r.tools[name]
}

// Specs returns OpenAI-compatible tool specs for all registered tools,
// sorted by name for deterministic ordering (stable prompt cache hits).
func (r *Registry) Specs() []ToolSpec {
	names := r.ListTools()

	specs := make([]ToolSpec, 0, len(names))
	for _, name := range names {
		tool := r.tools[name]
		spec := ToolSpec{Type: "function"}
		spec.Function.Name = tool.Name()
		spec.Function.Description = tool.Description()
		spec.Function.Parameters = tool.JSONSchema()
		specs = append(specs, spec)
	}
	return specs
}

// All returns all registered tools
func (r *Registry) All() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GenerateToolPrompt returns complete tool documentation for the system prompt
func (r *Registry) GenerateToolPrompt() string {
	sections := make(map[string][]toolDoc)
	for _, tool := range r.tools {
		if section := tool.PromptSection(); section != "" {
			sections[tool.PromptCategory()] = append(sections[tool.PromptCategory()], toolDoc{
				order:   tool.PromptOrder(),
				section: section,
			})
		}
	}

	var sb strings.Builder
	categories := []string{"filesystem"}
	for _, cat := range categories {
		docs, ok := sections[cat]
		if !ok || len(docs) == 0 {
			continue
		}
		if header, ok := CategoryHeaders[cat]; ok {
			sb.WriteString(header)
			sb.WriteString("\n\n")
		}
		sort.Slice(docs, func(i, j int) bool {
			return docs[i].order < docs[j].order
		})
		for _, doc := range docs {
			sb.WriteString(doc.section)
			sb.WriteString("\n\n")
		}
		sb.WriteString("---\n\n")
	}
	return sb.String()
}

// IsEnabled returns true if a tool with the given name is enabled
func (r *Registry) IsEnabled(name string) bool {
	return r.tools[name] != nil
}

// ListTools returns a sorted list of all enabled tool names
func (r *Registry) ListTools() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
