package tools

import (
	"encoding/json"
	"fmt"
)

// ToolErrorType classifies tool errors for the agent's retry decisions
type ToolErrorType int

const (
	// ToolErrorRuntime - the tool executed but failed on the environment
	// (file missing, permission denied, I/O error). The agent should see
	// the error and change approach rather than retry blindly.
	ToolErrorRuntime ToolErrorType = iota

	// ToolErrorSemantic - the request itself was wrong: malformed batch,
	// stale tags, conflicting edits. Retryable after the agent refreshes
	// its view of the file (for staleness) or fixes the request.
	ToolErrorSemantic
)

// ToolError carries a classified error plus optional structured detail the
// LLM can act on (offending tag, expected vs actual fingerprint, ...).
type ToolError struct {
	Type    ToolErrorType
	Message string
	Details map[string]any
}

// Error implements the error interface
func (e *ToolError) Error() string {
	return e.Message
}

// ToJSON implements JSONError for structured output
func (e *ToolError) ToJSON() map[string]any {
	result := map[string]any{
		"success": false,
		"error":   e.Message,
	}
	for k, v := range e.Details {
		result[k] = v
	}
	return result
}

// RuntimeError creates a runtime error (environment failure)
func RuntimeError(msg string) *ToolError {
	return &ToolError{Type: ToolErrorRuntime, Message: msg}
}

// RuntimeErrorf creates a formatted runtime error
func RuntimeErrorf(format string, args ...any) *ToolError {
	return &ToolError{Type: ToolErrorRuntime, Message: fmt.Sprintf(format, args...)}
}

// SemanticError creates a semantic error (bad request, retryable by the agent)
func SemanticError(msg string) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: msg}
}

// SemanticErrorf creates a formatted semantic error
func SemanticErrorf(format string, args ...any) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: fmt.Sprintf(format, args...)}
}

// SemanticErrorWithDetails creates a semantic error with structured details
func SemanticErrorWithDetails(msg string, details map[string]any) *ToolError {
	return &ToolError{Type: ToolErrorSemantic, Message: msg, Details: details}
}

// JSONError is an interface for errors that can provide structured JSON output
type JSONError interface {
	error
	ToJSON() map[string]any
}

// FormatError returns JSON for structured errors and plain text otherwise
func FormatError(err error) string {
	if jsonErr, ok := err.(JSONError); ok {
		jsonBytes, marshalErr := json.MarshalIndent(jsonErr.ToJSON(), "", "  ")
		if marshalErr == nil {
			return string(jsonBytes)
		}
	}
	return fmt.Sprintf("Error: %v", err)
}
