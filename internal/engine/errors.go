package engine

import "fmt"

// The engine never partially applies a batch: any of these errors means no
// line was touched. Callers distinguish the variants with errors.As.

// MalformedTagError indicates tag text that does not match LINE#HASH.
type MalformedTagError struct {
	Text string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("malformed tag %q: expected LINE#HASH (e.g. \"12#k3f9a\")", e.Text)
}

// OutOfRangeError indicates a tag whose line index is outside the file.
type OutOfRangeError struct {
	Tag   Tag
	Lines int // line count of the snapshot
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("tag %s is out of range: file has %d lines", e.Tag, e.Lines)
}

// StaleTagError indicates a tag whose fingerprint no longer matches the
// current content at that line. The caller's view of the file is outdated
// and it should re-read before retrying.
type StaleTagError struct {
	Tag    Tag
	Actual string // fingerprint of the line as it is now
}

func (e *StaleTagError) Error() string {
	return fmt.Sprintf("stale tag %s: line %d now has fingerprint %s (file changed since it was read)",
		e.Tag, e.Tag.Index, e.Actual)
}

// InvalidRangeError indicates a replace whose first tag addresses a line
// after its last tag.
type InvalidRangeError struct {
	First Tag
	Last  Tag
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: first tag %s is after last tag %s", e.First, e.Last)
}

// RequestError indicates a structurally invalid request: unknown op or a
// missing required field. Detected from the request shape alone, before any
// fingerprint lookup.
type RequestError struct {
	Op  string
	Msg string
}

func (e *RequestError) Error() string {
	if e.Op == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// ConflictError indicates two edits in one batch whose resolved spans touch
// overlapping positions. Edit numbers are zero-based batch indices.
type ConflictError struct {
	Edit      int
	OtherEdit int
	Msg       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting edits %d and %d: %s", e.OtherEdit, e.Edit, e.Msg)
}

// EditError wraps a validation failure with the zero-based batch index of
// the offending request.
type EditError struct {
	Edit int
	Err  error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("edit %d: %v", e.Edit, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}
