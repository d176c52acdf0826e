// Package engine implements safe, line-addressable batch text mutation with
// staleness detection. Every edit names its target lines by 1-based position
// plus a short content fingerprint ("LINE#HASH" tags); nothing is mutated
// unless every tag in the batch still matches the current file content.
//
// The engine is pure computation: it performs no I/O, holds no state across
// calls, and is safe to use concurrently for different files. Two batches
// targeting the same file must be serialized by the caller.
package engine

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Fingerprint returns the short content digest used in tags: FNV-1a (32-bit)
// of the line content, rendered in lowercase base36. It is deterministic and
// collision-resistant enough for staleness detection; it is not a security
// primitive. Every component that renders tags to the caller must use this
// exact function, otherwise round-tripped tags would always look stale.
func Fingerprint(content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// Tag addresses one line of the original snapshot by position and content
// fingerprint. Two tags are equal iff both fields match.
type Tag struct {
	Index       int    // 1-based line position in the snapshot
	Fingerprint string // base36 digest of the line content
}

// String renders the tag in the LINE#HASH wire form.
func (t Tag) String() string {
	return strconv.Itoa(t.Index) + "#" + t.Fingerprint
}

// ParseTag parses LINE#HASH tag text. The line part must be a positive
// decimal integer and the hash part a nonempty lowercase base36 string.
func ParseTag(text string) (Tag, error) {
	sep := strings.IndexByte(text, '#')
	if sep <= 0 || sep == len(text)-1 {
		return Tag{}, &MalformedTagError{Text: text}
	}

	digits := text[:sep]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Tag{}, &MalformedTagError{Text: text}
		}
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 1 {
		return Tag{}, &MalformedTagError{Text: text}
	}

	fp := text[sep+1:]
	for i := 0; i < len(fp); i++ {
		c := fp[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return Tag{}, &MalformedTagError{Text: text}
		}
	}

	return Tag{Index: index, Fingerprint: fp}, nil
}

// Validate checks the tag against a line snapshot. It returns an
// *OutOfRangeError if the index is outside [1, len(lines)] and a
// *StaleTagError if the line content no longer matches the fingerprint.
func (t Tag) Validate(lines []string) error {
	if t.Index < 1 || t.Index > len(lines) {
		return &OutOfRangeError{Tag: t, Lines: len(lines)}
	}
	actual := Fingerprint(lines[t.Index-1])
	if actual != t.Fingerprint {
		return &StaleTagError{Tag: t, Actual: actual}
	}
	return nil
}
