package engine

import (
	"fmt"
	"sort"
)

// composeSpans merges resolved spans into the final line sequence, or
// rejects the batch if any two spans interfere. The input slice is not
// modified.
//
// Two replaced ranges conflict if they share any original index. An
// insertion point conflicts with a replaced range only if it falls strictly
// inside it; points exactly at a range boundary coexist with it, so
// "append after line 5" and "replace lines 6-8" are compatible. Multiple
// insertions at the same point keep batch order.
func composeSpans(lines []string, spans []span) ([]string, error) {
	ordered := make([]span, len(spans))
	copy(ordered, spans)
	// Stable sort: same-point insertions stay in batch order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].sortKey() < ordered[j].sortKey()
	})

	if err := checkConflicts(ordered); err != nil {
		return nil, err
	}

	out := make([]string, 0, estimateLen(lines, ordered))
	cursor := 1 // next original line (1-based) not yet copied
	for _, s := range ordered {
		if s.insertion() {
			for cursor <= s.point {
				out = append(out, lines[cursor-1])
				cursor++
			}
			out = append(out, s.content...)
			continue
		}
		for cursor < s.lo {
			out = append(out, lines[cursor-1])
			cursor++
		}
		out = append(out, s.content...)
		cursor = s.hi + 1
	}
	for cursor <= len(lines) {
		out = append(out, lines[cursor-1])
		cursor++
	}
	return out, nil
}

// checkConflicts runs a single linear scan over position-ordered spans,
// tracking the last replaced index seen so far.
func checkConflicts(ordered []span) error {
	covered := 0  // highest original index replaced by any span so far
	coveredBy := 0 // batch index of the span that replaced it
	for _, s := range ordered {
		if s.insertion() {
			// Strictly inside a replaced range [lo, hi] means lo <= point < hi.
			// A sorted predecessor guarantees lo <= point already.
			if s.point < covered {
				return &ConflictError{
					Edit:      s.req,
					OtherEdit: coveredBy,
					Msg:       fmt.Sprintf("insertion point after line %d falls inside a replaced range", s.point),
				}
			}
			continue
		}
		if s.lo <= covered {
			return &ConflictError{
				Edit:      s.req,
				OtherEdit: coveredBy,
				Msg:       fmt.Sprintf("replaced ranges overlap at line %d", s.lo),
			}
		}
		covered = s.hi
		coveredBy = s.req
	}
	return nil
}

func estimateLen(lines []string, spans []span) int {
	n := len(lines)
	for _, s := range spans {
		n += len(s.content)
	}
	return n
}
