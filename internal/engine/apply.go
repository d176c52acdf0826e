package engine

// Result summarizes one applied batch.
type Result struct {
	// Lines is the final canonical line sequence.
	Lines []string
	// NoopEdits lists the zero-based batch indices of edits whose content
	// was line-for-line identical to what they replaced (or empty
	// insertions). No-ops are validated and applied like any other edit;
	// they just contribute nothing to the diff.
	NoopEdits []int
	// FirstChanged is the lowest 1-based original line index at which the
	// final content differs from the snapshot, or 0 if the batch was a
	// pure no-op.
	FirstChanged int
}

// Apply runs one atomic batch: normalize raw bytes, validate every request
// against the snapshot, compose the final line sequence, and re-encode with
// the original BOM and terminator style. On any error nothing is applied
// and both return values are nil; the caller must persist the returned
// bytes only on success.
//
// Apply is pure: it performs no I/O and retains no references to its
// arguments or results across calls.
func Apply(raw []byte, reqs []Request) (*Result, []byte, error) {
	// Shape errors first: they are request-construction bugs, reported
	// independent of file state.
	for i := range reqs {
		if err := reqs[i].checkShape(); err != nil {
			return nil, nil, &EditError{Edit: i, Err: err}
		}
	}

	doc := Decode(raw)

	spans, err := planRequests(doc.Lines, reqs)
	if err != nil {
		return nil, nil, err
	}

	final, err := composeSpans(doc.Lines, spans)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{
		Lines:        final,
		NoopEdits:    noopEdits(doc.Lines, spans),
		FirstChanged: firstChanged(doc.Lines, final),
	}
	return res, doc.Encode(final), nil
}

// noopEdits reports which spans replace content with identical content.
// Spans are inspected in batch order, so the result is sorted.
func noopEdits(lines []string, spans []span) []int {
	var noops []int
	for _, s := range spans {
		if s.insertion() {
			if len(s.content) == 0 {
				noops = append(noops, s.req)
			}
			continue
		}
		if linesEqual(s.content, lines[s.lo-1:s.hi]) {
			noops = append(noops, s.req)
		}
	}
	return noops
}

// firstChanged compares final lines to the snapshot position by position
// and returns the first 1-based index that diverges, or 0 if identical.
func firstChanged(old, final []string) int {
	n := len(old)
	if len(final) < n {
		n = len(final)
	}
	for i := 0; i < n; i++ {
		if old[i] != final[i] {
			return i + 1
		}
	}
	if len(old) != len(final) {
		return n + 1
	}
	return 0
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
