package engine

// span is the resolved, position-addressed effect of one request, expressed
// purely in original-snapshot coordinates. For a replacement, [lo, hi] is
// the 1-based inclusive range being replaced. lo > hi encodes a zero-width
// insertion at point: content goes between original lines point and point+1
// (point 0 is start-of-file, point len(lines) is end-of-file).
type span struct {
	lo, hi  int
	point   int
	content []string
	req     int // zero-based batch index of the originating request
}

func (s span) insertion() bool { return s.lo > s.hi }

// sortKey orders spans by file position. Insertion points interleave with
// ranges so that a point p sorts after any range ending at p and before any
// range starting at p+1.
func (s span) sortKey() int {
	if s.insertion() {
		return 2*s.point + 1
	}
	return 2 * s.lo
}

func replaceSpan(lo, hi int, content []string) span {
	return span{lo: lo, hi: hi, point: lo - 1, content: content}
}

func insertSpan(point int, content []string) span {
	return span{lo: point + 1, hi: point, point: point, content: content}
}

// planRequests resolves every request against the same unmutated snapshot.
// No request observes the effect of any other, so validation results are
// independent of batch order. The first failure aborts the whole batch.
func planRequests(lines []string, reqs []Request) ([]span, error) {
	spans := make([]span, 0, len(reqs))
	for i := range reqs {
		sp, err := resolveRequest(lines, &reqs[i])
		if err != nil {
			return nil, &EditError{Edit: i, Err: err}
		}
		sp.req = i
		spans = append(spans, sp)
	}
	return spans, nil
}

func resolveRequest(lines []string, r *Request) (span, error) {
	if err := r.checkShape(); err != nil {
		return span{}, err
	}

	switch r.Op {
	case OpSet:
		t, err := resolveTag(lines, r.Tag)
		if err != nil {
			return span{}, err
		}
		return replaceSpan(t.Index, t.Index, r.Content), nil

	case OpReplace:
		first, err := resolveTag(lines, r.First)
		if err != nil {
			return span{}, err
		}
		last, err := resolveTag(lines, r.Last)
		if err != nil {
			return span{}, err
		}
		if first.Index > last.Index {
			return span{}, &InvalidRangeError{First: first, Last: last}
		}
		return replaceSpan(first.Index, last.Index, r.Content), nil

	case OpAppend:
		if r.After == "" {
			return insertSpan(len(lines), r.Content), nil
		}
		t, err := resolveTag(lines, r.After)
		if err != nil {
			return span{}, err
		}
		return insertSpan(t.Index, r.Content), nil

	case OpPrepend:
		if r.Before == "" {
			return insertSpan(0, r.Content), nil
		}
		t, err := resolveTag(lines, r.Before)
		if err != nil {
			return span{}, err
		}
		return insertSpan(t.Index-1, r.Content), nil

	case OpInsert:
		after, err := resolveTag(lines, r.After)
		if err != nil {
			return span{}, err
		}
		// The before anchor only pins intent: content is placed from the
		// after anchor, but a drifted before tag still fails the batch.
		if _, err := resolveTag(lines, r.Before); err != nil {
			return span{}, err
		}
		return insertSpan(after.Index, r.Content), nil
	}

	// checkShape rejects unknown ops; this is unreachable.
	return span{}, &RequestError{Op: string(r.Op), Msg: "unknown op"}
}

// resolveTag parses tag text and validates it against the snapshot.
func resolveTag(lines []string, text string) (Tag, error) {
	t, err := ParseTag(text)
	if err != nil {
		return Tag{}, err
	}
	if err := t.Validate(lines); err != nil {
		return Tag{}, err
	}
	return t, nil
}
