package engine

import "encoding/json"

// Op identifies one of the five edit request variants. The set is closed:
// every consumer switches exhaustively over it.
type Op string

const (
	OpSet     Op = "set"     // replace exactly the one tagged line
	OpReplace Op = "replace" // replace the inclusive range [first, last]
	OpAppend  Op = "append"  // insert after the tagged line, or at EOF
	OpPrepend Op = "prepend" // insert before the tagged line, or at BOF
	OpInsert  Op = "insert"  // insert between two anchor tags
)

// Request is one edit in a batch, in the JSON wire shape submitted by the
// agent. Which tag fields are required depends on Op; Content is the
// replacement line sequence (zero or more lines, no terminators).
type Request struct {
	Op      Op       `json:"op"`
	Tag     string   `json:"tag,omitempty"`    // set
	First   string   `json:"first,omitempty"`  // replace
	Last    string   `json:"last,omitempty"`   // replace
	After   string   `json:"after,omitempty"`  // append (optional), insert
	Before  string   `json:"before,omitempty"` // prepend (optional), insert
	Content []string `json:"content"`
}

// checkShape validates the request structure alone: op known, required tag
// fields present. Shape errors are input errors, independent of file state,
// and are reported before any fingerprint lookup.
func (r *Request) checkShape() error {
	switch r.Op {
	case OpSet:
		if r.Tag == "" {
			return &RequestError{Op: string(r.Op), Msg: "missing required field 'tag'"}
		}
	case OpReplace:
		if r.First == "" || r.Last == "" {
			return &RequestError{Op: string(r.Op), Msg: "missing required field 'first' or 'last'"}
		}
	case OpAppend, OpPrepend:
		// anchor is optional: absent means end-of-file / start-of-file
	case OpInsert:
		if r.After == "" || r.Before == "" {
			return &RequestError{Op: string(r.Op), Msg: "missing required field 'after' or 'before'"}
		}
	case "":
		return &RequestError{Msg: "missing required field 'op'"}
	default:
		return &RequestError{Op: string(r.Op), Msg: "unknown op (expected set, replace, append, prepend, or insert)"}
	}
	return nil
}

// DecodeRequests parses a JSON array of edit requests and validates each
// request's shape. The returned error, if any, is an *EditError wrapping a
// *RequestError for the first malformed request.
func DecodeRequests(raw []byte) ([]Request, error) {
	var reqs []Request
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return nil, &RequestError{Msg: "invalid edit batch: " + err.Error()}
	}
	for i := range reqs {
		if err := reqs[i].checkShape(); err != nil {
			return nil, &EditError{Edit: i, Err: err}
		}
	}
	return reqs, nil
}
