package engine

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is the canonical line model of one file plus the metadata needed
// to reconstruct its original byte form: BOM presence, terminator style, and
// whether the file ended with a terminator.
//
// Terminator detection is whole-file: if any CRLF occurs in the body, the
// file is treated as CRLF throughout. Mixed-terminator input is therefore
// canonicalized to the detected style on encode; the round-trip is exact
// only for internally consistent files.
type Document struct {
	BOM        bool
	CRLF       bool
	Terminated bool // file ended with a line terminator
	Lines      []string
}

// Decode normalizes raw file bytes into a Document. It never fails: any
// byte sequence decodes, at worst as a single LF-style line.
func Decode(raw []byte) *Document {
	d := &Document{}
	if bytes.HasPrefix(raw, utf8BOM) {
		d.BOM = true
		raw = raw[len(utf8BOM):]
	}

	text := string(raw)
	if bytes.Contains(raw, []byte("\r\n")) {
		d.CRLF = true
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}

	if text == "" {
		return d
	}
	if strings.HasSuffix(text, "\n") {
		d.Terminated = true
		text = text[:len(text)-1]
	}
	d.Lines = strings.Split(text, "\n")
	return d
}

// Encode joins lines back into raw bytes using the document's detected
// terminator, re-prepending the BOM if the input carried one. The lines
// argument is typically the edited successor of d.Lines.
func (d *Document) Encode(lines []string) []byte {
	term := "\n"
	if d.CRLF {
		term = "\r\n"
	}

	var buf bytes.Buffer
	if d.BOM {
		buf.Write(utf8BOM)
	}
	for i, line := range lines {
		buf.WriteString(line)
		if i < len(lines)-1 || d.Terminated {
			buf.WriteString(term)
		}
	}
	return buf.Bytes()
}
