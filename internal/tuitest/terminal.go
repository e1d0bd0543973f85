package tuitest

import (
	"bytes"
	"io"
)

// reply pairs a terminal query the program may emit with the answer a real
// terminal would give. lipgloss asks for colours and the cursor position at
// startup and stalls until they arrive.
type reply struct {
	query  string
	answer string
}

var replies = []reply{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b[c", "\x1b[?62;22c"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

// maxPending bounds how much unmatched output is retained between reads.
const maxPending = 64

type terminalResponder struct {
	w       io.Writer
	pending []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w}
}

// Process scans chunk for queries, including ones split across reads, and writes
// the answers in the order the queries appeared.
func (tr *terminalResponder) Process(chunk []byte) {
	tr.pending = append(tr.pending, chunk...)
	for {
		idx, r := tr.earliest()
		if idx < 0 {
			break
		}
		_, _ = io.WriteString(tr.w, r.answer)
		tr.pending = tr.pending[idx+len(r.query):]
	}
	if len(tr.pending) > maxPending {
		tr.pending = append([]byte(nil), tr.pending[len(tr.pending)-maxPending:]...)
	}
}

func (tr *terminalResponder) earliest() (int, reply) {
	best, found := -1, reply{}
	for _, r := range replies {
		idx := bytes.Index(tr.pending, []byte(r.query))
		if idx >= 0 && (best < 0 || idx < best) {
			best, found = idx, r
		}
	}
	return best, found
}
