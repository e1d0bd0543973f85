package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen render with and without escape sequences.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

const cursorHome = "\x1b[H"

var (
	eraseDisplay = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	// OSC strings first so their payload is not mistaken for CSI parameters.
	escapes = regexp.MustCompile(`\x1b\][^\x07]*(?:\x07|\x1b\\)|\x1b\[[0-9;?]*[A-Za-z]|[\x0e\x0f]`)
)

// parseFrames splits raw at every erase-display sequence and keeps the segments
// that draw visible text. Output without any erase becomes a single frame.
func parseFrames(raw []byte) []Frame {
	text := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, segment := range eraseDisplay.Split(text, -1) {
		segment = strings.TrimPrefix(strings.Trim(segment, "\x00"), cursorHome)
		plain := tidy(stripANSI(segment))
		if plain == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: segment, Plain: plain})
	}
	if len(frames) == 0 && text != "" {
		frames = append(frames, Frame{ANSI: text, Plain: tidy(stripANSI(text))})
	}
	return frames
}

// FinalFrame returns the last frame, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Contains reports whether substr was ever on screen. Renderers that redraw
// lines in place never erase the display, so the whole stream is searched too.
func (r *Recording) Contains(substr string) bool {
	if r == nil {
		return false
	}
	for _, frame := range r.Frames {
		if strings.Contains(frame.Plain, substr) {
			return true
		}
	}
	return strings.Contains(r.Plain(), substr)
}

// Plain is the whole stream without escape sequences or carriage returns.
func (r *Recording) Plain() string {
	if r == nil {
		return ""
	}
	return plainText(string(r.Raw))
}

func plainText(raw string) string {
	return stripANSI(strings.ReplaceAll(raw, "\r", ""))
}

func stripANSI(s string) string {
	return escapes.ReplaceAllString(s, "")
}

// tidy drops trailing spaces on each line and trailing blank lines.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
