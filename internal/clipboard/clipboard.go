// Package clipboard writes generated statements to the user's clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable means no clipboard mechanism exists on this machine.
var ErrUnavailable = errors.New("clipboard: unavailable")

// Writer places text on a clipboard.
type Writer interface {
	Write(text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(text string) error

func (f WriterFunc) Write(text string) error { return f(text) }

// package-level so tests can stub the system clipboard.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System writes through the platform clipboard utility (pbcopy, xclip, wl-copy, ...).
func System() Writer {
	return WriterFunc(func(text string) error {
		if unsupported() {
			return ErrUnavailable
		}
		if err := writeAll(text); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		return nil
	})
}

// OSC52 asks the terminal on w to set its clipboard. It works over SSH where no
// local utility exists. Inside tmux the sequence is wrapped for passthrough.
func OSC52(w io.Writer) Writer {
	return WriterFunc(func(text string) error {
		if w == nil {
			return ErrUnavailable
		}
		seq := osc52.New(text)
		if inTmux() {
			seq = seq.Tmux()
		}
		if _, err := seq.WriteTo(w); err != nil {
			return fmt.Errorf("clipboard: osc52: %w", err)
		}
		return nil
	})
}

// Fallback tries primary and, only when it reports ErrUnavailable, secondary.
func Fallback(primary, secondary Writer) Writer {
	return WriterFunc(func(text string) error {
		err := primary.Write(text)
		if err == nil || !errors.Is(err, ErrUnavailable) || secondary == nil {
			return err
		}
		return secondary.Write(text)
	})
}

func inTmux() bool {
	return os.Getenv("TMUX") != "" || strings.HasPrefix(os.Getenv("TERM"), "tmux")
}
