// Package tuitest drives a terminal program through a pseudo terminal and records
// what it draws.
package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second
	pollInterval   = 20 * time.Millisecond
	drainGrace     = 500 * time.Millisecond
)

// Step is one scripted interaction. The harness first waits until the screen
// shows Await (when set), then sleeps Delay, then writes Input.
type Step struct {
	Await string
	Delay time.Duration
	Input []byte
}

// Config describes the program to spawn and the script to replay against it.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Recording is the raw terminal stream plus the frames parsed from it.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// screen accumulates program output and lets the script poll it.
type screen struct {
	mu  sync.Mutex
	raw bytes.Buffer
}

func (s *screen) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw.Write(p)
}

func (s *screen) shows(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Contains(plainText(s.raw.String()), text)
}

func (s *screen) bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.raw.Bytes())
}

// Run starts cfg.Command inside a PTY, replays cfg.Steps and returns everything
// the program wrote once it exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = cfg.withDefaults()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	out := &screen{}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		pump(ptmx, out, newTerminalResponder(ptmx))
	}()

	start := time.Now()
	if err := replay(ctx, ptmx, out, cfg.Steps); err != nil {
		return nil, err
	}
	if err := waitExit(ctx, cmd, cfg); err != nil {
		return nil, err
	}
	// Linux reports EIO once the buffered output is read. Other platforms may
	// keep the read blocked, so the PTY is closed after a grace period.
	select {
	case <-drained:
	case <-time.After(drainGrace):
		_ = ptmx.Close()
		<-drained
	}

	raw := out.bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(start)}, nil
}

// pump copies PTY output into out until the PTY is closed, answering terminal
// queries along the way.
func pump(r io.Reader, out io.Writer, responder *terminalResponder) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			_, _ = out.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func waitExit(ctx context.Context, cmd *exec.Cmd, cfg Config) error {
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err == nil {
			return nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && slices.Contains(cfg.AllowedExitCodes, exitErr.ExitCode()) {
			return nil
		}
		if cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt") {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}
}

// replay writes each step's input to w. out may be nil when no step awaits text.
func replay(ctx context.Context, w io.Writer, out *screen, steps []Step) error {
	for i, step := range steps {
		if step.Await != "" {
			if err := await(ctx, out, step.Await); err != nil {
				return fmt.Errorf("tuitest: step %d: %w", i, err)
			}
		}
		if step.Delay > 0 {
			if err := sleep(ctx, step.Delay); err != nil {
				return fmt.Errorf("tuitest: step %d: %w", i, err)
			}
		}
		if len(step.Input) > 0 {
			if _, err := w.Write(step.Input); err != nil {
				return fmt.Errorf("tuitest: write input: %w", err)
			}
		}
	}
	return nil
}

func await(ctx context.Context, out *screen, text string) error {
	if out == nil {
		return fmt.Errorf("waiting for %q without output", text)
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for !out.shows(text) {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %q: %w", text, ctx.Err())
		case <-ticker.C:
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// buildEnv layers extra over the current environment. Later entries win, so an
// entry like "GEMINI_API_KEY=" blanks an inherited credential.
func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	if !slices.ContainsFunc(env, func(entry string) bool { return strings.HasPrefix(entry, "TERM=") }) {
		env = append(env, "TERM=xterm-256color")
	}
	return env
}

// Type returns a step that writes text as typed input after delay.
func Type(text string, delay time.Duration) Step {
	return Step{Delay: delay, Input: []byte(text)}
}

// AwaitText returns a step that blocks until text is on screen and then sends input.
func AwaitText(text string, input []byte) Step {
	return Step{Await: text, Input: input}
}

var (
	// KeyEnter sends a carriage return.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC asks the program to quit.
	KeyCtrlC = []byte{3}
	// KeyEsc returns from the About tab.
	KeyEsc = []byte{27}
	// KeyTab cycles tabs.
	KeyTab = []byte{'\t'}
	// KeyCtrlS submits the description.
	KeyCtrlS = []byte{0x13}
	// KeyCtrlY copies the generated statement.
	KeyCtrlY = []byte{0x19}
)
