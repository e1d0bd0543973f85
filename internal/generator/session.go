package generator

import (
	"strings"
	"time"
)

// CopyResetDelay is how long the copied flag stays set after a copy.
const CopyResetDelay = 2 * time.Second

// Request is one generation attempt handed to the caller to execute.
type Request struct {
	ID     uint64
	Prompt string
}

// CopyToken identifies the copy that armed the current reset timer.
type CopyToken uint64

// Session is the transient generation state owned by one mounted generator view.
// It is not safe for concurrent use; the owning event loop serializes access.
type Session struct {
	description string
	state       State

	nextID   uint64
	inflight uint64

	copied    bool
	copyToken CopyToken

	closed bool
}

// NewSession returns an idle session with an empty description.
func NewSession() *Session {
	return &Session{state: Idle()}
}

func (s *Session) SetDescription(description string) {
	if s.closed {
		return
	}
	s.description = description
}

func (s *Session) Description() string { return s.description }

func (s *Session) State() State { return s.state }

func (s *Session) Closed() bool { return s.closed }

// Pending reports whether a request is in flight.
func (s *Session) Pending() bool { return s.inflight != 0 }

// CanSubmit reports whether Submit would start a request.
func (s *Session) CanSubmit() bool {
	return !s.closed && s.inflight == 0 && strings.TrimSpace(s.description) != ""
}

// Submit moves the session to Loading and returns the request to execute. It is a
// no-op returning false for a blank description or while a request is in flight.
func (s *Session) Submit() (Request, bool) {
	if !s.CanSubmit() {
		return Request{}, false
	}
	s.nextID++
	s.inflight = s.nextID
	s.state = Loading()
	return Request{ID: s.inflight, Prompt: BuildPrompt(s.description)}, true
}

// Resolve records a successful response for request id. Responses for anything but
// the in-flight request are ignored.
func (s *Session) Resolve(id uint64, statement string) bool {
	if !s.accepts(id) {
		return false
	}
	if statement == "" {
		return s.Reject(id, errEmptyStatement)
	}
	s.inflight = 0
	s.state = Succeeded(statement)
	return true
}

// Reject records a failure for request id. The description is kept for a retry.
func (s *Session) Reject(id uint64, err error) bool {
	if !s.accepts(id) {
		return false
	}
	msg := Describe(err)
	if msg == "" {
		msg = FallbackMessage
	}
	s.inflight = 0
	s.state = Failed(msg)
	return true
}

func (s *Session) accepts(id uint64) bool {
	return !s.closed && id != 0 && id == s.inflight
}

// Copy marks the current statement as copied and returns the token the reset timer
// must present to ExpireCopy. Each call supersedes the previous token.
func (s *Session) Copy() (CopyToken, bool) {
	if s.closed || s.state.Statement() == "" {
		return 0, false
	}
	s.copyToken++
	s.copied = true
	return s.copyToken, true
}

// ExpireCopy clears the copied flag if token is still the latest copy.
func (s *Session) ExpireCopy(token CopyToken) bool {
	if s.closed || !s.copied || token != s.copyToken {
		return false
	}
	s.copied = false
	return true
}

func (s *Session) Copied() bool { return s.copied }

// Close tears the session down. Pending responses and copy timers become no-ops.
func (s *Session) Close() {
	s.closed = true
	s.inflight = 0
	s.copied = false
	s.copyToken++
}
