package generator

// Status is the phase of the generation workflow.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is the tagged workflow state. Only Success carries a statement and only
// Error carries a message, so the two can never be set together.
type State struct {
	status  Status
	payload string
}

func Idle() State    { return State{status: StatusIdle} }
func Loading() State { return State{status: StatusLoading} }

// Succeeded holds the generated statement exactly as returned.
func Succeeded(statement string) State {
	return State{status: StatusSuccess, payload: statement}
}

// Failed holds a human readable failure description.
func Failed(message string) State {
	return State{status: StatusError, payload: message}
}

func (s State) Status() Status { return s.status }

// Statement is empty unless the state is Success.
func (s State) Statement() string {
	if s.status != StatusSuccess {
		return ""
	}
	return s.payload
}

// ErrorMessage is empty unless the state is Error.
func (s State) ErrorMessage() string {
	if s.status != StatusError {
		return ""
	}
	return s.payload
}
