// Package result models the outcome of the single backend invocation.
package result

// Display strings for the non-payload states.
const (
	LoadingText    = "Loading..."
	FailureMessage = "Failed to connect to backend"
)

// Result is the outcome of the single backend invocation. Exactly one of
// Loading, Success or Failure.
type Result interface {
	// DisplayText returns the text rendered for this state.
	DisplayText() string
	// Terminal reports whether no further transition may follow.
	Terminal() bool

	sealed()
}

// Loading is the initial state while the call is outstanding.
type Loading struct{}

// Success carries the text returned by the backend, unvalidated.
type Success struct {
	Text string
}

// Failure carries the fixed message shown in place of content.
type Failure struct {
	Message string
}

func (Loading) DisplayText() string   { return LoadingText }
func (s Success) DisplayText() string { return s.Text }
func (f Failure) DisplayText() string { return f.Message }

func (Loading) Terminal() bool { return false }
func (Success) Terminal() bool { return true }
func (Failure) Terminal() bool { return true }

func (Loading) sealed() {}
func (Success) sealed() {}
func (Failure) sealed() {}

// Failed returns the Failure state with the fixed message. The cause is not
// part of the state.
func Failed() Failure {
	return Failure{Message: FailureMessage}
}

// FromOutcome maps a call outcome onto its terminal state.
func FromOutcome(text string, err error) Result {
	if err != nil {
		return Failed()
	}
	return Success{Text: text}
}
