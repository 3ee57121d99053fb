package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: transition needs from, to and event")
	ErrInvalidEvent      = errors.New("statemachine: nil event")
	ErrNoTransition      = errors.New("statemachine: no transition")
	ErrRejected          = errors.New("statemachine: rejected by guards")
)

// TransitionError reports which state and event a failed Fire was called with.
// It unwraps to ErrNoTransition, ErrRejected or the error returned by an action.
type TransitionError struct {
	State string
	Event string
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("state %q, event %q: %v", e.State, e.Event, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}
