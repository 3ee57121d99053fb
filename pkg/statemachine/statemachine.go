package statemachine

import "context"

// State is a node of the machine.
type State interface {
	Name() string
}

// Event triggers a transition out of the current state.
type Event interface {
	Name() string
}

// Guard vetoes a transition based on runtime data. All guards of a transition
// must pass for it to be taken.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs after the guards pass and before the state changes. A non-nil
// error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition is a guarded edge between two states.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

// StateMachine is a finite state machine.
type StateMachine interface {
	Current() State
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
}
