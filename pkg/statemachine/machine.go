package statemachine

import (
	"context"
	"sync"
)

// Machine is an in-memory StateMachine safe for concurrent use.
// Transitions are indexed as [from][event]; several transitions may share a
// key, and the first whose guards pass wins.
type Machine struct {
	mu          sync.RWMutex
	current     State
	transitions map[string]map[string][]Transition
}

var _ StateMachine = (*Machine)(nil)

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire takes the first transition for event whose guards accept data, runs
// its actions and moves to its target state.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.match(ctx, event, data)
	if err != nil {
		return &TransitionError{State: m.current.Name(), Event: event.Name(), Err: err}
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return &TransitionError{State: m.current.Name(), Event: event.Name(), Err: err}
		}
	}

	m.current = t.To
	return nil
}

// CanFire reports whether Fire would take a transition. Actions are not run.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.match(ctx, event, data)
	return err == nil
}

func (m *Machine) add(t Transition) error {
	if t.From == nil || t.To == nil || t.Event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	byEvent, ok := m.transitions[t.From.Name()]
	if !ok {
		byEvent = make(map[string][]Transition)
		m.transitions[t.From.Name()] = byEvent
	}
	byEvent[t.Event.Name()] = append(byEvent[t.Event.Name()], t)
	return nil
}

// match must be called with the lock held.
func (m *Machine) match(ctx context.Context, event Event, data any) (Transition, error) {
	candidates := m.transitions[m.current.Name()][event.Name()]
	if len(candidates) == 0 {
		return Transition{}, ErrNoTransition
	}

	for _, t := range candidates {
		if allow(ctx, t, m.current, event, data) {
			return t, nil
		}
	}
	return Transition{}, ErrRejected
}

func allow(ctx context.Context, t Transition, from State, event Event, data any) bool {
	for _, guard := range t.Guards {
		if !guard(ctx, from, event, data) {
			return false
		}
	}
	return true
}
