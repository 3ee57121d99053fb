package notifications

import (
	"context"

	"github.com/dmitrymomot/toastkit/pkg/statemachine"
)

// GroupState is the lifecycle state of a group:
//
//	Empty -> Collapsed -> (expand, members >= 2) -> Expanded -> (members -> 0) -> Empty
//
// There is no transition back from Expanded to Collapsed while the group lives.
type GroupState string

const (
	GroupEmpty     GroupState = "empty"
	GroupCollapsed GroupState = "collapsed"
	GroupExpanded  GroupState = "expanded"
)

// Name implements statemachine.State.
func (s GroupState) Name() string {
	return string(s)
}

func (s GroupState) String() string {
	return string(s)
}

// GroupEvent drives group state transitions.
type GroupEvent string

const (
	// EventMemberAdded fires when a notification joins an empty group.
	EventMemberAdded GroupEvent = "member_added"
	// EventExpand fires when the stack is toggled open.
	EventExpand GroupEvent = "expand"
	// EventEmptied fires when the last member leaves.
	EventEmptied GroupEvent = "emptied"
)

// Name implements statemachine.Event.
func (e GroupEvent) Name() string {
	return string(e)
}

// hasStack lets a group expand only when there is something to fan out.
// data is the current member count.
func hasStack(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
	members, ok := data.(int)
	return ok && members >= 2
}

// newGroupMachine builds the lifecycle machine of one group starting at
// initial. onChange, if set, runs on every transition.
func newGroupMachine(initial GroupState, onChange statemachine.Action) *statemachine.Machine {
	return statemachine.MustNew(initial,
		statemachine.WithTransition(GroupEmpty, GroupCollapsed, EventMemberAdded,
			statemachine.WithAction(onChange)),
		statemachine.WithTransition(GroupCollapsed, GroupExpanded, EventExpand,
			statemachine.WithGuard(hasStack),
			statemachine.WithAction(onChange)),
		statemachine.WithTransition(GroupCollapsed, GroupEmpty, EventEmptied,
			statemachine.WithAction(onChange)),
		statemachine.WithTransition(GroupExpanded, GroupEmpty, EventEmptied,
			statemachine.WithAction(onChange)),
	)
}

// groupStateOf derives the state from a member count and expansion flag.
func groupStateOf(members int, expanded bool) GroupState {
	switch {
	case members == 0:
		return GroupEmpty
	case expanded:
		return GroupExpanded
	default:
		return GroupCollapsed
	}
}

// currentGroupState reads the state of a machine built by newGroupMachine.
func currentGroupState(m statemachine.StateMachine) GroupState {
	if s, ok := m.Current().(GroupState); ok {
		return s
	}
	return GroupEmpty
}
