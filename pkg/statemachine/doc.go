// Package statemachine implements small guarded finite state machines.
//
// States and events are any types with a Name method. Transitions are added
// with functional options and may carry guards, which veto a transition from
// runtime data, and actions, which run just before the state changes:
//
//	machine := statemachine.MustNew(Collapsed,
//		statemachine.WithTransition(Collapsed, Expanded, Expand,
//			statemachine.WithGuard(func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
//				n, _ := data.(int)
//				return n >= 2
//			}),
//		),
//	)
//
//	err := machine.Fire(ctx, Expand, members)
//
// Fire returns a *TransitionError that unwraps to ErrNoTransition when the
// current state has no edge for the event, to ErrRejected when every
// candidate's guards failed, or to the error an action returned. Use
// errors.Is to tell them apart.
package statemachine
