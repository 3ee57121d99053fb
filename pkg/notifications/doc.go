// Package notifications implements an in-process engine for transient
// feedback messages (toasts): creation, in-place replacement, grouping into
// capped stacks, timed auto-dismissal and the view model a renderer draws.
//
// # Architecture
//
//   - Store: owns the live notifications and serializes every mutation
//   - Scheduler: one cancellable auto-dismiss timer per notification
//   - Derive: pure partition into ungrouped notifications and groups
//   - StackController: visible window, expansion latch and slot styles of a group
//   - Deliverer: receives a fresh View after every mutation
//   - Facade: convenience API for feature code, carried through context
//
// # Basic Usage
//
//	deliverer := notifications.NewBroadcastDeliverer(16)
//	store := notifications.NewStore(notifications.WithDeliverer(deliverer))
//	defer store.Close()
//
//	toasts := notifications.NewFacade(store)
//
//	// Persistent until replaced
//	id := toasts.Create(notifications.TypeLoading, "Saving", "Please wait")
//
//	// Replace in place, auto-closes after the default delay
//	toasts.Create(notifications.TypeSuccess, "Saved", "All changes stored",
//	    notifications.WithReplace(id))
//
//	// Stack into the cart channel
//	toasts.CreateForChannel(notifications.TypeSuccess, "Added", "Red socks")
//
// # Groups
//
// Notifications sharing a GroupID form a stack of at most
// Config.MaxGroupMembers members; inserting beyond that evicts the oldest.
// Only Config.MaxVisibleStack members are rendered, the rest are reported as
// an overflow count. A stack of two or more members can be expanded into a
// list. Expansion is one-way and is forgotten when the group empties. When a
// dismissal leaves a single member, that member becomes a standalone
// notification.
//
// # Views
//
// A View is an immutable snapshot with a monotonically increasing Version.
// The Store delivers one per completed mutation while holding its lock, so
// deliverers see versions in order and must not block. BroadcastDeliverer
// conflates: slow subscribers skip straight to the newest view.
//
// # Testing
//
// ManualClock replaces wall-clock timers. Advance fires due auto-dismiss
// timers synchronously:
//
//	clock := notifications.NewManualClock(time.Now())
//	store := notifications.NewStore(notifications.WithClock(clock))
//	notifications.NewFacade(store).Create(notifications.TypeSuccess, "Done", "")
//	clock.Advance(5 * time.Second) // store.Len() == 0
package notifications
