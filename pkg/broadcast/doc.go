// Package broadcast provides type-safe one-to-many message fan-out.
//
// Basic usage:
//
//	b := broadcast.NewMemoryBroadcaster[string](10)
//	defer b.Close()
//
//	sub := b.Subscribe(ctx)
//	defer sub.Close()
//
//	b.Broadcast(ctx, broadcast.Message[string]{Data: "hello"})
//
//	for msg := range sub.Receive(ctx) {
//		fmt.Println(msg.Data)
//	}
//
// By default a subscriber whose buffer is full is dropped. For state
// snapshots, where only the newest value matters, construct the broadcaster
// with WithConflation and WithReplayLatest: slow subscribers then skip stale
// messages instead of being dropped, and new subscribers immediately receive
// the last broadcast message.
//
// Subscribers are removed when their context is cancelled, when they are
// closed, or when the broadcaster is closed.
package broadcast
