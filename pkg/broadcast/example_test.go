package broadcast_test

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

func ExampleMemoryBroadcaster() {
	b := broadcast.NewMemoryBroadcaster[string](10)
	defer b.Close()

	ctx := context.Background()
	sub := b.Subscribe(ctx)

	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "Hello"})
	_ = b.Broadcast(ctx, broadcast.Message[string]{Data: "World"})

	fmt.Println((<-sub.Receive(ctx)).Data)
	fmt.Println((<-sub.Receive(ctx)).Data)
	// Output:
	// Hello
	// World
}

func ExampleWithReplayLatest() {
	b := broadcast.NewMemoryBroadcaster[int](1, broadcast.WithReplayLatest(), broadcast.WithConflation())
	defer b.Close()

	ctx := context.Background()
	_ = b.Broadcast(ctx, broadcast.Message[int]{Data: 1})
	_ = b.Broadcast(ctx, broadcast.Message[int]{Data: 2})

	late := b.Subscribe(ctx)
	fmt.Println((<-late.Receive(ctx)).Data)
	// Output: 2
}
