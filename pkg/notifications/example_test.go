package notifications_test

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
)

func Example() {
	clock := notifications.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	store := notifications.NewStore(
		notifications.WithClock(clock),
		notifications.WithLogger(logger.Discard()),
	)
	defer store.Close()

	toasts := notifications.NewFacade(store)
	toasts.CreateForChannel(notifications.TypeSuccess, "Added", "Wine added")
	toasts.CreateForChannel(notifications.TypeSuccess, "Added", "Second wine")

	cart, _ := store.View().Group("cart")
	for i, n := range cart.Visible {
		fmt.Printf("%d %s z=%d\n", i, n.Message, cart.StyleFor(i).ZIndex)
	}

	clock.Advance(5 * time.Second)
	fmt.Println("live:", store.Len())

	// Output:
	// 0 Second wine z=5
	// 1 Wine added z=4
	// live: 0
}

func ExampleFacade_Create_replace() {
	store := notifications.NewStore(notifications.WithLogger(logger.Discard()))
	defer store.Close()

	toasts := notifications.NewFacade(store)
	id := toasts.Create(notifications.TypeLoading, "Saving", "Uploading avatar", notifications.WithID("upload"))
	toasts.Create(notifications.TypeSuccess, "Saved", "Avatar updated", notifications.WithReplace(id))

	for _, n := range store.Notifications() {
		fmt.Println(n.Type, n.Title)
	}

	// Output:
	// success Saved
}

func ExampleFromContext() {
	store := notifications.NewStore(notifications.WithLogger(logger.Discard()))
	defer store.Close()

	ctx := notifications.NewContext(context.Background(), notifications.NewFacade(store))

	// Deep inside a handler
	notifications.FromContext(ctx).Create(notifications.TypeError, "Payment failed", "Card declined")
	fmt.Println("live:", store.Len())

	// Without a facade calls are ignored
	notifications.FromContext(context.Background()).Create(notifications.TypeError, "ignored", "")
	fmt.Println("live:", store.Len())

	// Output:
	// live: 1
	// live: 1
}

func ExampleStackController_Toggle() {
	store := notifications.NewStore(notifications.WithLogger(logger.Discard()))
	defer store.Close()

	toasts := notifications.NewFacade(store)
	toasts.CreateForGroup(notifications.TypeSuccess, "Added", "Socks", "cart", notifications.WithPersistent())

	stack, _ := store.Controller("cart")
	fmt.Println("one member:", stack.Toggle())

	toasts.CreateForGroup(notifications.TypeSuccess, "Added", "Shoes", "cart", notifications.WithPersistent())

	stack, _ = store.Controller("cart")
	fmt.Println("two members:", stack.Toggle())
	fmt.Println("again:", stack.Toggle())

	// Output:
	// one member: false
	// two members: true
	// again: true
}
