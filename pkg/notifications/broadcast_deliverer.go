package notifications

import (
	"context"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

// BroadcastDeliverer publishes views through a conflating broadcaster.
// Subscribers always end up with the newest view: a slow subscriber skips
// intermediate versions and a new subscriber starts from the latest one.
type BroadcastDeliverer struct {
	broadcaster *broadcast.MemoryBroadcaster[View]
}

// NewBroadcastDeliverer creates a deliverer whose subscribers buffer up to bufferSize views.
func NewBroadcastDeliverer(bufferSize int) *BroadcastDeliverer {
	return &BroadcastDeliverer{
		broadcaster: broadcast.NewMemoryBroadcaster[View](bufferSize,
			broadcast.WithConflation(),
			broadcast.WithReplayLatest(),
		),
	}
}

func (d *BroadcastDeliverer) Deliver(ctx context.Context, view View) error {
	return d.broadcaster.Broadcast(ctx, broadcast.Message[View]{Data: view})
}

// Subscribe returns a subscriber that receives the latest view immediately
// and every later one until ctx is cancelled.
func (d *BroadcastDeliverer) Subscribe(ctx context.Context) broadcast.Subscriber[View] {
	return d.broadcaster.Subscribe(ctx)
}

// Latest returns the most recently delivered view.
func (d *BroadcastDeliverer) Latest() (View, bool) {
	msg, ok := d.broadcaster.Latest()
	return msg.Data, ok
}

// Subscribers returns the number of active subscribers.
func (d *BroadcastDeliverer) Subscribers() int {
	return d.broadcaster.Len()
}

// Close closes all subscribers.
func (d *BroadcastDeliverer) Close() error {
	return d.broadcaster.Close()
}
