package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

var testEpoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// recordingDeliverer keeps every delivered view.
type recordingDeliverer struct {
	mu     sync.Mutex
	views  []View
	closed bool
}

func (r *recordingDeliverer) Deliver(ctx context.Context, view View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, view)
	return nil
}

func (r *recordingDeliverer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingDeliverer) Views() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]View, len(r.views))
	copy(out, r.views)
	return out
}

func (r *recordingDeliverer) Last() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}

// sequentialIDs returns an ID generator producing n1, n2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("n%d", next)
	}
}

func newTestStore(t *testing.T, opts ...StoreOption) (*Store, *ManualClock, *recordingDeliverer) {
	t.Helper()

	clock := NewManualClock(testEpoch)
	rec := &recordingDeliverer{}
	base := []StoreOption{
		WithClock(clock),
		WithDeliverer(rec),
		WithIDGenerator(sequentialIDs()),
		WithLogger(logger.Discard()),
	}
	store := NewStore(append(base, opts...)...)
	t.Cleanup(func() { _ = store.Close() })

	return store, clock, rec
}

func discardLogger() *slog.Logger {
	return logger.Discard()
}

func ids(ns []Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}
