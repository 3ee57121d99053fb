package broadcast

import (
	"context"
	"sync"
)

// Option configures a MemoryBroadcaster.
type Option func(*memoryOptions)

type memoryOptions struct {
	conflate     bool
	replayLatest bool
}

// WithConflation keeps slow subscribers attached: when a buffer is full the
// oldest pending message is discarded in favour of the new one.
func WithConflation() Option {
	return func(o *memoryOptions) { o.conflate = true }
}

// WithReplayLatest delivers the most recent broadcast message to every new subscriber.
func WithReplayLatest() Option {
	return func(o *memoryOptions) { o.replayLatest = true }
}

// MemoryBroadcaster is an in-process Broadcaster. All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	opts        memoryOptions
	latest      *Message[T]
	done        chan struct{}
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// NewMemoryBroadcaster creates a new in-memory broadcaster. bufferSize is the
// per-subscriber channel capacity; values below 1 are raised to 1.
func NewMemoryBroadcaster[T any](bufferSize int, opts ...Option) *MemoryBroadcaster[T] {
	b := &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		bufferSize:  max(bufferSize, 1),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(&b.opts)
	}
	return b
}

// Subscribe creates a subscriber that is removed when ctx is cancelled.
// If the broadcaster is closed, it returns an already closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](b.bufferSize, b.opts.conflate)
	if b.closed {
		_ = sub.Close()
		return sub
	}

	b.subscribers[sub] = struct{}{}
	if b.opts.replayLatest && b.latest != nil {
		sub.send(*b.latest)
	}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
			}
		}()
	}

	return sub
}

// Broadcast sends msg to all active subscribers without blocking.
// Subscribers that cannot accept it are removed unless conflation is enabled.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	if b.opts.replayLatest {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.latest = &msg
	} else {
		b.mu.RLock()
		defer b.mu.RUnlock()
	}

	if b.closed {
		return nil
	}

	for sub := range b.subscribers {
		if !sub.send(msg) {
			go b.unsubscribe(sub)
		}
	}

	return nil
}

// Latest returns the last broadcast message when WithReplayLatest is set.
func (b *MemoryBroadcaster[T]) Latest() (Message[T], bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.latest == nil {
		return Message[T]{}, false
	}
	return *b.latest, true
}

// Len returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers. It is idempotent.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	for sub := range b.subscribers {
		_ = sub.Close()
	}
	clear(b.subscribers)
	b.mu.Unlock()

	// Wait for context watchers so none outlives Close.
	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}
