package notifications

import (
	"fmt"
	"log/slog"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithConfig sets limits and stack geometry.
// Panics if cfg is invalid: a misconfigured engine should stop startup.
func WithConfig(cfg Config) StoreOption {
	return func(s *Store) {
		if err := cfg.Validate(); err != nil {
			panic(fmt.Errorf("notifications: %w", err))
		}
		s.cfg = cfg
	}
}

// WithClock sets the time source used for timestamps and auto-dismiss timers.
func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithDeliverer sets where every new View is sent after a mutation.
func WithDeliverer(d Deliverer) StoreOption {
	return func(s *Store) {
		if d != nil {
			s.deliverer = d
		}
	}
}

// WithMetrics sets the telemetry recorder.
func WithMetrics(m Metrics) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger for the Store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides how IDs are assigned to notifications created without one.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// UpsertOption configures a single Store.Upsert call.
type UpsertOption func(*upsertOptions)

type upsertOptions struct {
	replaceID string
}

// WithReplaceID makes the upsert substitute the live notification with this ID.
// If no such notification exists the upsert is a normal insert.
func WithReplaceID(id string) UpsertOption {
	return func(o *upsertOptions) { o.replaceID = id }
}
