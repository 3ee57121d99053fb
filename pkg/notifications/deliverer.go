package notifications

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// Deliverer receives every View a Store produces.
// It is called with the store lock held: it must not block or call back into the store.
type Deliverer interface {
	Deliver(ctx context.Context, view View) error
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, view View) error

func (f DelivererFunc) Deliver(ctx context.Context, view View) error {
	return f(ctx, view)
}

// MultiDeliverer fans a View out to several deliverers.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *slog.Logger
}

// MultiDelivererOption configures a MultiDeliverer.
type MultiDelivererOption func(*MultiDeliverer)

// WithMultiDelivererLogger sets the logger for the MultiDeliverer.
func WithMultiDelivererLogger(logger *slog.Logger) MultiDelivererOption {
	return func(m *MultiDeliverer) {
		m.logger = logger
	}
}

// NewMultiDeliverer creates a new multi-channel deliverer.
func NewMultiDeliverer(deliverers []Deliverer, opts ...MultiDelivererOption) *MultiDeliverer {
	m := &MultiDeliverer{
		deliverers: deliverers,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Deliver sends the view to every deliverer. A failing deliverer is logged
// and skipped so the others still receive the view.
func (m *MultiDeliverer) Deliver(ctx context.Context, view View) error {
	for i, d := range m.deliverers {
		if err := d.Deliver(ctx, view); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver notifications view",
				logger.Version(view.Version),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// Close closes every deliverer that implements io.Closer.
func (m *MultiDeliverer) Close() error {
	var errs []error
	for _, d := range m.deliverers {
		if c, ok := d.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// NoOpDeliverer discards every view.
type NoOpDeliverer struct{}

func (n *NoOpDeliverer) Deliver(ctx context.Context, view View) error {
	return nil
}
