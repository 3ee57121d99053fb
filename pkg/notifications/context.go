package notifications

import (
	"context"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying f.
func NewContext(ctx context.Context, f *Facade) context.Context {
	return context.WithValue(ctx, contextKey{}, f)
}

// FromContext returns the Facade stored in ctx, or nil. The nil Facade is
// safe to use and does nothing.
func FromContext(ctx context.Context) *Facade {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(contextKey{}).(*Facade)
	return f
}
