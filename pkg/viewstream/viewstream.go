// Package viewstream streams notification views to the browser as datastar
// signal patches over Server-Sent Events.
package viewstream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
)

// DefaultSignal is the datastar signal the view is patched into.
const DefaultSignal = "toasts"

// Source hands out view subscriptions. notifications.BroadcastDeliverer implements it.
type Source interface {
	Subscribe(ctx context.Context) broadcast.Subscriber[notifications.View]
}

// Option configures the stream handler.
type Option func(*streamer)

// WithSignal sets the signal name the view is patched into.
func WithSignal(name string) Option {
	return func(s *streamer) {
		if name != "" {
			s.signal = name
		}
	}
}

// WithLogger sets the logger for stream lifecycle and write errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *streamer) {
		if l != nil {
			s.logger = l
		}
	}
}

type streamer struct {
	source Source
	signal string
	logger *slog.Logger
}

// Handler returns an SSE endpoint that sends the current view and then every
// newer one until the client disconnects or the source shuts down.
func Handler(source Source, opts ...Option) http.HandlerFunc {
	s := &streamer{
		source: source,
		signal: DefaultSignal,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("viewstream"))

	return s.serve
}

func (s *streamer) serve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sub := s.source.Subscribe(ctx)
	defer func() { _ = sub.Close() }()

	sse := datastar.NewSSE(w, r)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "view stream opened", logger.Event("open"))

	messages := sub.Receive(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.LogAttrs(ctx, slog.LevelDebug, "view stream closed by client", logger.Event("close"))
			return
		case msg, ok := <-messages:
			if !ok {
				s.logger.LogAttrs(ctx, slog.LevelDebug, "view stream source closed", logger.Event("close"))
				return
			}
			if err := s.patch(sse, msg.Data); err != nil {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to stream notifications view",
					logger.Version(msg.Data.Version),
					logger.Error(err),
				)
				return
			}
		}
	}
}

func (s *streamer) patch(sse *datastar.ServerSentEventGenerator, view notifications.View) error {
	data, err := json.Marshal(map[string]any{s.signal: view})
	if err != nil {
		return err
	}
	return sse.PatchSignals(data)
}
