package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/toastkit/internal/playground"
	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
)

func newServeCmd(loadOpts ...config.Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP playground",
		Long: `Serves the toast API, the current view as JSON, a datastar SSE stream of
every view version at /view/stream and Prometheus metrics at /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(cmd, loadOpts...)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.HTTP.Addr = addr
			}
			log := newLogger(cfg, logger.WithOutput(cmd.ErrOrStderr()))

			app, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			return app.server.Run(cmd.Context(), app.handler)
		},
	}
	cmd.Flags().String("addr", "", "Override HTTP_ADDR")
	return cmd
}

type app struct {
	server  *httpserver.Server
	handler http.Handler
	store   *notifications.Store
}

// newApp wires the store, its deliverer and metrics to the playground router.
// The server closes the store before draining connections so open view
// streams end.
func newApp(cfg appConfig, log *slog.Logger) (*app, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	metrics, err := notifications.NewPrometheusMetrics(reg, cfg.MetricsNamespace)
	if err != nil {
		return nil, err
	}

	stream := notifications.NewBroadcastDeliverer(cfg.StreamBuffer)
	store := notifications.NewStore(
		notifications.WithConfig(cfg.Toasts),
		notifications.WithDeliverer(stream),
		notifications.WithMetrics(metrics),
		notifications.WithLogger(log),
	)

	handler := playground.Router(notifications.NewFacade(store), playground.Options{
		Stream:   stream,
		Gatherer: reg,
		Logger:   log,
	})

	server := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(func(context.Context) error { return store.Close() }),
	)

	return &app{server: server, handler: handler, store: store}, nil
}
