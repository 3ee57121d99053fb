package main

import (
	"log/slog"

	"github.com/dmitrymomot/toastkit/pkg/config"
	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
)

const serviceName = "toastdemo"

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
	// StreamBuffer is the per-subscriber view buffer of the SSE stream.
	StreamBuffer int `env:"STREAM_BUFFER" envDefault:"16"`
	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"toastkit"`

	Toasts notifications.Config `envPrefix:"TOAST_"`
	HTTP   httpserver.Config
}

func loadConfig(opts ...config.Option) (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg, opts...); err != nil {
		return appConfig{}, err
	}
	if err := cfg.Toasts.Validate(); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

func newLogger(cfg appConfig, opts ...logger.Option) *slog.Logger {
	base := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		base = append(base, logger.WithLevelName(cfg.LogLevel))
	}
	return logger.New(append(base, opts...)...)
}
