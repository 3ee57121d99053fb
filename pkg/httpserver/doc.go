// Package httpserver runs an http.Handler with graceful shutdown suited to
// long-lived Server-Sent Event streams.
//
// Run blocks until the context is cancelled or SIGINT/SIGTERM arrives. On
// shutdown the hooks registered with WithOnShutdown run first, so the caller
// can close event sources and let streaming handlers return, and only then is
// http.Server.Shutdown called with the configured deadline.
//
// # Usage
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//		httpserver.WithOnShutdown(func(context.Context) error { return store.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown. Use errors.Is to distinguish them.
package httpserver
