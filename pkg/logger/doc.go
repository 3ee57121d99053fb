// Package logger builds *slog.Logger instances with a small set of functional
// options and provides attribute helpers so that every component logs the same
// keys for the same things.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("toastdemo"),
//	    logger.WithContextValue("session_id", ctxKeySession),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "notification dismissed",
//	    logger.Component("notifications"),
//	    logger.NotificationID(id),
//	    logger.GroupID(groupID),
//	)
//
// # Options
//
//   - WithDevelopment / WithProduction / WithEnvironment select per-environment defaults.
//   - WithFormat / WithTextFormatter / WithJSONFormatter override the output format.
//   - WithLevel / WithLevelName set the minimum level.
//   - WithAttr attaches static attributes.
//   - WithContextExtractors / WithContextValue inject attributes from context.
//
// Error and Errors return an empty attribute for nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
