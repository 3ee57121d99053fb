package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// NotificationID records a notification identifier under "notification_id".
// Empty ids produce an empty Attr.
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// GroupID records a notification group under "group_id".
// Empty ids produce an empty Attr, so ungrouped records log without the key.
func GroupID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("group_id", id)
}

// RequestID records the HTTP correlation ID under "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// NotificationType records the notification type under "notification_type".
func NotificationType(t string) slog.Attr {
	return slog.String("notification_type", t)
}

// Reason records why something happened under "reason".
func Reason(reason string) slog.Attr {
	return slog.String("reason", reason)
}

// Count records a quantity under "count".
func Count(n int) slog.Attr {
	return slog.Int("count", n)
}

// Version records a state version under "version".
func Version(v uint64) slog.Attr {
	return slog.Uint64("version", v)
}

// Duration records a duration under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
