// Package playground exposes a store over HTTP so the engine can be driven
// and observed from a browser or curl.
package playground

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/toastkit/pkg/httpserver"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/notifications"
	"github.com/dmitrymomot/toastkit/pkg/requestid"
	"github.com/dmitrymomot/toastkit/pkg/viewstream"
)

// Options configures the router.
type Options struct {
	// Stream serves GET /view/stream when set.
	Stream viewstream.Source
	// Gatherer serves GET /metrics when set.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// CreateRequest is the body of POST /toasts.
type CreateRequest struct {
	ID      string             `json:"id"`
	Type    notifications.Type `json:"type"`
	Title   string             `json:"title"`
	Message string             `json:"message"`
	Group   string             `json:"group"`
	Channel bool               `json:"channel"`
	Replace string             `json:"replace"`
	// AutoCloseMs overrides the default auto-close delay; 0 keeps the default.
	AutoCloseMs int64 `json:"autoCloseMs"`
	Persistent  bool  `json:"persistent"`
}

// Router mounts the playground API. Handlers reach the store through the
// facade carried in the request context.
func Router(toasts *notifications.Facade, opts Options) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(logger.Component("playground"))

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(withFacade(toasts))

	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, storeOpen(toasts.Store())))

	r.Route("/toasts", func(r chi.Router) {
		r.Post("/", createToast(log))
		r.Delete("/{id}", dismissToast)
	})
	r.Route("/groups/{id}", func(r chi.Router) {
		r.Delete("/", dismissGroup)
		r.Post("/toggle", toggleGroup)
	})
	r.Get("/view", getView)

	if opts.Stream != nil {
		r.Get("/view/stream", viewstream.Handler(opts.Stream, viewstream.WithLogger(log)))
	}
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

var (
	errStoreClosed = errors.New("notification store closed")
	errNoStore     = errors.New("notification store unavailable")
)

func storeOpen(store *notifications.Store) func(context.Context) error {
	return func(context.Context) error {
		if store == nil {
			return errNoStore
		}
		if store.Closed() {
			return errStoreClosed
		}
		return nil
	}
}

// storeFrom returns the store behind the request's facade, writing 503 when
// there is none.
func storeFrom(w http.ResponseWriter, r *http.Request) (*notifications.Store, bool) {
	store := notifications.FromContext(r.Context()).Store()
	if store == nil {
		writeError(w, http.StatusServiceUnavailable, errNoStore.Error())
		return nil, false
	}
	return store, true
}

func withFacade(toasts *notifications.Facade) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(notifications.NewContext(r.Context(), toasts)))
		})
	}
}

func createToast(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !req.Type.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "unknown notification type")
			return
		}

		if _, ok := storeFrom(w, r); !ok {
			return
		}

		toasts := notifications.FromContext(r.Context())
		var id string
		if req.Channel {
			id = toasts.CreateForChannel(req.Type, req.Title, req.Message, req.options()...)
		} else {
			id = toasts.Create(req.Type, req.Title, req.Message, req.options()...)
		}

		log.LogAttrs(r.Context(), slog.LevelInfo, "toast created",
			logger.NotificationID(id),
			logger.NotificationType(string(req.Type)),
		)
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

func (req CreateRequest) options() []notifications.CreateOption {
	var opts []notifications.CreateOption
	if req.ID != "" {
		opts = append(opts, notifications.WithID(req.ID))
	}
	if req.Replace != "" {
		opts = append(opts, notifications.WithReplace(req.Replace))
	}
	if req.Group != "" {
		opts = append(opts, notifications.WithGroup(req.Group))
	}
	switch {
	case req.Persistent:
		opts = append(opts, notifications.WithPersistent())
	case req.AutoCloseMs > 0:
		opts = append(opts, notifications.WithAutoClose(time.Duration(req.AutoCloseMs)*time.Millisecond))
	}
	return opts
}

func dismissToast(w http.ResponseWriter, r *http.Request) {
	if !notifications.FromContext(r.Context()).Dismiss(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func dismissGroup(w http.ResponseWriter, r *http.Request) {
	n := notifications.FromContext(r.Context()).DismissGroup(chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]int{"dismissed": n})
}

func toggleGroup(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}
	c, ok := store.Controller(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"expanded": c.Toggle()})
}

func getView(w http.ResponseWriter, r *http.Request) {
	store, ok := storeFrom(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.View())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
