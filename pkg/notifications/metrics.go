package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics captures engine telemetry.
type Metrics interface {
	// NotificationCreated counts a newly inserted notification.
	NotificationCreated(t Type)
	// NotificationReplaced counts an in-place replacement.
	NotificationReplaced(t Type)
	// NotificationsDismissed counts notifications that left the store.
	NotificationsDismissed(reason DismissReason, count int)
	// SetLive updates the number of live notifications.
	SetLive(count int)
}

// NopMetrics is a no-op metrics recorder.
type NopMetrics struct{}

func (NopMetrics) NotificationCreated(Type) {}
func (NopMetrics) NotificationReplaced(Type) {}
func (NopMetrics) NotificationsDismissed(DismissReason, int) {}
func (NopMetrics) SetLive(int) {}

// PrometheusMetrics records engine telemetry as Prometheus collectors.
type PrometheusMetrics struct {
	created   *prometheus.CounterVec
	replaced  *prometheus.CounterVec
	dismissed *prometheus.CounterVec
	live      prometheus.Gauge
}

// NewPrometheusMetrics creates the collectors under namespace and registers
// them with reg. An empty namespace defaults to "toastkit".
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	if namespace == "" {
		namespace = "toastkit"
	}

	m := &PrometheusMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "created_total",
			Help:      "Notifications inserted, by type.",
		}, []string{"type"}),
		replaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "replaced_total",
			Help:      "Notifications replaced in place, by new type.",
		}, []string{"type"}),
		dismissed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "dismissed_total",
			Help:      "Notifications removed, by reason.",
		}, []string{"reason"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "live",
			Help:      "Notifications currently held by the store.",
		}),
	}

	for _, c := range []prometheus.Collector{m.created, m.replaced, m.dismissed, m.live} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *PrometheusMetrics) NotificationCreated(t Type) {
	m.created.WithLabelValues(string(t)).Inc()
}

func (m *PrometheusMetrics) NotificationReplaced(t Type) {
	m.replaced.WithLabelValues(string(t)).Inc()
}

func (m *PrometheusMetrics) NotificationsDismissed(reason DismissReason, count int) {
	m.dismissed.WithLabelValues(string(reason)).Add(float64(count))
}

func (m *PrometheusMetrics) SetLive(count int) {
	m.live.Set(float64(count))
}
