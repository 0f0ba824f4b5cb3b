// Package metrics exposes bot counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bannerbot/internal/domain/entities"
	"bannerbot/internal/ports/output"
)

var _ output.Metrics = (*Prometheus)(nil)

type Prometheus struct {
	registry *prometheus.Registry

	alertsDispatched *prometheus.CounterVec
	alertFailures    *prometheus.CounterVec
	cycleDuration    prometheus.Histogram
	contentEdits     *prometheus.CounterVec
}

// New registers the bot collectors, plus Go and process collectors, on a
// fresh registry.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		alertsDispatched: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bannerbot_alerts_dispatched_total",
			Help: "Alerts sent to the alert channel, by kind.",
		}, []string{"kind"}),
		alertFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bannerbot_alert_failures_total",
			Help: "Alert dispatch attempts that failed, by kind.",
		}, []string{"kind"}),
		cycleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "bannerbot_alert_cycle_duration_seconds",
			Help:    "Duration of one alert scheduler cycle.",
			Buckets: prometheus.DefBuckets,
		}),
		contentEdits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bannerbot_content_edits_total",
			Help: "Committed content edits, by section.",
		}, []string{"section"}),
	}
}

func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) AlertDispatched(kind entities.AlertKind) {
	p.alertsDispatched.WithLabelValues(string(kind)).Inc()
}

func (p *Prometheus) AlertFailed(kind entities.AlertKind) {
	p.alertFailures.WithLabelValues(string(kind)).Inc()
}

func (p *Prometheus) CycleCompleted(d time.Duration) {
	p.cycleDuration.Observe(d.Seconds())
}

func (p *Prometheus) ContentEdited(section entities.Section) {
	p.contentEdits.WithLabelValues(string(section)).Inc()
}
