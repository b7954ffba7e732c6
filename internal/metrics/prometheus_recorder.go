// Package metrics exposes session counters in the Prometheus text format,
// for node_exporter's textfile collector.
package metrics

import (
	"fmt"

	"github.com/alexanderramin/tomato/internal/domain"
	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "tomato"

// PrometheusRecorder mirrors session state into a registry.
type PrometheusRecorder struct {
	reg         *prom.Registry
	completed   *prom.GaugeVec
	completions *prom.CounterVec
	configured  *prom.GaugeVec
}

// NewPrometheusRecorder registers the tomato metrics on reg, or on a fresh
// registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		completed: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_completed",
			Help:      "Persisted number of finished sessions by phase",
		}, []string{"phase"}),
		completions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "session_completions_total",
			Help:      "Sessions finished by this process, by phase",
		}, []string{"phase"}),
		configured: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Configured length of each phase",
		}, []string{"phase"}),
	}
	reg.MustRegister(pr.completed, pr.completions, pr.configured)
	for _, p := range domain.Phases {
		pr.completions.WithLabelValues(string(p))
	}
	return pr
}

// Registry returns the registry the metrics live on.
func (pr *PrometheusRecorder) Registry() *prom.Registry { return pr.reg }

// SetStats publishes the persisted counters.
func (pr *PrometheusRecorder) SetStats(s domain.SessionStats) {
	for _, p := range domain.Phases {
		pr.completed.WithLabelValues(string(p)).Set(float64(s.Count(p)))
	}
}

// SetDurations publishes the configured phase lengths.
func (pr *PrometheusRecorder) SetDurations(d *domain.Durations) {
	for _, p := range domain.Phases {
		pr.configured.WithLabelValues(string(p)).Set(float64(d.Total(p)))
	}
}

// ObserveCompletion matches stats.Hook.
func (pr *PrometheusRecorder) ObserveCompletion(phase domain.Phase, current domain.SessionStats) {
	pr.completions.WithLabelValues(string(phase)).Inc()
	pr.SetStats(current)
}

// WriteTextfile atomically writes the registry to path.
func (pr *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, pr.reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
