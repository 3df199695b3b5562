package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/specialistvlad/forge/internal/toolchain"
)

// Metrics records scheme invocations. A nil *Metrics records nothing.
type Metrics struct {
	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forge_scheme_invocations_total",
				Help: "Number of toolchain invocations by action and result.",
			},
			[]string{"action", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forge_scheme_duration_seconds",
				Help:    "Time taken by a toolchain invocation.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"action"},
		),
	}
	reg.MustRegister(m.invocations, m.duration)
	return m
}

func (m *Metrics) observe(action toolchain.Action, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.invocations.WithLabelValues(string(action), result).Inc()
	m.duration.WithLabelValues(string(action)).Observe(elapsed.Seconds())
}
