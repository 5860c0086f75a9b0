package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts and times API calls. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheddar_client_requests_total",
				Help: "Total number of CheddarGetter API requests by path and outcome",
			},
			[]string{"path", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cheddar_client_request_duration_seconds",
				Help:    "CheddarGetter API round-trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}
	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

func (m *Metrics) observe(path string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(path, kindLabel(err)).Inc()
	m.RequestDuration.WithLabelValues(path).Observe(time.Since(started).Seconds())
}
