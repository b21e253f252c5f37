// Package metrics exports Prometheus metrics fed from the eventbus.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanpama/gqlview/internal/eventbus"
	"github.com/hanpama/gqlview/internal/events"
	"github.com/hanpama/gqlview/internal/meta"
)

// Metrics holds the gqlview collectors.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Extractions     *prometheus.CounterVec
	ExtractDuration *prometheus.HistogramVec
	Projections     *prometheus.CounterVec
	ProjectedRows   prometheus.Counter
	Snapshots       *prometheus.CounterVec
	Errors          *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gqlview",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		Extractions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Subsystem: "extract",
				Name:      "total",
				Help:      "Total number of metadata extractions",
			},
			[]string{"mode", "status"},
		),
		ExtractDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "gqlview",
				Subsystem: "extract",
				Name:      "duration_seconds",
				Help:      "Metadata extraction duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		Projections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Subsystem: "project",
				Name:      "total",
				Help:      "Total number of row projections",
			},
			[]string{"status"},
		),
		ProjectedRows: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Subsystem: "project",
				Name:      "rows_total",
				Help:      "Total number of rows projected",
			},
		),
		Snapshots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Subsystem: "view",
				Name:      "snapshots_total",
				Help:      "Total number of result snapshots consumed",
			},
			[]string{"view"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "gqlview",
				Name:      "errors_total",
				Help:      "Total number of errors by code",
			},
			[]string{"code"},
		),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.Requests, m.RequestDuration,
		m.Extractions, m.ExtractDuration,
		m.Projections, m.ProjectedRows,
		m.Snapshots, m.Errors,
	)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Subscribe updates the collectors from eventbus events.
func (m *Metrics) Subscribe() (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(_ context.Context, e events.HTTPFinish) {
			path := e.Route
			if path == "" {
				path = "unmatched"
			}
			m.Requests.WithLabelValues(path, strconv.Itoa(e.Status)).Inc()
			m.RequestDuration.WithLabelValues(path).Observe(e.Duration.Seconds())
		}),
		eventbus.Subscribe(func(_ context.Context, e events.ExtractFinish) {
			m.Extractions.WithLabelValues(e.Mode, status(e.Err)).Inc()
			m.ExtractDuration.WithLabelValues(e.Mode).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.Errors.WithLabelValues(meta.Code(e.Err)).Inc()
			}
		}),
		eventbus.Subscribe(func(_ context.Context, e events.ProjectFinish) {
			m.Projections.WithLabelValues(status(e.Err)).Inc()
			if e.Err != nil {
				m.Errors.WithLabelValues(meta.Code(e.Err)).Inc()
				return
			}
			m.ProjectedRows.Add(float64(e.Rows))
		}),
		eventbus.Subscribe(func(_ context.Context, e events.Snapshot) {
			m.Snapshots.WithLabelValues(e.View).Inc()
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
