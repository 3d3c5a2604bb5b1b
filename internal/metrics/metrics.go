// Package metrics holds the Prometheus collectors of the tool server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the tool server collectors.
type Metrics struct {
	Registry *prometheus.Registry

	ToolCalls    *prometheus.CounterVec
	ToolDuration *prometheus.HistogramVec
	GridPoints   prometheus.Counter
}

// New registers the collectors on a fresh registry, so several servers (and
// tests) can coexist in one process.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ToolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "symplot_tool_calls_total",
				Help: "Total number of tool calls",
			},
			[]string{"tool", "status"},
		),
		ToolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "symplot_tool_duration_seconds",
				Help:    "Tool call latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"tool"},
		),
		GridPoints: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "symplot_grid_points_total",
				Help: "Total number of points evaluated by sampling requests",
			},
		),
	}
	m.Registry.MustRegister(m.ToolCalls, m.ToolDuration, m.GridPoints)
	return m
}

// ObserveTool records one tool call.
func (m *Metrics) ObserveTool(tool string, failed bool, d time.Duration) {
	status := "ok"
	if failed {
		status = "error"
	}
	m.ToolCalls.WithLabelValues(tool, status).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(d.Seconds())
}
