// Package metrics exposes Prometheus instrumentation for the graph engine
// and the remote operation bridge.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every collector the engine exports.
type Registry struct {
	MutationsTotal     *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec
	QueriesTotal       *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec

	GraphNodes prometheus.Gauge
	GraphEdges prometheus.Gauge

	BridgeRequestsTotal *prometheus.CounterVec
	BridgePending       prometheus.Gauge
}

// NewRegistry creates and registers all collectors on the given registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stormgraph_mutations_total",
			Help: "Graph mutations by operation and outcome",
		}, []string{"operation", "status"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stormgraph_validation_failures_total",
			Help: "Validation failures by rule tier",
		}, []string{"tier"}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stormgraph_queries_total",
			Help: "Query operations by name",
		}, []string{"operation"}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stormgraph_query_duration_seconds",
			Help:    "Query latency by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stormgraph_nodes",
			Help: "Current node count",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stormgraph_edges",
			Help: "Current edge count",
		}),
		BridgeRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stormgraph_bridge_requests_total",
			Help: "Bridge requests by outcome",
		}, []string{"status"}),
		BridgePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stormgraph_bridge_pending_requests",
			Help: "Requests awaiting a correlated response",
		}),
	}

	reg.MustRegister(
		r.MutationsTotal,
		r.ValidationFailures,
		r.QueriesTotal,
		r.QueryDuration,
		r.GraphNodes,
		r.GraphEdges,
		r.BridgeRequestsTotal,
		r.BridgePending,
	)
	return r
}

// NewTestRegistry creates a registry backed by a throwaway Prometheus
// registry, for tests.
func NewTestRegistry() *Registry {
	return NewRegistry(prometheus.NewRegistry())
}

// RecordMutation records a mutation outcome.
func (r *Registry) RecordMutation(operation string, ok bool) {
	status := "ok"
	if !ok {
		status = "rejected"
	}
	r.MutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordQuery records a query execution with its duration.
func (r *Registry) RecordQuery(operation string, duration time.Duration) {
	r.QueriesTotal.WithLabelValues(operation).Inc()
	r.QueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetGraphSize updates the node/edge gauges.
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}
