// Package engine is the public surface of the stormgraph model engine. It
// wires the typed graph store, the validation tiers, the graph algorithms,
// and the projection layer behind one explicitly constructed instance.
//
// The engine never throws on validation: rule breaches come back as
// validation results, missing ids come back as nil or empty collections.
package engine

import (
	"github.com/stormlabs/stormgraph/pkg/constraints"
	"github.com/stormlabs/stormgraph/pkg/logging"
	"github.com/stormlabs/stormgraph/pkg/metrics"
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// Engine owns one graph and every operation over it. Construct it once at
// process start and pass it by reference into the bridge and tool layers.
type Engine struct {
	store       *storage.GraphStore
	methodology *constraints.Validator
	logger      logging.Logger
	metrics     *metrics.Registry
}

// Options configures a new engine. Zero values get safe defaults.
type Options struct {
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// New creates an empty engine.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewTestRegistry()
	}
	return &Engine{
		store:       storage.NewGraphStore(),
		methodology: constraints.NewValidator(),
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// Store exposes the underlying graph store for read-only collaborators.
func (e *Engine) Store() *storage.GraphStore {
	return e.store
}

func (e *Engine) updateSizeGauges() {
	stats := e.store.GetStatistics()
	e.metrics.SetGraphSize(stats.NodeCount, stats.EdgeCount)
}
