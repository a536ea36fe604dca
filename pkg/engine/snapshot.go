package engine

import (
	"github.com/stormlabs/stormgraph/pkg/logging"
	"github.com/stormlabs/stormgraph/pkg/storage"
	"github.com/stormlabs/stormgraph/pkg/validation"
)

// LoadSnapshot replaces the whole graph from a raw snapshot document. A
// malformed or inconsistent snapshot is reported as a validation failure,
// the same shape as any other rejected mutation; the prior graph content is
// kept intact.
func (e *Engine) LoadSnapshot(data []byte) *validation.Result {
	result := validation.OK()
	if err := e.store.LoadJSON(data); err != nil {
		result.AddError(err.Error())
		e.metrics.RecordMutation("loadSnapshot", false)
		e.logger.Warn("snapshot rejected", logging.Err(err))
		return result
	}

	e.metrics.RecordMutation("loadSnapshot", true)
	e.updateSizeGauges()
	stats := e.store.GetStatistics()
	e.logger.Info("snapshot loaded",
		logging.Int("nodes", stats.NodeCount),
		logging.Int("edges", stats.EdgeCount))
	return result
}

// LoadGraph replaces the whole graph from an already-parsed snapshot.
func (e *Engine) LoadGraph(snapshot *storage.Snapshot) *validation.Result {
	result := validation.OK()
	if err := e.store.Load(snapshot); err != nil {
		result.AddError(err.Error())
		e.metrics.RecordMutation("loadSnapshot", false)
		return result
	}
	e.metrics.RecordMutation("loadSnapshot", true)
	e.updateSizeGauges()
	return result
}

// ExportSnapshot serializes the current graph verbatim, extension fields
// included.
func (e *Engine) ExportSnapshot() ([]byte, error) {
	return e.store.ExportJSON()
}
