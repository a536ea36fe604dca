package engine

import (
	"time"

	"github.com/stormlabs/stormgraph/pkg/algorithms"
	"github.com/stormlabs/stormgraph/pkg/projection"
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// timed records query metrics around a query operation.
func (e *Engine) timed(operation string) func() {
	start := time.Now()
	return func() {
		e.metrics.RecordQuery(operation, time.Since(start))
	}
}

// GetGraph returns the whole graph as a snapshot.
func (e *Engine) GetGraph() *storage.Snapshot {
	defer e.timed("getGraph")()
	return e.store.Export()
}

// GetNode returns the node or nil if the id does not resolve.
func (e *Engine) GetNode(id string) *storage.Node {
	defer e.timed("getNode")()
	node, err := e.store.GetNode(id)
	if err != nil {
		return nil
	}
	return node
}

// GetNodesByType returns every node with the given type tag.
func (e *Engine) GetNodesByType(nodeType storage.NodeType) []*storage.Node {
	defer e.timed("getNodesByType")()
	return e.store.GetNodesByType(nodeType)
}

// GetNodeEdges returns every edge incident to the node.
func (e *Engine) GetNodeEdges(id string) []storage.Edge {
	defer e.timed("getNodeEdges")()
	return e.store.GetNodeEdges(id)
}

// GetProcessFlow returns the derived process flow of a command, or nil if
// the id does not resolve to a command.
func (e *Engine) GetProcessFlow(commandID string) *projection.ProcessFlow {
	defer e.timed("getProcessFlow")()
	return projection.GetProcessFlow(e.store, commandID)
}

// GetAllProcessFlows returns the process flow of every command.
func (e *Engine) GetAllProcessFlows() []*projection.ProcessFlow {
	defer e.timed("getAllProcessFlows")()
	return projection.GetAllProcessFlows(e.store)
}

// GetAggregateView returns the derived view of an aggregate, or nil if the
// id does not resolve to an aggregate.
func (e *Engine) GetAggregateView(aggregateID string) *projection.AggregateView {
	defer e.timed("getAggregateView")()
	return projection.GetAggregateView(e.store, aggregateID)
}

// GetAllAggregateViews returns the view of every aggregate.
func (e *Engine) GetAllAggregateViews() []*projection.AggregateView {
	defer e.timed("getAllAggregateViews")()
	return projection.GetAllAggregateViews(e.store)
}

// GetProcessesByEvent returns the process flows of every command emitting
// the event.
func (e *Engine) GetProcessesByEvent(eventID string) []*projection.ProcessFlow {
	defer e.timed("getProcessesByEvent")()
	return projection.GetProcessesByEvent(e.store, eventID)
}

// GetAggregatesByActor returns the views of every aggregate the actor's
// commands act on.
func (e *Engine) GetAggregatesByActor(actorID string) []*projection.AggregateView {
	defer e.timed("getAggregatesByActor")()
	return projection.GetAggregatesByActor(e.store, actorID)
}

// DetectCircularDependencies returns every cycle found in the graph, as
// ordered node-id sequences.
func (e *Engine) DetectCircularDependencies() []algorithms.Cycle {
	defer e.timed("detectCircularDependencies")()
	return algorithms.DetectCycles(e.store)
}

// GetChangeImpactAnalysis computes direct and indirect impact of changing a
// node. Returns nil if the id does not resolve.
func (e *Engine) GetChangeImpactAnalysis(nodeID string) *algorithms.ImpactAnalysis {
	defer e.timed("getChangeImpactAnalysis")()
	return algorithms.GetImpactAnalysis(e.store, nodeID)
}

// FindCriticalNodes ranks nodes by degree centrality.
func (e *Engine) FindCriticalNodes() []algorithms.CriticalNode {
	defer e.timed("findCriticalNodes")()
	return algorithms.FindCriticalNodes(e.store)
}

// GetCommandExecutionPaths enumerates classified execution paths from a
// command to each of its events. Returns nil for a non-command id.
func (e *Engine) GetCommandExecutionPaths(commandID string) []projection.ExecutionPath {
	defer e.timed("getCommandExecutionPaths")()
	return projection.GetCommandExecutionPaths(e.store, commandID)
}

// AnalyzeAggregateHealth scores an aggregate's cohesion and consistency.
// Returns nil for a non-aggregate id.
func (e *Engine) AnalyzeAggregateHealth(aggregateID string) *projection.AggregateHealth {
	defer e.timed("analyzeAggregateHealth")()
	return projection.AnalyzeAggregateHealth(e.store, aggregateID)
}

// GetGraphHealthMetrics computes aggregate structural metrics.
func (e *Engine) GetGraphHealthMetrics() algorithms.HealthMetrics {
	defer e.timed("getGraphHealthMetrics")()
	return algorithms.ComputeHealthMetrics(e.store)
}

// GetStatistics returns node/edge counts by type and label.
func (e *Engine) GetStatistics() storage.Statistics {
	defer e.timed("getStatistics")()
	return e.store.GetStatistics()
}
