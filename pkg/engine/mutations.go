package engine

import (
	"fmt"

	"github.com/stormlabs/stormgraph/pkg/logging"
	"github.com/stormlabs/stormgraph/pkg/storage"
	"github.com/stormlabs/stormgraph/pkg/validation"
)

// AddNode validates and inserts a node. Validation always precedes the
// mutation, so the store never holds an invalid node.
func (e *Engine) AddNode(node *storage.Node) *validation.Result {
	result := validation.ValidateNode(node)
	if !result.Valid {
		e.metrics.ValidationFailures.WithLabelValues("node").Inc()
		e.metrics.RecordMutation("addNode", false)
		return result
	}

	if !e.store.AddNode(node) {
		result.AddError(fmt.Sprintf("node '%s' already exists", node.ID))
		e.metrics.RecordMutation("addNode", false)
		return result
	}

	e.metrics.RecordMutation("addNode", true)
	e.updateSizeGauges()
	e.logger.Debug("node added", logging.String("id", node.ID), logging.String("type", string(node.Type)))
	return result
}

// UpdateNode shallow-merges label and extension fields into an existing
// node. The type tag cannot be changed.
func (e *Engine) UpdateNode(id string, label string, ext map[string]any) *validation.Result {
	result := validation.OK()
	if err := e.store.UpdateNode(id, label, ext); err != nil {
		result.AddError(fmt.Sprintf("node '%s' does not exist", id))
		e.metrics.RecordMutation("updateNode", false)
		return result
	}
	e.metrics.RecordMutation("updateNode", true)
	return result
}

// RemoveNode deletes a node and every edge incident to it.
func (e *Engine) RemoveNode(id string) *validation.Result {
	result := validation.OK()
	if err := e.store.RemoveNode(id); err != nil {
		result.AddError(fmt.Sprintf("node '%s' does not exist", id))
		e.metrics.RecordMutation("removeNode", false)
		return result
	}
	e.metrics.RecordMutation("removeNode", true)
	e.updateSizeGauges()
	e.logger.Debug("node removed", logging.String("id", id))
	return result
}

// AddEdge validates an edge against the compatibility table and inserts it.
func (e *Engine) AddEdge(edge storage.Edge) *validation.Result {
	result := validation.ValidateEdge(e.store, edge)
	if !result.Valid {
		e.metrics.ValidationFailures.WithLabelValues("edge").Inc()
		e.metrics.RecordMutation("addEdge", false)
		return result
	}

	added, err := e.store.AddEdge(edge)
	if err != nil {
		// Endpoints vanished between validate and mutate cannot happen on
		// the single-writer path, but the store re-checks regardless.
		result.AddError(err.Error())
		e.metrics.RecordMutation("addEdge", false)
		return result
	}
	if !added {
		result.AddError(fmt.Sprintf(
			"edge %s -[%s]-> %s already exists", edge.Source, edge.Label, edge.Target))
		e.metrics.RecordMutation("addEdge", false)
		return result
	}

	e.metrics.RecordMutation("addEdge", true)
	e.updateSizeGauges()
	return result
}

// RemoveEdge deletes the edge identified by the triple.
func (e *Engine) RemoveEdge(source string, label storage.RelationLabel, target string) *validation.Result {
	result := validation.OK()
	if err := e.store.RemoveEdge(source, label, target); err != nil {
		result.AddError(fmt.Sprintf(
			"edge %s -[%s]-> %s does not exist", source, label, target))
		e.metrics.RecordMutation("removeEdge", false)
		return result
	}
	e.metrics.RecordMutation("removeEdge", true)
	e.updateSizeGauges()
	return result
}

// CommandFlowSpec names the four elements of a basic command flow.
type CommandFlowSpec struct {
	ActorID        string `json:"actorId"`
	ActorLabel     string `json:"actorLabel"`
	CommandID      string `json:"commandId"`
	CommandLabel   string `json:"commandLabel"`
	AggregateID    string `json:"aggregateId"`
	AggregateLabel string `json:"aggregateLabel"`
	EventID        string `json:"eventId"`
	EventLabel     string `json:"eventLabel"`
}

// CreateCommandFlow is the compound helper wiring a full
// actor->command->aggregate/event flow: four node adds and three edge adds
// (`issues`, `on`, `then`) with their validation results merged. Nodes that
// already exist are reused with a warning so flows can be attached to
// elements placed earlier.
func (e *Engine) CreateCommandFlow(spec CommandFlowSpec) *validation.Result {
	result := validation.OK()

	nodes := []*storage.Node{
		{ID: spec.ActorID, Label: spec.ActorLabel, Type: storage.TypeActor},
		{ID: spec.CommandID, Label: spec.CommandLabel, Type: storage.TypeCommand},
		{ID: spec.AggregateID, Label: spec.AggregateLabel, Type: storage.TypeAggregate},
		{ID: spec.EventID, Label: spec.EventLabel, Type: storage.TypeEvent},
	}
	for _, node := range nodes {
		if e.store.HasNode(node.ID) {
			result.AddWarning(fmt.Sprintf("node '%s' already exists, reusing it", node.ID))
			continue
		}
		result.Merge(e.AddNode(node))
	}
	if !result.Valid {
		return result
	}

	edges := []storage.Edge{
		{Source: spec.ActorID, Label: storage.LabelIssues, Target: spec.CommandID},
		{Source: spec.CommandID, Label: storage.LabelOn, Target: spec.AggregateID},
		{Source: spec.CommandID, Label: storage.LabelThen, Target: spec.EventID},
	}
	for _, edge := range edges {
		result.Merge(e.AddEdge(edge))
	}
	return result
}

// GuardSpec names one guard or precondition element.
type GuardSpec struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// AddCommandGuards attaches guard nodes to a command, one node add plus one
// `if guard` edge per item, with merged validation.
func (e *Engine) AddCommandGuards(commandID string, guards []GuardSpec) *validation.Result {
	return e.attachToCommand(commandID, guards, storage.TypeGuards, storage.LabelIfGuard)
}

// AddCommandPreconditions attaches precondition nodes to a command, one node
// add plus one `if preconditions` edge per item, with merged validation.
func (e *Engine) AddCommandPreconditions(commandID string, preconditions []GuardSpec) *validation.Result {
	return e.attachToCommand(commandID, preconditions, storage.TypePreconditions, storage.LabelIfPreconditions)
}

func (e *Engine) attachToCommand(commandID string, items []GuardSpec, nodeType storage.NodeType, label storage.RelationLabel) *validation.Result {
	result := validation.OK()
	if !e.store.HasNode(commandID) {
		result.AddError(fmt.Sprintf("command '%s' does not exist", commandID))
		return result
	}

	for _, item := range items {
		if !e.store.HasNode(item.ID) {
			result.Merge(e.AddNode(&storage.Node{ID: item.ID, Label: item.Label, Type: nodeType}))
		}
		result.Merge(e.AddEdge(storage.Edge{Source: commandID, Label: label, Target: item.ID}))
	}
	return result
}
