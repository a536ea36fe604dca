// Package projection derives process-flow and aggregate-view reports from
// the typed graph store. Projections are always recomputed from current
// store state; nothing here is cached.
package projection

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// ProcessFlow is the derived view of a single command: who issues it, what
// it acts on, what guards it, and what it produces.
type ProcessFlow struct {
	Command           *storage.Node   `json:"command"`
	Actor             *storage.Node   `json:"actor"`
	Aggregate         *storage.Node   `json:"aggregate"`
	Guards            []*storage.Node `json:"guards"`
	Preconditions     []*storage.Node `json:"preconditions"`
	Events            []*storage.Node `json:"events"`
	BranchingLogic    []*storage.Node `json:"branchingLogic"`
	PoliciesTriggered []*storage.Node `json:"policiesTriggered"`
}

// GetProcessFlow builds the process flow for a command. Returns nil if the
// id does not resolve to a command node.
func GetProcessFlow(graph *storage.GraphStore, commandID string) *ProcessFlow {
	command, err := graph.GetNode(commandID)
	if err != nil || command.Type != storage.TypeCommand {
		return nil
	}

	flow := &ProcessFlow{
		Command:           command,
		Guards:            graph.OutNeighborsByLabel(commandID, storage.LabelIfGuard),
		Preconditions:     graph.OutNeighborsByLabel(commandID, storage.LabelIfPreconditions),
		Events:            graph.OutNeighborsByLabel(commandID, storage.LabelThen),
		BranchingLogic:    make([]*storage.Node, 0),
		PoliciesTriggered: make([]*storage.Node, 0),
	}

	if actors := graph.InNeighborsByLabel(commandID, storage.LabelIssues); len(actors) > 0 {
		flow.Actor = actors[0]
	}
	if aggregates := graph.OutNeighborsByLabel(commandID, storage.LabelOn); len(aggregates) > 0 {
		flow.Aggregate = aggregates[0]
	}

	for _, event := range flow.Events {
		flow.BranchingLogic = append(flow.BranchingLogic,
			graph.OutNeighborsByLabel(event.ID, storage.LabelIf)...)
		flow.PoliciesTriggered = append(flow.PoliciesTriggered,
			graph.OutNeighborsByLabel(event.ID, storage.LabelThenPolicy)...)
	}

	return flow
}

// GetAllProcessFlows builds the process flow of every command in the graph.
func GetAllProcessFlows(graph *storage.GraphStore) []*ProcessFlow {
	commands := graph.GetNodesByType(storage.TypeCommand)
	flows := make([]*ProcessFlow, 0, len(commands))
	for _, command := range commands {
		if flow := GetProcessFlow(graph, command.ID); flow != nil {
			flows = append(flows, flow)
		}
	}
	return flows
}

// GetProcessesByEvent returns the process flow of every command that emits
// the given event via a `then` edge. Empty if the id is not an event.
func GetProcessesByEvent(graph *storage.GraphStore, eventID string) []*ProcessFlow {
	event, err := graph.GetNode(eventID)
	if err != nil || event.Type != storage.TypeEvent {
		return nil
	}

	producers := graph.InNeighborsByLabel(eventID, storage.LabelThen)
	flows := make([]*ProcessFlow, 0, len(producers))
	for _, command := range producers {
		if flow := GetProcessFlow(graph, command.ID); flow != nil {
			flows = append(flows, flow)
		}
	}
	return flows
}
