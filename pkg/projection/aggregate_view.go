package projection

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// AggregateView is the derived view of an aggregate: the commands acting on
// it, their processes, every event those produce, and the view models
// supporting the decisions.
type AggregateView struct {
	Aggregate  *storage.Node   `json:"aggregate"`
	Commands   []*storage.Node `json:"commands"`
	Processes  []*ProcessFlow  `json:"processes"`
	AllEvents  []*storage.Node `json:"allEvents"`
	ViewModels []*storage.Node `json:"viewModels"`
}

// GetAggregateView builds the aggregate view. Returns nil if the id does
// not resolve to an aggregate node.
func GetAggregateView(graph *storage.GraphStore, aggregateID string) *AggregateView {
	aggregate, err := graph.GetNode(aggregateID)
	if err != nil || aggregate.Type != storage.TypeAggregate {
		return nil
	}

	view := &AggregateView{
		Aggregate:  aggregate,
		Commands:   graph.InNeighborsByLabel(aggregateID, storage.LabelOn),
		Processes:  make([]*ProcessFlow, 0),
		AllEvents:  make([]*storage.Node, 0),
		ViewModels: make([]*storage.Node, 0),
	}

	seenEvents := make(map[string]bool)
	for _, command := range view.Commands {
		flow := GetProcessFlow(graph, command.ID)
		if flow == nil {
			continue
		}
		view.Processes = append(view.Processes, flow)

		for _, event := range flow.Events {
			if !seenEvents[event.ID] {
				seenEvents[event.ID] = true
				view.AllEvents = append(view.AllEvents, event)
			}
		}

		view.ViewModels = append(view.ViewModels,
			graph.InNeighborsByLabel(command.ID, storage.LabelSupportsDecision)...)
	}

	return view
}

// GetAllAggregateViews builds the view of every aggregate in the graph.
func GetAllAggregateViews(graph *storage.GraphStore) []*AggregateView {
	aggregates := graph.GetNodesByType(storage.TypeAggregate)
	views := make([]*AggregateView, 0, len(aggregates))
	for _, aggregate := range aggregates {
		if view := GetAggregateView(graph, aggregate.ID); view != nil {
			views = append(views, view)
		}
	}
	return views
}

// GetAggregatesByActor returns the view of every aggregate the actor's
// commands act on. Empty if the id is not an actor.
func GetAggregatesByActor(graph *storage.GraphStore, actorID string) []*AggregateView {
	actor, err := graph.GetNode(actorID)
	if err != nil || actor.Type != storage.TypeActor {
		return nil
	}

	seen := make(map[string]bool)
	views := make([]*AggregateView, 0)
	for _, command := range graph.OutNeighborsByLabel(actorID, storage.LabelIssues) {
		for _, aggregate := range graph.OutNeighborsByLabel(command.ID, storage.LabelOn) {
			if seen[aggregate.ID] {
				continue
			}
			seen[aggregate.ID] = true
			if view := GetAggregateView(graph, aggregate.ID); view != nil {
				views = append(views, view)
			}
		}
	}
	return views
}
