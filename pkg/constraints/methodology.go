package constraints

import (
	"fmt"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// OrphanRule flags nodes that are not an endpoint of any edge.
type OrphanRule struct{}

func (OrphanRule) Name() string { return "orphaned-node" }

func (r OrphanRule) Check(graph Reader) []Violation {
	violations := make([]Violation, 0)
	for _, node := range graph.GetAllNodes() {
		if len(graph.GetNodeEdges(node.ID)) == 0 {
			violations = append(violations, Violation{
				Rule:          r.Name(),
				Severity:      Warning,
				Message:       fmt.Sprintf("node '%s' (%s) is orphaned - not connected to any other node", node.Label, node.Type),
				AffectedNodes: []string{node.ID},
			})
		}
	}
	return violations
}

// CommandEmitsEventRule requires every command to have at least one outgoing
// `then` edge. This is the one hard methodology error: a command that
// produces no event models nothing.
type CommandEmitsEventRule struct{}

func (CommandEmitsEventRule) Name() string { return "command-emits-event" }

func (r CommandEmitsEventRule) Check(graph Reader) []Violation {
	violations := make([]Violation, 0)
	for _, command := range graph.GetNodesByType(storage.TypeCommand) {
		if len(graph.OutNeighborsByLabel(command.ID, storage.LabelThen)) == 0 {
			violations = append(violations, Violation{
				Rule:          r.Name(),
				Severity:      Error,
				Message:       fmt.Sprintf("command '%s' must generate at least one event", command.Label),
				AffectedNodes: []string{command.ID},
			})
		}
	}
	return violations
}

// EventHasProducerRule flags events with no incoming `then` edge.
type EventHasProducerRule struct{}

func (EventHasProducerRule) Name() string { return "event-has-producer" }

func (r EventHasProducerRule) Check(graph Reader) []Violation {
	violations := make([]Violation, 0)
	for _, event := range graph.GetNodesByType(storage.TypeEvent) {
		if len(graph.InNeighborsByLabel(event.ID, storage.LabelThen)) == 0 {
			violations = append(violations, Violation{
				Rule:          r.Name(),
				Severity:      Warning,
				Message:       fmt.Sprintf("event '%s' is not generated by any command", event.Label),
				AffectedNodes: []string{event.ID},
			})
		}
	}
	return violations
}

// MethodologyRules returns the default rule set, in evaluation order.
func MethodologyRules() []Constraint {
	return []Constraint{
		OrphanRule{},
		CommandEmitsEventRule{},
		EventHasProducerRule{},
	}
}
