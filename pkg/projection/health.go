package projection

import (
	"fmt"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// AggregateHealth is a heuristic health report for one aggregate.
type AggregateHealth struct {
	Aggregate         *storage.Node `json:"aggregate"`
	CommandCount      int           `json:"commandCount"`
	EventCount        int           `json:"eventCount"`
	Cohesion          float64       `json:"cohesion"`
	ConsistencyIssues []string      `json:"consistencyIssues"`
	Recommendations   []string      `json:"recommendations"`
}

// AnalyzeAggregateHealth scores an aggregate's cohesion and flags
// consistency problems. Returns nil if the id is not an aggregate.
//
// Cohesion is min(100, commands*events/(commands+events)*10), a rough
// measure of how tightly the command set and its produced events relate.
func AnalyzeAggregateHealth(graph *storage.GraphStore, aggregateID string) *AggregateHealth {
	view := GetAggregateView(graph, aggregateID)
	if view == nil {
		return nil
	}

	health := &AggregateHealth{
		Aggregate:         view.Aggregate,
		CommandCount:      len(view.Commands),
		EventCount:        len(view.AllEvents),
		ConsistencyIssues: make([]string, 0),
		Recommendations:   make([]string, 0),
	}

	commands := float64(health.CommandCount)
	events := float64(health.EventCount)
	if commands+events > 0 {
		health.Cohesion = commands * events / (commands + events) * 10
		if health.Cohesion > 100 {
			health.Cohesion = 100
		}
	}

	for _, command := range view.Commands {
		if len(graph.OutNeighborsByLabel(command.ID, storage.LabelThen)) == 0 {
			health.ConsistencyIssues = append(health.ConsistencyIssues,
				fmt.Sprintf("command '%s' does not generate any event", command.Label))
		}
	}

	if health.CommandCount > 10 {
		health.Recommendations = append(health.Recommendations,
			"aggregate handles many commands - consider splitting it")
	}
	if health.CommandCount < 2 {
		health.Recommendations = append(health.Recommendations,
			"aggregate handles few commands - consider merging with a related aggregate")
	}
	if health.Cohesion < 30 {
		health.Recommendations = append(health.Recommendations,
			"low cohesion between commands and events - review aggregate boundaries")
	}

	return health
}
