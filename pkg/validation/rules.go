package validation

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// TypePair is an allowed (source type, target type) combination.
type TypePair struct {
	Source storage.NodeType
	Target storage.NodeType
}

// edgeCompatibility is the fixed methodology table: one permitted endpoint
// type pair per relationship label.
var edgeCompatibility = map[storage.RelationLabel][]TypePair{
	storage.LabelIssues:           {{Source: storage.TypeActor, Target: storage.TypeCommand}},
	storage.LabelOn:               {{Source: storage.TypeCommand, Target: storage.TypeAggregate}},
	storage.LabelThen:             {{Source: storage.TypeCommand, Target: storage.TypeEvent}},
	storage.LabelIf:               {{Source: storage.TypeEvent, Target: storage.TypeBranchingLogic}},
	storage.LabelIfGuard:          {{Source: storage.TypeCommand, Target: storage.TypeGuards}},
	storage.LabelIfPreconditions:  {{Source: storage.TypeCommand, Target: storage.TypePreconditions}},
	storage.LabelThenPolicy:       {{Source: storage.TypeEvent, Target: storage.TypeCommand}},
	storage.LabelSupportsDecision: {{Source: storage.TypeViewModel, Target: storage.TypeCommand}},
	storage.LabelMarksPivotal:     {{Source: storage.TypeEvent, Target: storage.TypeBoundary}},
}

// AllowedPairs returns the permitted endpoint type pairs for a label, or nil
// for an unknown label.
func AllowedPairs(label storage.RelationLabel) []TypePair {
	return edgeCompatibility[label]
}
