package constraints

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// Reader is the read-only store surface the methodology rules need. Keeping
// it an interface makes rules testable without a full GraphStore.
type Reader interface {
	GetAllNodes() []*storage.Node
	GetNodesByType(nodeType storage.NodeType) []*storage.Node
	GetNodeEdges(id string) []storage.Edge
	OutNeighborsByLabel(id string, label storage.RelationLabel) []*storage.Node
	InNeighborsByLabel(id string, label storage.RelationLabel) []*storage.Node
	OutNeighborIDs(id string) []string
	NodeIDs() []string
}

// Severity indicates how serious a methodology finding is.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Violation is a structured methodology finding. AffectedNodes carries real
// node-id references rather than ids re-parsed out of message text.
type Violation struct {
	Rule          string   `json:"rule"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	AffectedNodes []string `json:"affectedNodes"`
}

// Constraint is a single methodology rule evaluated against the graph.
type Constraint interface {
	// Check returns the rule's violations (empty if the graph conforms).
	Check(graph Reader) []Violation

	// Name returns a short identifier for the rule.
	Name() string
}

// Report is the outcome of a full methodology validation pass.
type Report struct {
	Valid      bool        `json:"isValid"`
	Violations []Violation `json:"violations"`
	Warnings   []Violation `json:"warnings"`
	Cycles     [][]string  `json:"cycles"`
}
