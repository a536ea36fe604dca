package storage

import (
	"encoding/json"
	"fmt"
)

// NodeType is the closed set of EventStorming element kinds.
type NodeType string

const (
	TypeActor          NodeType = "actor"
	TypeCommand        NodeType = "command"
	TypeAggregate      NodeType = "aggregate"
	TypeEvent          NodeType = "event"
	TypeViewModel      NodeType = "viewmodel"
	TypePreconditions  NodeType = "preconditions"
	TypeGuards         NodeType = "guards"
	TypeBranchingLogic NodeType = "branchinglogic"
	TypeBoundary       NodeType = "boundary"
)

// NodeTypes lists every valid node type.
var NodeTypes = []NodeType{
	TypeActor,
	TypeCommand,
	TypeAggregate,
	TypeEvent,
	TypeViewModel,
	TypePreconditions,
	TypeGuards,
	TypeBranchingLogic,
	TypeBoundary,
}

// IsValid reports whether t is a member of the node type vocabulary.
func (t NodeType) IsValid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RelationLabel is the fixed relationship vocabulary between nodes.
type RelationLabel string

const (
	LabelIssues           RelationLabel = "issues"
	LabelOn               RelationLabel = "on"
	LabelThen             RelationLabel = "then"
	LabelIf               RelationLabel = "if"
	LabelIfGuard          RelationLabel = "if guard"
	LabelIfPreconditions  RelationLabel = "if preconditions"
	LabelThenPolicy       RelationLabel = "then (policy)"
	LabelSupportsDecision RelationLabel = "supports decision for"
	LabelMarksPivotal     RelationLabel = "marks pivotal"
)

// RelationLabels lists every valid edge label.
var RelationLabels = []RelationLabel{
	LabelIssues,
	LabelOn,
	LabelThen,
	LabelIf,
	LabelIfGuard,
	LabelIfPreconditions,
	LabelThenPolicy,
	LabelSupportsDecision,
	LabelMarksPivotal,
}

// IsValid reports whether l is a member of the relationship vocabulary.
func (l RelationLabel) IsValid() bool {
	for _, known := range RelationLabels {
		if l == known {
			return true
		}
	}
	return false
}

// Node is a vertex in the model graph. ID and Label are required; Type is
// immutable after creation. Ext carries free-form extension fields
// (description, business context, code snippets, position, subtype, ...)
// which the engine never interprets, only round-trips.
type Node struct {
	ID    string
	Label string
	Type  NodeType
	Ext   map[string]any
}

// Edge is a directed, labelled relationship. The (Source, Label, Target)
// triple is unique within a graph.
type Edge struct {
	Source string        `json:"source"`
	Target string        `json:"target"`
	Label  RelationLabel `json:"label"`
}

// Key returns the canonical edge key used for uniqueness and lookup.
func (e Edge) Key() string {
	return EdgeKey(e.Source, e.Label, e.Target)
}

// EdgeKey builds the canonical `source|label|target` key.
func EdgeKey(source string, label RelationLabel, target string) string {
	return source + "|" + string(label) + "|" + target
}

// Clone creates a deep copy of a node.
func (n *Node) Clone() *Node {
	clone := &Node{
		ID:    n.ID,
		Label: n.Label,
		Type:  n.Type,
	}
	if n.Ext != nil {
		clone.Ext = make(map[string]any, len(n.Ext))
		for k, v := range n.Ext {
			clone.Ext[k] = v
		}
	}
	return clone
}

// MarshalJSON flattens Ext into the top-level object so snapshots carry
// extension fields verbatim alongside id/label/type.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(n.Ext)+3)
	for k, v := range n.Ext {
		out[k] = v
	}
	out["id"] = n.ID
	out["label"] = n.Label
	out["type"] = string(n.Type)
	return json.Marshal(out)
}

// UnmarshalJSON splits id/label/type out of the object and keeps every other
// field as opaque extension payload.
func (n *Node) UnmarshalJSON(data []byte) error {
	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, ok := raw["id"].(string)
	if !ok {
		return fmt.Errorf("node is missing a string id")
	}
	n.ID = id
	delete(raw, "id")

	if label, ok := raw["label"].(string); ok {
		n.Label = label
	}
	delete(raw, "label")

	if typ, ok := raw["type"].(string); ok {
		n.Type = NodeType(typ)
	}
	delete(raw, "type")

	if len(raw) > 0 {
		n.Ext = raw
	}
	return nil
}
