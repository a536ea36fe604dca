package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// validate is the struct-tag validator for transport-facing request shapes.
var validate = validator.New()

// idPattern is the recommended id charset. A mismatch is advisory only.
var idPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NodeRequest is the payload shape for node creation, as consumed from the
// UI and automation collaborators.
type NodeRequest struct {
	ID    string         `json:"id" validate:"required"`
	Label string         `json:"label" validate:"required"`
	Type  string         `json:"type" validate:"required"`
	Ext   map[string]any `json:"ext,omitempty"`
}

// EdgeRequest is the payload shape for edge creation.
type EdgeRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required"`
	Label  string `json:"label" validate:"required"`
}

// ValidateNodeRequest checks the wire shape of a node payload before it is
// turned into a storage.Node.
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return fmt.Errorf("node request cannot be nil")
	}
	return validate.Struct(req)
}

// ValidateEdgeRequest checks the wire shape of an edge payload.
func ValidateEdgeRequest(req *EdgeRequest) error {
	if req == nil {
		return fmt.Errorf("edge request cannot be nil")
	}
	return validate.Struct(req)
}

// ValidateNode checks a node structurally: non-empty id and label, known
// type. An id outside [a-z0-9_-]+ is a warning, not an error.
func ValidateNode(node *storage.Node) *Result {
	result := OK()

	if node.ID == "" {
		result.AddError("node id must not be empty")
	}
	if node.Label == "" {
		result.AddError(fmt.Sprintf("node '%s' must have a non-empty label", node.ID))
	}
	if !node.Type.IsValid() {
		result.AddError(fmt.Sprintf("node '%s' has unknown type '%s'", node.ID, node.Type))
	}
	if node.ID != "" && !idPattern.MatchString(node.ID) {
		result.AddWarning(fmt.Sprintf("node id '%s' should match [a-z0-9_-]+", node.ID))
	}
	return result
}

// ValidateEdge checks an edge against the store: both endpoints must exist
// and their types must match the compatibility table for the edge label.
// A mismatch error names the offending pair and the permitted pair(s).
func ValidateEdge(gs *storage.GraphStore, edge storage.Edge) *Result {
	result := OK()

	source, err := gs.GetNode(edge.Source)
	if err != nil {
		result.AddError(fmt.Sprintf("edge source node '%s' does not exist", edge.Source))
	}
	target, err := gs.GetNode(edge.Target)
	if err != nil {
		result.AddError(fmt.Sprintf("edge target node '%s' does not exist", edge.Target))
	}
	if !result.Valid {
		return result
	}

	allowed := AllowedPairs(edge.Label)
	if allowed == nil {
		result.AddError(fmt.Sprintf("unknown edge label '%s'", edge.Label))
		return result
	}

	for _, pair := range allowed {
		if source.Type == pair.Source && target.Type == pair.Target {
			return result
		}
	}

	result.AddError(fmt.Sprintf(
		"edge '%s' not allowed from %s to %s (valid: %s)",
		edge.Label, source.Type, target.Type, formatPairs(allowed)))
	return result
}

func formatPairs(pairs []TypePair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s -> %s", pair.Source, pair.Target))
	}
	return strings.Join(parts, ", ")
}
