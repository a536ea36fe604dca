package algorithms

import (
	"sort"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// CriticalityLevel bands a node's degree centrality.
type CriticalityLevel string

const (
	CriticalityLow    CriticalityLevel = "LOW"
	CriticalityMedium CriticalityLevel = "MEDIUM"
	CriticalityHigh   CriticalityLevel = "HIGH"
)

// CriticalNode is a node ranked by degree centrality.
type CriticalNode struct {
	NodeID      string           `json:"nodeId"`
	Label       string           `json:"label"`
	Type        storage.NodeType `json:"type"`
	Score       int              `json:"score"`
	Criticality CriticalityLevel `json:"criticality"`
}

// FindCriticalNodes ranks nodes by degree centrality (in-degree plus
// out-degree). Only nodes with a positive score are returned, sorted
// descending; ties break on node id so the ranking is stable.
func FindCriticalNodes(graph *storage.GraphStore) []CriticalNode {
	critical := make([]CriticalNode, 0)
	for _, node := range graph.GetAllNodes() {
		score := graph.Degree(node.ID)
		if score <= 0 {
			continue
		}
		critical = append(critical, CriticalNode{
			NodeID:      node.ID,
			Label:       node.Label,
			Type:        node.Type,
			Score:       score,
			Criticality: classifyCriticality(score),
		})
	}

	sort.Slice(critical, func(i, j int) bool {
		if critical[i].Score != critical[j].Score {
			return critical[i].Score > critical[j].Score
		}
		return critical[i].NodeID < critical[j].NodeID
	})
	return critical
}

// classifyCriticality bands a degree score: >20 HIGH, >10 MEDIUM, else LOW.
func classifyCriticality(score int) CriticalityLevel {
	switch {
	case score > 20:
		return CriticalityHigh
	case score > 10:
		return CriticalityMedium
	default:
		return CriticalityLow
	}
}
