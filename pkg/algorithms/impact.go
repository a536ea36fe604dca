package algorithms

import (
	"sort"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// RiskLevel bands the blast radius of a change.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ImpactAnalysis describes what a change to one node can reach.
type ImpactAnalysis struct {
	NodeID         string    `json:"nodeId"`
	DirectImpact   []string  `json:"directImpact"`
	IndirectImpact []string  `json:"indirectImpact"`
	TotalReach     int       `json:"totalReach"`
	RiskLevel      RiskLevel `json:"riskLevel"`
}

// GetImpactAnalysis computes forward reachability from a node. Direct impact
// is the one-hop out-neighborhood; indirect impact is everything further
// forward-reachable via BFS from those neighbors, minus the direct set.
// Returns nil if the node does not exist.
func GetImpactAnalysis(graph *storage.GraphStore, nodeID string) *ImpactAnalysis {
	if !graph.HasNode(nodeID) {
		return nil
	}

	direct := graph.OutNeighborIDs(nodeID)
	directSet := make(map[string]bool, len(direct))
	for _, id := range direct {
		directSet[id] = true
	}

	// BFS forward from the direct neighbors.
	reached := make(map[string]bool, len(direct))
	queue := append([]string(nil), direct...)
	for _, id := range direct {
		reached[id] = true
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range graph.OutNeighborIDs(current) {
			if neighbor == nodeID || reached[neighbor] {
				continue
			}
			reached[neighbor] = true
			queue = append(queue, neighbor)
		}
	}

	indirect := make([]string, 0)
	for id := range reached {
		if !directSet[id] {
			indirect = append(indirect, id)
		}
	}
	sort.Strings(indirect)
	sort.Strings(direct)

	totalReach := len(reached)
	return &ImpactAnalysis{
		NodeID:         nodeID,
		DirectImpact:   direct,
		IndirectImpact: indirect,
		TotalReach:     totalReach,
		RiskLevel:      classifyRisk(totalReach),
	}
}

// classifyRisk bands total reach: >10 HIGH, >5 MEDIUM, else LOW.
func classifyRisk(reach int) RiskLevel {
	switch {
	case reach > 10:
		return RiskHigh
	case reach > 5:
		return RiskMedium
	default:
		return RiskLow
	}
}
