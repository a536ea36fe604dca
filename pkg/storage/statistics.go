package storage

// Statistics summarizes store contents.
type Statistics struct {
	NodeCount    int                   `json:"nodeCount"`
	EdgeCount    int                   `json:"edgeCount"`
	NodesByType  map[NodeType]int      `json:"nodesByType"`
	EdgesByLabel map[RelationLabel]int `json:"edgesByLabel"`
}

// GetStatistics returns node/edge counts broken down by type and label.
func (gs *GraphStore) GetStatistics() Statistics {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	stats := Statistics{
		NodeCount:    len(gs.nodes),
		EdgeCount:    len(gs.edges),
		NodesByType:  make(map[NodeType]int),
		EdgesByLabel: make(map[RelationLabel]int),
	}
	for _, node := range gs.nodes {
		stats.NodesByType[node.Type]++
	}
	for _, edge := range gs.edges {
		stats.EdgesByLabel[edge.Label]++
	}
	return stats
}
