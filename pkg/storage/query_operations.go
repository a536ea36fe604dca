package storage

// GetNodesByType returns clones of every node with the given type tag.
func (gs *GraphStore) GetNodesByType(nodeType NodeType) []*Node {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	ids := gs.nodesByType[nodeType]
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if node, exists := gs.nodes[id]; exists {
			nodes = append(nodes, node.Clone())
		}
	}
	return nodes
}

// GetAllNodes returns clones of every node in the graph.
func (gs *GraphStore) GetAllNodes() []*Node {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	nodes := make([]*Node, 0, len(gs.nodes))
	for _, node := range gs.nodes {
		nodes = append(nodes, node.Clone())
	}
	return nodes
}

// GetAllEdges returns a copy of every edge in the graph.
func (gs *GraphStore) GetAllEdges() []Edge {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	edges := make([]Edge, 0, len(gs.edges))
	for _, edge := range gs.edges {
		edges = append(edges, *edge)
	}
	return edges
}

// GetNodeEdges returns every edge incident to the node, as source or target.
func (gs *GraphStore) GetNodeEdges(id string) []Edge {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	edges := make([]Edge, 0)
	for label, targets := range gs.outgoing[id] {
		for _, target := range targets {
			edges = append(edges, Edge{Source: id, Label: label, Target: target})
		}
	}
	for label, sources := range gs.incoming[id] {
		for _, source := range sources {
			// Self-loops already appear in the outgoing pass.
			if source == id {
				continue
			}
			edges = append(edges, Edge{Source: source, Label: label, Target: id})
		}
	}
	return edges
}

// OutNeighborsByLabel returns clones of the nodes reachable from id by one
// outgoing edge with the given label, in edge insertion order.
func (gs *GraphStore) OutNeighborsByLabel(id string, label RelationLabel) []*Node {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	targets := gs.outgoing[id][label]
	nodes := make([]*Node, 0, len(targets))
	for _, target := range targets {
		if node, exists := gs.nodes[target]; exists {
			nodes = append(nodes, node.Clone())
		}
	}
	return nodes
}

// InNeighborsByLabel returns clones of the nodes with an edge of the given
// label pointing at id, in edge insertion order.
func (gs *GraphStore) InNeighborsByLabel(id string, label RelationLabel) []*Node {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	sources := gs.incoming[id][label]
	nodes := make([]*Node, 0, len(sources))
	for _, source := range sources {
		if node, exists := gs.nodes[source]; exists {
			nodes = append(nodes, node.Clone())
		}
	}
	return nodes
}

// OutNeighborIDs returns the ids of every node reachable from id by one
// outgoing edge of any label. Used by the traversal algorithms.
func (gs *GraphStore) OutNeighborIDs(id string) []string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	return gs.outNeighborIDsLocked(id)
}

func (gs *GraphStore) outNeighborIDsLocked(id string) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, targets := range gs.outgoing[id] {
		for _, target := range targets {
			if !seen[target] {
				seen[target] = true
				ids = append(ids, target)
			}
		}
	}
	return ids
}

// InNeighborIDs returns the ids of every node with an edge of any label
// pointing at id.
func (gs *GraphStore) InNeighborIDs(id string) []string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, sources := range gs.incoming[id] {
		for _, source := range sources {
			if !seen[source] {
				seen[source] = true
				ids = append(ids, source)
			}
		}
	}
	return ids
}

// NodeIDs returns every node id in the graph.
func (gs *GraphStore) NodeIDs() []string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	ids := make([]string, 0, len(gs.nodes))
	for id := range gs.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Degree returns the in-degree plus out-degree of the node, counting one per
// incident edge.
func (gs *GraphStore) Degree(id string) int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	degree := 0
	for _, targets := range gs.outgoing[id] {
		degree += len(targets)
	}
	for _, sources := range gs.incoming[id] {
		degree += len(sources)
	}
	return degree
}
