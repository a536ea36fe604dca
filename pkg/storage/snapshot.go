package storage

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Snapshot is the whole-graph wire format consumed and produced by the
// persistence collaborators. There is no version field; load fully replaces
// prior content.
type Snapshot struct {
	Nodes []*Node `json:"nodes"`
	Edges []Edge  `json:"edges"`
}

// Export serializes the current graph, including all extension fields.
// Nodes and edges are emitted in a stable order so exports are diffable.
func (gs *GraphStore) Export() *Snapshot {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	nodes := make([]*Node, 0, len(gs.nodes))
	for _, node := range gs.nodes {
		nodes = append(nodes, node.Clone())
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]Edge, 0, len(gs.edges))
	for _, edge := range gs.edges {
		edges = append(edges, *edge)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Key() < edges[j].Key() })

	return &Snapshot{Nodes: nodes, Edges: edges}
}

// Load replaces the whole graph with the snapshot content. Edges referencing
// missing nodes are rejected up front so the store is never left holding a
// dangling edge; on any error the previous content is kept intact.
func (gs *GraphStore) Load(snapshot *Snapshot) error {
	nodes := make(map[string]*Node, len(snapshot.Nodes))
	for _, node := range snapshot.Nodes {
		if node.ID == "" {
			return fmt.Errorf("snapshot contains a node without an id")
		}
		if _, dup := nodes[node.ID]; dup {
			return fmt.Errorf("snapshot contains duplicate node id %q", node.ID)
		}
		nodes[node.ID] = node.Clone()
	}

	edges := make(map[string]*Edge, len(snapshot.Edges))
	for _, edge := range snapshot.Edges {
		if _, exists := nodes[edge.Source]; !exists {
			return fmt.Errorf("snapshot edge references missing source node %q", edge.Source)
		}
		if _, exists := nodes[edge.Target]; !exists {
			return fmt.Errorf("snapshot edge references missing target node %q", edge.Target)
		}
		key := edge.Key()
		if _, dup := edges[key]; dup {
			return fmt.Errorf("snapshot contains duplicate edge %q", key)
		}
		e := edge
		edges[key] = &e
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.nodes = nodes
	gs.edges = edges
	gs.nodesByType = make(map[NodeType][]string)
	gs.outgoing = make(map[string]map[RelationLabel][]string)
	gs.incoming = make(map[string]map[RelationLabel][]string)

	for id, node := range nodes {
		gs.nodesByType[node.Type] = append(gs.nodesByType[node.Type], id)
		gs.outgoing[id] = make(map[RelationLabel][]string)
		gs.incoming[id] = make(map[RelationLabel][]string)
	}
	for _, edge := range edges {
		gs.outgoing[edge.Source][edge.Label] = append(gs.outgoing[edge.Source][edge.Label], edge.Target)
		gs.incoming[edge.Target][edge.Label] = append(gs.incoming[edge.Target][edge.Label], edge.Source)
	}
	return nil
}

// LoadJSON parses a raw snapshot document and loads it.
func (gs *GraphStore) LoadJSON(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return gs.Load(&snapshot)
}

// ExportJSON serializes the current graph to a snapshot document.
func (gs *GraphStore) ExportJSON() ([]byte, error) {
	data, err := json.Marshal(gs.Export())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}
