package storage

import (
	"sync"
)

// GraphStore is the in-memory typed graph engine core. All lookups are O(1)
// or O(degree); adjacency is indexed per node per relationship label in both
// directions because every higher-level algorithm is built on label-filtered
// neighbor traversal.
//
// The engine itself is synchronous; the RWMutex exists so a multi-threaded
// host (HTTP API, bridge listener) can interleave reads safely. Mutations are
// serialized by the write lock.
type GraphStore struct {
	nodes map[string]*Node
	edges map[string]*Edge

	// Indexes
	nodesByType map[NodeType][]string                 // type -> node IDs
	outgoing    map[string]map[RelationLabel][]string // source -> label -> target IDs
	incoming    map[string]map[RelationLabel][]string // target -> label -> source IDs

	mu sync.RWMutex
}

// NewGraphStore creates an empty graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		nodes:       make(map[string]*Node),
		edges:       make(map[string]*Edge),
		nodesByType: make(map[NodeType][]string),
		outgoing:    make(map[string]map[RelationLabel][]string),
		incoming:    make(map[string]map[RelationLabel][]string),
	}
}

// AddNode inserts a node. Returns false if a node with the same id already
// exists; the existing node is never overwritten.
func (gs *GraphStore) AddNode(node *Node) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if _, exists := gs.nodes[node.ID]; exists {
		return false
	}

	gs.nodes[node.ID] = node.Clone()
	gs.nodesByType[node.Type] = append(gs.nodesByType[node.Type], node.ID)
	gs.outgoing[node.ID] = make(map[RelationLabel][]string)
	gs.incoming[node.ID] = make(map[RelationLabel][]string)
	return true
}

// GetNode retrieves a node by id.
func (gs *GraphStore) GetNode(id string) (*Node, error) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	node, exists := gs.nodes[id]
	if !exists {
		return nil, ErrNodeNotFound
	}
	return node.Clone(), nil
}

// HasNode reports whether a node id exists.
func (gs *GraphStore) HasNode(id string) bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	_, exists := gs.nodes[id]
	return exists
}

// UpdateNode shallow-merges the patch into an existing node. A non-empty
// Label replaces the node label; Ext entries are merged key by key. The type
// tag is immutable and cannot be patched.
func (gs *GraphStore) UpdateNode(id string, label string, ext map[string]any) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	node, exists := gs.nodes[id]
	if !exists {
		return ErrNodeNotFound
	}

	if label != "" {
		node.Label = label
	}
	if len(ext) > 0 {
		if node.Ext == nil {
			node.Ext = make(map[string]any, len(ext))
		}
		for k, v := range ext {
			node.Ext[k] = v
		}
	}
	return nil
}

// RemoveNode deletes a node and cascades removal of every incident edge, so
// no dangling edge ever exists, even transiently.
func (gs *GraphStore) RemoveNode(id string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	node, exists := gs.nodes[id]
	if !exists {
		return ErrNodeNotFound
	}

	// Outgoing edges: drop edge records and the reverse adjacency entries.
	for label, targets := range gs.outgoing[id] {
		for _, target := range targets {
			delete(gs.edges, EdgeKey(id, label, target))
			gs.incoming[target][label] = removeID(gs.incoming[target][label], id)
		}
	}

	// Incoming edges likewise.
	for label, sources := range gs.incoming[id] {
		for _, source := range sources {
			delete(gs.edges, EdgeKey(source, label, id))
			gs.outgoing[source][label] = removeID(gs.outgoing[source][label], id)
		}
	}

	gs.nodesByType[node.Type] = removeID(gs.nodesByType[node.Type], id)
	delete(gs.nodes, id)
	delete(gs.outgoing, id)
	delete(gs.incoming, id)
	return nil
}

// AddEdge inserts a directed labelled edge. Returns false if the exact
// (source, label, target) triple already exists. Both endpoints must exist;
// the caller validates that before committing (validate-then-mutate), but
// the store re-checks to guarantee its own invariants.
func (gs *GraphStore) AddEdge(edge Edge) (bool, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if _, exists := gs.nodes[edge.Source]; !exists {
		return false, ErrNodeNotFound
	}
	if _, exists := gs.nodes[edge.Target]; !exists {
		return false, ErrNodeNotFound
	}

	key := edge.Key()
	if _, exists := gs.edges[key]; exists {
		return false, nil
	}

	e := edge
	gs.edges[key] = &e
	gs.outgoing[edge.Source][edge.Label] = append(gs.outgoing[edge.Source][edge.Label], edge.Target)
	gs.incoming[edge.Target][edge.Label] = append(gs.incoming[edge.Target][edge.Label], edge.Source)
	return true, nil
}

// RemoveEdge deletes the edge identified by the triple.
func (gs *GraphStore) RemoveEdge(source string, label RelationLabel, target string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	key := EdgeKey(source, label, target)
	if _, exists := gs.edges[key]; !exists {
		return ErrEdgeNotFound
	}

	delete(gs.edges, key)
	gs.outgoing[source][label] = removeID(gs.outgoing[source][label], target)
	gs.incoming[target][label] = removeID(gs.incoming[target][label], source)
	return nil
}

// removeID removes the first occurrence of id from ids, preserving order.
// Adjacency lists keep insertion order so "first in-neighbor" projections
// are deterministic.
func removeID(ids []string, id string) []string {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
