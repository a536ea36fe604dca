package storage

import (
	"testing"
)

func newNode(id string, nodeType NodeType) *Node {
	return &Node{ID: id, Label: id, Type: nodeType}
}

// TestAddNode_Duplicate verifies adding an existing id is a no-op failure,
// not a silent overwrite.
func TestAddNode_Duplicate(t *testing.T) {
	gs := NewGraphStore()

	if !gs.AddNode(&Node{ID: "a1", Label: "Customer", Type: TypeActor}) {
		t.Fatal("first AddNode should succeed")
	}
	if gs.AddNode(&Node{ID: "a1", Label: "Impostor", Type: TypeActor}) {
		t.Error("duplicate AddNode should report failure")
	}

	node, err := gs.GetNode("a1")
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if node.Label != "Customer" {
		t.Errorf("duplicate add overwrote the node: label = %q", node.Label)
	}
}

func TestGetNode_NotFound(t *testing.T) {
	gs := NewGraphStore()
	if _, err := gs.GetNode("missing"); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

// TestGetNode_ReturnsClone verifies mutations on a returned node do not
// leak into the store.
func TestGetNode_ReturnsClone(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(&Node{ID: "c1", Label: "Place Order", Type: TypeCommand, Ext: map[string]any{"x": 1}})

	node, _ := gs.GetNode("c1")
	node.Label = "mutated"
	node.Ext["x"] = 2

	fresh, _ := gs.GetNode("c1")
	if fresh.Label != "Place Order" {
		t.Error("label mutation leaked into the store")
	}
	if fresh.Ext["x"] != 1 {
		t.Error("ext mutation leaked into the store")
	}
}

func TestUpdateNode_ShallowMerge(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(&Node{ID: "c1", Label: "Place Order", Type: TypeCommand, Ext: map[string]any{
		"description": "original",
		"subtype":     "core",
	}})

	if err := gs.UpdateNode("c1", "Submit Order", map[string]any{"description": "updated"}); err != nil {
		t.Fatalf("UpdateNode failed: %v", err)
	}

	node, _ := gs.GetNode("c1")
	if node.Label != "Submit Order" {
		t.Errorf("label not updated: %q", node.Label)
	}
	if node.Ext["description"] != "updated" {
		t.Errorf("ext not merged: %v", node.Ext["description"])
	}
	if node.Ext["subtype"] != "core" {
		t.Error("merge dropped an untouched ext field")
	}
	if node.Type != TypeCommand {
		t.Error("type must be immutable")
	}

	if err := gs.UpdateNode("missing", "x", nil); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestAddEdge_TripleUniqueness(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))

	added, err := gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})
	if err != nil || !added {
		t.Fatalf("first AddEdge failed: added=%v err=%v", added, err)
	}

	added, err = gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})
	if err != nil {
		t.Fatalf("duplicate AddEdge errored: %v", err)
	}
	if added {
		t.Error("duplicate triple should report failure")
	}

	// Same endpoints, different label is a distinct edge.
	added, err = gs.AddEdge(Edge{Source: "c1", Label: LabelIf, Target: "e1"})
	if err != nil || !added {
		t.Errorf("different label should be allowed: added=%v err=%v", added, err)
	}
}

func TestAddEdge_MissingEndpoint(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("c1", TypeCommand))

	if _, err := gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "ghost"}); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if _, err := gs.AddEdge(Edge{Source: "ghost", Label: LabelThen, Target: "c1"}); err != ErrNodeNotFound {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

// TestRemoveNode_CascadesEdges verifies no dangling edge survives a node
// removal, in either direction.
func TestRemoveNode_CascadesEdges(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("a1", TypeActor))
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))
	gs.AddEdge(Edge{Source: "a1", Label: LabelIssues, Target: "c1"})
	gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})

	if err := gs.RemoveNode("c1"); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}

	if edges := gs.GetNodeEdges("c1"); len(edges) != 0 {
		t.Errorf("removed node still has %d edges", len(edges))
	}
	for _, edge := range gs.GetAllEdges() {
		if edge.Source == "c1" || edge.Target == "c1" {
			t.Errorf("dangling edge survived: %+v", edge)
		}
	}
	if got := len(gs.GetAllEdges()); got != 0 {
		t.Errorf("expected 0 edges, got %d", got)
	}
	if got := len(gs.GetNodeEdges("a1")); got != 0 {
		t.Errorf("a1 should have no edges left, got %d", got)
	}
}

func TestRemoveEdge(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))
	gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})

	if err := gs.RemoveEdge("c1", LabelThen, "e1"); err != nil {
		t.Fatalf("RemoveEdge failed: %v", err)
	}
	if err := gs.RemoveEdge("c1", LabelThen, "e1"); err != ErrEdgeNotFound {
		t.Errorf("expected ErrEdgeNotFound, got %v", err)
	}
	if got := len(gs.OutNeighborsByLabel("c1", LabelThen)); got != 0 {
		t.Errorf("adjacency not cleaned up: %d neighbors", got)
	}
}

func TestNeighborsByLabel(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))
	gs.AddNode(newNode("e2", TypeEvent))
	gs.AddNode(newNode("g1", TypeGuards))
	gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})
	gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e2"})
	gs.AddEdge(Edge{Source: "c1", Label: LabelIfGuard, Target: "g1"})

	events := gs.OutNeighborsByLabel("c1", LabelThen)
	if len(events) != 2 {
		t.Fatalf("expected 2 then-neighbors, got %d", len(events))
	}
	// Insertion order is preserved.
	if events[0].ID != "e1" || events[1].ID != "e2" {
		t.Errorf("neighbor order not preserved: %s, %s", events[0].ID, events[1].ID)
	}

	if got := len(gs.OutNeighborsByLabel("c1", LabelIfGuard)); got != 1 {
		t.Errorf("expected 1 guard neighbor, got %d", got)
	}
	if got := len(gs.InNeighborsByLabel("e1", LabelThen)); got != 1 {
		t.Errorf("expected 1 in-neighbor, got %d", got)
	}
	if got := len(gs.OutNeighborsByLabel("missing", LabelThen)); got != 0 {
		t.Errorf("missing node should have no neighbors, got %d", got)
	}
}

func TestGetNodesByType(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("c2", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))

	if got := len(gs.GetNodesByType(TypeCommand)); got != 2 {
		t.Errorf("expected 2 commands, got %d", got)
	}
	if got := len(gs.GetNodesByType(TypeBoundary)); got != 0 {
		t.Errorf("expected 0 boundaries, got %d", got)
	}

	gs.RemoveNode("c1")
	if got := len(gs.GetNodesByType(TypeCommand)); got != 1 {
		t.Errorf("type index not updated after removal: %d", got)
	}
}

func TestGetNodeEdges_SelfLoop(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("n1", TypeCommand))
	gs.AddEdge(Edge{Source: "n1", Label: LabelThen, Target: "n1"})

	if got := len(gs.GetNodeEdges("n1")); got != 1 {
		t.Errorf("self-loop should appear once, got %d", got)
	}
	if err := gs.RemoveNode("n1"); err != nil {
		t.Fatalf("RemoveNode with self-loop failed: %v", err)
	}
	if got := len(gs.GetAllEdges()); got != 0 {
		t.Errorf("self-loop edge survived removal: %d", got)
	}
}

func TestStatistics(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("a1", TypeActor))
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddEdge(Edge{Source: "a1", Label: LabelIssues, Target: "c1"})

	stats := gs.GetStatistics()
	if stats.NodeCount != 2 || stats.EdgeCount != 1 {
		t.Errorf("unexpected counts: %d nodes, %d edges", stats.NodeCount, stats.EdgeCount)
	}
	if stats.NodesByType[TypeActor] != 1 || stats.NodesByType[TypeCommand] != 1 {
		t.Errorf("unexpected type breakdown: %v", stats.NodesByType)
	}
	if stats.EdgesByLabel[LabelIssues] != 1 {
		t.Errorf("unexpected label breakdown: %v", stats.EdgesByLabel)
	}
}

func TestDegree(t *testing.T) {
	gs := NewGraphStore()
	gs.AddNode(newNode("a1", TypeActor))
	gs.AddNode(newNode("c1", TypeCommand))
	gs.AddNode(newNode("e1", TypeEvent))
	gs.AddEdge(Edge{Source: "a1", Label: LabelIssues, Target: "c1"})
	gs.AddEdge(Edge{Source: "c1", Label: LabelThen, Target: "e1"})

	if got := gs.Degree("c1"); got != 2 {
		t.Errorf("expected degree 2, got %d", got)
	}
	if got := gs.Degree("a1"); got != 1 {
		t.Errorf("expected degree 1, got %d", got)
	}
}
