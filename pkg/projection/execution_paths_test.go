package projection

import (
	"testing"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

func TestGetCommandExecutionPaths_Classification(t *testing.T) {
	gs := storage.NewGraphStore()
	gs.AddNode(&storage.Node{ID: "c1", Label: "Charge Card", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "ok", Label: "Payment Accepted", Type: storage.TypeEvent})
	gs.AddNode(&storage.Node{ID: "bad", Label: "Payment Failed", Type: storage.TypeEvent})
	gs.AddNode(&storage.Node{ID: "audit", Label: "Payment Audited", Type: storage.TypeEvent})
	gs.AddNode(&storage.Node{ID: "policy_cmd", Label: "Record Audit", Type: storage.TypeCommand})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "ok"})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "bad"})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "audit"})
	gs.AddEdge(storage.Edge{Source: "audit", Label: storage.LabelThenPolicy, Target: "policy_cmd"})

	paths := GetCommandExecutionPaths(gs, "c1")
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %v", paths)
	}

	byEvent := make(map[string]ExecutionPath)
	for _, path := range paths {
		byEvent[path.Event.ID] = path
	}

	if byEvent["ok"].Type != HappyPath {
		t.Errorf("ok path = %s, want HAPPY_PATH", byEvent["ok"].Type)
	}
	if byEvent["bad"].Type != ErrorPath {
		t.Errorf("bad path = %s, want ERROR_PATH", byEvent["bad"].Type)
	}
	if byEvent["audit"].Type != PolicyPath {
		t.Errorf("audit path = %s, want POLICY_PATH", byEvent["audit"].Type)
	}
}

// TestGetCommandExecutionPaths_PolicyOverridesError verifies an error-named
// event that also triggers a policy classifies as POLICY_PATH.
func TestGetCommandExecutionPaths_PolicyOverridesError(t *testing.T) {
	gs := storage.NewGraphStore()
	gs.AddNode(&storage.Node{ID: "c1", Label: "Charge Card", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "bad", Label: "Payment Failed", Type: storage.TypeEvent})
	gs.AddNode(&storage.Node{ID: "retry", Label: "Retry Payment", Type: storage.TypeCommand})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "bad"})
	gs.AddEdge(storage.Edge{Source: "bad", Label: storage.LabelThenPolicy, Target: "retry"})

	paths := GetCommandExecutionPaths(gs, "c1")
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %v", paths)
	}
	if paths[0].Type != PolicyPath {
		t.Errorf("path = %s, want POLICY_PATH", paths[0].Type)
	}
}

func TestGetCommandExecutionPaths_PathNodes(t *testing.T) {
	gs := buildOrderGraph()

	paths := GetCommandExecutionPaths(gs, "place_order")
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %v", paths)
	}

	nodes := paths[0].Nodes
	if len(nodes) != 2 || nodes[0] != "place_order" || nodes[1] != "order_placed" {
		t.Errorf("path nodes = %v", nodes)
	}
}

func TestGetCommandExecutionPaths_NotACommand(t *testing.T) {
	gs := buildOrderGraph()
	if paths := GetCommandExecutionPaths(gs, "order_placed"); paths != nil {
		t.Errorf("event id should give nil, got %v", paths)
	}
	if paths := GetCommandExecutionPaths(gs, "ghost"); paths != nil {
		t.Errorf("missing id should give nil, got %v", paths)
	}
}
