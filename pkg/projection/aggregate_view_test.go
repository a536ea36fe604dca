package projection

import (
	"testing"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

func TestGetAggregateView(t *testing.T) {
	gs := buildOrderGraph()

	view := GetAggregateView(gs, "order")
	if view == nil {
		t.Fatal("expected a view for the order aggregate")
	}

	if view.Aggregate.ID != "order" {
		t.Errorf("aggregate = %v", view.Aggregate)
	}
	if len(view.Commands) != 1 || view.Commands[0].ID != "place_order" {
		t.Errorf("commands = %v", view.Commands)
	}
	if len(view.Processes) != 1 {
		t.Errorf("processes = %v", view.Processes)
	}
	if len(view.AllEvents) != 1 || view.AllEvents[0].ID != "order_placed" {
		t.Errorf("events = %v", view.AllEvents)
	}
	if len(view.ViewModels) != 1 || view.ViewModels[0].ID != "order_summary" {
		t.Errorf("view models = %v", view.ViewModels)
	}
}

// TestGetAggregateView_EventDedup verifies an event produced by two commands
// on the same aggregate appears once.
func TestGetAggregateView_EventDedup(t *testing.T) {
	gs := storage.NewGraphStore()
	gs.AddNode(&storage.Node{ID: "ag1", Label: "Order", Type: storage.TypeAggregate})
	gs.AddNode(&storage.Node{ID: "c1", Label: "Place Order", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "c2", Label: "Retry Order", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "e1", Label: "Order Placed", Type: storage.TypeEvent})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelOn, Target: "ag1"})
	gs.AddEdge(storage.Edge{Source: "c2", Label: storage.LabelOn, Target: "ag1"})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "e1"})
	gs.AddEdge(storage.Edge{Source: "c2", Label: storage.LabelThen, Target: "e1"})

	view := GetAggregateView(gs, "ag1")
	if len(view.Commands) != 2 {
		t.Fatalf("commands = %v", view.Commands)
	}
	if len(view.AllEvents) != 1 {
		t.Errorf("shared event should be deduplicated, got %v", view.AllEvents)
	}
}

func TestGetAggregateView_NotAnAggregate(t *testing.T) {
	gs := buildOrderGraph()
	if view := GetAggregateView(gs, "place_order"); view != nil {
		t.Errorf("command id should give nil view, got %+v", view)
	}
	if view := GetAggregateView(gs, "ghost"); view != nil {
		t.Errorf("missing id should give nil view, got %+v", view)
	}
}

func TestGetAllAggregateViews(t *testing.T) {
	gs := buildOrderGraph()
	gs.AddNode(&storage.Node{ID: "inventory", Label: "Inventory", Type: storage.TypeAggregate})

	views := GetAllAggregateViews(gs)
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
}

func TestGetAggregatesByActor(t *testing.T) {
	gs := buildOrderGraph()

	views := GetAggregatesByActor(gs, "customer")
	if len(views) != 1 || views[0].Aggregate.ID != "order" {
		t.Errorf("expected the order view, got %v", views)
	}

	if views := GetAggregatesByActor(gs, "order"); views != nil {
		t.Errorf("non-actor id should give nil, got %v", views)
	}
}

// TestGetAggregatesByActor_Dedup verifies an aggregate reached through two
// different commands of the same actor appears once.
func TestGetAggregatesByActor_Dedup(t *testing.T) {
	gs := storage.NewGraphStore()
	gs.AddNode(&storage.Node{ID: "actor1", Label: "Admin", Type: storage.TypeActor})
	gs.AddNode(&storage.Node{ID: "c1", Label: "Open", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "c2", Label: "Close", Type: storage.TypeCommand})
	gs.AddNode(&storage.Node{ID: "ag1", Label: "Account", Type: storage.TypeAggregate})
	gs.AddEdge(storage.Edge{Source: "actor1", Label: storage.LabelIssues, Target: "c1"})
	gs.AddEdge(storage.Edge{Source: "actor1", Label: storage.LabelIssues, Target: "c2"})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelOn, Target: "ag1"})
	gs.AddEdge(storage.Edge{Source: "c2", Label: storage.LabelOn, Target: "ag1"})

	if views := GetAggregatesByActor(gs, "actor1"); len(views) != 1 {
		t.Errorf("aggregate should appear once, got %d views", len(views))
	}
}
