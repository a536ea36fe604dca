package algorithms

import (
	"fmt"
	"testing"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

func TestFindCriticalNodes_Ranking(t *testing.T) {
	gs := storage.NewGraphStore()
	// hub has degree 3, spoke1/spoke2/spoke3 have degree 1, loner has 0.
	addCommand(gs, "hub")
	addEvent(gs, "spoke1")
	addEvent(gs, "spoke2")
	addEvent(gs, "spoke3")
	addCommand(gs, "loner")
	gs.AddEdge(storage.Edge{Source: "hub", Label: storage.LabelThen, Target: "spoke1"})
	gs.AddEdge(storage.Edge{Source: "hub", Label: storage.LabelThen, Target: "spoke2"})
	gs.AddEdge(storage.Edge{Source: "hub", Label: storage.LabelThen, Target: "spoke3"})

	critical := FindCriticalNodes(gs)
	if len(critical) != 4 {
		t.Fatalf("expected 4 ranked nodes (loner excluded), got %v", critical)
	}

	if critical[0].NodeID != "hub" || critical[0].Score != 3 {
		t.Errorf("hub should rank first with score 3: %+v", critical[0])
	}
	// Equal scores break ties on node id.
	for i, want := range []string{"spoke1", "spoke2", "spoke3"} {
		if critical[i+1].NodeID != want {
			t.Errorf("position %d = %s, want %s", i+1, critical[i+1].NodeID, want)
		}
	}
	for _, node := range critical {
		if node.NodeID == "loner" {
			t.Error("zero-degree node should not be ranked")
		}
	}
}

func TestFindCriticalNodes_Bands(t *testing.T) {
	buildStar := func(degree int) *storage.GraphStore {
		gs := storage.NewGraphStore()
		addCommand(gs, "hub")
		for i := 0; i < degree; i++ {
			id := fmt.Sprintf("s%02d", i)
			addEvent(gs, id)
			gs.AddEdge(storage.Edge{Source: "hub", Label: storage.LabelThen, Target: id})
		}
		return gs
	}

	tests := []struct {
		degree int
		want   CriticalityLevel
	}{
		{10, CriticalityLow},
		{11, CriticalityMedium},
		{20, CriticalityMedium},
		{21, CriticalityHigh},
	}
	for _, tt := range tests {
		critical := FindCriticalNodes(buildStar(tt.degree))
		if critical[0].Criticality != tt.want {
			t.Errorf("degree %d: criticality = %s, want %s", tt.degree, critical[0].Criticality, tt.want)
		}
	}
}

func TestFindCriticalNodes_Empty(t *testing.T) {
	if critical := FindCriticalNodes(storage.NewGraphStore()); len(critical) != 0 {
		t.Errorf("empty graph should rank nothing, got %v", critical)
	}
}
