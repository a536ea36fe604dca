package algorithms

import (
	"fmt"
	"testing"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

func TestGetImpactAnalysis_MissingNode(t *testing.T) {
	gs := storage.NewGraphStore()
	if analysis := GetImpactAnalysis(gs, "ghost"); analysis != nil {
		t.Errorf("expected nil for missing node, got %+v", analysis)
	}
}

func TestGetImpactAnalysis_DirectAndIndirect(t *testing.T) {
	gs := storage.NewGraphStore()
	// c1 -> e1 -> c2 -> e2, with c1 -> e3 as a second direct branch.
	addCommand(gs, "c1")
	addEvent(gs, "e1")
	addCommand(gs, "c2")
	addEvent(gs, "e2")
	addEvent(gs, "e3")
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "e1"})
	gs.AddEdge(storage.Edge{Source: "e1", Label: storage.LabelThenPolicy, Target: "c2"})
	gs.AddEdge(storage.Edge{Source: "c2", Label: storage.LabelThen, Target: "e2"})
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "e3"})

	analysis := GetImpactAnalysis(gs, "c1")
	if analysis == nil {
		t.Fatal("expected analysis for c1")
	}

	wantDirect := []string{"e1", "e3"}
	if len(analysis.DirectImpact) != len(wantDirect) {
		t.Fatalf("direct impact = %v, want %v", analysis.DirectImpact, wantDirect)
	}
	for i, id := range wantDirect {
		if analysis.DirectImpact[i] != id {
			t.Errorf("direct impact = %v, want %v", analysis.DirectImpact, wantDirect)
		}
	}

	wantIndirect := []string{"c2", "e2"}
	if len(analysis.IndirectImpact) != len(wantIndirect) {
		t.Fatalf("indirect impact = %v, want %v", analysis.IndirectImpact, wantIndirect)
	}
	for i, id := range wantIndirect {
		if analysis.IndirectImpact[i] != id {
			t.Errorf("indirect impact = %v, want %v", analysis.IndirectImpact, wantIndirect)
		}
	}

	if analysis.TotalReach != 4 {
		t.Errorf("total reach = %d, want 4", analysis.TotalReach)
	}
	if analysis.RiskLevel != RiskLow {
		t.Errorf("risk = %s, want LOW", analysis.RiskLevel)
	}
}

// TestGetImpactAnalysis_CycleExcludesSelf verifies a node on a cycle does
// not count itself in its own blast radius.
func TestGetImpactAnalysis_CycleExcludesSelf(t *testing.T) {
	gs := storage.NewGraphStore()
	addCommand(gs, "c1")
	addEvent(gs, "e1")
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "e1"})
	gs.AddEdge(storage.Edge{Source: "e1", Label: storage.LabelThenPolicy, Target: "c1"})

	analysis := GetImpactAnalysis(gs, "c1")
	if analysis.TotalReach != 1 {
		t.Errorf("total reach = %d, want 1 (self excluded)", analysis.TotalReach)
	}
	for _, id := range analysis.IndirectImpact {
		if id == "c1" {
			t.Error("node counted itself in indirect impact")
		}
	}
}

func TestGetImpactAnalysis_RiskBands(t *testing.T) {
	buildChain := func(length int) *storage.GraphStore {
		gs := storage.NewGraphStore()
		for i := 0; i <= length; i++ {
			addCommand(gs, fmt.Sprintf("n%02d", i))
		}
		for i := 0; i < length; i++ {
			gs.AddEdge(storage.Edge{
				Source: fmt.Sprintf("n%02d", i),
				Label:  storage.LabelThen,
				Target: fmt.Sprintf("n%02d", i+1),
			})
		}
		return gs
	}

	tests := []struct {
		reach int
		want  RiskLevel
	}{
		{5, RiskLow},
		{6, RiskMedium},
		{10, RiskMedium},
		{11, RiskHigh},
	}
	for _, tt := range tests {
		analysis := GetImpactAnalysis(buildChain(tt.reach), "n00")
		if analysis.TotalReach != tt.reach {
			t.Fatalf("chain(%d): total reach = %d", tt.reach, analysis.TotalReach)
		}
		if analysis.RiskLevel != tt.want {
			t.Errorf("reach %d: risk = %s, want %s", tt.reach, analysis.RiskLevel, tt.want)
		}
	}
}

func TestGetImpactAnalysis_LeafNode(t *testing.T) {
	gs := storage.NewGraphStore()
	addCommand(gs, "c1")
	addEvent(gs, "e1")
	gs.AddEdge(storage.Edge{Source: "c1", Label: storage.LabelThen, Target: "e1"})

	analysis := GetImpactAnalysis(gs, "e1")
	if analysis.TotalReach != 0 {
		t.Errorf("leaf reach = %d, want 0", analysis.TotalReach)
	}
	if len(analysis.DirectImpact) != 0 || len(analysis.IndirectImpact) != 0 {
		t.Errorf("leaf impact should be empty: %+v", analysis)
	}
}
