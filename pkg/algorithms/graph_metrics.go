package algorithms

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// HealthMetrics are aggregate structural metrics for the whole graph.
type HealthMetrics struct {
	NodeCount      int     `json:"nodeCount"`
	EdgeCount      int     `json:"edgeCount"`
	Density        float64 `json:"density"`
	ComponentCount int     `json:"componentCount"`
	CycleCount     int     `json:"cycleCount"`
	AverageDegree  float64 `json:"averageDegree"`
}

// ComputeHealthMetrics computes node/edge counts, density e/(n*(n-1)),
// connected components (treating edges as undirected), cycle count, and
// average degree 2e/n.
func ComputeHealthMetrics(graph *storage.GraphStore) HealthMetrics {
	stats := graph.GetStatistics()
	n := stats.NodeCount
	e := stats.EdgeCount

	metrics := HealthMetrics{
		NodeCount:      n,
		EdgeCount:      e,
		ComponentCount: CountComponents(graph),
		CycleCount:     len(DetectCycles(graph)),
	}
	if n > 1 {
		metrics.Density = float64(e) / float64(n*(n-1))
	}
	if n > 0 {
		metrics.AverageDegree = 2 * float64(e) / float64(n)
	}
	return metrics
}

// CountComponents counts connected components by BFS over the directed
// adjacency with edge direction ignored.
func CountComponents(graph *storage.GraphStore) int {
	visited := make(map[string]bool)
	components := 0

	for _, start := range graph.NodeIDs() {
		if visited[start] {
			continue
		}
		components++

		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			neighbors := append(graph.OutNeighborIDs(current), graph.InNeighborIDs(current)...)
			for _, neighbor := range neighbors {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
	}
	return components
}
