package algorithms

import (
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// Path is an ordered node-id sequence from a source to a target.
type Path []string

// FindAllPaths enumerates every simple path (no repeated node within one
// path) from source to target whose node count does not exceed maxLength+1.
// DFS with backtracking; the visited set belongs to the current path, not
// the whole traversal.
func FindAllPaths(graph *storage.GraphStore, source, target string, maxLength int) []Path {
	if !graph.HasNode(source) || !graph.HasNode(target) {
		return nil
	}

	paths := make([]Path, 0)
	visited := map[string]bool{source: true}
	current := Path{source}

	var dfs func(id string)
	dfs = func(id string) {
		if id == target {
			paths = append(paths, append(Path(nil), current...))
			return
		}
		if len(current) > maxLength {
			return
		}
		for _, neighbor := range graph.OutNeighborIDs(id) {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			current = append(current, neighbor)
			dfs(neighbor)
			current = current[:len(current)-1]
			visited[neighbor] = false
		}
	}

	dfs(source)
	return paths
}
