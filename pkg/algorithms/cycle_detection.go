package algorithms

import (
	"sort"

	"github.com/stormlabs/stormgraph/pkg/storage"
)

// Cycle is a detected cycle as an ordered node-id sequence. The first and
// last entries are the same node.
type Cycle []string

// DetectCycles finds cycles via depth-first traversal with an explicit
// recursion stack. When the traversal reaches a node already on the current
// stack, the sub-path from that node's first occurrence through the current
// node, plus the repeated node, is recorded as a cycle.
//
// Traversal restarts from every unvisited node so disconnected components
// are all covered. Structurally identical cycles reached via different start
// points are NOT deduplicated: the report tells the caller which of their
// elements touch a cycle regardless of entry point.
func DetectCycles(graph *storage.GraphStore) []Cycle {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)
	stack := make([]string, 0)
	cycles := make([]Cycle, 0)

	// Deterministic start order keeps reports stable across runs.
	ids := graph.NodeIDs()
	sort.Strings(ids)

	var dfs func(id string)
	dfs = func(id string) {
		visited[id] = true
		onStack[id] = true
		stack = append(stack, id)

		for _, neighbor := range graph.OutNeighborIDs(id) {
			if !visited[neighbor] {
				dfs(neighbor)
			} else if onStack[neighbor] {
				// Back edge: the cycle is the stack from the neighbor's
				// first occurrence to here, closed by the repeat.
				for i, stacked := range stack {
					if stacked == neighbor {
						cycle := make(Cycle, 0, len(stack)-i+1)
						cycle = append(cycle, stack[i:]...)
						cycle = append(cycle, neighbor)
						cycles = append(cycles, cycle)
						break
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[id] = false
	}

	for _, id := range ids {
		if !visited[id] {
			dfs(id)
		}
	}

	return cycles
}

// HasCycle reports whether the graph contains any cycle. Cheaper than
// DetectCycles when only the answer matters.
func HasCycle(graph *storage.GraphStore) bool {
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		onStack[id] = true

		for _, neighbor := range graph.OutNeighborIDs(id) {
			if !visited[neighbor] {
				if dfs(neighbor) {
					return true
				}
			} else if onStack[neighbor] {
				return true
			}
		}

		onStack[id] = false
		return false
	}

	for _, id := range graph.NodeIDs() {
		if !visited[id] && dfs(id) {
			return true
		}
	}
	return false
}
