package projection

import (
	"strings"

	"github.com/stormlabs/stormgraph/pkg/algorithms"
	"github.com/stormlabs/stormgraph/pkg/storage"
)

// PathType classifies an execution path by its terminal event.
type PathType string

const (
	HappyPath  PathType = "HAPPY_PATH"
	ErrorPath  PathType = "ERROR_PATH"
	PolicyPath PathType = "POLICY_PATH"
)

// maxExecutionPathDepth bounds the simple-path search per event.
const maxExecutionPathDepth = 5

// ExecutionPath is one path from a command to one of its events.
type ExecutionPath struct {
	Event *storage.Node `json:"event"`
	Nodes []string      `json:"nodes"`
	Type  PathType      `json:"type"`
}

// GetCommandExecutionPaths enumerates all bounded simple paths from the
// command to each event it emits, classifying each path by the event it
// reaches. Returns nil if the id does not resolve to a command.
//
// Classification order matters: every path starts HAPPY_PATH, becomes
// ERROR_PATH if the event label mentions error/failed, and finally becomes
// POLICY_PATH if the event triggers any policy; the policy check overrides
// the error classification.
func GetCommandExecutionPaths(graph *storage.GraphStore, commandID string) []ExecutionPath {
	command, err := graph.GetNode(commandID)
	if err != nil || command.Type != storage.TypeCommand {
		return nil
	}

	paths := make([]ExecutionPath, 0)
	for _, event := range graph.OutNeighborsByLabel(commandID, storage.LabelThen) {
		pathType := HappyPath

		lowered := strings.ToLower(event.Label)
		if strings.Contains(lowered, "error") || strings.Contains(lowered, "failed") {
			pathType = ErrorPath
		}
		if len(graph.OutNeighborsByLabel(event.ID, storage.LabelThenPolicy)) > 0 {
			pathType = PolicyPath
		}

		for _, path := range algorithms.FindAllPaths(graph, commandID, event.ID, maxExecutionPathDepth) {
			paths = append(paths, ExecutionPath{
				Event: event,
				Nodes: path,
				Type:  pathType,
			})
		}
	}
	return paths
}
