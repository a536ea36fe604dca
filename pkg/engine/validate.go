package engine

import (
	"github.com/stormlabs/stormgraph/pkg/algorithms"
	"github.com/stormlabs/stormgraph/pkg/constraints"
	"github.com/stormlabs/stormgraph/pkg/validation"
)

// ValidateGraph runs the structural checks on every node plus the
// methodology rules, flattened into a plain errors/warnings result.
func (e *Engine) ValidateGraph() *validation.Result {
	defer e.timed("validateGraph")()

	result := validation.OK()
	for _, node := range e.store.GetAllNodes() {
		result.Merge(validation.ValidateNode(node))
	}

	for _, rule := range e.methodology.Rules() {
		for _, violation := range rule.Check(e.store) {
			if violation.Severity == constraints.Error {
				result.AddError(violation.Message)
			} else {
				result.AddWarning(violation.Message)
			}
		}
	}
	return result
}

// ValidateMethodology runs the full methodology pass, producing structured
// violation records with real node-id references, with cycle detection
// folded in.
func (e *Engine) ValidateMethodology() *constraints.Report {
	defer e.timed("validateMethodology")()

	cycles := make([][]string, 0)
	for _, cycle := range algorithms.DetectCycles(e.store) {
		cycles = append(cycles, []string(cycle))
	}
	return e.methodology.Validate(e.store, cycles)
}
