package constraints

import (
	"fmt"
)

// Validator runs a set of methodology rules against a graph.
type Validator struct {
	rules []Constraint
}

// NewValidator creates a validator with the default methodology rule set.
func NewValidator() *Validator {
	return &Validator{rules: MethodologyRules()}
}

// AddRule appends a rule to the set.
func (v *Validator) AddRule(rule Constraint) {
	v.rules = append(v.rules, rule)
}

// Rules returns the configured rules.
func (v *Validator) Rules() []Constraint {
	return v.rules
}

// Validate evaluates every rule and folds pre-computed cycles into the
// report. Cycle detection lives in the algorithms package; the caller passes
// its output in so this package stays free of traversal code.
//
// Overlapping reports of the same cycle reached from different start nodes
// are kept as-is: the report answers "which of your elements touch a cycle",
// not "how many distinct cycles exist".
func (v *Validator) Validate(graph Reader, cycles [][]string) *Report {
	report := &Report{
		Valid:      true,
		Violations: make([]Violation, 0),
		Warnings:   make([]Violation, 0),
		Cycles:     cycles,
	}

	for _, rule := range v.rules {
		for _, violation := range rule.Check(graph) {
			switch violation.Severity {
			case Error:
				report.Valid = false
				report.Violations = append(report.Violations, violation)
			default:
				report.Warnings = append(report.Warnings, violation)
			}
		}
	}

	// Cycles are reported as advisories: feedback loops via policies are a
	// legitimate modelling pattern, but each one deserves a second look.
	for _, cycle := range cycles {
		report.Warnings = append(report.Warnings, Violation{
			Rule:          "circular-dependency",
			Severity:      Warning,
			Message:       fmt.Sprintf("circular dependency detected through %d node(s)", len(cycle)),
			AffectedNodes: cycle,
		})
	}

	return report
}
