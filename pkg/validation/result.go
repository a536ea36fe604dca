package validation

// Result is the outcome of a validation pass. Rule breaches are always
// returned as data, never raised as errors, so callers must check Valid
// before treating a mutation as committed.
type Result struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK returns a passing result with no findings.
func OK() *Result {
	return &Result{Valid: true, Errors: []string{}, Warnings: []string{}}
}

// AddError records an error and marks the result invalid.
func (r *Result) AddError(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}

// AddWarning records an advisory finding. Warnings do not affect Valid.
func (r *Result) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge folds another result into r. r becomes invalid if other is.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
