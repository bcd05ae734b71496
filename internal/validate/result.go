package validate

import "fmt"

// Diagnostic is a single validation finding. Code is stable, Path is a
// dot-separated location into the offending document. Recommendation is set
// only on warnings; hard errors must be self-explanatory from code and path.
type Diagnostic struct {
	Code           string `json:"code"`
	Path           string `json:"path"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation,omitempty"`
}

// Result is the outcome of one validation pass. Valid is maintained as an
// invariant: true iff Errors is empty. Warnings never affect validity.
type Result struct {
	Valid    bool         `json:"valid"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
}

// NewResult returns an empty, valid result.
func NewResult() *Result {
	return &Result{Valid: true}
}

// AddError appends an error diagnostic and marks the result invalid.
func (r *Result) AddError(code, path, format string, args ...any) {
	r.Errors = append(r.Errors, Diagnostic{
		Code:    code,
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
	r.Valid = false
}

// AddWarning appends a warning diagnostic with an optional recommendation.
func (r *Result) AddWarning(code, path, message, recommendation string) {
	r.Warnings = append(r.Warnings, Diagnostic{
		Code:           code,
		Path:           path,
		Message:        message,
		Recommendation: recommendation,
	})
}

// Merge folds other's diagnostics into r, preserving order.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	if !other.Valid {
		r.Valid = false
	}
}
