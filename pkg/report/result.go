package report

import "fmt"

// Severity levels for validation findings.
type Severity string

const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// ValidationError represents a single validation finding. Line is the
// best-effort 1-based source line (1 when unresolvable). AdZone and PHT
// identify the enclosing zone and its profile when known; Field names the
// attribute or element implicated.
type ValidationError struct {
	Line     int      `json:"line"`
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
	AdZone   int      `json:"adZone,omitempty"`
	PHT      int      `json:"pht,omitempty"`
	Field    string   `json:"field,omitempty"`
}

func (e ValidationError) String() string {
	if e.AdZone > 0 {
		return fmt.Sprintf("line %d [zone %d, PHT %d]: %s", e.Line, e.AdZone, e.PHT, StripTags(e.Message))
	}
	return fmt.Sprintf("line %d: %s", e.Line, StripTags(e.Message))
}

// Summary aggregates declared-vs-actual counts plus the distinct missing
// tag and failing attribute names collected during a run.
type Summary struct {
	TotalAdZones      int      `json:"totalAdZones"`
	ExpectedAdZones   int      `json:"expectedAdZones"`
	TotalAds          int      `json:"totalAds"`
	ExpectedAds       int      `json:"expectedAds"`
	MissingTags       []string `json:"missingTags"`
	InvalidAttributes []string `json:"invalidAttributes"`
}

// Result is the engine's sole output. The caller owns it; the engine holds
// no reference after return.
type Result struct {
	IsValid     bool              `json:"isValid"`
	Errors      []ValidationError `json:"errors"`
	Warnings    []ValidationError `json:"warnings"`
	PresentPHTs []int             `json:"presentPHTs"`
	Summary     Summary           `json:"summary"`
}

// NewResult creates an empty result with non-nil slices so serialized
// output never contains null arrays.
func NewResult() *Result {
	return &Result{
		Errors:      []ValidationError{},
		Warnings:    []ValidationError{},
		PresentPHTs: []int{},
		Summary: Summary{
			MissingTags:       []string{},
			InvalidAttributes: []string{},
		},
	}
}

// AddError appends an error-severity finding.
func (r *Result) AddError(e ValidationError) {
	e.Severity = Error
	r.Errors = append(r.Errors, e)
}

// AddWarning appends a warning-severity finding. The finalized rule set
// emits only errors; the channel exists for the contract.
func (r *Result) AddWarning(e ValidationError) {
	e.Severity = Warning
	r.Warnings = append(r.Warnings, e)
}

// ErrorCount returns the number of error-severity findings.
func (r *Result) ErrorCount() int {
	return len(r.Errors)
}

// Finalize recomputes IsValid from the accumulated errors.
func (r *Result) Finalize() {
	r.IsValid = len(r.Errors) == 0
}
