package report

import (
	"encoding/json"
	"io"
	"time"
)

// ExportIssue is one finding in the JSON export format.
type ExportIssue struct {
	Line    int    `json:"line"`
	AdZone  int    `json:"adZone,omitempty"`
	PHT     int    `json:"pht,omitempty"`
	Type    string `json:"errorType"`
	Tag     string `json:"errorTag"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Export is the JSON export envelope: file identity, export timestamp,
// summary block and the issue list.
type Export struct {
	FileName       string        `json:"fileName"`
	ValidationDate string        `json:"validationDate"`
	Valid          bool          `json:"isValid"`
	Summary        Summary       `json:"summary"`
	Issues         []ExportIssue `json:"issues"`
}

// WriteJSON writes the export envelope to w. The timestamp is taken from
// now so callers control determinism in tests.
func (r *Result) WriteJSON(w io.Writer, fileName string, now time.Time) error {
	out := Export{
		FileName:       fileName,
		ValidationDate: now.UTC().Format(time.RFC3339),
		Valid:          r.IsValid,
		Summary:        r.Summary,
		Issues:         []ExportIssue{},
	}
	for _, e := range r.Errors {
		out.Issues = append(out.Issues, ExportIssue{
			Line:    e.Line,
			AdZone:  e.AdZone,
			PHT:     e.PHT,
			Type:    string(e.Severity),
			Tag:     Tag(e.Message),
			Message: e.Message,
			Field:   e.Field,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
