package report

import (
	"fmt"
	"io"
)

// WriteText writes human-readable validation output to w.
func (r *Result) WriteText(w io.Writer) {
	for _, e := range r.Errors {
		fmt.Fprintln(w, e.String())
	}
	for _, e := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", e.String())
	}
	if r.IsValid {
		fmt.Fprintln(w, "No validation issues detected.")
	} else {
		fmt.Fprintf(w, "Check finished. Errors: %d, Warnings: %d\n", len(r.Errors), len(r.Warnings))
	}
	fmt.Fprintf(w, "AdZones: %d/%d declared, Ads: %d/%d declared, PHTs present: %v\n",
		r.Summary.TotalAdZones, r.Summary.ExpectedAdZones,
		r.Summary.TotalAds, r.Summary.ExpectedAds, r.PresentPHTs)
}
