// Package validate implements the EPG AdZone validation engine: a staged,
// single-pass pipeline over one parsed document producing a complete
// result for every input.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/epgtools/epgverify/pkg/assets"
	"github.com/epgtools/epgverify/pkg/epg"
	"github.com/epgtools/epgverify/pkg/report"
)

// RootTag is the expected document root element.
const RootTag = "start"

// Validate runs the full rule set against raw XML text using the built-in
// asset reference table.
func Validate(xmlText string) *report.Result {
	return ValidateWithAssets(xmlText, nil)
}

// ValidateWithAssets validates raw XML text against a caller-supplied
// asset store. A nil store selects the built-in default table; a non-nil
// store replaces it wholesale. The call is a pure function of its inputs
// and always returns a complete result, never an error.
func ValidateWithAssets(xmlText string, store assets.Store) *report.Result {
	if store == nil {
		store = assets.Default()
	}
	r := report.NewResult()

	// Stage 1: parse. Unparseable input is the one document-fatal path:
	// a single error embedding the parser diagnostic, zeroed summary.
	doc, err := epg.Parse(xmlText)
	if err != nil {
		r.AddError(report.ValidationError{
			Line:    1,
			Message: fmt.Sprintf("{%s} Invalid XML structure: %v", report.TagValidationFailed, err),
		})
		r.Finalize()
		return r
	}

	v := &validator{doc: doc, store: store, result: r}
	v.run()
	r.Finalize()
	return r
}

// validator carries the per-call state shared by the pipeline stages.
// Nothing outlives the call.
type validator struct {
	doc    *epg.Document
	store  assets.Store
	result *report.Result
}

func (v *validator) run() {
	root := v.doc.Root
	lines := v.doc.Lines

	// Stage 2: root check. Non-fatal, validation continues.
	if root.Name != RootTag {
		v.result.AddError(report.ValidationError{
			Line:    1,
			Message: fmt.Sprintf("{%s} Root element must be <%s>", report.TagValidationFailed, RootTag),
		})
	}

	// Stage 3: top-level declared counts vs actual zone count.
	expectedZones := 0
	if root.Find("numberOfAdZones") != nil {
		expectedZones = root.IntValue("numberOfAdZones")
	} else {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "numberOfAdZones", 0),
			Message: fmt.Sprintf("{%s} Missing <numberOfAdZones> element", report.TagMissingTag),
			Field:   "numberOfAdZones",
		})
	}

	expectedTotalAds := 0
	if root.Find("totalnumberOfAds") != nil {
		expectedTotalAds = root.IntValue("totalnumberOfAds")
	} else {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "totalnumberOfAds", 0),
			Message: fmt.Sprintf("{%s} Missing <totalnumberOfAds> element", report.TagMissingTag),
			Field:   "totalnumberOfAds",
		})
	}

	zones := root.FindAll("adZone")
	if expectedZones != len(zones) {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "numberOfAdZones", 0),
			Message: fmt.Sprintf("{%s} Expected %d adZones but found %d", report.TagCountMismatch, expectedZones, len(zones)),
		})
	}

	// Stage 4: duplicate-profile pre-scan. A profile id shared by more
	// than one zone makes per-ad rule attribution ambiguous, so ad-level
	// validation refuses to run.
	phtZones := make(map[int][]int)
	for i, z := range zones {
		pht := z.IntValue("PHT")
		phtZones[pht] = append(phtZones[pht], i+1)
	}
	v.result.PresentPHTs = sortedKeys(phtZones)

	v.result.Summary.TotalAdZones = len(zones)
	v.result.Summary.ExpectedAdZones = expectedZones
	v.result.Summary.ExpectedAds = expectedTotalAds

	if v.reportDuplicatePHTs(phtZones) {
		return
	}

	// Stage 5: per-zone, per-ad validation in document order.
	totalActualAds := 0
	zoneCursor := 0
	for i, z := range zones {
		zoneLine := epg.FindLine(lines, "<adZone", zoneCursor)
		zoneCursor = zoneLine
		totalActualAds += v.validateZone(z, i+1, zoneLine)
	}
	v.result.Summary.TotalAds = totalActualAds

	// Stage 6: total-ads reconciliation.
	if expectedTotalAds != totalActualAds {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "totalnumberOfAds", 0),
			Message: fmt.Sprintf("{%s} Expected %d total ads but found %d", report.TagCountMismatch, expectedTotalAds, totalActualAds),
		})
	}
}

// reportDuplicatePHTs emits one error per duplicated profile id, listing
// every zone index that declared it. Returns true when validation must
// stop before ad-level checks.
func (v *validator) reportDuplicatePHTs(phtZones map[int][]int) bool {
	dup := false
	for _, pht := range sortedKeys(phtZones) {
		zoneIdxs := phtZones[pht]
		if len(zoneIdxs) < 2 {
			continue
		}
		dup = true
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(v.doc.Lines, "<PHT", 0),
			Message: fmt.Sprintf("{%s} PHT %d is declared by multiple AdZones (zones %s)", report.TagDuplicatePHT, pht, joinInts(zoneIdxs)),
			PHT:     pht,
			Field:   "PHT",
		})
	}
	return dup
}

func sortedKeys(m map[int][]int) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
