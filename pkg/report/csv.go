package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the fixed column order consumed by downstream report
// tooling. Do not reorder.
var csvHeader = []string{"Line", "AdZone", "PHT", "Type", "Message", "Field"}

// WriteCSV writes the error findings as flat CSV rows. The Type column is
// the fixed literal ERROR and messages have their bracket tags stripped,
// matching the established report format.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range r.Errors {
		// Zone and PHT columns are blank only for document-level errors.
		// Inside a zone the PHT is printed even when it is 0, which is how
		// an absent or unparsable <PHT> reads in the result.
		adZone, pht := "", ""
		if e.AdZone > 0 {
			adZone = strconv.Itoa(e.AdZone)
			pht = strconv.Itoa(e.PHT)
		}
		row := []string{
			strconv.Itoa(e.Line),
			adZone,
			pht,
			"ERROR",
			StripTags(e.Message),
			e.Field,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
