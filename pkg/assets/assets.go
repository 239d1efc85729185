// Package assets provides the reference store of known physical asset
// properties used to cross-check declared image metadata.
package assets

// Record holds the known physical properties of one asset file.
type Record struct {
	FileName     string `yaml:"fileName" json:"fileName"`
	ActualWidth  int    `yaml:"actualWidth" json:"actualWidth"`
	ActualHeight int    `yaml:"actualHeight" json:"actualHeight"`
	MimeType     string `yaml:"mimeType" json:"mimeType"`
	Resolution   string `yaml:"resolution" json:"resolution"`
	FileSize     int64  `yaml:"fileSize" json:"fileSize"`
}

// Store maps file name to its reference record. The engine only reads
// from it; a caller-supplied store replaces the default table wholesale,
// never merges with it.
type Store map[string]Record

// Lookup returns the record for a file name and whether it is known.
func (s Store) Lookup(fileName string) (Record, bool) {
	r, ok := s[fileName]
	return r, ok
}

// Default returns the built-in reference table. A fresh copy is returned
// each call so callers can never mutate the shared table.
func Default() Store {
	out := make(Store, len(defaultTable))
	for k, v := range defaultTable {
		out[k] = v
	}
	return out
}

var defaultTable = Store{
	"boot_ST112HW_29.m2v": {
		FileName:     "boot_ST112HW_29.m2v",
		ActualWidth:  480,
		ActualHeight: 240,
		MimeType:     "video/mpeg",
		Resolution:   "small",
		FileSize:     2048000,
	},
	"m1_ST112HW_29.png": {
		FileName:     "m1_ST112HW_29.png",
		ActualWidth:  88,
		ActualHeight: 126,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     15360,
	},
	"m2_ST112HW_29.png": {
		FileName:     "m2_ST112HW_29.png",
		ActualWidth:  88,
		ActualHeight: 126,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     15360,
	},
	// Dimensions intentionally differ from the commonly declared 88x126.
	"m3_ST112HW_29.png": {
		FileName:     "m3_ST112HW_29.png",
		ActualWidth:  90,
		ActualHeight: 128,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     15800,
	},
	"m4_ST112HW_29.png": {
		FileName:     "m4_ST112HW_29.png",
		ActualWidth:  88,
		ActualHeight: 126,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     15360,
	},
	"cb1_ST112HW_29.png": {
		FileName:     "cb1_ST112HW_29.png",
		ActualWidth:  174,
		ActualHeight: 136,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     38400,
	},
	"cb2_ST112HW_29.png": {
		FileName:     "cb2_ST112HW_29.png",
		ActualWidth:  174,
		ActualHeight: 136,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     38400,
	},
	"cb3_ST112HW_29.png": {
		FileName:     "cb3_ST112HW_29.png",
		ActualWidth:  176,
		ActualHeight: 138,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     39200,
	},
	"cb4_ST112HW_29.png": {
		FileName:     "cb4_ST112HW_29.png",
		ActualWidth:  174,
		ActualHeight: 136,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     38400,
	},
	"cb5_ST112HW_29.png": {
		FileName:     "cb5_ST112HW_29.png",
		ActualWidth:  174,
		ActualHeight: 136,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     38400,
	},
	"g1_ST112HW_29.png": {
		FileName:     "g1_ST112HW_29.png",
		ActualWidth:  360,
		ActualHeight: 180,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     105600,
	},
	"g2_ST112HW_29.png": {
		FileName:     "g2_ST112HW_29.png",
		ActualWidth:  360,
		ActualHeight: 180,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     105600,
	},
	"g3_ST112HW_29.png": {
		FileName:     "g3_ST112HW_29.png",
		ActualWidth:  362,
		ActualHeight: 182,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     107000,
	},
	"g4_ST112HW_29.png": {
		FileName:     "g4_ST112HW_29.png",
		ActualWidth:  360,
		ActualHeight: 180,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     105600,
	},
	"g5_ST112HW_29.png": {
		FileName:     "g5_ST112HW_29.png",
		ActualWidth:  360,
		ActualHeight: 180,
		MimeType:     "image/png",
		Resolution:   "small",
		FileSize:     105600,
	},
}
