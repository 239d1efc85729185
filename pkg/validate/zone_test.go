package validate

import (
	"strings"
	"testing"

	"github.com/epgtools/epgverify/pkg/report"
)

func TestDimensionMismatch(t *testing.T) {
	// The default table records 90x128 for this file.
	xml := buildDoc(1, 1, buildZone(1, 1,
		cleanAd(1, "m3_ST112HW_29.png", "88", "126", "png"),
	))

	r := Validate(xml)
	mismatches := tagged(r, report.TagDimensionMismatch)
	if len(mismatches) != 1 {
		t.Fatalf("dimension-mismatch errors = %d, want exactly 1", len(mismatches))
	}
	msg := mismatches[0].Message
	if !strings.Contains(msg, "88x126") || !strings.Contains(msg, "90x128") {
		t.Errorf("message = %q, want both declared and actual dimensions", msg)
	}
	if n := len(tagged(r, report.TagFileNotFound)); n != 0 {
		t.Errorf("file-not-found errors = %d, want 0", n)
	}
}

func TestUnknownAsset(t *testing.T) {
	xml := buildDoc(1, 1, buildZone(1, 1,
		cleanAd(1, "nonexistent.png", "180", "125", "png"),
	))

	r := Validate(xml)
	notFound := tagged(r, report.TagFileNotFound)
	if len(notFound) != 1 {
		t.Fatalf("file-not-found errors = %d, want exactly 1", len(notFound))
	}
	if !strings.Contains(notFound[0].Message, "nonexistent.png") {
		t.Errorf("message = %q", notFound[0].Message)
	}
	if n := len(tagged(r, report.TagDimensionMismatch)); n != 0 {
		t.Errorf("dimension-mismatch errors = %d, want 0 for unknown assets", n)
	}
}

func TestAdCountOutsideProfileBound(t *testing.T) {
	// BootUp Advert allows 1-5 ads; declare and supply 7. The counts
	// agree with each other, so only the bound violation fires.
	ads := make([]string, 7)
	for i := range ads {
		ads[i] = cleanAd(i+1, "boot_ST112HW_29.m2v", "480", "240", "m2v")
	}
	xml := buildDoc(1, 7, buildZone(4, 7, ads...))

	r := Validate(xml)
	violations := tagged(r, report.TagPHTRuleViolation)
	if len(violations) != 1 {
		t.Fatalf("pht-rule-violation errors = %d, want 1", len(violations))
	}
	if !strings.Contains(violations[0].Message, "1-5") {
		t.Errorf("message = %q, want the allowed range", violations[0].Message)
	}
	if n := len(tagged(r, report.TagCountMismatch)); n != 0 {
		t.Errorf("count-mismatch errors = %d, want 0 when counts agree", n)
	}
}

func TestUnknownPHT(t *testing.T) {
	xml := buildDoc(1, 1, buildZone(9, 1,
		cleanAd(1, "home_hero.png", "180", "125", "png"),
	))

	r := ValidateWithAssets(xml, homeStore())
	unknown := tagged(r, report.TagInvalidPHT)
	if len(unknown) != 1 {
		t.Fatalf("invalid-PHT errors = %d, want 1", len(unknown))
	}
	if unknown[0].PHT != 9 || unknown[0].AdZone != 1 {
		t.Errorf("error = %+v", unknown[0])
	}
	// Profile rules are skipped without a resolved profile.
	if n := len(tagged(r, report.TagMissingAttribute)); n != 0 {
		t.Errorf("missing-attribute errors = %d, want 0", n)
	}
	if n := len(tagged(r, report.TagPHTRuleViolation)); n != 0 {
		t.Errorf("pht-rule-violation errors = %d, want 0", n)
	}
}

func TestMissingImageAttributes(t *testing.T) {
	ad := `    <advertInfo>
      <image id="1" type="png" w="180" h="125"/>
      <animate style="1" delay="5" pixel="2" dur="10" repeat="0"/>
      <genre>1</genre>
      <lang>eng</lang>
      <adsStartTime>"2024-01-01T00:00:00+09:00"</adsStartTime>
      <adsExpirationTime>"2024-12-31T23:59:59+09:00"</adsExpirationTime>
    </advertInfo>
`
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := Validate(xml)
	missing := tagged(r, report.TagMissingAttribute)
	// zOrder, x, y, fileName, resolution, duration, align, style.
	if len(missing) != 8 {
		t.Fatalf("missing-attribute errors = %d, want 8", len(missing))
	}
	for _, e := range missing {
		if e.Field == "" {
			t.Errorf("missing-attribute error without field: %+v", e)
		}
		if !strings.Contains(e.Message, "(AdZone 1, Ad 1)") {
			t.Errorf("message = %q, want zone/ad context", e.Message)
		}
	}
	if !contains(r.Summary.InvalidAttributes, "zOrder") {
		t.Errorf("summary.invalidAttributes = %v", r.Summary.InvalidAttributes)
	}
}

func TestAttributeValueViolations(t *testing.T) {
	ad := `    <advertInfo>
      <image id="0" zOrder="abcd" type="png" w="999" h="125" x="0" y="0" fileName="home_hero.png" resolution="small" duration="10" align="1" style="1"/>
      <animate style="1" delay="5" pixel="2" dur="10" repeat="0"/>
      <genre>1</genre>
      <lang>eng</lang>
      <adsStartTime>"2024-01-01T00:00:00+09:00"</adsStartTime>
      <adsExpirationTime>"2024-12-31T23:59:59+09:00"</adsExpirationTime>
    </advertInfo>
`
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := ValidateWithAssets(xml, homeStore())

	if got := tagged(r, report.TagInvalidValue); len(got) != 1 || got[0].Field != "w" {
		t.Errorf("invalid-value errors = %+v, want one for w", got)
	}
	if got := tagged(r, report.TagPatternMismatch); len(got) != 1 || got[0].Field != "zOrder" {
		t.Errorf("pattern-mismatch errors = %+v, want one for zOrder", got)
	}
	if got := tagged(r, report.TagValidationFailed); len(got) != 1 || got[0].Field != "id" {
		t.Errorf("validation-failed errors = %+v, want one for id", got)
	}
}

func TestDuplicateImageID(t *testing.T) {
	xml := buildDoc(1, 2, buildZone(1, 2,
		cleanAd(7, "home_hero.png", "180", "125", "png"),
		cleanAd(7, "home_alt.png", "250", "180", "png"),
	))

	r := ValidateWithAssets(xml, homeStore())
	dups := tagged(r, report.TagDuplicateID)
	if len(dups) != 1 {
		t.Fatalf("duplicate-id errors = %d, want 1", len(dups))
	}
	if !strings.Contains(dups[0].Message, "'7'") {
		t.Errorf("message = %q", dups[0].Message)
	}
}

func TestInvalidFileType(t *testing.T) {
	ad := strings.Replace(
		cleanAd(1, "home_hero.png", "180", "125", "png"),
		`type="png"`, `type="bmp"`, 1)
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := ValidateWithAssets(xml, homeStore())
	if got := tagged(r, report.TagInvalidFileType); len(got) != 1 {
		t.Fatalf("invalid-file-type errors = %d, want 1", len(got))
	}
}

func TestFileTypeCaseInsensitive(t *testing.T) {
	ad := strings.Replace(
		cleanAd(1, "home_hero.png", "180", "125", "png"),
		`type="png"`, `type="PNG"`, 1)
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := ValidateWithAssets(xml, homeStore())
	if got := tagged(r, report.TagInvalidFileType); len(got) != 0 {
		t.Errorf("invalid-file-type errors = %d, want 0 for uppercase token", len(got))
	}
}

func TestScalarViolations(t *testing.T) {
	ad := `    <advertInfo>
      <image id="1" zOrder="10" type="png" w="180" h="125" x="0" y="0" fileName="home_hero.png" resolution="small" duration="10" align="1" style="1"/>
      <animate style="1" delay="5" pixel="2" dur="10" repeat="0"/>
      <genre>abc</genre>
      <lang>EN</lang>
      <adsStartTime>2024-01-01T00:00:00+09:00</adsStartTime>
      <adsExpirationTime>"2024-12-31T23:59:59+09:00"</adsExpirationTime>
    </advertInfo>
`
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := ValidateWithAssets(xml, homeStore())
	if got := tagged(r, report.TagInvalidGenre); len(got) != 1 {
		t.Errorf("invalid-genre errors = %d, want 1", len(got))
	}
	if got := tagged(r, report.TagInvalidLanguage); len(got) != 1 {
		t.Errorf("invalid-language errors = %d, want 1", len(got))
	}
	got := tagged(r, report.TagInvalidTimeFormat)
	if len(got) != 1 {
		t.Fatalf("invalid-time-format errors = %d, want 1", len(got))
	}
	if got[0].Field != "adsStartTime" {
		t.Errorf("field = %q, want adsStartTime", got[0].Field)
	}
}

func TestMissingRequiredTags(t *testing.T) {
	ad := `    <advertInfo>
      <image id="1" zOrder="10" type="png" w="180" h="125" x="0" y="0" fileName="home_hero.png" resolution="small" duration="10" align="1" style="1"/>
      <genre>1</genre>
      <lang>eng</lang>
    </advertInfo>
`
	xml := buildDoc(1, 1, buildZone(1, 1, ad))

	r := ValidateWithAssets(xml, homeStore())
	missing := tagged(r, report.TagMissingTag)
	var fields []string
	for _, e := range missing {
		fields = append(fields, e.Field)
	}
	for _, want := range []string{"animate", "adsStartTime", "adsExpirationTime"} {
		if !contains(fields, want) {
			t.Errorf("missing-tag fields = %v, want %q included", fields, want)
		}
	}
	if !contains(r.Summary.MissingTags, "animate") {
		t.Errorf("summary.missingTags = %v", r.Summary.MissingTags)
	}
}

func TestLineMonotonicityAcrossZones(t *testing.T) {
	badGenre := func() string {
		return strings.Replace(
			cleanAd(1, "home_hero.png", "180", "125", "png"),
			"<genre>255</genre>", "<genre>abc</genre>", 1)
	}
	xml := buildDoc(4, 5,
		buildZone(1, 1, cleanAd(1, "home_hero.png", "180", "125", "png")),
		buildZone(2, 1, cleanAd(1, "cb1_ST112HW_29.png", "174", "136", "png")),
		buildZone(3, 2,
			cleanAd(1, "g1_ST112HW_29.png", "360", "180", "png"),
			badGenre()),
		buildZone(4, 1, badGenre()),
	)

	r := Validate(xml)
	var zone3Line, zone4Line int
	for _, e := range tagged(r, report.TagInvalidGenre) {
		switch e.AdZone {
		case 3:
			zone3Line = e.Line
		case 4:
			zone4Line = e.Line
		}
	}
	if zone3Line == 0 || zone4Line == 0 {
		t.Fatalf("expected genre errors in zones 3 and 4, got lines %d and %d", zone3Line, zone4Line)
	}
	if zone4Line < zone3Line {
		t.Errorf("zone 4 error at line %d before zone 3 error at line %d", zone4Line, zone3Line)
	}
}
