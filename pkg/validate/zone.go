package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epgtools/epgverify/pkg/epg"
	"github.com/epgtools/epgverify/pkg/report"
	"github.com/epgtools/epgverify/pkg/rules"
)

// validateZone runs all per-zone and per-ad checks for one adZone and
// returns the actual number of ad entries found. zoneLine is the 1-based
// line of the zone's opening tag; all searches inside the zone start
// from it so attribution never falls back onto earlier zones.
func (v *validator) validateZone(zone *epg.Element, zoneIdx, zoneLine int) int {
	lines := v.doc.Lines

	pht := zone.IntValue("PHT")
	profile, known := rules.Lookup(pht)
	if !known {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "<PHT", zoneLine),
			Message: fmt.Sprintf("{%s} Unknown PHT %d in AdZone %d", report.TagInvalidPHT, pht, zoneIdx),
			AdZone:  zoneIdx,
			PHT:     pht,
			Field:   "PHT",
		})
		profile = nil
	}

	declaredAds := zone.IntValue("numberOfAds")
	ads := zone.FindAll("advertInfo")

	if profile != nil && (declaredAds < profile.MinAds || declaredAds > profile.MaxAds) {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "numberOfAds", zoneLine),
			Message: fmt.Sprintf("{%s} AdZone %d (PHT %d, %s): numberOfAds %d outside allowed range %d-%d", report.TagPHTRuleViolation, zoneIdx, pht, profile.Name, declaredAds, profile.MinAds, profile.MaxAds),
			AdZone:  zoneIdx,
			PHT:     pht,
			Field:   "numberOfAds",
		})
	}

	if declaredAds != len(ads) {
		v.result.AddError(report.ValidationError{
			Line:    epg.FindLine(lines, "numberOfAds", zoneLine),
			Message: fmt.Sprintf("{%s} AdZone %d (PHT %d): Expected %d ads but found %d", report.TagCountMismatch, zoneIdx, pht, declaredAds, len(ads)),
			AdZone:  zoneIdx,
			PHT:     pht,
		})
	}

	seenImageIDs := make(map[string]int)
	adCursor := zoneLine
	for ai, ad := range ads {
		adLine := epg.FindLine(lines, "<advertInfo", adCursor)
		adCursor = adLine
		v.validateAd(ad, profile, zoneIdx, pht, ai+1, adLine, seenImageIDs)
	}

	return len(ads)
}

// validateAd checks one advertInfo entry: image and animate attribute
// specs, duplicate image ids, asset cross-references, scalar element
// content and required child tags.
func (v *validator) validateAd(ad *epg.Element, profile *rules.Profile, zoneIdx, pht, adIdx, adLine int, seenImageIDs map[string]int) {
	lines := v.doc.Lines

	if img := ad.FirstChild("image"); img != nil {
		imgLine := epg.FindLine(lines, "<image", adLine)

		if profile != nil {
			v.checkAttrSpecs(img, profile.ImageAttrs, rules.ImageAttrOrder, "image", zoneIdx, pht, adIdx, imgLine)
		}

		// Duplicate image ids within one zone are ambiguous regardless of
		// which profile applies.
		if id, ok := img.Attr("id"); ok && id != "" {
			if prev, dup := seenImageIDs[id]; dup {
				v.result.AddError(report.ValidationError{
					Line:    imgLine,
					Message: fmt.Sprintf("{%s} Duplicate image id '%s' in AdZone %d (Ad %d, already used by Ad %d)", report.TagDuplicateID, id, zoneIdx, adIdx, prev),
					AdZone:  zoneIdx,
					PHT:     pht,
					Field:   "id",
				})
			} else {
				seenImageIDs[id] = adIdx
			}
		}

		if profile != nil {
			if t, ok := img.Attr("type"); ok && t != "" && !profile.AllowsFileType(strings.ToLower(t)) {
				v.result.AddError(report.ValidationError{
					Line:    imgLine,
					Message: fmt.Sprintf("{%s} Invalid file type '%s' for PHT %d (AdZone %d, Ad %d)", report.TagInvalidFileType, t, pht, zoneIdx, adIdx),
					AdZone:  zoneIdx,
					PHT:     pht,
					Field:   "type",
				})
			}
		}

		v.checkAssetReference(img, zoneIdx, pht, adIdx, adLine)
	}

	if an := ad.FirstChild("animate"); an != nil && profile != nil {
		animLine := epg.FindLine(lines, "<animate", adLine)
		v.checkAttrSpecs(an, profile.AnimateAttrs, rules.AnimateAttrOrder, "animate", zoneIdx, pht, adIdx, animLine)
	}

	v.checkScalars(ad, zoneIdx, pht, adIdx, adLine)

	if profile != nil {
		for _, tag := range profile.RequiredTags {
			if !ad.HasChild(tag) {
				v.result.AddError(report.ValidationError{
					Line:    adLine,
					Message: fmt.Sprintf("{%s} Missing <%s> in AdZone %d, Ad %d", report.TagMissingTag, tag, zoneIdx, adIdx),
					AdZone:  zoneIdx,
					PHT:     pht,
					Field:   tag,
				})
				v.result.Summary.MissingTags = appendUnique(v.result.Summary.MissingTags, tag)
			}
		}
	}
}

// checkAttrSpecs validates every attribute spec of one element. Missing
// required attributes, enumeration violations, pattern violations and
// custom-check violations are each reported as distinct errors.
func (v *validator) checkAttrSpecs(el *epg.Element, specs map[string]rules.AttrSpec, order []string, elemName string, zoneIdx, pht, adIdx, line int) {
	for _, name := range order {
		spec, ok := specs[name]
		if !ok {
			continue
		}
		value, present := el.Attr(name)
		if !present {
			if spec.Required {
				v.result.AddError(report.ValidationError{
					Line:    line,
					Message: fmt.Sprintf("{%s} Missing '%s' attribute in %s element (AdZone %d, Ad %d)", report.TagMissingAttribute, name, elemName, zoneIdx, adIdx),
					AdZone:  zoneIdx,
					PHT:     pht,
					Field:   name,
				})
				v.result.Summary.InvalidAttributes = appendUnique(v.result.Summary.InvalidAttributes, name)
			}
			continue
		}

		if !spec.Allows(value) {
			v.result.AddError(report.ValidationError{
				Line:    line,
				Message: fmt.Sprintf("{%s} Invalid value '%s' for '%s' attribute in %s element, expected one of [%s] (AdZone %d, Ad %d)", report.TagInvalidValue, value, name, elemName, strings.Join(spec.AllowedValues, ", "), zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   name,
			})
			v.result.Summary.InvalidAttributes = appendUnique(v.result.Summary.InvalidAttributes, name)
		}
		if spec.Pattern != nil && !spec.Pattern.MatchString(value) {
			v.result.AddError(report.ValidationError{
				Line:    line,
				Message: fmt.Sprintf("{%s} Value '%s' for '%s' attribute in %s element does not match required format (AdZone %d, Ad %d)", report.TagPatternMismatch, value, name, elemName, zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   name,
			})
			v.result.Summary.InvalidAttributes = appendUnique(v.result.Summary.InvalidAttributes, name)
		}
		if spec.Check != nil && !spec.Check(value) {
			v.result.AddError(report.ValidationError{
				Line:    line,
				Message: fmt.Sprintf("{%s} Value '%s' for '%s' attribute in %s element failed validation (AdZone %d, Ad %d)", report.TagValidationFailed, value, name, elemName, zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   name,
			})
			v.result.Summary.InvalidAttributes = appendUnique(v.result.Summary.InvalidAttributes, name)
		}
	}
}

// checkAssetReference cross-checks the declared fileName and dimensions
// against the asset reference store.
func (v *validator) checkAssetReference(img *epg.Element, zoneIdx, pht, adIdx, adLine int) {
	fileName, ok := img.Attr("fileName")
	if !ok || fileName == "" {
		return
	}

	fileLine := epg.FindLine(v.doc.Lines, fileName, adLine)
	rec, found := v.store.Lookup(fileName)
	if !found {
		v.result.AddError(report.ValidationError{
			Line:    fileLine,
			Message: fmt.Sprintf("{%s} File %s not found in asset database (AdZone %d, Ad %d)", report.TagFileNotFound, fileName, zoneIdx, adIdx),
			AdZone:  zoneIdx,
			PHT:     pht,
			Field:   "fileName",
		})
		return
	}

	declaredW := attrInt(img, "w")
	declaredH := attrInt(img, "h")
	if declaredW != rec.ActualWidth || declaredH != rec.ActualHeight {
		v.result.AddError(report.ValidationError{
			Line:    fileLine,
			Message: fmt.Sprintf("{%s} Dimension mismatch for %s: XML declares %dx%d but actual is %dx%d (AdZone %d, Ad %d)", report.TagDimensionMismatch, fileName, declaredW, declaredH, rec.ActualWidth, rec.ActualHeight, zoneIdx, adIdx),
			AdZone:  zoneIdx,
			PHT:     pht,
			Field:   "fileName",
		})
	}
}

// checkScalars validates genre, lang and the two timestamp elements when
// present. Absence is handled by the required-tag check.
func (v *validator) checkScalars(ad *epg.Element, zoneIdx, pht, adIdx, adLine int) {
	lines := v.doc.Lines

	if g := ad.FirstChild("genre"); g != nil {
		if value := g.TrimmedText(); !rules.ValidateGenre(value) {
			v.result.AddError(report.ValidationError{
				Line:    epg.FindLine(lines, "<genre", adLine),
				Message: fmt.Sprintf("{%s} Invalid genre '%s' (AdZone %d, Ad %d)", report.TagInvalidGenre, value, zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   "genre",
			})
		}
	}

	if l := ad.FirstChild("lang"); l != nil {
		if value := l.TrimmedText(); !rules.ValidateLanguage(value) {
			v.result.AddError(report.ValidationError{
				Line:    epg.FindLine(lines, "<lang", adLine),
				Message: fmt.Sprintf("{%s} Invalid language '%s', expected 3 lowercase letters (AdZone %d, Ad %d)", report.TagInvalidLanguage, value, zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   "lang",
			})
		}
	}

	for _, tag := range []string{"adsStartTime", "adsExpirationTime"} {
		el := ad.FirstChild(tag)
		if el == nil {
			continue
		}
		if value := el.TrimmedText(); !rules.ValidateTimeFormat(value) {
			v.result.AddError(report.ValidationError{
				Line:    epg.FindLine(lines, "<"+tag, adLine),
				Message: fmt.Sprintf("{%s} Invalid time format %s in <%s> (AdZone %d, Ad %d)", report.TagInvalidTimeFormat, value, tag, zoneIdx, adIdx),
				AdZone:  zoneIdx,
				PHT:     pht,
				Field:   tag,
			})
		}
	}
}

func attrInt(el *epg.Element, name string) int {
	v, ok := el.Attr(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
