// Package rules holds the static PHT (Product Hardware Type) rule
// catalog: per-profile structural bounds, attribute specs and allowed
// asset types, plus the standalone scalar validators.
package rules

import (
	"regexp"
	"sort"
	"strconv"
)

// AttrSpec constrains one attribute value. Evaluation is uniform: a
// required attribute must be present; when present the value must satisfy
// the pattern, the allowed-value enumeration and the custom check,
// whichever are set.
type AttrSpec struct {
	Required      bool
	Pattern       *regexp.Regexp
	AllowedValues []string
	Check         func(value string) bool
}

// Allows reports whether v is in the AllowedValues enumeration. An empty
// enumeration allows everything.
func (s AttrSpec) Allows(v string) bool {
	if len(s.AllowedValues) == 0 {
		return true
	}
	for _, a := range s.AllowedValues {
		if v == a {
			return true
		}
	}
	return false
}

// Profile is one device profile's validation rule set.
type Profile struct {
	ID               int
	Name             string
	Description      string
	MinAds           int
	MaxAds           int
	RequiredTags     []string
	ImageAttrs       map[string]AttrSpec
	AnimateAttrs     map[string]AttrSpec
	AllowedFileTypes []string
}

// AllowsFileType reports whether the asset type token is permitted for
// this profile. Comparison is case-insensitive on the caller's side:
// tokens in the catalog are lowercase.
func (p *Profile) AllowsFileType(t string) bool {
	for _, ft := range p.AllowedFileTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// ImageAttrOrder and AnimateAttrOrder fix the evaluation order of
// attribute specs so repeated runs report findings identically.
var (
	ImageAttrOrder   = []string{"id", "zOrder", "type", "w", "h", "x", "y", "fileName", "resolution", "duration", "align", "style"}
	AnimateAttrOrder = []string{"style", "delay", "pixel", "dur", "repeat"}
)

var (
	digits      = regexp.MustCompile(`^\d+$`)
	upToThree   = regexp.MustCompile(`^\d{1,3}$`)
	twoDigits   = regexp.MustCompile(`^\d{2}$`)
	imageFile   = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+\.(png|jpg|jpeg)$`)
	bootUpFile  = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+\.(m2v|mp4|png|jpg|jpeg)$`)
	imageTypes  = []string{"png", "jpg", "jpeg"}
	bootUpTypes = []string{"m2v", "mp4", "png", "jpg", "jpeg"}
)

// isPositiveInteger is the custom check for image id attributes: all
// decimal digits and numerically greater than zero.
func isPositiveInteger(v string) bool {
	if !digits.MatchString(v) {
		return false
	}
	n, err := strconv.Atoi(v)
	return err == nil && n > 0
}

// imageAttrs builds the image attribute table for a profile. Profiles
// share every spec except the allowed w/h values, the permitted file
// types and the fileName extension pattern.
func imageAttrs(widths, heights, types []string, fileName *regexp.Regexp) map[string]AttrSpec {
	return map[string]AttrSpec{
		"id":         {Required: true, Check: isPositiveInteger},
		"zOrder":     {Required: true, Pattern: upToThree},
		"type":       {Required: true, AllowedValues: types},
		"w":          {Required: true, AllowedValues: widths},
		"h":          {Required: true, AllowedValues: heights},
		"x":          {Required: true, Pattern: digits},
		"y":          {Required: true, Pattern: digits},
		"fileName":   {Required: true, Pattern: fileName},
		"resolution": {Required: true, AllowedValues: []string{"small", "large"}},
		"duration":   {Required: true, Pattern: twoDigits},
		"align":      {Required: true, AllowedValues: []string{"1", "2", "3"}},
		"style":      {Required: true, AllowedValues: []string{"1", "2", "3"}},
	}
}

// animateAttrs is identical across all profiles.
func animateAttrs() map[string]AttrSpec {
	return map[string]AttrSpec{
		"style":  {Required: true, AllowedValues: []string{"1", "2", "3"}},
		"delay":  {Required: true, Pattern: digits},
		"pixel":  {Required: true, Pattern: digits},
		"dur":    {Required: true, Pattern: digits},
		"repeat": {Required: true, AllowedValues: []string{"0", "1"}},
	}
}

var requiredAdTags = []string{"image", "animate", "genre", "lang", "adsStartTime", "adsExpirationTime"}

// catalog maps profile id to its rule set. Loaded once, immutable.
var catalog = map[int]*Profile{
	1: {
		ID:               1,
		Name:             "Home Advert",
		Description:      "Home screen advertisement zone",
		MinAds:           1,
		MaxAds:           15,
		RequiredTags:     requiredAdTags,
		ImageAttrs:       imageAttrs([]string{"180", "250", "300", "360"}, []string{"125", "180", "240", "280"}, imageTypes, imageFile),
		AnimateAttrs:     animateAttrs(),
		AllowedFileTypes: imageTypes,
	},
	2: {
		ID:               2,
		Name:             "Channel Banner Advert",
		Description:      "Channel banner advertisement zone",
		MinAds:           1,
		MaxAds:           10,
		RequiredTags:     requiredAdTags,
		ImageAttrs:       imageAttrs([]string{"174", "200", "250"}, []string{"136", "150", "180"}, imageTypes, imageFile),
		AnimateAttrs:     animateAttrs(),
		AllowedFileTypes: imageTypes,
	},
	3: {
		ID:               3,
		Name:             "Guide Advert",
		Description:      "Guide screen advertisement zone",
		MinAds:           1,
		MaxAds:           8,
		RequiredTags:     requiredAdTags,
		ImageAttrs:       imageAttrs([]string{"360", "400", "450"}, []string{"180", "200", "240"}, imageTypes, imageFile),
		AnimateAttrs:     animateAttrs(),
		AllowedFileTypes: imageTypes,
	},
	4: {
		ID:               4,
		Name:             "BootUp Advert",
		Description:      "Boot-up screen advertisement zone",
		MinAds:           1,
		MaxAds:           5,
		RequiredTags:     requiredAdTags,
		ImageAttrs:       imageAttrs([]string{"480", "720", "1080"}, []string{"240", "360", "540"}, bootUpTypes, bootUpFile),
		AnimateAttrs:     animateAttrs(),
		AllowedFileTypes: bootUpTypes,
	},
}

// Lookup resolves a profile id against the catalog.
func Lookup(id int) (*Profile, bool) {
	p, ok := catalog[id]
	return p, ok
}

// Profiles returns the catalog sorted by profile id.
func Profiles() []*Profile {
	out := make([]*Profile, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
