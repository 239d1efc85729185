package report

import (
	"regexp"
	"strings"
)

// Error-tag vocabulary embedded in messages. Downstream consumers extract
// these bracketed tokens, so the literals must stay stable.
const (
	TagInvalidPHT        = "Invalid-PHT"
	TagPHTRuleViolation  = "PHT-Rule-Violation"
	TagCountMismatch     = "Count-Mismatch"
	TagMissingAttribute  = "Missing-Attribute"
	TagInvalidValue      = "Invalid-Value"
	TagPatternMismatch   = "Pattern-Mismatch"
	TagValidationFailed  = "Validation-Failed"
	TagDuplicateID       = "Duplicate-ID"
	TagInvalidFileType   = "Invalid-File-Type"
	TagDimensionMismatch = "Dimension-Mismatch"
	TagFileNotFound      = "File-Not-Found"
	TagInvalidGenre      = "Invalid-Genre"
	TagInvalidLanguage   = "Invalid-Language"
	TagInvalidTimeFormat = "Invalid-Time-Format"
	TagMissingTag        = "Missing-Tag"
	TagDuplicatePHT      = "Duplicate-PHT"
)

var tagPattern = regexp.MustCompile(`\{([A-Za-z][A-Za-z-]*)\}`)

// Tag returns the bracketed tag embedded in a message. Messages without a
// bracket tag fall back to keyword classification so reports over
// pre-vocabulary results still group sensibly.
func Tag(message string) string {
	if m := tagPattern.FindStringSubmatch(message); m != nil {
		return m[1]
	}
	switch {
	case strings.Contains(message, "Missing"):
		return "Missing-Element"
	case strings.Contains(message, "Invalid"):
		return TagInvalidValue
	case strings.Contains(message, "Expected"):
		return TagCountMismatch
	}
	return "Validation-Error"
}

// StripTags removes the brace characters from a message, leaving the tag
// text inline. Report formats depend on this exact transformation.
func StripTags(message string) string {
	message = strings.ReplaceAll(message, "{", "")
	return strings.ReplaceAll(message, "}", "")
}
