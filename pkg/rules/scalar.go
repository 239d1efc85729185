package rules

import (
	"regexp"
	"strconv"
)

var (
	genrePattern = regexp.MustCompile(`^\d+$`)
	langPattern  = regexp.MustCompile(`^[a-z]{3}$`)
	// Timestamps are stored as quoted strings inside element text, so the
	// surrounding double quotes are part of the required raw value.
	timePattern = regexp.MustCompile(`^"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\+\d{2}:\d{2}"$`)
)

// ValidateGenre accepts any all-digit positive genre code. The explicit
// 255 and 460 allowances are redundant under the positive-integer rule
// but are kept: they read as reserved codes meant to survive a stricter
// future range check.
func ValidateGenre(genre string) bool {
	if !genrePattern.MatchString(genre) {
		return false
	}
	if genre == "255" || genre == "460" {
		return true
	}
	n, err := strconv.Atoi(genre)
	return err == nil && n > 0
}

// ValidateLanguage accepts exactly three lowercase ASCII letters.
func ValidateLanguage(lang string) bool {
	return langPattern.MatchString(lang)
}

// ValidateTimeFormat accepts a double-quoted ISO-8601 timestamp with a
// numeric UTC offset, e.g. "2024-01-01T00:00:00+09:00" including the
// quote characters.
func ValidateTimeFormat(t string) bool {
	return timePattern.MatchString(t)
}
