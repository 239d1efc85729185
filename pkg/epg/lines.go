package epg

import "strings"

// FindLine locates the 1-based line number of the first line at or after
// index fromLine whose text contains needle as a substring. When no line
// matches, it returns fromLine if positive, else 1.
//
// This is a best-effort heuristic: a needle that recurs earlier in the
// document (a generic tag name, a stray angle bracket) can be matched
// before its real occurrence. Callers disambiguate by threading an
// increasing fromLine offset as they walk deeper into nested structures,
// so later searches never re-match earlier boilerplate.
func FindLine(lines []string, needle string, fromLine int) int {
	if fromLine < 0 {
		fromLine = 0
	}
	for i := fromLine; i < len(lines); i++ {
		if strings.Contains(lines[i], needle) {
			return i + 1
		}
	}
	if fromLine > 0 {
		return fromLine
	}
	return 1
}
