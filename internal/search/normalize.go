package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims surrounding whitespace and lower-cases the query. The
// result is stable under repeated application; an empty result matches
// every record.
func Normalize(raw string) string {
	return fold(strings.TrimSpace(raw))
}

// fold lower-cases without any locale-specific rules, so "I" always becomes
// "i". A Caser keeps state and is not safe for concurrent use, hence one per
// call.
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Und).String(s)
}
