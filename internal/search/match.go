package search

import (
	"strings"

	"github.com/Aman-CERP/physref/internal/record"
)

// Matches reports whether any of the listed fields of rec contains query,
// ignoring case. query must already be normalized. Fields are tested in the
// given order and absent values are skipped; the empty query matches
// everything.
func Matches(rec record.Record, fields []string, query string) bool {
	if query == "" {
		return true
	}
	values := rec.Fields()
	for _, name := range fields {
		for _, f := range values {
			if f.Name != name || record.IsAbsent(f.Text) {
				continue
			}
			if strings.Contains(fold(f.Text), query) {
				return true
			}
		}
	}
	return false
}
