// Package record defines the four reference domains and their immutable,
// flat record types. Every record exposes its content as an ordered list of
// named text fields so that matching and presentation can be written once
// for all domains.
package record

import "strings"

// Domain identifies one of the reference tables.
type Domain string

const (
	DomainFormulas   Domain = "formulas"
	DomainConstants  Domain = "constants"
	DomainScientists Domain = "scientists"
	DomainDimensions Domain = "dimensions"
)

// Domains lists every domain in display order.
var Domains = []Domain{DomainFormulas, DomainConstants, DomainScientists, DomainDimensions}

// String returns the domain name.
func (d Domain) String() string {
	return string(d)
}

// Title returns the capitalized domain name for headers.
func (d Domain) Title() string {
	if d == "" {
		return ""
	}
	s := string(d)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseDomain resolves a user-supplied domain name. Singular forms and any
// letter case are accepted ("Formula", "constants", "SCIENTIST").
func ParseDomain(s string) (Domain, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Domains {
		if s == string(d) || s+"s" == string(d) {
			return d, true
		}
	}
	return "", false
}

// Sentinel is the source's marker for an absent optional value.
const Sentinel = "-"

// IsAbsent reports whether a field value carries no content: the sentinel,
// or an empty cell.
func IsAbsent(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == Sentinel
}

// Field is one named text value of a record.
type Field struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Record is the searchable view of any domain row.
type Record interface {
	// Domain returns the table this record belongs to.
	Domain() Domain
	// Fields returns the record's named values in display order.
	Fields() []Field
}
