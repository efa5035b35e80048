package record

import "slices"

// Schema configures how a domain is searched and presented. The matcher and
// presenter are domain-agnostic; everything domain-specific lives here.
type Schema struct {
	Domain Domain

	// Noun is used in count and hint lines ("Found 3 matching formulas.").
	Noun string

	// Title names the field used as the heading of a result.
	Title string

	// Search lists the fields tested by the matcher, in order.
	Search []string

	// Math lists the fields that may embed $...$ math markup.
	Math []string

	// Image names the field holding an image URL, or "" for none.
	Image string

	// Details lists the fields shown only in the expanded view.
	Details []string
}

var schemas = map[Domain]Schema{
	DomainFormulas: {
		Domain: DomainFormulas,
		Noun:   "formulas",
		Title:  FieldFormulaName,
		Search: []string{FieldFormulaName, FieldChapter, FieldKeyConcepts},
		Math:   []string{FieldDefinition, FieldFormula, FieldVariables, FieldExample, FieldTips},
		Details: []string{
			FieldChapter, FieldUnit, FieldVariables, FieldExample, FieldTips, FieldKeyConcepts,
		},
	},
	DomainConstants: {
		Domain:  DomainConstants,
		Noun:    "constants",
		Title:   FieldName,
		Search:  []string{FieldName, FieldSymbol, FieldDefinition, FieldUsage},
		Math:    []string{FieldName, FieldSymbol, FieldValue, FieldUnit, FieldDefinition, FieldUsage, FieldLikelyQ},
		Details: []string{FieldUsage, FieldLikelyQ},
	},
	DomainScientists: {
		Domain:  DomainScientists,
		Noun:    "scientists",
		Title:   FieldName,
		Search:  []string{FieldName, FieldYear, FieldContribution, FieldLikelyQ, FieldTip},
		Math:    []string{FieldContribution, FieldLikelyQ, FieldTip},
		Image:   FieldImageURL,
		Details: []string{FieldLikelyQ, FieldTip},
	},
	DomainDimensions: {
		Domain:  DomainDimensions,
		Noun:    "dimensions",
		Title:   FieldEntity,
		Search:  []string{FieldEntity, FieldFormula, FieldDimensions, FieldTip, FieldLikelyQ},
		Math:    []string{FieldFormula, FieldDimensions, FieldTip, FieldLikelyQ},
		Details: []string{FieldTip, FieldLikelyQ},
	},
}

// SchemaFor returns the schema of a domain. Unknown domains get an empty
// schema that matches only the empty query.
func SchemaFor(d Domain) Schema {
	if s, ok := schemas[d]; ok {
		return s
	}
	return Schema{Domain: d, Noun: "records"}
}

// IsMath reports whether the field may contain math markup.
func (s Schema) IsMath(field string) bool {
	return slices.Contains(s.Math, field)
}

// IsDetail reports whether the field belongs to the expanded view.
func (s Schema) IsDetail(field string) bool {
	return slices.Contains(s.Details, field)
}

// IsImage reports whether the field holds an image URL.
func (s Schema) IsImage(field string) bool {
	return s.Image != "" && s.Image == field
}
