package record

import "strings"

// Field names. They double as the CSV column headers except for the
// Constants display pair (Name, Symbol), which is derived.
const (
	FieldFormulaName  = "Formula Name"
	FieldChapter      = "Chapter Name"
	FieldUnit         = "Unit"
	FieldDefinition   = "Definition"
	FieldFormula      = "Formula"
	FieldVariables    = "Variables"
	FieldExample      = "Brief Example"
	FieldTips         = "Remarks/Tips"
	FieldKeyConcepts  = "Key Concepts"
	FieldName         = "Name"
	FieldSymbol       = "Symbol"
	FieldValue        = "Value"
	FieldUsage        = "Usage"
	FieldLikelyQ      = "Likely Question"
	FieldYear         = "Year"
	FieldContribution = "Contribution"
	FieldTip          = "Tip"
	FieldImageURL     = "Image URL"
	FieldEntity       = "Entity"
	FieldDimensions   = "Dimensions"
	FieldConstantName = "Constant Name"
)

// Formula is a row of the Formulas table.
type Formula struct {
	Name        string `csv:"Formula Name" json:"name"`
	Chapter     string `csv:"Chapter Name" json:"chapter"`
	Unit        string `csv:"Unit" json:"unit"`
	Definition  string `csv:"Definition" json:"definition"`
	Formula     string `csv:"Formula" json:"formula"`
	Variables   string `csv:"Variables" json:"variables"`
	Example     string `csv:"Brief Example" json:"example"`
	Tips        string `csv:"Remarks/Tips" json:"tips"`
	KeyConcepts string `csv:"Key Concepts" json:"key_concepts"`
}

// Domain implements Record.
func (f Formula) Domain() Domain { return DomainFormulas }

// Fields implements Record.
func (f Formula) Fields() []Field {
	return []Field{
		{FieldFormulaName, f.Name},
		{FieldDefinition, f.Definition},
		{FieldFormula, f.Formula},
		{FieldChapter, f.Chapter},
		{FieldUnit, f.Unit},
		{FieldVariables, f.Variables},
		{FieldExample, f.Example},
		{FieldTips, f.Tips},
		{FieldKeyConcepts, f.KeyConcepts},
	}
}

// Constant is a row of the Constants table. RawName may pair-encode the
// display name and symbol as "Name, Symbol".
type Constant struct {
	RawName        string `csv:"Constant Name" json:"constant_name"`
	SymbolColumn   string `csv:"Symbol" json:"symbol_column"`
	Value          string `csv:"Value" json:"value"`
	Unit           string `csv:"Unit" json:"unit"`
	Definition     string `csv:"Definition" json:"definition"`
	Usage          string `csv:"Usage" json:"usage"`
	LikelyQuestion string `csv:"Likely Question" json:"likely_question"`
}

// Domain implements Record.
func (c Constant) Domain() Domain { return DomainConstants }

// DisplayName returns the display name and symbol of the constant.
func (c Constant) DisplayName() (name, symbol string) {
	return SplitConstantName(c.RawName, c.SymbolColumn)
}

// Fields implements Record.
func (c Constant) Fields() []Field {
	name, symbol := c.DisplayName()
	return []Field{
		{FieldName, name},
		{FieldSymbol, symbol},
		{FieldValue, c.Value},
		{FieldUnit, c.Unit},
		{FieldDefinition, c.Definition},
		{FieldUsage, c.Usage},
		{FieldLikelyQ, c.LikelyQuestion},
	}
}

// SplitConstantName splits a composite "Name, Symbol" field. Exactly two
// comma-separated parts yield the trimmed pair; anything else keeps the
// whole field as the name and falls back to the separate symbol column.
func SplitConstantName(raw, symbolColumn string) (name, symbol string) {
	parts := strings.Split(raw, ",")
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return raw, symbolColumn
}

// Scientist is a row of the Scientists table. Year is free-form text.
type Scientist struct {
	Name           string `csv:"Name" json:"name"`
	Year           string `csv:"Year" json:"year"`
	Contribution   string `csv:"Contribution" json:"contribution"`
	LikelyQuestion string `csv:"Likely Question" json:"likely_question"`
	Tip            string `csv:"Tip" json:"tip"`
	ImageURL       string `csv:"Image URL" json:"image_url"`
}

// Domain implements Record.
func (s Scientist) Domain() Domain { return DomainScientists }

// Fields implements Record.
func (s Scientist) Fields() []Field {
	return []Field{
		{FieldName, s.Name},
		{FieldYear, s.Year},
		{FieldContribution, s.Contribution},
		{FieldImageURL, s.ImageURL},
		{FieldLikelyQ, s.LikelyQuestion},
		{FieldTip, s.Tip},
	}
}

// Dimension is a row of the Dimensions table.
type Dimension struct {
	Entity         string `csv:"Entity" json:"entity"`
	Formula        string `csv:"Formula" json:"formula"`
	Dimensions     string `csv:"Dimensions" json:"dimensions"`
	Tip            string `csv:"Tip" json:"tip"`
	LikelyQuestion string `csv:"Likely Question" json:"likely_question"`
}

// Domain implements Record.
func (d Dimension) Domain() Domain { return DomainDimensions }

// Fields implements Record.
func (d Dimension) Fields() []Field {
	return []Field{
		{FieldEntity, d.Entity},
		{FieldFormula, d.Formula},
		{FieldDimensions, d.Dimensions},
		{FieldTip, d.Tip},
		{FieldLikelyQ, d.LikelyQuestion},
	}
}

// Compile-time interface checks.
var (
	_ Record = Formula{}
	_ Record = Constant{}
	_ Record = Scientist{}
	_ Record = Dimension{}
)
