package mcp

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Domain        string `json:"domain" jsonschema:"table to search: formulas, constants, scientists or dimensions"`
	Query         string `json:"query,omitempty" jsonschema:"case-insensitive substring; empty lists the whole table"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10, max 50"`
	IncludeImages bool   `json:"include_images,omitempty" jsonschema:"fetch scientist portraits, falling back to a placeholder"`
	Details       bool   `json:"details,omitempty" jsonschema:"include the expanded fields (examples, tips, likely questions)"`
}

// SearchOutput defines the output schema for the search tool.
type SearchOutput struct {
	Domain   string       `json:"domain" jsonschema:"table that was searched"`
	Query    string       `json:"query" jsonschema:"normalized query"`
	Count    int          `json:"count" jsonschema:"number of results returned"`
	Total    int          `json:"total" jsonschema:"number of matches before the limit"`
	Hint     string       `json:"hint" jsonschema:"one-line summary of the result"`
	Items    []ItemOutput `json:"items" jsonschema:"matched records in table order"`
	Warnings []string     `json:"warnings,omitempty" jsonschema:"non-fatal problems such as unavailable images or tables"`
}

// ItemOutput is one matched record.
type ItemOutput struct {
	Index  int           `json:"index" jsonschema:"row position in the table"`
	Title  string        `json:"title"`
	Fields []FieldOutput `json:"fields"`
	Image  *ImageOutput  `json:"image,omitempty"`
}

// FieldOutput is one display field. Text uses $$...$$ around math.
type FieldOutput struct {
	Name   string   `json:"name"`
	Text   string   `json:"text"`
	Math   []string `json:"math,omitempty" jsonschema:"LaTeX expressions found in the field"`
	Detail bool     `json:"detail,omitempty" jsonschema:"true for expanded-view fields"`
}

// ImageOutput describes a resolved image.
type ImageOutput struct {
	URL         string `json:"url"`
	Width       int    `json:"width"`
	ContentType string `json:"content_type,omitempty"`
	Placeholder bool   `json:"placeholder" jsonschema:"true when the original image could not be fetched"`
}

// ListDomainsInput defines the input schema for the list_domains tool (no parameters).
type ListDomainsInput struct{}

// ListDomainsOutput defines the output schema for the list_domains tool.
type ListDomainsOutput struct {
	Domains []DomainOutput `json:"domains"`
}

// DomainOutput describes one table.
type DomainOutput struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Records      int      `json:"records"`
	Status       string   `json:"status" jsonschema:"loaded, empty or unavailable"`
	Notice       string   `json:"notice,omitempty" jsonschema:"why the table is unavailable"`
	SearchFields []string `json:"search_fields" jsonschema:"fields the query is matched against"`
	HasImages    bool     `json:"has_images,omitempty"`
}
