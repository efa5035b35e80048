package search

import (
	"github.com/Aman-CERP/physref/internal/imageload"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/render"
)

// RenderedField is one display field of a matched record.
type RenderedField struct {
	Name     string           `json:"name"`
	Segments []render.Segment `json:"segments"`
	// Detail marks fields that belong to the expanded view.
	Detail bool `json:"detail,omitempty"`
}

// Text returns the field in its display form.
func (f RenderedField) Text() string {
	return render.Join(f.Segments)
}

// Item is one matched record, ready for presentation.
type Item struct {
	// Index is the record's position in its store.
	Index         int              `json:"index"`
	Title         string           `json:"title"`
	TitleSegments []render.Segment `json:"title_segments"`
	Fields        []RenderedField  `json:"fields"`
	// Image is set for domains with an image field when a loader is
	// configured.
	Image *imageload.Image `json:"image,omitempty"`
}

// Field returns the rendered field with the given name.
func (it Item) Field(name string) (RenderedField, bool) {
	for _, f := range it.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return RenderedField{}, false
}

// Result is the ordered set of matches for one query in one domain.
type Result struct {
	Domain record.Domain `json:"domain"`
	// Query is the normalized query.
	Query string `json:"query"`
	Count int    `json:"count"`
	Items []Item `json:"items"`
	// Warnings collects non-fatal problems, such as images that fell back
	// to the placeholder.
	Warnings []error `json:"-"`
}

// WarningMessages returns the warnings as strings.
func (r *Result) WarningMessages() []string {
	msgs := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		msgs[i] = w.Error()
	}
	return msgs
}
