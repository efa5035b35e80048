package ui

import (
	"fmt"
	"io"
	"strings"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/render"
	"github.com/Aman-CERP/physref/internal/search"
)

// CardOptions configures a CardRenderer.
type CardOptions struct {
	// Styled draws bordered, colored cards; otherwise plain text.
	Styled bool
	// Details shows the fields of the expanded view.
	Details bool
	// Width is the card width in styled mode; 0 lets cards size to content.
	Width int
}

// CardRenderer draws a search result as one card per matched record.
type CardRenderer struct {
	styles Styles
	opts   CardOptions
}

// NewCardRenderer creates a card renderer.
func NewCardRenderer(opts CardOptions) *CardRenderer {
	return &CardRenderer{
		styles: GetStyles(!opts.Styled),
		opts:   opts,
	}
}

// SetDetails toggles the expanded view.
func (r *CardRenderer) SetDetails(on bool) {
	r.opts.Details = on
}

// SetWidth changes the styled card width.
func (r *CardRenderer) SetWidth(width int) {
	r.opts.Width = width
}

// Write renders res to w.
func (r *CardRenderer) Write(w io.Writer, res *search.Result, hint string) error {
	_, err := io.WriteString(w, r.Render(res, hint))
	return err
}

// Render returns the whole result view: the echoed query, the cards, the
// hint line and any warnings.
func (r *CardRenderer) Render(res *search.Result, hint string) string {
	var sections []string

	if res.Query != "" {
		sections = append(sections,
			r.styles.Label.Render("Current search term: ")+r.styles.Header.Render(res.Query))
	}

	for _, it := range res.Items {
		sections = append(sections, r.RenderItem(it))
	}

	if hint != "" {
		sections = append(sections, r.styles.Hint.Render(hint))
	}

	if len(res.Warnings) > 0 {
		var lines []string
		for _, w := range res.Warnings {
			lines = append(lines, r.styles.Warning.Render("⚠ "+amerrors.FormatNotice(w)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(sections) == 0 {
		return ""
	}
	return strings.Join(sections, "\n\n") + "\n"
}

// RenderItem draws a single card.
func (r *CardRenderer) RenderItem(it search.Item) string {
	var lines []string

	title := it.Title
	if len(it.TitleSegments) > 0 {
		title = r.inline(it.TitleSegments)
	}
	lines = append(lines, r.styles.Title.Render(title))

	var extra []search.RenderedField
	for _, f := range it.Fields {
		if f.Detail {
			extra = append(extra, f)
			continue
		}
		lines = append(lines, r.field(f, "  ")...)
	}

	if r.opts.Details && len(extra) > 0 {
		lines = append(lines, "  "+r.styles.Header.Render("More Details"))
		for _, f := range extra {
			lines = append(lines, r.field(f, "    ")...)
		}
	}

	if it.Image != nil {
		lines = append(lines, r.image(it)...)
	}

	body := strings.Join(lines, "\n")
	if !r.opts.Styled {
		return body
	}
	card := r.styles.Card
	if r.opts.Width > 0 {
		card = card.Width(r.opts.Width)
	}
	return card.Render(body)
}

// field draws "Label: value". In styled mode math segments get their own
// lines, like display equations.
func (r *CardRenderer) field(f search.RenderedField, indent string) []string {
	label := r.styles.Label.Render(f.Name + ":")
	if !r.opts.Styled || !render.HasMath(f.Segments) {
		return []string{indent + label + " " + r.inline(f.Segments)}
	}

	lines := []string{indent + label}
	for _, s := range f.Segments {
		if s.Kind == render.Math {
			lines = append(lines, indent+"    "+r.styles.Math.Render(s.Text))
			continue
		}
		lines = append(lines, indent+"  "+r.styles.Text.Render(s.Text))
	}
	return lines
}

func (r *CardRenderer) inline(segs []render.Segment) string {
	if !r.opts.Styled {
		return render.Join(segs)
	}
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s.Kind == render.Math {
			parts = append(parts, r.styles.Math.Render(s.Text))
			continue
		}
		parts = append(parts, r.styles.Text.Render(s.Text))
	}
	return strings.Join(parts, " ")
}

func (r *CardRenderer) image(it search.Item) []string {
	img := it.Image
	if img.Placeholder {
		return []string{
			"  " + r.styles.Warning.Render("Image unavailable, showing placeholder"),
			"  " + r.styles.Label.Render("Image:") + " " + r.styles.Dim.Render(fmt.Sprintf("%s (%dpx)", img.URL, img.Width)),
		}
	}
	desc := fmt.Sprintf("%s (%dpx", img.URL, img.Width)
	if img.ContentType != "" {
		desc += ", " + img.ContentType
	}
	desc += ")"
	return []string{"  " + r.styles.Label.Render("Image:") + " " + desc}
}
