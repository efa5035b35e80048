package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/render"
	"github.com/Aman-CERP/physref/internal/search"
)

// Limit returns a copy of res holding at most n items. n <= 0 means no
// limit. Warnings are rebuilt from the kept items' images, so dropped rows
// report nothing. The original result is not modified.
func Limit(res *search.Result, n int) *search.Result {
	if res == nil || n <= 0 || len(res.Items) <= n {
		return res
	}
	out := *res
	out.Items = res.Items[:n:n]
	out.Count = n
	out.Warnings = nil
	for _, it := range out.Items {
		if it.Image != nil && it.Image.Warning != nil {
			out.Warnings = append(out.Warnings, it.Image.Warning)
		}
	}
	return &out
}

// ResultView is the JSON document printed by "physref search --format json".
type ResultView struct {
	Domain   string        `json:"domain"`
	Query    string        `json:"query"`
	Count    int           `json:"count"`
	Total    int           `json:"total"`
	Hint     string        `json:"hint,omitempty"`
	Items    []search.Item `json:"items"`
	Warnings []any         `json:"warnings,omitempty"`
}

// NewResultView builds the JSON view of res. total is the match count
// before any limit was applied.
func NewResultView(res *search.Result, total int, hint string) ResultView {
	v := ResultView{
		Domain: res.Domain.String(),
		Query:  res.Query,
		Count:  res.Count,
		Total:  total,
		Hint:   hint,
		Items:  res.Items,
	}
	if v.Items == nil {
		v.Items = []search.Item{}
	}
	for _, w := range res.Warnings {
		v.Warnings = append(v.Warnings, amerrors.ToJSON(w))
	}
	return v
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// MarkdownOptions controls Markdown.
type MarkdownOptions struct {
	// Details includes the fields of the expanded view.
	Details bool
	Hint    string
	// Total is the match count before a limit; 0 means Count.
	Total int
}

// Markdown renders res as markdown. Math segments are written as
// $$...$$ display blocks.
func Markdown(res *search.Result, opts MarkdownOptions) string {
	var sb strings.Builder

	heading := res.Domain.Title()
	if res.Query != "" {
		heading = fmt.Sprintf("%s matching %q", heading, res.Query)
	}
	sb.WriteString("## " + heading + "\n\n")

	if opts.Hint != "" {
		sb.WriteString(opts.Hint + "\n\n")
	}
	if opts.Total > res.Count {
		sb.WriteString(fmt.Sprintf("_Showing %d of %d results._\n\n", res.Count, opts.Total))
	}

	for _, it := range res.Items {
		writeItemMarkdown(&sb, it, opts.Details)
	}

	if len(res.Warnings) > 0 {
		sb.WriteString("---\n\n")
		for _, w := range res.Warnings {
			sb.WriteString("> ⚠️ " + amerrors.FormatNotice(w) + "\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeItemMarkdown(sb *strings.Builder, it search.Item, details bool) {
	title := render.Join(it.TitleSegments)
	if title == "" {
		title = it.Title
	}
	sb.WriteString("### " + title + "\n\n")

	var extra []search.RenderedField
	for _, f := range it.Fields {
		if f.Detail {
			extra = append(extra, f)
			continue
		}
		writeFieldMarkdown(sb, f)
	}
	if details && len(extra) > 0 {
		sb.WriteString("\n**More Details**\n\n")
		for _, f := range extra {
			writeFieldMarkdown(sb, f)
		}
	}

	if it.Image != nil {
		sb.WriteString("\n")
		if it.Image.Placeholder {
			sb.WriteString("_Image unavailable, showing placeholder._\n\n")
		}
		sb.WriteString(fmt.Sprintf("![%s](%s)\n", it.Title, it.Image.URL))
	}
	sb.WriteString("\n")
}

func writeFieldMarkdown(sb *strings.Builder, f search.RenderedField) {
	sb.WriteString("- **" + f.Name + ":** " + f.Text() + "\n")
}
