package mcp

import (
	"fmt"
	"strings"

	"github.com/Aman-CERP/physref/internal/output"
	"github.com/Aman-CERP/physref/internal/render"
	"github.com/Aman-CERP/physref/internal/search"
)

// FormatSearchResult formats a result as markdown for the text content of
// the search tool. notice, if set, explains an unavailable table.
func FormatSearchResult(res *search.Result, total int, hint string, details bool, notice string) string {
	md := output.Markdown(res, output.MarkdownOptions{Details: details, Hint: hint, Total: total})
	if notice == "" {
		return md
	}
	return md + "\n> ⚠️ " + notice + "\n"
}

// FormatDomains formats the domain list as a markdown table.
func FormatDomains(domains []DomainOutput) string {
	var sb strings.Builder
	sb.WriteString("## Reference Tables\n\n")
	sb.WriteString("| Domain | Records | Status | Searched fields |\n")
	sb.WriteString("|--------|---------|--------|-----------------|\n")
	for _, d := range domains {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
			d.Name, d.Records, d.Status, strings.Join(d.SearchFields, ", ")))
	}

	var notices []string
	for _, d := range domains {
		if d.Notice != "" {
			notices = append(notices, fmt.Sprintf("- **%s**: %s", d.Name, d.Notice))
		}
	}
	if len(notices) > 0 {
		sb.WriteString("\n**Notices**\n\n")
		sb.WriteString(strings.Join(notices, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToSearchOutput converts a result to the structured tool output.
func ToSearchOutput(res *search.Result, total int, hint string, details bool) SearchOutput {
	out := SearchOutput{
		Domain: res.Domain.String(),
		Query:  res.Query,
		Count:  res.Count,
		Total:  total,
		Hint:   hint,
		Items:  make([]ItemOutput, 0, len(res.Items)),
	}
	for _, it := range res.Items {
		out.Items = append(out.Items, toItemOutput(it, details))
	}
	out.Warnings = append(out.Warnings, res.WarningMessages()...)
	return out
}

func toItemOutput(it search.Item, details bool) ItemOutput {
	item := ItemOutput{
		Index:  it.Index,
		Title:  it.Title,
		Fields: make([]FieldOutput, 0, len(it.Fields)),
	}
	for _, f := range it.Fields {
		if f.Detail && !details {
			continue
		}
		fo := FieldOutput{Name: f.Name, Text: f.Text(), Detail: f.Detail}
		for _, s := range f.Segments {
			if s.Kind == render.Math {
				fo.Math = append(fo.Math, s.Text)
			}
		}
		item.Fields = append(item.Fields, fo)
	}
	if img := it.Image; img != nil {
		item.Image = &ImageOutput{
			URL:         img.URL,
			Width:       img.Width,
			ContentType: img.ContentType,
			Placeholder: img.Placeholder,
		}
	}
	return item
}
