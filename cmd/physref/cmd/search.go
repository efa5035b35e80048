package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/config"
	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/output"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	format   string // "text", "json", "markdown"
	limit    int
	details  bool
	noImages bool
}

func newSearchCmd(a *app) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <domain> [query...]",
		Short: "Search one reference table",
		Long: `Search one reference table by case-insensitive substring.

Domains: formulas, constants, scientists, dimensions (singular forms work
too). Without a query every record of the table is listed. Math is shown
as LaTeX between $$ delimiters.

Examples:
  physref search formulas speed
  physref search constant c
  physref search scientists newton --details
  physref search dimensions --format json
  physref search formulas "laws of motion" --format markdown -n 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				opts.format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("limit") {
				opts.limit = a.cfg.Output.Limit
			}
			opts.details = opts.details || a.cfg.Output.Details
			return runSearch(cmd.Context(), cmd.OutOrStdout(), a, args[0], strings.Join(args[1:], " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatText, "Output format: text, json, markdown")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (0 = all)")
	cmd.Flags().BoolVarP(&opts.details, "details", "d", false, "Show the More Details fields")
	cmd.Flags().BoolVar(&opts.noImages, "no-images", false, "Do not fetch scientist portraits")

	return cmd
}

func runSearch(ctx context.Context, w io.Writer, a *app, domainArg, query string, opts searchOptions) error {
	domain, ok := record.ParseDomain(domainArg)
	if !ok {
		return amerrors.UnknownDomainError(domainArg)
	}
	format := strings.ToLower(opts.format)
	switch format {
	case config.FormatText, config.FormatJSON, config.FormatMarkdown:
	default:
		return amerrors.ValidationError(
			fmt.Sprintf("unknown output format %q", opts.format), nil).
			WithSuggestion("Use one of: text, json, markdown")
	}
	if opts.limit < 0 {
		return amerrors.ValidationError(fmt.Sprintf("limit must be non-negative, got %d", opts.limit), nil)
	}

	engine := a.newEngine(!opts.noImages)
	full := engine.SearchLimit(ctx, a.catalog.Store(domain), query, opts.limit)
	res := output.Limit(full, opts.limit)
	hint := engine.Hint(full)
	notice := a.catalog.NoticeFor(domain)

	switch format {
	case config.FormatJSON:
		view := output.NewResultView(res, full.Count, hint)
		if notice != nil {
			view.Warnings = append([]any{amerrors.ToJSON(notice)}, view.Warnings...)
		}
		return output.WriteJSON(w, view)

	case config.FormatMarkdown:
		md := output.Markdown(res, output.MarkdownOptions{Details: opts.details, Hint: hint, Total: full.Count})
		if notice != nil {
			md += "\n> ⚠️ " + amerrors.FormatNotice(notice) + "\n"
		}
		_, err := io.WriteString(w, md)
		return err

	default:
		out := output.New(w)
		out.Notice(notice)
		cards := ui.NewCardRenderer(ui.CardOptions{
			Styled:  ui.UseStyles(w, a.noColor()),
			Details: opts.details,
			Width:   80,
		})
		if err := cards.Write(w, res, hint); err != nil {
			return err
		}
		if res.Count < full.Count {
			out.Statusf("", "Showing %d of %d results. Use --limit 0 to see all.", res.Count, full.Count)
		}
		return nil
	}
}
