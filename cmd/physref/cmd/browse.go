package cmd

import (
	"github.com/spf13/cobra"

	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/session"
	"github.com/Aman-CERP/physref/internal/ui"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		domain  string
		details bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the tables interactively",
		Long: `Open the interactive browser. Results refresh on every keystroke.

Keys:
  tab / shift+tab   switch table
  esc / ctrl+u      clear the search
  ctrl+d            toggle More Details
  ctrl+t            toggle the stats panel
  ↑ ↓ pgup pgdown   scroll
  ctrl+c            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, ok := record.ParseDomain(domain)
			if !ok {
				return amerrors.UnknownDomainError(domain)
			}
			if !ui.IsTTY(cmd.OutOrStdout()) {
				return amerrors.ValidationError("browse needs an interactive terminal", nil).
					WithSuggestion("Use 'physref search' for piped or scripted output")
			}

			return ui.RunBrowse(cmd.Context(), ui.BrowseConfig{
				Catalog: a.catalog,
				Engine:  a.newEngine(true),
				Session: session.New(d),
				Metrics: a.metrics,
				Stats:   a.statsInfo(),
				Details: details || a.cfg.Output.Details,
				NoColor: a.noColor(),
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&domain, "domain", record.DomainFormulas.String(), "Table to open first")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Start with More Details shown")

	return cmd
}
