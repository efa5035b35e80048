package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/output"
	"github.com/Aman-CERP/physref/internal/record"
	"github.com/Aman-CERP/physref/internal/ui"
)

// domainView is one row of "physref domains --json".
type domainView struct {
	ui.DomainStatus
	Title        string   `json:"title"`
	SearchFields []string `json:"search_fields"`
}

func newDomainsCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List the reference tables",
		Long:  `List the four reference tables with their record counts, load status and searched fields.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := ui.DomainStatuses(a.catalog)

			if jsonOutput {
				views := make([]domainView, len(statuses))
				for i, st := range statuses {
					schema := record.SchemaFor(record.Domains[i])
					views[i] = domainView{DomainStatus: st, Title: record.Domains[i].Title(), SearchFields: schema.Search}
				}
				return output.WriteJSON(cmd.OutOrStdout(), views)
			}

			out := output.New(cmd.OutOrStdout())
			for i, st := range statuses {
				schema := record.SchemaFor(record.Domains[i])
				out.KeyValue(record.Domains[i].Title(), fmt.Sprintf("%d %s (%s)", st.Records, schema.Noun, st.Status))
			}
			for _, err := range a.catalog.Notices() {
				out.Notice(err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
