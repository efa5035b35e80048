package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/output"
	"github.com/Aman-CERP/physref/internal/preflight"
)

// doctorReport is the JSON output of doctor.
type doctorReport struct {
	Status string                  `json:"status"`
	Checks []preflight.CheckResult `json:"checks"`
}

func newDoctorCmd(a *app) *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
		online     bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose tables, logging and image settings",
		Long: `Check that physref can run:
  - each reference table loads (a missing table is reported, not fatal)
  - at least one table is usable (required)
  - the log directory is writable
  - the image settings are valid; --online also requests the placeholder`,
		Example: `  physref doctor
  physref doctor --verbose --online
  physref --data-dir ./tables doctor --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := preflight.New(
				preflight.WithOnline(online),
				preflight.WithVerbose(verbose),
				preflight.WithOutput(cmd.OutOrStdout()),
			)
			results := checker.RunAll(cmd.Context(), preflight.Target{Catalog: a.catalog, Config: a.cfg})

			if jsonOutput {
				if err := output.WriteJSON(cmd.OutOrStdout(), doctorReport{
					Status: checker.SummaryStatus(results),
					Checks: results,
				}); err != nil {
					return err
				}
			} else {
				checker.PrintResults(results)
			}

			if checker.HasCriticalFailures(results) {
				return errors.New("doctor found critical problems")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show check details")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&online, "online", false, "Also request the placeholder image")

	return cmd
}
