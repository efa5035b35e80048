package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/logging"
	"github.com/Aman-CERP/physref/internal/ui"
)

func newStatsCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show table and log statistics",
		Long: `Display where the tables come from, how many records each holds, whether
images are fetched and where the log file lives.

Search telemetry is kept in memory per process; the interactive browser
shows it live with ctrl+t and the MCP server exposes it as
physref://metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.statsInfo()
			r := ui.NewStatsRenderer(cmd.OutOrStdout(), !ui.UseStyles(cmd.OutOrStdout(), a.noColor()))
			if jsonOutput {
				return r.RenderJSON(info)
			}
			return r.Render(info)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// statsInfo gathers what the stats views report.
func (a *app) statsInfo() ui.StatsInfo {
	info := ui.StatsInfo{
		DataSource:    dataLabel(a.cfg),
		Domains:       ui.DomainStatuses(a.catalog),
		ImagesEnabled: a.cfg.ImagesEnabled(),
	}

	if path, err := logging.FindLogFile(""); err == nil {
		info.LogPath = path
		if fi, err := os.Stat(path); err == nil {
			info.LogSize = fi.Size()
			info.LogModified = fi.ModTime()
		}
	}

	if snap := a.metrics.Snapshot(); snap.TotalQueries > 0 {
		info.Telemetry = snap
	}
	return info
}
