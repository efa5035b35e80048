package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tables over MCP",
		Long: `Run an MCP server on stdio exposing the reference tables.

Tools:
  search        search one table (domain, query, limit, include_images, details)
  list_domains  record counts and load status per table

Resources:
  physref://tables/<domain>  the table as CSV
  physref://metrics          search telemetry for this session

Stdout carries the protocol only; logs go to ~/.physref/logs/physref.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []mcp.ServerOption{
				mcp.WithMetrics(a.metrics),
				mcp.WithLogger(a.logger),
			}
			if a.cfg.ImagesEnabled() {
				opts = append(opts, mcp.WithImageEngine(a.newEngine(true)))
			}

			srv, err := mcp.NewServer(a.catalog, a.newEngine(false), opts...)
			if err != nil {
				return err
			}

			a.logger.Info("serve_started",
				slog.String("transport", transport),
				slog.String("data_dir", dataLabel(a.cfg)),
				slog.Bool("images", a.cfg.ImagesEnabled()))
			return srv.Serve(cmd.Context(), transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport (only stdio is supported)")

	return cmd
}
