// Package cmd provides the CLI commands for physref.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/physref/internal/config"
	amerrors "github.com/Aman-CERP/physref/internal/errors"
	"github.com/Aman-CERP/physref/internal/imageload"
	"github.com/Aman-CERP/physref/internal/logging"
	"github.com/Aman-CERP/physref/internal/profiling"
	"github.com/Aman-CERP/physref/internal/search"
	"github.com/Aman-CERP/physref/internal/store"
	"github.com/Aman-CERP/physref/internal/telemetry"
	"github.com/Aman-CERP/physref/internal/ui"
	"github.com/Aman-CERP/physref/pkg/version"
)

// skipSetup marks commands that run without config, logging or tables.
const skipSetup = "physref.skip-setup"

// globalOptions holds the persistent flags.
type globalOptions struct {
	debug      bool
	dataDir    string
	configPath string
	noColor    bool
	profile    profiling.Options
}

// app is the state shared by a command invocation.
type app struct {
	opts    globalOptions
	cfg     *config.Config
	logger  *slog.Logger
	catalog *store.Catalog
	metrics *telemetry.QueryMetrics
	cleanup func()
	prof    *profiling.Session
}

// NewRootCmd creates the root command for the physref CLI.
func NewRootCmd() *cobra.Command {
	a := &app{metrics: telemetry.NewQueryMetrics()}

	cmd := &cobra.Command{
		Use:   "physref",
		Short: "Searchable physics reference tables",
		Long: `physref searches four physics reference tables: formulas, constants,
scientists and dimensions. Math is kept as LaTeX and scientist portraits
are fetched on demand.

Run 'physref browse' for the interactive browser, 'physref search' for
one-shot queries, or 'physref serve' to expose the tables over MCP.`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	cmd.SetVersionTemplate("physref version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&a.opts.debug, "debug", false, "Enable debug logging (also written to stderr)")
	cmd.PersistentFlags().StringVar(&a.opts.dataDir, "data-dir", "", "Directory holding the CSV tables (default: bundled tables)")
	cmd.PersistentFlags().StringVar(&a.opts.configPath, "config", "", "Config file to use instead of the user and project configs")
	cmd.PersistentFlags().BoolVar(&a.opts.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&a.opts.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&a.opts.profile.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&a.opts.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newBrowseCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newDomainsCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newDoctorCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup loads the configuration, starts logging and loads the tables.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.opts.profile.Enabled() {
		prof, err := profiling.Start(a.opts.profile)
		if err != nil {
			return err
		}
		a.prof = prof
	}

	if cmd.Annotations[skipSetup] != "" {
		return nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:     cfg.Logging.Level,
		FilePath:  logging.DefaultLogPath(),
		MaxSizeMB: cfg.Logging.MaxSizeMB,
		MaxFiles:  cfg.Logging.MaxFiles,
	}
	if a.opts.debug {
		logCfg.Level = "debug"
	}

	if cmd.Name() == "serve" {
		cleanup, err := logging.SetupServeMode(logCfg)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		a.cleanup = cleanup
		a.logger = slog.Default()
	} else {
		logCfg.WriteToStderr = a.opts.debug
		logger, cleanup, err := logging.Setup(logCfg)
		if err != nil {
			// The log file is optional for CLI use.
			logger, cleanup = logging.Discard(), func() {}
		}
		a.logger = logger
		a.cleanup = cleanup
	}

	a.catalog = store.LoadCatalog(cfg.DataSource(), a.logger)
	a.logger.Debug("catalog_loaded",
		slog.String("data_dir", dataLabel(cfg)),
		slog.Int("notices", len(a.catalog.Notices())))
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.opts.configPath != "" {
		cfg, err = config.LoadFile(a.opts.configPath)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			cfg, err = config.Load(cwd)
		}
	}
	if err != nil {
		return nil, amerrors.ConfigError("could not load configuration", err)
	}

	if a.opts.dataDir != "" {
		cfg.Data.Dir = a.opts.dataDir
	}
	if a.opts.noColor {
		cfg.Output.NoColor = true
	}
	return cfg, nil
}

func (a *app) close() error {
	err := a.prof.Stop()
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
	return err
}

// noColor reports whether styling is off by flag, config or environment.
func (a *app) noColor() bool {
	return a.opts.noColor || (a.cfg != nil && a.cfg.Output.NoColor) || ui.DetectNoColor()
}

// newEngine builds a search engine. Images are fetched only when withImages
// is set and the configuration allows it.
func (a *app) newEngine(withImages bool) *search.Engine {
	opts := []search.EngineOption{
		search.WithMetrics(a.metrics),
		search.WithLogger(a.logger),
	}
	if withImages && a.cfg.ImagesEnabled() {
		loader := imageload.New(a.cfg.ImageLoaderConfig(), imageload.WithLogger(a.logger))
		lc := loader.Config()
		a.logger.Debug("image_loader_ready",
			slog.Duration("timeout", lc.Timeout),
			slog.String("placeholder_url", lc.PlaceholderURL),
			slog.Int("width", lc.Width),
			slog.Int("cache_size", lc.CacheSize))
		opts = append(opts,
			search.WithImageLoader(loader, lc.Width),
			search.WithImageConcurrency(a.cfg.Images.Concurrency))
	}
	return search.NewEngine(opts...)
}

func dataLabel(cfg *config.Config) string {
	if cfg.Data.Dir == "" {
		return "bundled"
	}
	return cfg.Data.Dir
}
