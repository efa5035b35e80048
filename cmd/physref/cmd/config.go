package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/physref/configs"
	"github.com/Aman-CERP/physref/internal/config"
	"github.com/Aman-CERP/physref/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage physref configuration files.

Configuration precedence (lowest to highest):
  1. Built-in defaults
  2. User config (~/.config/physref/config.yaml)
  3. Project config (.physref.yaml in the working directory)
  4. Environment variables (PHYSREF_*)
  5. Command-line flags (--data-dir, --no-color)

--config replaces steps 2 and 3 with a single file.`,
		Example: `  # Create the user config from the template
  physref config init

  # Create .physref.yaml here
  physref config init --project

  # Show the effective configuration
  physref config show --json`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force, project bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a configuration file from the template",
		Annotations: map[string]string{skipSetup: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, template := config.GetUserConfigPath(), configs.UserConfigTemplate
			if project {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				path, template = filepath.Join(cwd, config.ProjectConfigNames[0]), configs.ProjectConfigTemplate
			}
			return runConfigInit(output.New(cmd.OutOrStdout()), path, template, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (a backup is kept)")
	cmd.Flags().BoolVar(&project, "project", false, "Create .physref.yaml in the working directory instead")

	return cmd
}

func runConfigInit(out *output.Writer, path, template string, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			out.Warning("Configuration already exists")
			out.Statusf("📁", "Location: %s", path)
			out.Status("💡", "Use --force to replace it with the template")
			return nil
		}
		backup, err := config.BackupFile(path)
		if err != nil {
			return err
		}
		out.Statusf("💾", "Backup: %s", backup)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out.Success("Created configuration")
	out.Statusf("📁", "Location: %s", path)
	out.Status("📋", "Run 'physref config show' to verify")
	return nil
}

func newConfigShowCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		source     string
	)

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the effective configuration",
		Annotations: map[string]string{skipSetup: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg  *config.Config
				desc string
			)
			switch source {
			case "merged":
				var err error
				if cfg, err = a.loadConfig(); err != nil {
					return err
				}
				desc = "merged (defaults + user + project + env + flags)"
				if a.opts.configPath != "" {
					desc = fmt.Sprintf("file (%s) + env + flags", a.opts.configPath)
				}
			case "defaults":
				cfg, desc = config.NewConfig(), "defaults (built-in)"
			default:
				return fmt.Errorf("invalid source: %s (use: merged, defaults)", source)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			out := output.New(cmd.OutOrStdout())
			out.Statusf("📋", "Configuration source: %s", desc)
			out.Newline()
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&source, "source", "merged", "Config source: merged, defaults")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the user config file path",
		Annotations: map[string]string{skipSetup: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath()); err != nil {
				return err
			}
			if !config.UserConfigExists() {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "(not created yet, run 'physref config init')")
			}
			return nil
		},
	}
}
