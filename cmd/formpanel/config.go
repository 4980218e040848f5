package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/FormPanel/internal/model"
	"github.com/piwi3910/FormPanel/internal/project"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", configPath, data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with defaults",
	Long: `Writes the default configuration to --config. Catalog flags given on the
command line (--widths, --min-custom-width, --algorithm, --preset) are
written too, so

  formpanel config init --widths 100,200,300,400,500,600

creates a ready-to-use configuration.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}
	cfg := model.DefaultAppConfig()
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := project.SaveAppConfig(configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	if len(cfg.StandardWidths) == 0 && cfg.CatalogPreset == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No panel catalog set yet: add standard_widths or catalog_preset before optimizing.")
	}
	return nil
}
