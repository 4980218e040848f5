package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FormPanel/internal/model"
	"github.com/piwi3910/FormPanel/internal/project"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage panel catalog presets",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved catalog presets",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add or replace a catalog preset",
	Long: `Saves a named set of standard widths. Select it with --preset NAME,
FORMPANEL_CATALOG_PRESET or catalog_preset in the config file.

Example:
  formpanel catalog add "Rental system" --set 300,450,600,900 --min-custom 50`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogAdd,
}

var (
	catalogAddWidths string
	catalogAddMin    int
)

func init() {
	catalogAddCmd.Flags().StringVar(&catalogAddWidths, "set", "", "Standard widths in mm (required)")
	catalogAddCmd.Flags().IntVar(&catalogAddMin, "min-custom", 0, "Minimum custom panel width in mm")
	if err := catalogAddCmd.MarkFlagRequired("set"); err != nil {
		panic(fmt.Sprintf("failed to mark set flag as required: %v", err))
	}

	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	lib, err := project.LoadPresets(presetsPath())
	if err != nil {
		return fmt.Errorf("failed to load catalog presets: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(appConfig.StandardWidths) > 0 {
		fmt.Fprintf(out, "Active catalog (from configuration): %s\n\n", joinInts(appConfig.StandardWidths))
	}
	for _, p := range lib.Catalogs {
		mark := " "
		if p.Name == appConfig.CatalogPreset {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %-24s %s", mark, p.Name, joinInts(p.StandardWidths))
		if p.MinCustomWidth > 0 {
			fmt.Fprintf(out, " (min custom %d mm)", p.MinCustomWidth)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runCatalogAdd(cmd *cobra.Command, args []string) error {
	widths, err := project.ParseWidths(catalogAddWidths)
	if err != nil {
		return fmt.Errorf("--set: %w", err)
	}
	lib, err := project.LoadPresets(presetsPath())
	if err != nil {
		return fmt.Errorf("failed to load catalog presets: %w", err)
	}
	lib.Upsert(model.NewCatalogPreset(args[0], catalogAddMin, widths...))
	if err := project.SavePresets(presetsPath(), lib); err != nil {
		return fmt.Errorf("failed to save catalog presets: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved catalog preset %q\n", args[0])
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
