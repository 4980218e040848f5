package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FormPanel/internal/project"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import configuration, catalog presets and templates",
}

var backupExportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Write all user data to one JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Restore user data from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	// The file's config, not the effective one with env and flag overrides.
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	presets, err := project.LoadPresets(presetsPath())
	if err != nil {
		return fmt.Errorf("failed to load catalog presets: %w", err)
	}
	templates, err := project.LoadTemplates(templatesPath())
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	if err := project.ExportAllData(args[0], cfg, presets, templates); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	backup, err := project.ImportAllData(args[0])
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(configPath, backup.Config); err != nil {
		return fmt.Errorf("failed to restore config: %w", err)
	}
	if err := project.SavePresets(presetsPath(), backup.Presets); err != nil {
		return fmt.Errorf("failed to restore catalog presets: %w", err)
	}
	if err := project.SaveTemplates(templatesPath(), backup.Templates); err != nil {
		return fmt.Errorf("failed to restore templates: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Restored %d catalog presets and %d templates from %s\n",
		len(backup.Presets.Catalogs), len(backup.Templates.Templates), args[0])
	return nil
}
