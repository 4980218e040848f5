package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/FormPanel/internal/export"
	"github.com/piwi3910/FormPanel/internal/model"
	"github.com/piwi3910/FormPanel/internal/project"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize FILE...",
	Short: "Lay out panels for castings and report reuse",
	Long: `Imports castings from CSV, Excel, JSON or DXF files (one DXF per casting),
decomposes every side into panels and allocates reuse from the primary
casting. The text report goes to stdout unless --format json is given.

Example:
  formpanel optimize tower.csv --primary "Level 1" --out tower.pdf --labels labels.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOptimize,
}

var (
	optimizePrimary string
	optimizeFormat  string
	optimizeOut     []string
	optimizeLabels  string
	optimizeSave    string
)

func init() {
	optimizeCmd.Flags().StringVarP(&optimizePrimary, "primary", "p", "", "Primary casting name (default: from the file, else the first casting)")
	optimizeCmd.Flags().StringVarP(&optimizeFormat, "format", "f", "text", "Stdout format: text or json")
	optimizeCmd.Flags().StringSliceVarP(&optimizeOut, "out", "o", nil, "Export file(s); format from extension: .pdf .xlsx .csv .html .txt .json")
	optimizeCmd.Flags().StringVar(&optimizeLabels, "labels", "", "Write QR-coded side labels to this PDF")
	optimizeCmd.Flags().StringVar(&optimizeSave, "save", "", "Save castings, settings and result as a project file")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	if optimizeFormat != "text" && optimizeFormat != "json" {
		return fmt.Errorf("--format: unknown format %q", optimizeFormat)
	}

	opt, err := newOptimizer()
	if err != nil {
		return err
	}
	castings, fromFile, err := loadCastings(args)
	if err != nil {
		return err
	}
	primary := pickPrimary(optimizePrimary, fromFile, castings)

	res, err := opt.Run(castings, primary)
	if err != nil {
		return fmt.Errorf("failed to optimize: %w", err)
	}

	out := cmd.OutOrStdout()
	if optimizeFormat == "json" {
		err = encodeJSON(out, res)
	} else {
		err = export.WriteText(out, res)
	}
	if err != nil {
		return err
	}

	for _, path := range optimizeOut {
		if err := exportByExtension(path, res); err != nil {
			return err
		}
		logger.Info("exported", zap.String("path", path))
	}
	if optimizeLabels != "" {
		if err := export.ExportLabels(optimizeLabels, res); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		logger.Info("exported labels", zap.String("path", optimizeLabels))
	}
	if optimizeSave != "" {
		if err := saveProject(optimizeSave, castings, primary, opt.Settings, res); err != nil {
			return err
		}
	}
	return nil
}

func saveProject(path string, castings []model.Casting, primary string, settings model.Settings, res model.Result) error {
	p := model.NewProject(strings.TrimSuffix(filepath.Base(path), project.FileExtension))
	if existing, err := project.LoadProject(path); err == nil {
		p.ID, p.Name = existing.ID, existing.Name
	}
	p.Castings = castings
	p.PrimaryCasting = primary
	p.Settings = settings
	p.Result = &res
	if err := project.SaveProject(path, p); err != nil {
		return err
	}

	// Only the file's own settings are written back, never flag or env overrides.
	if cfg, err := project.LoadAppConfig(configPath); err == nil {
		cfg.AddRecentProject(path)
		if err := project.SaveAppConfig(configPath, cfg); err != nil {
			logger.Warn("could not record recent project", zap.Error(err))
		}
	}
	logger.Info("saved project", zap.String("path", path))
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
