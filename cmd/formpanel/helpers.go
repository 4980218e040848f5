package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/FormPanel/internal/engine"
	"github.com/piwi3910/FormPanel/internal/export"
	"github.com/piwi3910/FormPanel/internal/importer"
	"github.com/piwi3910/FormPanel/internal/model"
	"github.com/piwi3910/FormPanel/internal/project"
)

// presetsPath is where catalog presets are kept, next to the config file.
func presetsPath() string {
	return filepath.Join(filepath.Dir(configPath), "catalogs.json")
}

// templatesPath is where project templates are kept, next to the config file.
func templatesPath() string {
	return filepath.Join(filepath.Dir(configPath), "templates.json")
}

// resolveSettings turns the effective config into engine settings, reading
// the preset library only when a preset has to fill in the catalog.
func resolveSettings(cfg model.AppConfig) (model.Settings, error) {
	var lib model.PresetLibrary
	if len(cfg.StandardWidths) == 0 && cfg.CatalogPreset != "" {
		var err error
		lib, err = project.LoadPresets(presetsPath())
		if err != nil {
			return model.Settings{}, fmt.Errorf("failed to load catalog presets: %w", err)
		}
		if lib.FindByName(cfg.CatalogPreset) == nil {
			return model.Settings{}, fmt.Errorf("%w: no catalog preset named %q", engine.ErrCatalogMisconfigured, cfg.CatalogPreset)
		}
	}
	return cfg.Settings(lib), nil
}

// newOptimizer builds the optimizer from the effective config.
func newOptimizer() (*engine.Optimizer, error) {
	settings, err := resolveSettings(appConfig)
	if err != nil {
		return nil, err
	}
	opt, err := engine.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w (set standard_widths in %s, FORMPANEL_STANDARD_WIDTHS or --widths)", err, configPath)
	}
	logger.Debug("optimizer ready",
		zap.Ints("standard_widths", opt.Settings.StandardWidths),
		zap.String("algorithm", string(opt.Settings.Algorithm)))
	return opt.WithLogger(logger), nil
}

// loadCastings imports every file in order and concatenates the castings.
// Saved project files are read as well. The first primary selection found
// in a file is returned.
func loadCastings(paths []string) ([]model.Casting, string, error) {
	var castings []model.Casting
	primary := ""
	for _, p := range paths {
		if strings.EqualFold(filepath.Ext(p), project.FileExtension) {
			proj, err := project.LoadProject(p)
			if err != nil {
				return nil, "", err
			}
			if primary == "" {
				primary = proj.PrimaryCasting
			}
			castings = append(castings, proj.Castings...)
			continue
		}
		res := importer.ImportFile(p)
		for _, w := range res.Warnings {
			logger.Warn("import", zap.String("file", p), zap.String("warning", w))
		}
		if err := res.Err(); err != nil {
			return nil, "", fmt.Errorf("%s: %w", p, err)
		}
		if primary == "" {
			primary = res.Primary
		}
		castings = append(castings, res.Castings...)
	}
	return castings, primary, nil
}

// pickPrimary applies the --primary flag, then the file's selection, then
// the first casting.
func pickPrimary(flag, fromFile string, castings []model.Casting) string {
	switch {
	case flag != "":
		return flag
	case fromFile != "":
		return fromFile
	case len(castings) > 0:
		logger.Info("no primary casting given, using the first casting", zap.String("primary", castings[0].Name))
		return castings[0].Name
	default:
		return ""
	}
}

// exportByExtension writes res to path in the format its extension names.
func exportByExtension(path string, res model.Result) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return export.ExportPDF(path, res)
	case ".xlsx":
		return export.ExportExcel(path, res)
	case ".csv":
		return export.ExportCSV(path, res)
	case ".html", ".htm":
		return export.ExportChart(path, res)
	case ".txt":
		return export.ExportText(path, res)
	case ".json":
		return writeJSON(path, res)
	default:
		return fmt.Errorf("unsupported output format %q (use .pdf, .xlsx, .csv, .html, .txt or .json)", filepath.Ext(path))
	}
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encodeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
