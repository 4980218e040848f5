package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/FormPanel/internal/model"
)

// BackupVersion is written to every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Config    model.AppConfig     `json:"config"`
	Presets   model.PresetLibrary `json:"presets"`
	Templates model.TemplateStore `json:"templates"`
}

// ExportAllData exports the config, catalog presets and templates to a
// single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, presets model.PresetLibrary, templates model.TemplateStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Presets:   presets,
		Templates: templates,
	}
	return writeJSON(exportPath, "backup file", backup)
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	var backup BackupData
	if err := readJSON(importPath, "backup file", &backup); err != nil {
		return BackupData{}, err
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Presets.Catalogs == nil {
		backup.Presets.Catalogs = []model.CatalogPreset{}
	}
	if backup.Templates.Templates == nil {
		backup.Templates.Templates = []model.ProjectTemplate{}
	}
	return backup, nil
}
