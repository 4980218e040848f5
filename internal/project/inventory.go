package project

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/FormPanel/internal/model"
)

// DefaultCatalogsPath returns the default file path for the catalog presets.
// This is located at ~/.formpanel/catalogs.json.
func DefaultCatalogsPath() string {
	return filepath.Join(DefaultConfigDir(), "catalogs.json")
}

// SavePresets writes the preset library to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePresets(path string, lib model.PresetLibrary) error {
	return writeJSON(path, "catalog presets", lib)
}

// LoadPresets reads the preset library from the specified JSON file.
// If the file does not exist, it returns the example presets and saves them.
func LoadPresets(path string) (model.PresetLibrary, error) {
	var lib model.PresetLibrary
	if err := readJSON(path, "catalog presets", &lib); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			lib = model.DefaultPresetLibrary()
			return lib, SavePresets(path, lib)
		}
		return model.PresetLibrary{}, err
	}
	if lib.Catalogs == nil {
		lib.Catalogs = []model.CatalogPreset{}
	}
	return lib, nil
}

// ExportPresets exports the preset library to a user-specified JSON file.
func ExportPresets(path string, lib model.PresetLibrary) error {
	return SavePresets(path, lib)
}

// ImportPresets imports presets from a user-specified JSON file, merging
// them into the existing library. Presets whose ID or name already exists
// are skipped.
func ImportPresets(path string, existing model.PresetLibrary) (model.PresetLibrary, error) {
	var imported model.PresetLibrary
	if err := readJSON(path, "catalog presets", &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Catalogs))
	names := make(map[string]bool, len(existing.Catalogs))
	for _, c := range existing.Catalogs {
		ids[c.ID] = true
		names[c.Name] = true
	}

	for _, c := range imported.Catalogs {
		if ids[c.ID] || names[c.Name] {
			continue
		}
		existing.Catalogs = append(existing.Catalogs, c)
		ids[c.ID] = true
		names[c.Name] = true
	}
	return existing, nil
}
