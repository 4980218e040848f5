package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestDefaultCatalogsPath(t *testing.T) {
	path := DefaultCatalogsPath()
	if filepath.Base(path) != "catalogs.json" {
		t.Errorf("expected filename catalogs.json, got %s", filepath.Base(path))
	}
	if dir := filepath.Base(filepath.Dir(path)); dir != ".formpanel" {
		t.Errorf("expected parent dir .formpanel, got %s", dir)
	}
}

func TestSaveAndLoadPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.json")

	lib := model.PresetLibrary{
		Catalogs: []model.CatalogPreset{
			model.NewCatalogPreset("Supplier A", 50, 600, 300, 900),
		},
	}
	if err := SavePresets(path, lib); err != nil {
		t.Fatalf("SavePresets failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("catalogs file was not created")
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(loaded.Catalogs) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(loaded.Catalogs))
	}
	p := loaded.Catalogs[0]
	if p.Name != "Supplier A" {
		t.Errorf("expected name 'Supplier A', got %q", p.Name)
	}
	if !reflect.DeepEqual(p.StandardWidths, []int{300, 600, 900}) {
		t.Errorf("expected sorted widths, got %v", p.StandardWidths)
	}
	if p.MinCustomWidth != 50 {
		t.Errorf("expected min custom width 50, got %d", p.MinCustomWidth)
	}
}

func TestLoadPresetsCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "catalogs.json")

	lib, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets failed: %v", err)
	}
	if len(lib.Catalogs) != len(model.DefaultPresetLibrary().Catalogs) {
		t.Errorf("expected %d example presets, got %d", len(model.DefaultPresetLibrary().Catalogs), len(lib.Catalogs))
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("default catalogs file was not written")
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportPresetsMerges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shared.json")

	existing := model.PresetLibrary{Catalogs: []model.CatalogPreset{
		model.NewCatalogPreset("Site stock", 0, 300, 600),
	}}
	shared := model.PresetLibrary{Catalogs: []model.CatalogPreset{
		existing.Catalogs[0],                              // same ID
		model.NewCatalogPreset("Site stock", 0, 100, 200), // same name
		model.NewCatalogPreset("Rental", 0, 250, 500, 750),
	}}
	if err := ExportPresets(path, shared); err != nil {
		t.Fatalf("ExportPresets failed: %v", err)
	}

	merged, err := ImportPresets(path, existing)
	if err != nil {
		t.Fatalf("ImportPresets failed: %v", err)
	}
	want := []string{"Site stock", "Rental"}
	if got := merged.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if !reflect.DeepEqual(merged.Catalogs[0].StandardWidths, []int{300, 600}) {
		t.Errorf("existing preset was overwritten: %v", merged.Catalogs[0].StandardWidths)
	}
}

func TestImportPresetsMissingFile(t *testing.T) {
	existing := model.DefaultPresetLibrary()
	got, err := ImportPresets(filepath.Join(t.TempDir(), "none.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(got.Catalogs) != len(existing.Catalogs) {
		t.Error("existing library should be returned unchanged")
	}
}
