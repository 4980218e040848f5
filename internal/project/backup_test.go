package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.StandardWidths = []int{300, 600, 900}
	cfg.Algorithm = model.AlgorithmMinimal
	cfg.RecentProjects = []string{"/tmp/tower.formpanel"}

	presets := model.DefaultPresetLibrary()
	templates := model.NewTemplateStore()
	templates.Add(model.NewProjectTemplate("Typical floor", "", testProject()))

	if err := ExportAllData(path, cfg, presets, templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if !reflect.DeepEqual(backup.Config, cfg) {
		t.Errorf("config mismatch:\n got %+v\nwant %+v", backup.Config, cfg)
	}
	if !reflect.DeepEqual(backup.Presets.Names(), presets.Names()) {
		t.Errorf("presets mismatch: %v", backup.Presets.Names())
	}
	if len(backup.Templates.Templates) != 1 || backup.Templates.Templates[0].Name != "Typical floor" {
		t.Errorf("templates mismatch: %+v", backup.Templates.Templates)
	}
}

func TestImportAllDataInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config":{"algorithm":"greedy"}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	err := ExportAllData(path, model.DefaultAppConfig(), model.PresetLibrary{}, model.NewTemplateStore())
	if err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_projects":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after import")
	}
	if backup.Presets.Catalogs == nil {
		t.Error("Presets should not be nil after import")
	}
	if backup.Templates.Templates == nil {
		t.Error("Templates should not be nil after import")
	}
}
