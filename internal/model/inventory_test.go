package model

import "testing"

func TestNewCatalogPresetNormalizesWidths(t *testing.T) {
	p := NewCatalogPreset("Mixed", 0, 600, 100, 300, 100)
	want := []int{100, 300, 600}
	if len(p.StandardWidths) != len(want) {
		t.Fatalf("expected %v, got %v", want, p.StandardWidths)
	}
	for i := range want {
		if p.StandardWidths[i] != want[i] {
			t.Errorf("width %d: expected %d, got %d", i, want[i], p.StandardWidths[i])
		}
	}
	if len(p.ID) != 8 {
		t.Errorf("expected 8-char id, got %q", p.ID)
	}
}

func TestPresetLibraryFind(t *testing.T) {
	lib := DefaultPresetLibrary()
	first := lib.Catalogs[0]

	if got := lib.FindByID(first.ID); got == nil || got.Name != first.Name {
		t.Errorf("FindByID(%s) = %v", first.ID, got)
	}
	if got := lib.FindByName("Metric 100-600"); got == nil {
		t.Error("expected Metric 100-600 preset")
	}
	if lib.FindByName("nope") != nil {
		t.Error("expected nil for unknown name")
	}
	if lib.FindByID("nope") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestPresetLibraryUpsert(t *testing.T) {
	lib := PresetLibrary{}
	lib.Upsert(NewCatalogPreset("A", 0, 100))
	id := lib.Catalogs[0].ID

	lib.Upsert(NewCatalogPreset("A", 10, 200, 400))
	if len(lib.Catalogs) != 1 {
		t.Fatalf("expected 1 preset after replace, got %d", len(lib.Catalogs))
	}
	if lib.Catalogs[0].ID != id {
		t.Error("replace should keep the original id")
	}
	if lib.Catalogs[0].MinCustomWidth != 10 {
		t.Errorf("expected updated min custom width, got %d", lib.Catalogs[0].MinCustomWidth)
	}

	lib.Upsert(NewCatalogPreset("B", 0, 100))
	names := lib.Names()
	if len(names) != 2 || names[1] != "B" {
		t.Errorf("unexpected names %v", names)
	}
}
