package model

import (
	"sort"

	"github.com/google/uuid"
)

// CatalogPreset is a reusable, named set of standard panel widths, for
// example one supplier's system.
type CatalogPreset struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StandardWidths []int  `json:"standard_widths"`
	MinCustomWidth int    `json:"min_custom_width"`
}

// NewCatalogPreset creates a new CatalogPreset with a generated ID.
// The widths are copied, sorted and deduplicated.
func NewCatalogPreset(name string, minCustomWidth int, widths ...int) CatalogPreset {
	return CatalogPreset{
		ID:             uuid.New().String()[:8],
		Name:           name,
		StandardWidths: normalizeWidths(widths),
		MinCustomWidth: minCustomWidth,
	}
}

// ApplyToSettings copies this preset's catalog into the given Settings.
func (p CatalogPreset) ApplyToSettings(s *Settings) {
	s.StandardWidths = append([]int(nil), p.StandardWidths...)
	s.MinCustomWidth = p.MinCustomWidth
}

func normalizeWidths(widths []int) []int {
	out := append([]int(nil), widths...)
	sort.Ints(out)
	j := 0
	for i, w := range out {
		if i > 0 && w == out[j-1] {
			continue
		}
		out[j] = w
		j++
	}
	return out[:j]
}

// PresetLibrary holds the user's saved catalog presets.
type PresetLibrary struct {
	Catalogs []CatalogPreset `json:"catalogs"`
}

// DefaultPresetLibrary returns the example presets written on first use.
// None of them is selected unless the user names it.
func DefaultPresetLibrary() PresetLibrary {
	return PresetLibrary{
		Catalogs: []CatalogPreset{
			NewCatalogPreset("Metric 100-600", 0, 100, 200, 300, 400, 500, 600),
			NewCatalogPreset("Metric 150-900", 50, 150, 300, 450, 600, 750, 900),
			NewCatalogPreset("Imperial 12-24in", 0, 305, 406, 457, 610),
		},
	}
}

// FindByID returns a pointer to the preset with the given ID, or nil.
func (lib *PresetLibrary) FindByID(id string) *CatalogPreset {
	for i := range lib.Catalogs {
		if lib.Catalogs[i].ID == id {
			return &lib.Catalogs[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (lib *PresetLibrary) FindByName(name string) *CatalogPreset {
	for i := range lib.Catalogs {
		if lib.Catalogs[i].Name == name {
			return &lib.Catalogs[i]
		}
	}
	return nil
}

// Names returns the preset names in library order.
func (lib *PresetLibrary) Names() []string {
	names := make([]string, len(lib.Catalogs))
	for i, c := range lib.Catalogs {
		names[i] = c.Name
	}
	return names
}

// Upsert replaces the preset with the same name or appends a new one.
func (lib *PresetLibrary) Upsert(p CatalogPreset) {
	if existing := lib.FindByName(p.Name); existing != nil {
		p.ID = existing.ID
		*existing = p
		return
	}
	lib.Catalogs = append(lib.Catalogs, p)
}
