package model

// AppConfig holds application-wide preferences and the panel catalog.
type AppConfig struct {
	// Panel catalog
	StandardWidths []int     `json:"standard_widths" yaml:"standard_widths"`   // Standard panel widths in mm
	MinCustomWidth int       `json:"min_custom_width" yaml:"min_custom_width"` // mm, 0 = no policy
	Algorithm      Algorithm `json:"algorithm" yaml:"algorithm"`               // "greedy" or "minimal"
	CatalogPreset  string    `json:"catalog_preset" yaml:"catalog_preset"`     // Preset name used when StandardWidths is empty

	// Service preferences
	ListenAddr     string `json:"listen_addr" yaml:"listen_addr"`
	LogLevel       string `json:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
	CompareWorkers int    `json:"compare_workers" yaml:"compare_workers"`

	RecentProjects []string `json:"recent_projects" yaml:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig with service defaults. The catalog is
// left empty on purpose: it has to come from deployment configuration.
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		Algorithm:      defaults.Algorithm,
		ListenAddr:     ":8080",
		LogLevel:       "info",
		CompareWorkers: 4,
		RecentProjects: []string{},
	}
}

// ApplyToSettings copies the catalog and algorithm into s.
// Empty values leave s untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if len(c.StandardWidths) > 0 {
		s.StandardWidths = append([]int(nil), c.StandardWidths...)
	}
	if c.MinCustomWidth > 0 {
		s.MinCustomWidth = c.MinCustomWidth
	}
	if c.Algorithm != "" {
		s.Algorithm = c.Algorithm
	}
}

// Settings resolves the engine settings, falling back to the named preset in
// lib when no widths are configured directly.
func (c AppConfig) Settings(lib PresetLibrary) Settings {
	s := DefaultSettings()
	if len(c.StandardWidths) == 0 && c.CatalogPreset != "" {
		if p := lib.FindByName(c.CatalogPreset); p != nil {
			p.ApplyToSettings(&s)
		}
	}
	c.ApplyToSettings(&s)
	return s
}

// AddRecentProject moves path to the front of the recent list, keeping at
// most ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentProjects = recent
}
