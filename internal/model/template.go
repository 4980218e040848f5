package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTemplate is a reusable set of castings and settings, for example a
// building's typical floor. It never carries optimization results.
type ProjectTemplate struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
	Castings       []Casting `json:"castings"`
	PrimaryCasting string    `json:"primary_casting"`
	Settings       Settings  `json:"settings"`
}

// NewProjectTemplate creates a new template from the given project.
// Castings are deep-copied; the result is dropped.
func NewProjectTemplate(name, description string, p Project) ProjectTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return ProjectTemplate{
		ID:             uuid.New().String()[:8],
		Name:           name,
		Description:    description,
		CreatedAt:      now,
		UpdatedAt:      now,
		Castings:       copyCastings(p.Castings),
		PrimaryCasting: p.PrimaryCasting,
		Settings:       copySettings(p.Settings),
	}
}

// ToProject creates a new Project with a fresh ID from this template.
func (t ProjectTemplate) ToProject(projectName string) Project {
	p := NewProject(projectName)
	p.Castings = copyCastings(t.Castings)
	p.PrimaryCasting = t.PrimaryCasting
	p.Settings = copySettings(t.Settings)
	return p
}

// TemplateStore holds a collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []ProjectTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t ProjectTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns the template names in store order.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *ProjectTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func copyCastings(castings []Casting) []Casting {
	if castings == nil {
		return []Casting{}
	}
	cp := make([]Casting, len(castings))
	for i, c := range castings {
		cp[i] = NewCasting(c.Name)
		cp[i].Role = c.Role
		for _, s := range c.Shapes {
			cp[i].AddShape(NewShape(s.Name, s.Sides...))
		}
	}
	return cp
}

func copySettings(s Settings) Settings {
	s.StandardWidths = append([]int(nil), s.StandardWidths...)
	return s
}
