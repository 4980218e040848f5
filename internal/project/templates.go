package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/piwi3910/FormPanel/internal/model"
)

// ErrTemplateNotFound is returned when no template has the requested name.
var ErrTemplateNotFound = errors.New("template not found")

// DefaultTemplatePath returns ~/.formpanel/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to path.
func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, "templates", store)
}

// LoadTemplates reads the template store at path. A missing file is an
// empty store. Nil collections are replaced by empty ones so a template
// always yields a project with a castings list.
func LoadTemplates(path string) (model.TemplateStore, error) {
	var store model.TemplateStore
	if err := readJSON(path, "templates", &store); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewTemplateStore(), nil
		}
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.ProjectTemplate{}
	}
	for i := range store.Templates {
		if store.Templates[i].Castings == nil {
			store.Templates[i].Castings = []model.Casting{}
		}
	}
	return store, nil
}

// SaveTemplateFromProject stores the castings, primary selection and
// settings of the project file at projectPath as template name in the store
// at path. A template with the same name is replaced but keeps its ID and
// creation time.
func SaveTemplateFromProject(path, name, description, projectPath string) (model.ProjectTemplate, error) {
	p, err := LoadProject(projectPath)
	if err != nil {
		return model.ProjectTemplate{}, err
	}
	store, err := LoadTemplates(path)
	if err != nil {
		return model.ProjectTemplate{}, err
	}

	t := model.NewProjectTemplate(name, description, p)
	if existing := store.FindByName(name); existing != nil {
		t.ID, t.CreatedAt = existing.ID, existing.CreatedAt
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		store.Remove(existing.ID)
	}
	store.Add(t)
	if err := SaveTemplates(path, store); err != nil {
		return model.ProjectTemplate{}, err
	}
	return t, nil
}

// CreateProjectFromTemplate writes a new project file at projectPath from
// the template called name. An empty projectName uses the template name.
func CreateProjectFromTemplate(path, name, projectPath, projectName string) (model.Project, error) {
	store, err := LoadTemplates(path)
	if err != nil {
		return model.Project{}, err
	}
	t := store.FindByName(name)
	if t == nil {
		return model.Project{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	if projectName == "" {
		projectName = t.Name
	}
	p := t.ToProject(projectName)
	if err := SaveProject(projectPath, p); err != nil {
		return model.Project{}, err
	}
	return p, nil
}
