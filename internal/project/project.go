package project

import "github.com/piwi3910/FormPanel/internal/model"

// FileExtension is the extension used for saved projects.
const FileExtension = ".formpanel"

// SaveProject writes a project, including its last result, as JSON.
func SaveProject(path string, p model.Project) error {
	return writeJSON(path, "project file", p)
}

// LoadProject reads a project saved by SaveProject.
func LoadProject(path string) (model.Project, error) {
	var p model.Project
	if err := readJSON(path, "project file", &p); err != nil {
		return model.Project{}, err
	}
	if p.Castings == nil {
		p.Castings = []model.Casting{}
	}
	if p.Settings.Algorithm == "" {
		p.Settings.Algorithm = model.AlgorithmGreedy
	}
	return p, nil
}
