// Package rojo reads back the project a conversion wrote to disk.
package rojo

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
)

// ProjectPath returns the project file location inside dir
func ProjectPath(dir string) string {
	return filepath.Join(dir, model.ProjectFileName)
}

// LoadProject decodes dir/default.project.json
func LoadProject(dir string) (*model.RojoProject, error) {
	path := ProjectPath(dir)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("project file %s", path)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "reading %s", path)
	}

	var project model.RojoProject
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, errors.Annotatef(err, "decoding %s", path)
	}
	if project.Name == "" {
		project.Name = filepath.Base(dir)
	}
	return &project, nil
}

// Summarize loads the project in dir and describes it
func Summarize(dir string) (*model.ProjectSummary, error) {
	project, err := LoadProject(dir)
	if err != nil {
		return nil, err
	}
	return project.Summary(), nil
}
