package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

const (
	AppIcon = "rblx2rojo.png"
)

// LoadLogoResource loads the logo from the working directory, then from next
// to the executable
func LoadLogoResource() (fyne.Resource, error) {
	res, err := fyne.LoadResourceFromPath(AppIcon)
	if err == nil {
		return res, nil
	}
	dir, dirErr := platform.GetExecutableDir()
	if dirErr != nil {
		return nil, err
	}
	return fyne.LoadResourceFromPath(filepath.Join(dir, AppIcon))
}
