package model

import (
	"strings"

	"github.com/juju/errors"
)

// Asset is a single downloadable file attached to a release
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Release is the subset of a GitHub release the installer needs
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Version returns the tag name without its leading "v"
func (r *Release) Version() string {
	return strings.TrimPrefix(strings.TrimSpace(r.TagName), "v")
}

// FindAsset returns the asset whose name matches exactly
func (r *Release) FindAsset(name string) (Asset, error) {
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset, nil
		}
	}
	return Asset{}, errors.NotFoundf("asset %s in release %s", name, r.TagName)
}
