package convert

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

// ScriptRelPath is where the conversion script ships relative to the
// application directory
var ScriptRelPath = filepath.Join("converters", "convert.luau")

// ScriptLocator finds the conversion script on disk
type ScriptLocator struct {
	override string
	dirs     []string
}

// NewScriptLocator searches override first, then ScriptRelPath under the
// executable directory and the working directory.
func NewScriptLocator(override string) *ScriptLocator {
	var dirs []string
	if dir, err := platform.GetExecutableDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return &ScriptLocator{override: override, dirs: dirs}
}

// NewScriptLocatorIn searches ScriptRelPath under the given directories only
func NewScriptLocatorIn(override string, dirs ...string) *ScriptLocator {
	return &ScriptLocator{override: override, dirs: dirs}
}

// SetOverride changes the explicit script path
func (l *ScriptLocator) SetOverride(path string) {
	l.override = path
}

// Candidates lists every path Find checks, in order
func (l *ScriptLocator) Candidates() []string {
	if l.override != "" {
		return []string{l.override}
	}
	out := make([]string, 0, len(l.dirs))
	for _, dir := range l.dirs {
		out = append(out, filepath.Join(dir, ScriptRelPath))
	}
	return out
}

// Find returns the first existing script path
func (l *ScriptLocator) Find() (string, error) {
	for _, candidate := range l.Candidates() {
		info, err := os.Stat(candidate)
		if err == nil && info.Mode().IsRegular() {
			abs, err := filepath.Abs(candidate)
			if err != nil {
				return candidate, nil
			}
			return abs, nil
		}
	}
	if l.override != "" {
		return "", errors.NotFoundf("conversion script %s", l.override)
	}
	return "", errors.NotFoundf("conversion script %s", ScriptRelPath)
}
