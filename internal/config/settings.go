package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/rblx2rojo/rblx2rojo/internal/model"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyLastOutputDir      = "last_output_directory"
	KeyLastInputDir       = "last_input_directory"
	KeyLunePath           = "lune_path"
	KeyScriptPath         = "script_path"
	KeySelectedServices   = "selected_services"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLastOutputDirectory returns the output directory used last, or ""
func (s *Settings) GetLastOutputDirectory() string {
	return s.app.Preferences().String(KeyLastOutputDir)
}

// SetLastOutputDirectory remembers the output directory
func (s *Settings) SetLastOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastOutputDir, dir)
}

// GetLastInputDirectory returns where the file dialog should open
func (s *Settings) GetLastInputDirectory() string {
	dir := s.app.Preferences().String(KeyLastInputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDocumentsDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetLastInputDirectory remembers the directory of the last chosen input
func (s *Settings) SetLastInputDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastInputDir, dir)
}

// GetLunePath returns the explicit runtime path, "" for auto-detect
func (s *Settings) GetLunePath() string {
	return s.app.Preferences().String(KeyLunePath)
}

// SetLunePath sets the explicit runtime path
func (s *Settings) SetLunePath(path string) {
	s.app.Preferences().SetString(KeyLunePath, strings.TrimSpace(path))
}

// GetScriptPath returns the explicit conversion script path, "" for the bundled one
func (s *Settings) GetScriptPath() string {
	return s.app.Preferences().String(KeyScriptPath)
}

// SetScriptPath sets the explicit conversion script path
func (s *Settings) SetScriptPath(path string) {
	s.app.Preferences().SetString(KeyScriptPath, strings.TrimSpace(path))
}

// GetSelectedServices returns the remembered service filter. Every service is
// selected until the user changes it; unknown stored names are dropped.
func (s *Settings) GetSelectedServices() model.ServiceSelection {
	stored := s.app.Preferences().StringWithFallback(KeySelectedServices, allServiceNames())
	if stored == "" {
		return model.NewServiceSelection(false)
	}

	sel := model.NewServiceSelection(false)
	for _, name := range strings.Split(stored, ",") {
		svc, err := model.ParseService(name)
		if err != nil {
			continue
		}
		sel.Set(svc, true)
	}
	return sel
}

// SetSelectedServices stores the service filter
func (s *Settings) SetSelectedServices(sel model.ServiceSelection) {
	s.app.Preferences().SetString(KeySelectedServices, strings.Join(sel.Names(), ","))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to open the output folder after a conversion
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to open the output folder after a conversion
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func allServiceNames() string {
	return strings.Join(model.NewServiceSelection(true).Names(), ",")
}
