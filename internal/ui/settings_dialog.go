package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/rblx2rojo/rblx2rojo/internal/config"
)

// SettingsDialog edits the runtime and script overrides, language and
// auto-reveal
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	lunePathEntry   *widget.Entry
	scriptPathEntry *widget.Entry
	languageSelect  *widget.Select
	autoRevealCheck *widget.Check

	// language codes in the order shown by languageSelect
	languageCodes []string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs
// after the values were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	sd.lunePathEntry = widget.NewEntry()
	sd.lunePathEntry.SetPlaceHolder(text(KeyAutoDetect))
	luneBrowse := widget.NewButton(text(KeyBrowse), func() {
		sd.browseFile(sd.lunePathEntry)
	})

	sd.scriptPathEntry = widget.NewEntry()
	sd.scriptPathEntry.SetPlaceHolder(text(KeyAutoDetect))
	scriptBrowse := widget.NewButton(text(KeyBrowse), func() {
		sd.browseFile(sd.scriptPathEntry)
	})

	labels := sd.settings.GetLanguageOptions()
	sd.languageCodes = make([]string, 0, len(labels))
	for code := range labels {
		sd.languageCodes = append(sd.languageCodes, code)
	}
	sort.Strings(sd.languageCodes)
	names := make([]string, 0, len(sd.languageCodes))
	for _, code := range sd.languageCodes {
		names = append(names, labels[code])
	}
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := container.NewVBox(
		widget.NewLabel(text(KeyLunePath)+":"),
		container.NewBorder(nil, nil, nil, luneBrowse, sd.lunePathEntry),

		widget.NewLabel(text(KeyScriptPath)+":"),
		container.NewBorder(nil, nil, nil, scriptBrowse, sd.scriptPathEntry),

		widget.NewSeparator(),

		widget.NewLabel(text(KeyLanguage)+":"),
		sd.languageSelect,
		sd.autoRevealCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.lunePathEntry.SetText(sd.settings.GetLunePath())
	sd.scriptPathEntry.SetText(sd.settings.GetScriptPath())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())

	current := sd.settings.GetLanguage()
	for i, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelectedIndex(i)
			break
		}
	}
}

func (sd *SettingsDialog) browseFile(target *widget.Entry) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		target.SetText(reader.URI().Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// save stores the form values. Empty paths mean auto-detect.
func (sd *SettingsDialog) save() {
	sd.settings.SetLunePath(sd.lunePathEntry.Text)
	sd.settings.SetScriptPath(sd.scriptPathEntry.Text)
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)

	if i := sd.languageSelect.SelectedIndex(); i >= 0 && i < len(sd.languageCodes) {
		sd.settings.SetLanguage(sd.languageCodes[i])
	}
}
