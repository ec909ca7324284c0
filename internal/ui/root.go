package ui

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/juju/errors"

	"github.com/rblx2rojo/rblx2rojo/internal/config"
	"github.com/rblx2rojo/rblx2rojo/internal/convert"
	"github.com/rblx2rojo/rblx2rojo/internal/model"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
)

// RuntimeLocator finds the Lune binary and reports its version
type RuntimeLocator interface {
	Find() (string, error)
	ProbeVersion(ctx context.Context, path string) (string, error)
	SetOverride(path string)
}

// RuntimeInstaller downloads Lune
type RuntimeInstaller interface {
	Install(ctx context.Context, progress func(string)) (string, error)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	converter convert.Converter
	runtime   RuntimeLocator
	installer RuntimeInstaller
	scripts   *convert.ScriptLocator

	inputLabel      *widget.Label
	outputLabel     *widget.Label
	servicesLabel   *widget.Label
	logTitle        *widget.Label
	inputEntry      *widget.Entry
	outputEntry     *widget.Entry
	inputBrowseBtn  *widget.Button
	outputBrowseBtn *widget.Button
	serviceGroup    *widget.CheckGroup
	selectAllBtn    *widget.Button
	selectNoneBtn   *widget.Button
	convertBtn      *widget.Button
	progress        *widget.ProgressBarInfinite
	runtimeLabel    *widget.Label
	taskRow         *TaskRow
	logLabel        *widget.Label
	logScroll       *container.Scroll

	// state guarded by stateMutex; widgets are only touched on the UI thread
	stateMutex sync.Mutex
	running    bool
	installing bool
	logLines   []string
}

// NewRootUI creates and initializes the main UI. installer and scripts may
// be nil.
func NewRootUI(window fyne.Window, app fyne.App, converter convert.Converter, runtime RuntimeLocator, installer RuntimeInstaller, scripts *convert.ScriptLocator) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		converter:    converter,
		runtime:      runtime,
		installer:    installer,
		scripts:      scripts,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.applyOverrides()
	ui.converter.SetUpdateCallback(ui.onTaskUpdate)
	ui.converter.SetLogCallback(func(taskID, line string) {
		fyne.Do(func() { ui.appendLog(line) })
	})

	ui.setupUI()
	ui.refreshRuntimeStatus()

	log.Printf("RootUI initialized")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	text := ui.localization.GetText

	ui.createMenu()

	ui.inputLabel = widget.NewLabel(text(KeyInputFile))
	ui.inputEntry = widget.NewEntry()
	ui.inputEntry.SetPlaceHolder(text(KeySelectInput))
	ui.inputEntry.OnChanged = func(string) { ui.checkReady() }
	ui.inputBrowseBtn = widget.NewButton(text(KeyBrowse), ui.onBrowseInput)

	ui.outputLabel = widget.NewLabel(text(KeyOutputDirectory))
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetPlaceHolder(text(KeySelectOutput))
	ui.outputEntry.OnChanged = func(string) { ui.checkReady() }
	ui.outputBrowseBtn = widget.NewButton(text(KeyBrowse), ui.onBrowseOutput)

	form := container.NewVBox(
		ui.inputLabel,
		container.NewBorder(nil, nil, nil, ui.inputBrowseBtn, ui.inputEntry),
		ui.outputLabel,
		container.NewBorder(nil, nil, nil, ui.outputBrowseBtn, ui.outputEntry),
	)

	ui.servicesLabel = widget.NewLabel(text(KeyServices))
	ui.servicesLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.serviceGroup = widget.NewCheckGroup(serviceNames(), ui.onServicesChanged)
	ui.serviceGroup.Horizontal = false
	ui.serviceGroup.SetSelected(ui.settings.GetSelectedServices().Names())
	ui.selectAllBtn = widget.NewButton(text(KeySelectAll), func() {
		ui.serviceGroup.SetSelected(serviceNames())
	})
	ui.selectAllBtn.Importance = widget.LowImportance
	ui.selectNoneBtn = widget.NewButton(text(KeySelectNone), func() {
		ui.serviceGroup.SetSelected(nil)
	})
	ui.selectNoneBtn.Importance = widget.LowImportance

	services := container.NewVBox(
		container.NewHBox(ui.servicesLabel, ui.selectAllBtn, ui.selectNoneBtn),
		container.NewGridWithColumns(2, ui.serviceGroup),
	)

	ui.convertBtn = widget.NewButton(text(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance
	ui.convertBtn.Disable()

	ui.progress = widget.NewProgressBarInfinite()
	ui.progress.Stop()
	ui.progress.Hide()

	ui.runtimeLabel = widget.NewLabel("")
	ui.runtimeLabel.TextStyle = fyne.TextStyle{Italic: true}

	ui.taskRow = NewTaskRow(ui.localization)
	ui.taskRow.SetCallbacks(ui.onStopTask, ui.onRevealDir)

	ui.logTitle = widget.NewLabel(text(KeyOutputLog))
	ui.logTitle.TextStyle = fyne.TextStyle{Bold: true}
	ui.logLabel = widget.NewLabel("")
	ui.logLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ui.logLabel.Wrapping = fyne.TextWrapWord
	ui.logScroll = container.NewVScroll(ui.logLabel)
	ui.logScroll.SetMinSize(fyne.NewSize(0, LogMinHeight))

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewBorder(nil, nil, nil, settingsBtn, ui.runtimeLabel)
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(32, 32))
		img.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, img, settingsBtn, ui.runtimeLabel)
	}

	top := container.NewVBox(
		header,
		form,
		widget.NewSeparator(),
		services,
		widget.NewSeparator(),
		ui.convertBtn,
		ui.progress,
		ui.taskRow,
		ui.logTitle,
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.logScroll))
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	openOutputItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpenOutput), func() {
		ui.onRevealDir(strings.TrimSpace(ui.outputEntry.Text))
	})

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	names := ui.localization.GetAvailableLanguages()
	for _, code := range ui.localization.LanguageCodes() {
		langCode := code
		langItem := fyne.NewMenuItem(names[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem, openOutputItem),
		languageMenu,
	))
}

func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	text := ui.localization.GetText

	ui.window.SetTitle(text(KeyAppTitle))
	ui.inputLabel.SetText(text(KeyInputFile))
	ui.outputLabel.SetText(text(KeyOutputDirectory))
	ui.inputEntry.SetPlaceHolder(text(KeySelectInput))
	ui.outputEntry.SetPlaceHolder(text(KeySelectOutput))
	ui.inputBrowseBtn.SetText(text(KeyBrowse))
	ui.outputBrowseBtn.SetText(text(KeyBrowse))
	ui.servicesLabel.SetText(text(KeyServices))
	ui.selectAllBtn.SetText(text(KeySelectAll))
	ui.selectNoneBtn.SetText(text(KeySelectNone))
	ui.convertBtn.SetText(text(KeyConvert))
	ui.logTitle.SetText(text(KeyOutputLog))
	ui.taskRow.RefreshTexts()
	ui.refreshRuntimeStatus()
}

func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.applyOverrides()
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// applyOverrides pushes the path overrides from settings into the locators
func (ui *RootUI) applyOverrides() {
	if ui.runtime != nil {
		ui.runtime.SetOverride(ui.settings.GetLunePath())
	}
	if ui.scripts != nil {
		ui.scripts.SetOverride(ui.settings.GetScriptPath())
	}
}

func (ui *RootUI) onBrowseInput() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		ui.setInput(reader.URI().Path())
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter(platform.RobloxExtensions))
	if dir := ui.settings.GetLastInputDirectory(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

func (ui *RootUI) onBrowseOutput() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.setOutput(uri.Path())
	}, ui.window)

	if dir := ui.outputDialogLocation(); dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// outputDialogLocation returns the folder holding the last output directory,
// or "" when it no longer exists
func (ui *RootUI) outputDialogLocation() string {
	last := ui.settings.GetLastOutputDirectory()
	if last == "" {
		return ""
	}
	parent := filepath.Dir(last)
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return ""
	}
	return parent
}

// setInput fills the input path and, when no output is chosen yet, the
// default "<stem>_rojo" directory next to it
func (ui *RootUI) setInput(path string) {
	ui.inputEntry.SetText(path)
	ui.settings.SetLastInputDirectory(filepath.Dir(path))

	if strings.TrimSpace(ui.outputEntry.Text) == "" {
		ui.outputEntry.SetText(platform.DefaultOutputDir(path))
	}
	ui.checkReady()
}

func (ui *RootUI) setOutput(dir string) {
	ui.outputEntry.SetText(dir)
	ui.checkReady()
}

// checkReady enables Convert only when both paths are set and nothing runs
func (ui *RootUI) checkReady() {
	if ui.convertBtn == nil {
		return
	}
	ui.stateMutex.Lock()
	busy := ui.running || ui.installing
	ui.stateMutex.Unlock()

	ready := strings.TrimSpace(ui.inputEntry.Text) != "" && strings.TrimSpace(ui.outputEntry.Text) != ""
	if ready && !busy {
		ui.convertBtn.Enable()
	} else {
		ui.convertBtn.Disable()
	}
}

func (ui *RootUI) onServicesChanged(selected []string) {
	sel, err := model.SelectionFromNames(selected)
	if err != nil {
		log.Printf("Ignoring service selection: %v", err)
		return
	}
	ui.settings.SetSelectedServices(sel)
}

func (ui *RootUI) currentSelection() model.ServiceSelection {
	sel, err := model.SelectionFromNames(ui.serviceGroup.Selected)
	if err != nil {
		return model.NewServiceSelection(false)
	}
	return sel
}

// onConvertClick handles the Convert button
func (ui *RootUI) onConvertClick() {
	req := convert.Request{
		InputPath: strings.TrimSpace(ui.inputEntry.Text),
		OutputDir: strings.TrimSpace(ui.outputEntry.Text),
		Services:  ui.currentSelection(),
	}
	if req.InputPath == "" || req.OutputDir == "" {
		return
	}
	if req.Services.IsEmpty() {
		dialog.ShowError(errors.New(ui.localization.GetText(KeyNoServices)), ui.window)
		return
	}

	ui.settings.SetLastOutputDirectory(req.OutputDir)
	ui.settings.SetSelectedServices(req.Services)
	ui.applyOverrides()

	if ui.runtime != nil && ui.installer != nil && ui.settings.GetLunePath() == "" {
		if _, err := ui.runtime.Find(); errors.Is(err, errors.NotFound) {
			ui.promptInstall(func() { ui.startConversion(req) })
			return
		}
	}

	ui.startConversion(req)
}

func (ui *RootUI) startConversion(req convert.Request) {
	ui.clearLog()
	ui.setRunning(true)

	task, err := ui.converter.StartConversion(req)
	if err != nil {
		ui.setRunning(false)
		ui.showFailure(err)
		return
	}

	log.Printf("Conversion started: id=%s input=%s output=%s services=%v",
		task.ID, task.InputPath, task.OutputDir, task.Services)
	ui.taskRow.UpdateTask(task)
}

// promptInstall asks to download Lune and runs then once it is installed
func (ui *RootUI) promptInstall(then func()) {
	text := ui.localization.GetText
	dialog.ShowConfirm(text(KeyLuneMissingTitle), text(KeyLuneMissing), func(ok bool) {
		if !ok {
			ui.appendLog(ErrorLinePrefix + text(KeyRuntimeNotFound))
			return
		}
		ui.installRuntime(then)
	}, ui.window)
}

// installRuntime runs the installer on a background goroutine
func (ui *RootUI) installRuntime(then func()) {
	ui.stateMutex.Lock()
	if ui.installing {
		ui.stateMutex.Unlock()
		return
	}
	ui.installing = true
	ui.stateMutex.Unlock()

	ui.clearLog()
	ui.appendLog(ui.localization.GetText(KeyInstallingLune))
	ui.progress.Show()
	ui.progress.Start()
	ui.checkReady()

	go func() {
		path, err := ui.installer.Install(context.Background(), func(msg string) {
			fyne.Do(func() { ui.appendLog(msg) })
		})

		fyne.Do(func() {
			ui.stateMutex.Lock()
			ui.installing = false
			ui.stateMutex.Unlock()
			ui.progress.Stop()
			ui.progress.Hide()
			ui.checkReady()

			if err != nil {
				log.Printf("Lune installation failed: %v", err)
				ui.showFailure(err)
				return
			}

			log.Printf("Lune installed at %s", path)
			ui.refreshRuntimeStatus()
			if then != nil {
				then()
			}
		})
	}()
}

// refreshRuntimeStatus shows which runtime will be used
func (ui *RootUI) refreshRuntimeStatus() {
	if ui.runtime == nil || ui.runtimeLabel == nil {
		return
	}
	go func() {
		status := ui.localization.GetText(KeyRuntimeNotFound)
		if path, err := ui.runtime.Find(); err == nil {
			version, err := ui.runtime.ProbeVersion(context.Background(), path)
			if err != nil {
				log.Printf("Cannot probe Lune version at %s: %v", path, err)
				version = "?"
			}
			status = fmt.Sprintf(ui.localization.GetText(KeyRuntimeStatus), version, path)
		}
		fyne.Do(func() { ui.runtimeLabel.SetText(status) })
	}()
}

// onTaskUpdate handles task updates from the conversion service
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	log.Printf("Task update received: id=%s status=%s", task.ID, task.Status)

	fyne.Do(func() {
		ui.taskRow.UpdateTask(task)
		if !task.Status.IsFinished() {
			return
		}

		ui.setRunning(false)

		switch task.Status {
		case model.TaskStatusCompleted:
			ui.onConversionCompleted(task)
		case model.TaskStatusError:
			ui.showFailure(errors.New(task.LastError))
		case model.TaskStatusStopped:
			ui.appendLog(ui.localization.GetText(KeyConversionStopped))
		}
	})
}

func (ui *RootUI) onConversionCompleted(task *model.ConversionTask) {
	if task.Summary != nil {
		ui.appendLog(SuccessLinePrefix + task.Summary.String())
	}
	dialog.ShowInformation(
		ui.localization.GetText(KeySuccess),
		fmt.Sprintf(ui.localization.GetText(KeyConversionComplete), task.OutputDir),
		ui.window,
	)

	if ui.settings.GetAutoRevealOnComplete() {
		log.Printf("Auto-revealing output of task %s: %s", task.ID, task.OutputDir)
		ui.onRevealDir(task.OutputDir)
	}
}

// showFailure reports err in the log and an error dialog
func (ui *RootUI) showFailure(err error) {
	ui.appendLog(ErrorLinePrefix + err.Error())
	dialog.ShowError(err, ui.window)
}

func (ui *RootUI) onStopTask(taskID string) {
	if err := ui.converter.StopConversion(taskID); err != nil {
		log.Printf("Error stopping task %s: %v", taskID, err)
	}
}

// onRevealDir opens dir in the system file manager
func (ui *RootUI) onRevealDir(dir string) {
	if dir == "" {
		return
	}
	if err := platform.OpenFileInManager(dir); err != nil {
		log.Printf("Error revealing %s: %v", dir, err)
		dialog.ShowError(errors.Annotate(err, ui.localization.GetText(KeyErrorOpeningFolder)), ui.window)
	}
}

// setRunning toggles the busy state of the form
func (ui *RootUI) setRunning(running bool) {
	ui.stateMutex.Lock()
	ui.running = running
	ui.stateMutex.Unlock()

	if running {
		ui.progress.Show()
		ui.progress.Start()
	} else {
		ui.progress.Stop()
		ui.progress.Hide()
	}
	ui.checkReady()
}

func (ui *RootUI) clearLog() {
	ui.stateMutex.Lock()
	ui.logLines = nil
	ui.stateMutex.Unlock()
	ui.logLabel.SetText("")
}

// appendLog adds one line to the log panel
func (ui *RootUI) appendLog(line string) {
	ui.stateMutex.Lock()
	ui.logLines = append(ui.logLines, line)
	if over := len(ui.logLines) - MaxLogLines; over > 0 {
		ui.logLines = ui.logLines[over:]
	}
	content := strings.Join(ui.logLines, "\n")
	ui.stateMutex.Unlock()

	ui.logLabel.SetText(content)
	ui.logScroll.ScrollToBottom()
}

func serviceNames() []string {
	return model.NewServiceSelection(true).Names()
}
