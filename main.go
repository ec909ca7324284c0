package main

import (
	"fmt"
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/rblx2rojo/rblx2rojo/internal/config"
	"github.com/rblx2rojo/rblx2rojo/internal/convert"
	"github.com/rblx2rojo/rblx2rojo/internal/download"
	"github.com/rblx2rojo/rblx2rojo/internal/lune"
	"github.com/rblx2rojo/rblx2rojo/internal/platform"
	"github.com/rblx2rojo/rblx2rojo/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "io.github.rblx2rojo"
	AppName = "Rblx 2 Rojo"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)

	installDir, err := platform.GetRuntimeInstallDir()
	if err != nil {
		log.Printf("failed to resolve runtime install dir: %v", err)
	}

	// downloads run until done or cancelled
	httpClient := &http.Client{}

	locator := lune.NewLocator(settings.GetLunePath(), installDir)
	scripts := convert.NewScriptLocator(settings.GetScriptPath())
	converter := convert.NewService(locator, scripts)

	var installer ui.RuntimeInstaller
	if installDir != "" {
		installer = lune.NewInstaller(installDir, lune.NewReleaseClient("", httpClient), download.NewService(httpClient))
	}

	ui.NewRootUI(myWindow, myApp, converter, locator, installer, scripts)

	myWindow.ShowAndRun()
}
