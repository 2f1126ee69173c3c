package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/charmbracelet/log"

	"github.com/FlamesIsCool/vocal-remover/internal/config"
	"github.com/FlamesIsCool/vocal-remover/internal/platform"
	"github.com/FlamesIsCool/vocal-remover/internal/separate"
	"github.com/FlamesIsCool/vocal-remover/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.flamesiscool.vocal-remover"
	AppName = "Vocal Remover"

	WindowWidth  = 640
	WindowHeight = 600
)

func main() {
	log.Info("starting", "app", AppName, "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Deployment-level overrides (config file / environment)
	fileCfg, err := config.LoadFileConfig(configDirs()...)
	if err != nil {
		log.Warn("failed to read config file, using defaults", "err", err)
		fileCfg = &config.FileConfig{
			ServerURL:     config.DefaultServerURL,
			UploadTimeout: config.DefaultUploadTimeout,
		}
	}

	// Initialize services
	settings := config.NewSettings(myApp)
	if fileCfg.ServerURL != config.DefaultServerURL {
		// File/env override wins over the stored preference
		settings.SetServerURL(fileCfg.ServerURL)
	}

	stemDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(stemDir); err != nil {
		log.Warn("failed to ensure stem dir", "dir", stemDir, "err", err)
	}

	separateSvc := separate.NewService(settings.GetServerURL(), fileCfg.UploadTimeout)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, separateSvc)

	// Show and run
	myWindow.ShowAndRun()
}

// configDirs returns the locations searched for the optional config file
func configDirs() []string {
	dirs := []string{"."}
	if base, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(base, "vocal-remover"))
	}
	return dirs
}
