package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/FlamesIsCool/vocal-remover/internal/config"
	"github.com/FlamesIsCool/vocal-remover/internal/separate"
	"github.com/FlamesIsCool/vocal-remover/internal/ui"
)

func main() {
	// Create new Fyne app
	myApp := app.NewWithID("com.flamesiscool.vocal-remover")
	myWindow := myApp.NewWindow("Vocal Remover")
	myWindow.Resize(fyne.NewSize(640, 600))

	settings := config.NewSettings(myApp)
	separateSvc := separate.NewService(settings.GetServerURL(), config.DefaultUploadTimeout)

	// Create and setup UI
	ui.NewRootUI(myWindow, myApp, separateSvc)

	// Show and run
	myWindow.ShowAndRun()
}
