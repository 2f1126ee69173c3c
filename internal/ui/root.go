package ui

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/FlamesIsCool/vocal-remover/internal/config"
	"github.com/FlamesIsCool/vocal-remover/internal/model"
	"github.com/FlamesIsCool/vocal-remover/internal/platform"
	"github.com/FlamesIsCool/vocal-remover/internal/separate"
)

// TempStemDirName is the subdirectory under the system temp dir used for
// stems fetched for inline playback
const TempStemDirName = "vocal-remover"

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	separateSvc  separate.Separator

	dropZone      *DropZone
	chooseBtn     *widget.Button
	progressBar   *widget.ProgressBar
	percentLabel  *widget.Label
	phaseLabel    *widget.Label
	statusLabel   *widget.Label
	resultsHeader *widget.Label
	resultsBox    *fyne.Container

	// Title of the last completed job, used for stem file names
	currentTitle string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, separateSvc separate.Separator) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		separateSvc:  separateSvc,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for separation job updates
	ui.separateSvc.SetUpdateCallback(ui.onJobUpdate)

	ui.setupUI()

	// Both entry points converge on onFileSelected; a multi-file drop uses
	// only the first file, an empty drop leaves prior state unchanged
	window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		ui.dropZone.SetArmed(false)
		if len(uris) == 0 {
			return
		}
		ui.onFileSelected(uris[0].Path())
	})

	go ui.probeServer()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.dropZone = NewDropZone(ui.localization.GetText(KeyDropHint), ui.onChooseFile)

	ui.chooseBtn = widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyChooseFile), ui.onChooseFile)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.progressBar = widget.NewProgressBar()
	ui.percentLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	ui.phaseLabel = widget.NewLabel(model.PhaseIdle.String())
	ui.statusLabel = widget.NewLabel(DashPlaceholder)
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.resultsHeader = widget.NewLabel(ui.localization.GetText(KeyStems))
	ui.resultsHeader.TextStyle = fyne.TextStyle{Bold: true}
	ui.resultsBox = container.NewVBox()

	topPanel := container.NewBorder(nil, nil, settingsBtn, ui.chooseBtn, widget.NewLabel(""))
	progressRow := container.NewBorder(nil, nil, ui.phaseLabel, ui.percentLabel, ui.progressBar)

	header := container.NewVBox(
		topPanel,
		ui.dropZone,
		progressRow,
		ui.statusLabel,
		widget.NewSeparator(),
		ui.resultsHeader,
	)

	content := container.NewBorder(
		header, // top
		nil,    // bottom
		nil,    // left
		nil,    // right
		container.NewVScroll(ui.resultsBox),
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.dropZone.SetHint(ui.localization.GetText(KeyDropHint))
	ui.chooseBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyChooseFile))
	ui.resultsHeader.SetText(ui.localization.GetText(KeyStems))
}

// onChooseFile opens the audio file picker
func (ui *RootUI) onChooseFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		selected := reader.URI().Path()
		reader.Close()
		ui.onFileSelected(selected)
	}, ui.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(platform.SupportedAudioExtensions))
	fileDialog.Show()
}

// onFileSelected is the single entry point for both gestures. It hands the
// file to the separation service; progress and results arrive via onJobUpdate.
func (ui *RootUI) onFileSelected(selected string) {
	job, err := ui.separateSvc.Submit(selected)
	if err != nil {
		widget.ShowPopUp(widget.NewLabel(ErrorPrefix+err.Error()), ui.window.Canvas())
		return
	}

	log.Info("file selected", "job", job.ID, "file", job.FileName, "size", job.GetSizeString())
	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyUploadStarted)), ui.window.Canvas())
}

// onJobUpdate reflects a job state change on the progress and status area.
// It is called from the service goroutine, so all widget access is wrapped
// in fyne.Do.
func (ui *RootUI) onJobUpdate(job *model.SeparationJob) {
	phase := job.Phase
	percent := job.Percent
	progress := job.Progress
	message := job.Message
	lastError := job.LastError
	result := job.Result
	title := job.GetDisplayTitle()

	fyne.Do(func() {
		ui.progressBar.SetValue(progress)
		ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, percent))
		ui.phaseLabel.SetText(phase.String())

		switch {
		case phase == model.PhaseError:
			ui.statusLabel.SetText(ErrorPrefix + lastError)
		case message != "":
			ui.statusLabel.SetText(message)
		default:
			ui.statusLabel.SetText(DashPlaceholder)
		}

		if phase == model.PhaseCompleted && result != nil {
			ui.currentTitle = title
			ui.renderResults(result)
		}
	})
}

// renderResults replaces the results panel with rows for the given result.
// The first three stems are always visible; drums, bass and other live in a
// collapsed accordion section.
func (ui *RootUI) renderResults(result *model.SeparationResult) {
	ui.resultsBox.Objects = nil

	for _, stem := range result.PrimaryStems() {
		ui.resultsBox.Add(NewStemRow(stem, ui.localization, ui.onPlayStem, ui.onSaveStem))
	}

	advancedBox := container.NewVBox()
	for _, stem := range result.AdvancedStems() {
		advancedBox.Add(NewStemRow(stem, ui.localization, ui.onPlayStem, ui.onSaveStem))
	}

	accordion := widget.NewAccordion(
		widget.NewAccordionItem(ui.localization.GetText(KeyAdvancedStems), advancedBox),
	)
	ui.resultsBox.Add(accordion)

	ui.resultsBox.Refresh()
}

// onPlayStem fetches the stem into the temp dir and opens it with the
// default audio player
func (ui *RootUI) onPlayStem(stem model.Stem) {
	go func() {
		dest := filepath.Join(os.TempDir(), TempStemDirName, ui.stemFileName(stem))
		if err := ui.fetchStemTo(stem, dest); err != nil {
			ui.showError(err)
			return
		}
		if err := platform.OpenFileWithDefaultApp(dest); err != nil {
			log.Error("failed to open stem", "stem", stem.Key, "err", err)
			ui.showError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err))
		}
	}()
}

// onSaveStem downloads the stem into the configured stem directory
func (ui *RootUI) onSaveStem(stem model.Stem) {
	go func() {
		dir := ui.settings.GetDownloadDirectory()
		dest := platform.UniquePath(filepath.Join(dir, ui.stemFileName(stem)))
		if err := ui.fetchStemTo(stem, dest); err != nil {
			ui.showError(err)
			return
		}

		log.Info("stem saved", "stem", stem.Key, "path", dest)
		ui.showToast(ui.localization.GetText(KeySavedTo) + " " + dest)

		if ui.settings.GetRevealOnSave() {
			if err := platform.OpenFileInManager(dest); err != nil {
				log.Warn("failed to reveal stem", "path", dest, "err", err)
			}
		}
	}()
}

// fetchStemTo resolves the stem URL and downloads it into dest
func (ui *RootUI) fetchStemTo(stem model.Stem, dest string) error {
	stemURL, err := ui.separateSvc.ResolveStemURL(stem.URL)
	if err != nil {
		return err
	}
	return ui.separateSvc.FetchStem(context.Background(), stemURL, dest)
}

// stemFileName builds a local file name like "song-vocals.wav", keeping the
// extension the server produced
func (ui *RootUI) stemFileName(stem model.Stem) string {
	title := ui.currentTitle
	if title == "" {
		title = "track"
	}
	ext := path.Ext(stem.URL)
	if ext == "" {
		ext = ".wav"
	}
	return title + "-" + stem.Key + ext
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.window, ui.localization, func() {
		ui.separateSvc.SetServerURL(ui.settings.GetServerURL())
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		dialog.ShowInformation(
			ui.localization.GetText(KeySettings),
			ui.localization.GetText(KeySettingsSaved),
			ui.window,
		)
	}).Show()
}

// probeServer checks server health once at startup and surfaces problems on
// the status line before the first upload
func (ui *RootUI) probeServer() {
	health, err := ui.separateSvc.CheckHealth(context.Background())

	var warning string
	if err != nil {
		log.Warn("health probe failed", "err", err)
		warning = ui.localization.GetText(KeyServerUnavailable)
	} else if !health.IsReady() {
		log.Warn("server not ready for separation", "demucs", health.Demucs, "ffmpeg", health.FFmpeg)
		warning = ui.localization.GetText(KeyServerNotReady)
	}
	if warning == "" {
		return
	}

	// Do not clobber the status of an upload already in flight
	if _, active := ui.separateSvc.GetActiveJob(); active {
		return
	}
	fyne.Do(func() {
		ui.statusLabel.SetText(IconWarning + " " + warning)
	})
}

// showError shows an error popup from any goroutine
func (ui *RootUI) showError(err error) {
	fyne.Do(func() {
		widget.ShowPopUp(widget.NewLabel(ErrorPrefix+err.Error()), ui.window.Canvas())
	})
}

// showToast shows a short informational popup from any goroutine
func (ui *RootUI) showToast(message string) {
	fyne.Do(func() {
		widget.ShowPopUp(widget.NewLabel(message), ui.window.Canvas())
	})
}
