package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/FlamesIsCool/vocal-remover/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL    = "server_url"
	KeyDownloadDir  = "download_directory"
	KeyLanguage     = "app_language"
	KeyRevealOnSave = "reveal_on_save"
)

// Default values
const (
	DefaultServerURL    = "http://localhost:8000"
	DefaultLanguage     = "system"
	DefaultRevealOnSave = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the separation server base URL
func (s *Settings) GetServerURL() string {
	serverURL := s.app.Preferences().String(KeyServerURL)
	if serverURL == "" {
		s.SetServerURL(DefaultServerURL)
		return DefaultServerURL
	}
	return serverURL
}

// SetServerURL sets the separation server base URL
func (s *Settings) SetServerURL(serverURL string) {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	s.app.Preferences().SetString(KeyServerURL, serverURL)
}

// GetDownloadDirectory returns the directory where stems are saved
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the stem download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
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

// GetRevealOnSave returns whether to reveal saved stems in the file manager
func (s *Settings) GetRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealOnSave, DefaultRevealOnSave)
}

// SetRevealOnSave sets whether to reveal saved stems in the file manager
func (s *Settings) SetRevealOnSave(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealOnSave, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
