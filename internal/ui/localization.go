package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyDropHint          = "drop_hint"
	KeyChooseFile        = "choose_file"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyServerURL         = "server_url"
	KeyStemDirectory     = "stem_directory"
	KeyRevealOnSave      = "reveal_on_save"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyPlay              = "play"
	KeyStems             = "stems"
	KeyAdvancedStems     = "advanced_stems"
	KeySettingsSaved     = "settings_saved"
	KeyUploadStarted     = "upload_started"
	KeySavedTo           = "saved_to"
	KeyErrorOpeningFile  = "error_opening_file"
	KeyServerUnavailable = "server_unavailable"
	KeyServerNotReady    = "server_not_ready"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Vocal Remover",
		KeyDropHint:          "Drop an audio file here, or click to choose",
		KeyChooseFile:        "Choose File",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyServerURL:         "Server URL",
		KeyStemDirectory:     "Stem Directory",
		KeyRevealOnSave:      "Reveal saved stems in file manager",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyPlay:              "Play",
		KeyStems:             "Stems",
		KeyAdvancedStems:     "Advanced stems (drums, bass, other)",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyUploadStarted:     "Upload started",
		KeySavedTo:           "Saved to",
		KeyErrorOpeningFile:  "Error opening file",
		KeyServerUnavailable: "Separation server is unavailable",
		KeyServerNotReady:    "Server reached, but Demucs is not available",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Удаление вокала",
		KeyDropHint:          "Перетащите аудиофайл сюда или нажмите, чтобы выбрать",
		KeyChooseFile:        "Выбрать файл",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyServerURL:         "Адрес сервера",
		KeyStemDirectory:     "Папка для дорожек",
		KeyRevealOnSave:      "Показывать сохранённые дорожки в проводнике",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyPlay:              "Слушать",
		KeyStems:             "Дорожки",
		KeyAdvancedStems:     "Дополнительные дорожки (ударные, бас, прочее)",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyUploadStarted:     "Загрузка начата",
		KeySavedTo:           "Сохранено в",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
		KeyServerUnavailable: "Сервер разделения недоступен",
		KeyServerNotReady:    "Сервер доступен, но Demucs не установлен",
	}
}
