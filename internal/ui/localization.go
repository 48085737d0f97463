package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyURL              = "url"
	KeyEnterURL         = "enter_url"
	KeySaveTo           = "save_to"
	KeyChooseFolder     = "choose_folder"
	KeyNoFolder         = "no_folder"
	KeyQuality          = "quality"
	KeyAudioBitrate     = "audio_bitrate"
	KeyMaxVideoBitrate  = "max_video_bitrate"
	KeyReEncode         = "reencode"
	KeyAlternateClient  = "alternate_client"
	KeyAuth             = "auth"
	KeyAuthNone         = "auth_none"
	KeyAuthCookies      = "auth_cookies"
	KeyAuthBrowser      = "auth_browser"
	KeyChooseCookies    = "choose_cookies"
	KeyBrowser          = "browser"
	KeyProfilePath      = "profile_path"
	KeyDownload         = "download"
	KeyListFormats      = "list_formats"
	KeyOpenFolder       = "open_folder"
	KeyToMP3            = "to_mp3"
	KeyToWAV            = "to_wav"
	KeyCancel           = "cancel"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyDownloadDir      = "download_directory"
	KeyYtdlpPath        = "ytdlp_path"
	KeySave             = "save"
	KeyBrowse           = "browse"
	KeySettingsSaved    = "settings_saved"
	KeyChooseSaveFirst  = "choose_save_first"
	KeyErrorOpenFolder  = "error_open_folder"
	KeyMissingTools     = "missing_tools"
	KeyCookiesFileTitle = "cookies_file_title"
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
		KeyAppTitle:         "YouTube to Multimedia",
		KeyURL:              "YouTube URL",
		KeyEnterURL:         "https://www.youtube.com/watch?v=...",
		KeySaveTo:           "Save to",
		KeyChooseFolder:     "Choose folder…",
		KeyNoFolder:         "(no folder selected)",
		KeyQuality:          "Quality",
		KeyAudioBitrate:     "Audio bitrate",
		KeyMaxVideoBitrate:  "Max video bitrate",
		KeyReEncode:         "Re-encode to target bitrate (H.264)",
		KeyAlternateClient:  "Retry as Android client",
		KeyAuth:             "Authentication",
		KeyAuthNone:         "None",
		KeyAuthCookies:      "cookies.txt",
		KeyAuthBrowser:      "Browser profile",
		KeyChooseCookies:    "Choose cookies.txt…",
		KeyBrowser:          "Browser",
		KeyProfilePath:      "Profile path (optional)",
		KeyDownload:         "Download",
		KeyListFormats:      "List formats",
		KeyOpenFolder:       "Open Folder",
		KeyToMP3:            "To MP3",
		KeyToWAV:            "To WAV",
		KeyCancel:           "Cancel",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyDownloadDir:      "Download Directory",
		KeyYtdlpPath:        "yt-dlp executable (empty = PATH)",
		KeySave:             "Save",
		KeyBrowse:           "Browse",
		KeySettingsSaved:    "Settings saved successfully!",
		KeyChooseSaveFirst:  "Choose a save location first.",
		KeyErrorOpenFolder:  "Error opening folder",
		KeyMissingTools:     "WARNING: not found in PATH:",
		KeyCookiesFileTitle: "Select cookies.txt (Netscape format)",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "YouTube в мультимедиа",
		KeyURL:              "Ссылка YouTube",
		KeyEnterURL:         "https://www.youtube.com/watch?v=...",
		KeySaveTo:           "Сохранить в",
		KeyChooseFolder:     "Выбрать папку…",
		KeyNoFolder:         "(папка не выбрана)",
		KeyQuality:          "Качество",
		KeyAudioBitrate:     "Битрейт аудио",
		KeyMaxVideoBitrate:  "Макс. битрейт видео",
		KeyReEncode:         "Перекодировать в целевой битрейт (H.264)",
		KeyAlternateClient:  "Повторить как Android-клиент",
		KeyAuth:             "Авторизация",
		KeyAuthNone:         "Нет",
		KeyAuthCookies:      "cookies.txt",
		KeyAuthBrowser:      "Профиль браузера",
		KeyChooseCookies:    "Выбрать cookies.txt…",
		KeyBrowser:          "Браузер",
		KeyProfilePath:      "Путь к профилю (необязательно)",
		KeyDownload:         "Скачать",
		KeyListFormats:      "Список форматов",
		KeyOpenFolder:       "Открыть папку",
		KeyToMP3:            "В MP3",
		KeyToWAV:            "В WAV",
		KeyCancel:           "Отмена",
		KeySettings:         "Настройки",
		KeyFile:             "Файл",
		KeyLanguage:         "Язык",
		KeyDownloadDir:      "Папка загрузки",
		KeyYtdlpPath:        "Путь к yt-dlp (пусто = PATH)",
		KeySave:             "Сохранить",
		KeyBrowse:           "Обзор",
		KeySettingsSaved:    "Настройки успешно сохранены!",
		KeyChooseSaveFirst:  "Сначала выберите папку для сохранения.",
		KeyErrorOpenFolder:  "Ошибка открытия папки",
		KeyMissingTools:     "ВНИМАНИЕ: не найдено в PATH:",
		KeyCookiesFileTitle: "Выберите cookies.txt (формат Netscape)",
	}
}
