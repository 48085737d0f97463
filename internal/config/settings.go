package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir     = "download_directory"
	KeyQuality         = "quality"
	KeyAudioBitrate    = "audio_bitrate_kbps"
	KeyMaxVideoBitrate = "max_video_bitrate_kbps"
	KeyReEncode        = "reencode"
	KeyAlternateClient = "try_alternate_client"
	KeyAuthMode        = "auth_mode"
	KeyBrowser         = "auth_browser"
	KeyProfilePath     = "auth_profile_path"
	KeyCookiesFile     = "auth_cookies_file"
	KeyLanguage        = "app_language"
	KeyYtdlpPath       = "ytdlp_path"
)

// Default values
const (
	DefaultQuality         = model.QualityBest
	DefaultAlternateClient = true
	DefaultAuthMode        = model.AuthNone
	DefaultBrowser         = "chrome"
	DefaultLanguage        = "system"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
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

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQuality returns the configured quality choice
func (s *Settings) GetQuality() model.Quality {
	q := model.Quality(s.app.Preferences().String(KeyQuality))
	if !q.Valid() {
		s.SetQuality(DefaultQuality)
		return DefaultQuality
	}
	return q
}

// SetQuality sets the quality choice; unknown values fall back to the default
func (s *Settings) SetQuality(q model.Quality) {
	if !q.Valid() {
		q = DefaultQuality
	}
	s.app.Preferences().SetString(KeyQuality, string(q))
}

// GetAudioBitrate returns the preferred minimum audio bitrate (0 = Auto)
func (s *Settings) GetAudioBitrate() model.AudioBitrate {
	return normalizeAudioBitrate(model.AudioBitrate(s.app.Preferences().Int(KeyAudioBitrate)))
}

// SetAudioBitrate sets the preferred minimum audio bitrate
func (s *Settings) SetAudioBitrate(a model.AudioBitrate) {
	s.app.Preferences().SetInt(KeyAudioBitrate, int(normalizeAudioBitrate(a)))
}

// normalizeAudioBitrate maps values outside the offered choices to Auto
func normalizeAudioBitrate(a model.AudioBitrate) model.AudioBitrate {
	for _, opt := range model.AudioBitrateOptions() {
		if a == opt {
			return a
		}
	}
	return model.AudioBitrateAuto
}

// GetMaxVideoBitrate returns the video bitrate limit in kbps (0 = unlimited)
func (s *Settings) GetMaxVideoBitrate() int {
	return clampVideoBitrate(s.app.Preferences().Int(KeyMaxVideoBitrate))
}

// SetMaxVideoBitrate sets the video bitrate limit, clamped to 0..25000 kbps
func (s *Settings) SetMaxVideoBitrate(kbps int) {
	s.app.Preferences().SetInt(KeyMaxVideoBitrate, clampVideoBitrate(kbps))
}

func clampVideoBitrate(kbps int) int {
	if kbps < 0 {
		return 0
	}
	if kbps > model.MaxVideoBitrateKbps {
		return model.MaxVideoBitrateKbps
	}
	return kbps
}

// GetReEncode returns whether downloads are re-encoded to the bitrate target
func (s *Settings) GetReEncode() bool {
	return s.app.Preferences().Bool(KeyReEncode)
}

// SetReEncode sets whether downloads are re-encoded
func (s *Settings) SetReEncode(on bool) {
	s.app.Preferences().SetBool(KeyReEncode, on)
}

// GetTryAlternateClient returns whether failed attempts are retried as the
// alternate client
func (s *Settings) GetTryAlternateClient() bool {
	return s.app.Preferences().BoolWithFallback(KeyAlternateClient, DefaultAlternateClient)
}

// SetTryAlternateClient sets whether to retry as the alternate client
func (s *Settings) SetTryAlternateClient(on bool) {
	s.app.Preferences().SetBool(KeyAlternateClient, on)
}

// GetAuthOptions returns the stored authentication settings
func (s *Settings) GetAuthOptions() model.AuthOptions {
	prefs := s.app.Preferences()
	mode := model.AuthMode(prefs.StringWithFallback(KeyAuthMode, string(DefaultAuthMode)))
	switch mode {
	case model.AuthNone, model.AuthCookies, model.AuthBrowser:
	default:
		mode = DefaultAuthMode
	}
	return model.AuthOptions{
		Mode:        mode,
		CookiesFile: prefs.String(KeyCookiesFile),
		Browser:     prefs.StringWithFallback(KeyBrowser, DefaultBrowser),
		ProfilePath: prefs.String(KeyProfilePath),
	}
}

// SetAuthOptions stores the authentication settings. Fields of inactive
// modes are kept so switching back restores them.
func (s *Settings) SetAuthOptions(a model.AuthOptions) {
	prefs := s.app.Preferences()
	if a.Mode == "" {
		a.Mode = DefaultAuthMode
	}
	prefs.SetString(KeyAuthMode, string(a.Mode))
	prefs.SetString(KeyCookiesFile, a.CookiesFile)
	if a.Browser != "" {
		prefs.SetString(KeyBrowser, a.Browser)
	}
	prefs.SetString(KeyProfilePath, a.ProfilePath)
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

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// GetYtdlpPath returns the yt-dlp executable override ("" = PATH lookup)
func (s *Settings) GetYtdlpPath() string {
	return s.app.Preferences().String(KeyYtdlpPath)
}

// SetYtdlpPath sets the yt-dlp executable override
func (s *Settings) SetYtdlpPath(path string) {
	s.app.Preferences().SetString(KeyYtdlpPath, path)
}

// Request assembles a download request from the stored choices for url.
func (s *Settings) Request(url string) model.DownloadRequest {
	return model.DownloadRequest{
		URL:                 url,
		OutputDir:           s.GetDownloadDirectory(),
		Quality:             s.GetQuality(),
		AudioBitrate:        s.GetAudioBitrate(),
		MaxVideoBitrateKbps: s.GetMaxVideoBitrate(),
		ReEncode:            s.GetReEncode(),
		TryAlternateClient:  s.GetTryAlternateClient(),
		Auth:                s.GetAuthOptions(),
	}
}
