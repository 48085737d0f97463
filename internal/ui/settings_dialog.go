package ui

import (
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytmedia/internal/config"
)

// SettingsDialog edits the preferences not exposed on the main window.
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	downloadDirEntry *widget.Entry
	ytdlpPathEntry   *widget.Entry
	languageSelect   *widget.Select

	// display name -> language code
	languages map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
		languages:    make(map[string]string),
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
	t := sd.localization.GetText

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.ytdlpPathEntry = widget.NewEntry()
	sd.ytdlpPathEntry.SetPlaceHolder("yt-dlp")
	browseYtdlpBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseYtdlp)
	ytdlpRow := container.NewBorder(nil, nil, nil, browseYtdlpBtn, sd.ytdlpPathEntry)

	names := make([]string, 0, len(sd.settings.GetLanguageOptions()))
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languages[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	form := container.New(layout.NewFormLayout(),
		widget.NewLabel(t(KeyDownloadDir)), downloadDirRow,
		widget.NewLabel(t(KeyYtdlpPath)), ytdlpRow,
		widget.NewLabel(t(KeyLanguage)), sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(560, 260))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.ytdlpPathEntry.SetText(sd.settings.GetYtdlpPath())

	lang := sd.settings.GetLanguage()
	for name, code := range sd.languages {
		if code == lang {
			sd.languageSelect.SetSelected(name)
		}
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onBrowseYtdlp() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		sd.ytdlpPathEntry.SetText(reader.URI().Path())
		_ = reader.Close()
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

// save stores the dialog values. An empty directory keeps the current one.
func (sd *SettingsDialog) save() {
	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	sd.settings.SetYtdlpPath(strings.TrimSpace(sd.ytdlpPathEntry.Text))
	if code, ok := sd.languages[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
