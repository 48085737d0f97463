package ui

import (
	"errors"
	"log"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/ytmedia/internal/config"
	"github.com/ytget/ytmedia/internal/job"
	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/platform"
	"github.com/ytget/ytmedia/internal/relay"
	"github.com/ytget/ytmedia/internal/transcode"
)

// authModes is the order of the authentication radio options.
var authModes = []model.AuthMode{model.AuthNone, model.AuthCookies, model.AuthBrowser}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	actions      *job.Actions
	runner       *job.Runner

	outputDir   string
	cookiesFile string
	logLines    []string
	stop        chan struct{}
	loading     bool

	// Inputs
	urlEntry      *widget.Entry
	dirLabel      *widget.Label
	qualitySelect *widget.Select
	audioSelect   *widget.Select
	vbrSlider     *widget.Slider
	vbrLabel      *widget.Label
	reencodeCheck *widget.Check
	altCheck      *widget.Check
	authRadio     *widget.RadioGroup
	cookiesLabel  *widget.Label
	browserSelect *widget.Select
	profileEntry  *widget.Entry

	// Buttons
	pickDirBtn     *widget.Button
	pickCookiesBtn *widget.Button
	downloadBtn    *widget.Button
	listBtn        *widget.Button
	openFolderBtn  *widget.Button
	mp3Btn         *widget.Button
	wavBtn         *widget.Button
	cancelBtn      *widget.Button

	// Output
	progress  *widget.ProgressBar
	logLabel  *widget.Label
	logScroll *container.Scroll

	// Captions refreshed on language change
	captions map[string]*widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, actions *job.Actions) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		actions:      actions,
		runner:       actions.Runner,
		outputDir:    settings.GetDownloadDirectory(),
		cookiesFile:  settings.GetAuthOptions().CookiesFile,
		stop:         make(chan struct{}),
		captions:     make(map[string]*widget.Label),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.createMenu()
	ui.loadSettings()
	ui.setBusy(false)

	ui.appendLog(IdleLine)
	if missing := transcode.CheckTools(settings.GetYtdlpPath()); len(missing) > 0 {
		ui.appendLog(localization.GetText(KeyMissingTools) + " " + strings.Join(missing, ", "))
		log.Printf("%v", transcode.MissingToolsError(missing))
	}

	window.SetOnClosed(func() { close(ui.stop) })
	go ui.pollRelay()
	return ui
}

// pollRelay drains the relay on the Fyne main thread every tick.
func (ui *RootUI) pollRelay() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fyne.Do(func() { ui.runner.Tick(ui.apply) })
		case <-ui.stop:
			return
		}
	}
}

// apply performs one relay update. It runs on the Fyne main thread.
func (ui *RootUI) apply(u relay.Update) {
	switch u := u.(type) {
	case relay.Progress:
		ui.progress.SetValue(clamp01(u.Fraction))
	case relay.Log:
		ui.appendLog(u.Line)
	case relay.ClearLog:
		ui.clearLog()
	case relay.Busy:
		ui.setBusy(u.Busy)
	case relay.Notice:
		ui.showNotice(u)
	case relay.Done:
		log.Printf("Job %s done: %s", u.JobID, u.Status)
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// caption returns a label registered for refresh on language change.
func (ui *RootUI) caption(key string) *widget.Label {
	l := widget.NewLabel(ui.localization.GetText(key))
	ui.captions[key] = l
	return l
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.urlEntry.OnSubmitted = func(string) { ui.onDownload() }

	ui.dirLabel = widget.NewLabel("")
	ui.dirLabel.Truncation = fyne.TextTruncateEllipsis
	ui.pickDirBtn = widget.NewButtonWithIcon(t(KeyChooseFolder), theme.FolderOpenIcon(), ui.onPickDirectory)
	dirRow := container.NewBorder(nil, nil, nil, ui.pickDirBtn, ui.dirLabel)

	qualities := make([]string, 0, len(model.QualityOptions()))
	for _, q := range model.QualityOptions() {
		qualities = append(qualities, string(q))
	}
	ui.qualitySelect = widget.NewSelect(qualities, func(s string) {
		ui.settings.SetQuality(model.Quality(s))
	})

	bitrates := make([]string, 0, len(model.AudioBitrateOptions()))
	for _, a := range model.AudioBitrateOptions() {
		bitrates = append(bitrates, a.Label())
	}
	ui.audioSelect = widget.NewSelect(bitrates, func(s string) {
		ui.settings.SetAudioBitrate(model.ParseAudioBitrate(s))
	})

	ui.vbrSlider = widget.NewSlider(0, model.MaxVideoBitrateKbps)
	ui.vbrSlider.Step = VbrSliderStep
	ui.vbrLabel = widget.NewLabel("")
	ui.vbrSlider.OnChanged = func(v float64) {
		ui.settings.SetMaxVideoBitrate(snapToStep(v))
		ui.updateVbrLabel()
	}
	vbrRow := container.NewBorder(nil, nil, nil, ui.vbrLabel, ui.vbrSlider)

	ui.reencodeCheck = widget.NewCheck(t(KeyReEncode), func(on bool) {
		ui.settings.SetReEncode(on)
		ui.updateVbrLabel()
	})
	ui.altCheck = widget.NewCheck(t(KeyAlternateClient), ui.settings.SetTryAlternateClient)

	ui.authRadio = widget.NewRadioGroup(ui.authLabels(), func(string) { ui.onAuthChanged() })
	ui.authRadio.Horizontal = true
	ui.authRadio.Required = true

	ui.cookiesLabel = widget.NewLabel("")
	ui.cookiesLabel.Truncation = fyne.TextTruncateEllipsis
	ui.pickCookiesBtn = widget.NewButtonWithIcon(t(KeyChooseCookies), theme.FileIcon(), ui.onPickCookies)
	cookiesRow := container.NewBorder(nil, nil, nil, ui.pickCookiesBtn, ui.cookiesLabel)

	ui.browserSelect = widget.NewSelect(model.Browsers, func(string) { ui.saveAuth() })
	ui.profileEntry = widget.NewEntry()
	ui.profileEntry.SetPlaceHolder(t(KeyProfilePath))
	ui.profileEntry.OnChanged = func(string) { ui.saveAuth() }
	browserRow := container.NewBorder(nil, nil, ui.browserSelect, nil, ui.profileEntry)

	form := container.New(layout.NewFormLayout(),
		ui.caption(KeyURL), ui.urlEntry,
		ui.caption(KeySaveTo), dirRow,
		ui.caption(KeyQuality), ui.qualitySelect,
		ui.caption(KeyAudioBitrate), ui.audioSelect,
		ui.caption(KeyMaxVideoBitrate), vbrRow,
		widget.NewLabel(""), container.NewHBox(ui.reencodeCheck, ui.altCheck),
		ui.caption(KeyAuth), ui.authRadio,
		widget.NewLabel(""), cookiesRow,
		ui.caption(KeyBrowser), browserRow,
	)

	ui.downloadBtn = widget.NewButtonWithIcon(t(KeyDownload), theme.DownloadIcon(), ui.onDownload)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.listBtn = widget.NewButtonWithIcon(t(KeyListFormats), theme.ListIcon(), ui.onListFormats)
	ui.openFolderBtn = widget.NewButtonWithIcon(t(KeyOpenFolder), theme.FolderIcon(), ui.onOpenFolder)
	ui.mp3Btn = widget.NewButtonWithIcon(t(KeyToMP3), theme.MediaMusicIcon(), func() { ui.onExtractAudio(transcode.AudioMP3) })
	ui.wavBtn = widget.NewButtonWithIcon(t(KeyToWAV), theme.MediaMusicIcon(), func() { ui.onExtractAudio(transcode.AudioWAV) })
	ui.cancelBtn = widget.NewButtonWithIcon(t(KeyCancel), theme.MediaStopIcon(), ui.onCancel)
	ui.cancelBtn.Importance = widget.DangerImportance

	buttons := container.NewGridWithColumns(6,
		ui.downloadBtn, ui.listBtn, ui.openFolderBtn, ui.mp3Btn, ui.wavBtn, ui.cancelBtn)

	ui.progress = widget.NewProgressBar()
	ui.logLabel = widget.NewLabel("")
	ui.logLabel.TextStyle = fyne.TextStyle{Monospace: true}
	ui.logScroll = container.NewVScroll(ui.logLabel)
	ui.logScroll.SetMinSize(fyne.NewSize(0, LogMinHeight))

	top := container.NewVBox(form, buttons, ui.progress)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.logScroll))
	ui.window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
}

// loadSettings copies the stored choices into the widgets.
func (ui *RootUI) loadSettings() {
	ui.loading = true
	defer func() { ui.loading = false }()

	ui.setOutputDir(ui.outputDir)
	ui.qualitySelect.SetSelected(string(ui.settings.GetQuality()))
	ui.audioSelect.SetSelected(ui.settings.GetAudioBitrate().Label())
	ui.vbrSlider.SetValue(float64(ui.settings.GetMaxVideoBitrate()))
	ui.reencodeCheck.SetChecked(ui.settings.GetReEncode())
	ui.altCheck.SetChecked(ui.settings.GetTryAlternateClient())

	auth := ui.settings.GetAuthOptions()
	ui.setCookiesFile(auth.CookiesFile)
	ui.browserSelect.SetSelected(auth.Browser)
	ui.profileEntry.SetText(auth.ProfilePath)
	ui.authRadio.SetSelected(ui.authLabel(auth.Mode))
	ui.updateVbrLabel()
	ui.updateAuthControls()
}

func (ui *RootUI) authLabels() []string {
	labels := make([]string, len(authModes))
	for i, m := range authModes {
		labels[i] = ui.authLabel(m)
	}
	return labels
}

func (ui *RootUI) authLabel(m model.AuthMode) string {
	switch m {
	case model.AuthCookies:
		return ui.localization.GetText(KeyAuthCookies)
	case model.AuthBrowser:
		return ui.localization.GetText(KeyAuthBrowser)
	default:
		return ui.localization.GetText(KeyAuthNone)
	}
}

// authMode maps the radio selection back to a mode.
func (ui *RootUI) authMode() model.AuthMode {
	for _, m := range authModes {
		if ui.authRadio.Selected == ui.authLabel(m) {
			return m
		}
	}
	return model.AuthNone
}

func (ui *RootUI) authOptions() model.AuthOptions {
	return model.AuthOptions{
		Mode:        ui.authMode(),
		CookiesFile: ui.cookiesFile,
		Browser:     ui.browserSelect.Selected,
		ProfilePath: strings.TrimSpace(ui.profileEntry.Text),
	}
}

func (ui *RootUI) onAuthChanged() {
	ui.saveAuth()
	ui.updateAuthControls()
}

func (ui *RootUI) saveAuth() {
	if ui.loading || ui.authRadio == nil || ui.browserSelect == nil || ui.profileEntry == nil {
		return
	}
	ui.settings.SetAuthOptions(ui.authOptions())
}

// updateAuthControls enables only the inputs of the active auth mode.
func (ui *RootUI) updateAuthControls() {
	mode := ui.authMode()
	enable := func(w fyne.Disableable, on bool) {
		if on {
			w.Enable()
		} else {
			w.Disable()
		}
	}
	enable(ui.pickCookiesBtn, mode == model.AuthCookies && !ui.runner.Busy())
	enable(ui.browserSelect, mode == model.AuthBrowser)
	enable(ui.profileEntry, mode == model.AuthBrowser)
}

func (ui *RootUI) updateVbrLabel() {
	ui.vbrLabel.SetText(VbrLabel(snapToStep(ui.vbrSlider.Value), ui.reencodeCheck.Checked))
}

// request assembles the current choices. Every control writes through to
// the settings, so they are the source of truth.
func (ui *RootUI) request() model.DownloadRequest {
	req := ui.settings.Request(strings.TrimSpace(ui.urlEntry.Text))
	req.OutputDir = ui.outputDir
	return req
}

func (ui *RootUI) onDownload() {
	ui.report(ui.actions.Download(ui.request()))
}

func (ui *RootUI) onExtractAudio(codec string) {
	ui.report(ui.actions.ExtractAudio(ui.request(), codec))
}

func (ui *RootUI) onListFormats() {
	ui.report(ui.actions.ListFormats(ui.request()))
}

func (ui *RootUI) onCancel() {
	ui.runner.Cancel()
}

// report shows a validation error returned before a job started. ErrBusy is
// already reported through the relay.
func (ui *RootUI) report(err error) {
	if err == nil || errors.Is(err, model.ErrBusy) {
		return
	}
	dialog.ShowError(err, ui.window)
}

func (ui *RootUI) onPickDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.setOutputDir(uri.Path())
		ui.settings.SetDownloadDirectory(uri.Path())
	}, ui.window)
}

func (ui *RootUI) setOutputDir(dir string) {
	ui.outputDir = dir
	if dir == "" {
		ui.dirLabel.SetText(ui.localization.GetText(KeyNoFolder))
		return
	}
	ui.dirLabel.SetText(dir)
}

func (ui *RootUI) onPickCookies() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		ui.setCookiesFile(path)
		ui.saveAuth()
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
	d.Show()
}

func (ui *RootUI) setCookiesFile(path string) {
	ui.cookiesFile = path
	if path == "" {
		ui.cookiesLabel.SetText(ui.localization.GetText(KeyCookiesFileTitle))
		return
	}
	ui.cookiesLabel.SetText(path)
}

func (ui *RootUI) onOpenFolder() {
	if ui.outputDir == "" {
		dialog.ShowInformation(ui.localization.GetText(KeyOpenFolder), ui.localization.GetText(KeyChooseSaveFirst), ui.window)
		return
	}
	if err := platform.OpenFolder(ui.outputDir); err != nil {
		log.Printf("Failed to open folder %s: %v", ui.outputDir, err)
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpenFolder)+": "+err.Error()), ui.window)
	}
}

// setBusy disables the job buttons while a job runs; Cancel is enabled only
// then.
func (ui *RootUI) setBusy(busy bool) {
	for _, b := range []*widget.Button{ui.downloadBtn, ui.listBtn, ui.mp3Btn, ui.wavBtn, ui.pickDirBtn} {
		if busy {
			b.Disable()
		} else {
			b.Enable()
		}
	}
	if busy {
		ui.cancelBtn.Enable()
	} else {
		ui.cancelBtn.Disable()
	}
	ui.updateAuthControls()
}

func (ui *RootUI) showNotice(n relay.Notice) {
	switch n.Level {
	case relay.LevelError:
		dialog.ShowError(errors.New(n.Message), ui.window)
	default:
		dialog.ShowInformation(n.Title, n.Message, ui.window)
	}
}

func (ui *RootUI) appendLog(line string) {
	ui.logLines = append(ui.logLines, line)
	if len(ui.logLines) > MaxLogLines {
		ui.logLines = ui.logLines[len(ui.logLines)-MaxLogLines:]
	}
	ui.logLabel.SetText(strings.Join(ui.logLines, "\n"))
	ui.logScroll.ScrollToBottom()
}

func (ui *RootUI) clearLog() {
	ui.logLines = nil
	ui.logLabel.SetText("")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(KeyAppTitle))

	for key, l := range ui.captions {
		l.SetText(t(key))
	}
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.profileEntry.SetPlaceHolder(t(KeyProfilePath))
	ui.reencodeCheck.Text = t(KeyReEncode)
	ui.reencodeCheck.Refresh()
	ui.altCheck.Text = t(KeyAlternateClient)
	ui.altCheck.Refresh()

	mode := ui.authMode()
	ui.authRadio.Options = ui.authLabels()
	ui.authRadio.Selected = ui.authLabel(mode)
	ui.authRadio.Refresh()

	ui.pickDirBtn.SetText(t(KeyChooseFolder))
	ui.pickCookiesBtn.SetText(t(KeyChooseCookies))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.listBtn.SetText(t(KeyListFormats))
	ui.openFolderBtn.SetText(t(KeyOpenFolder))
	ui.mp3Btn.SetText(t(KeyToMP3))
	ui.wavBtn.SetText(t(KeyToWAV))
	ui.cancelBtn.SetText(t(KeyCancel))
	ui.setOutputDir(ui.outputDir)
	ui.setCookiesFile(ui.cookiesFile)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.setOutputDir(ui.settings.GetDownloadDirectory())
		if lang := ui.settings.GetLanguage(); lang != ui.localization.GetCurrentLanguage() {
			ui.onLanguageChange(lang)
		}
	}).Show()
}
