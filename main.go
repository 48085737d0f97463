package main

import (
	"log"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/ytmedia/internal/config"
	"github.com/ytget/ytmedia/internal/download"
	"github.com/ytget/ytmedia/internal/job"
	"github.com/ytget/ytmedia/internal/platform"
	"github.com/ytget/ytmedia/internal/relay"
	"github.com/ytget/ytmedia/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const AppID = "com.ytget.ytmedia"

func main() {
	log.Printf("ytmedia v%s starting...", version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myWindow := myApp.NewWindow("ytmedia")

	settings := config.NewSettings(myApp)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Printf("failed to ensure downloads dir: %v", err)
	}

	invoker := download.NewYtdlpInvoker(settings.GetYtdlpPath())
	actions := &job.Actions{
		Runner:   job.NewRunner(relay.New(0)),
		Invoker:  invoker,
		Prober:   download.NewYtdlpProber(invoker),
		Fallback: download.NewNativeProber(),
	}

	ui.NewRootUI(myWindow, settings, actions)
	myWindow.ShowAndRun()
}
