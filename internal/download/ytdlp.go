package download

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/transcode"
)

// Network settings passed to every invocation.
const (
	Retries             = "10"
	FragmentRetries     = "10"
	HTTPChunkSize       = "256K"
	ConcurrentFragments = 1

	// ProgressInterval is how often yt-dlp progress is polled.
	ProgressInterval = 100 * time.Millisecond
)

// YtdlpInvoker runs yt-dlp through go-ytdlp.
type YtdlpInvoker struct {
	// Executable overrides the yt-dlp binary; empty means PATH lookup.
	Executable string
}

// NewYtdlpInvoker creates an invoker for the given yt-dlp executable.
func NewYtdlpInvoker(executable string) *YtdlpInvoker {
	return &YtdlpInvoker{Executable: executable}
}

// Invoke implements Invoker.
func (y *YtdlpInvoker) Invoke(ctx context.Context, call Call) error {
	dl := y.command(call.Client, call.Auth).
		Output(call.OutputTemplate).
		Format(call.Selector)

	applyRender(dl, call.Render)

	if call.Progress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			if ev := translateProgress(&update, time.Now()); ev != nil {
				call.Progress(ev)
			}
		})
	}

	res, err := dl.Run(ctx, call.URL)
	if err != nil {
		return runError(res, err)
	}
	return nil
}

// command returns a yt-dlp command with the base options, client identity
// and authentication applied.
func (y *YtdlpInvoker) command(client model.ClientIdentity, auth model.AuthOptions) *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		NoWarnings().
		Retries(Retries).
		FragmentRetries(FragmentRetries).
		HTTPChunkSize(HTTPChunkSize).
		ConcurrentFragments(ConcurrentFragments)

	if y.Executable != "" {
		dl.SetExecutable(y.Executable)
	}
	if args := client.ExtractorArgs(); args != "" {
		dl.ExtractorArgs(args)
	}

	switch auth.Mode {
	case model.AuthCookies:
		dl.Cookies(auth.CookiesFile)
	case model.AuthBrowser:
		dl.CookiesFromBrowser(auth.BrowserSpec())
	}
	return dl
}

// applyRender maps render options onto post-processing flags.
func applyRender(dl *ytdlp.Command, opts transcode.Options) {
	switch opts.Mode {
	case transcode.ModeExtractAudio:
		dl.ExtractAudio().
			AudioFormat(opts.AudioCodec).
			AudioQuality(opts.AudioQuality)
	case transcode.ModeReencode:
		dl.MergeOutputFormat(opts.Container).
			RecodeVideo(opts.Container).
			PostProcessorArgs(opts.PostProcessorArgs())
	default:
		container := opts.Container
		if container == "" {
			container = transcode.ContainerMP4
		}
		dl.MergeOutputFormat(container).
			RemuxVideo(container)
	}
}

// translateProgress maps a go-ytdlp update onto a model event. It returns nil
// for updates that carry nothing to report.
func translateProgress(update *ytdlp.ProgressUpdate, now time.Time) model.ProgressEvent {
	switch update.Status {
	case ytdlp.ProgressStatusFinished:
		return model.Finished{}
	case ytdlp.ProgressStatusError:
		msg := "download error"
		if update.Filename != "" {
			msg = fmt.Sprintf("download error: %s", update.Filename)
		}
		return model.Errored{Message: msg}
	case ytdlp.ProgressStatusStarting, ytdlp.ProgressStatusDownloading:
	default:
		return nil
	}

	ev := model.Downloading{}
	if update.TotalBytes > 0 {
		ev.TotalKnown = true
		ev.Fraction = float64(update.DownloadedBytes) / float64(update.TotalBytes)
	}

	if !update.Started.IsZero() {
		elapsed := now.Sub(update.Started)
		if elapsed.Seconds() > 0 {
			ev.Speed = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		ev.ETA = eta
	}
	return ev
}

// runError extracts the most useful message from a failed run.
func runError(res *ytdlp.Result, err error) error {
	if res == nil {
		return err
	}
	if msg := lastErrorLine(res.Stderr); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}

// lastErrorLine returns the last "ERROR:" line of yt-dlp output without the
// prefix.
func lastErrorLine(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	return ""
}
