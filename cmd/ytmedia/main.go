// Command ytmedia downloads a YouTube video or extracts its audio without the
// desktop window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ytget/ytmedia/internal/download"
	"github.com/ytget/ytmedia/internal/job"
	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/platform"
	"github.com/ytget/ytmedia/internal/relay"
	"github.com/ytget/ytmedia/internal/transcode"
)

// Job modes
const (
	ModeDownload = "download"
	ModeMP3      = "mp3"
	ModeWAV      = "wav"
	ModeFormats  = "formats"
)

const tickInterval = 100 * time.Millisecond

var errUsage = errors.New("usage: ytmedia [flags] <youtube-url>")

type options struct {
	dir      string
	quality  string
	abr      int
	vbr      int
	reencode bool
	alt      bool
	cookies  string
	browser  string
	profile  string
	mode     string
	ytdlp    string
	verbose  bool
	url      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("ytmedia", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.dir, "dir", "", "output directory (default: ~/Downloads)")
	fs.StringVar(&o.quality, "quality", "best", "best, 720p, 1080p, 1440p or 2160p")
	fs.IntVar(&o.abr, "abr", 0, "minimum audio bitrate in kbps, 0 = auto")
	fs.IntVar(&o.vbr, "vbr", 0, "max video bitrate in kbps, or the encode target with -reencode")
	fs.BoolVar(&o.reencode, "reencode", false, "re-encode to H.264 at -vbr kbps")
	fs.BoolVar(&o.alt, "alt", true, "retry with the android client")
	fs.StringVar(&o.cookies, "cookies", "", "Netscape cookies.txt file")
	fs.StringVar(&o.browser, "browser", "", "read cookies from this browser")
	fs.StringVar(&o.profile, "profile", "", "browser profile path")
	fs.StringVar(&o.mode, "mode", ModeDownload, "download, mp3, wav or formats")
	fs.StringVar(&o.ytdlp, "ytdlp", "", "yt-dlp executable (default: from PATH)")
	fs.BoolVar(&o.verbose, "v", false, "write diagnostic logs to stderr")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() != 1 {
		return o, errUsage
	}
	o.url = fs.Arg(0)

	switch o.mode {
	case ModeDownload, ModeMP3, ModeWAV, ModeFormats:
	default:
		return o, fmt.Errorf("unknown mode %q", o.mode)
	}
	return o, nil
}

// parseQuality accepts the quality labels and their short forms.
func parseQuality(s string) (model.Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "best", "auto":
		return model.QualityBest, nil
	case "720", "720p":
		return model.QualityProgressive720, nil
	case "1080", "1080p":
		return model.Quality1080, nil
	case "1440", "1440p":
		return model.Quality1440, nil
	case "2160", "2160p", "4k":
		return model.Quality2160, nil
	}
	if q := model.Quality(s); q.Valid() {
		return q, nil
	}
	return "", fmt.Errorf("%w: %s", model.ErrUnknownQuality, s)
}

func (o options) request() (model.DownloadRequest, error) {
	q, err := parseQuality(o.quality)
	if err != nil {
		return model.DownloadRequest{}, err
	}

	dir := o.dir
	if dir == "" {
		if dir, err = platform.GetHomeDownloadsDir(); err != nil {
			return model.DownloadRequest{}, err
		}
	}

	auth := model.AuthOptions{Mode: model.AuthNone}
	switch {
	case o.cookies != "":
		auth = model.AuthOptions{Mode: model.AuthCookies, CookiesFile: o.cookies}
	case o.browser != "":
		auth = model.AuthOptions{Mode: model.AuthBrowser, Browser: o.browser, ProfilePath: o.profile}
	}

	return model.DownloadRequest{
		URL:                 o.url,
		OutputDir:           dir,
		Quality:             q,
		AudioBitrate:        model.AudioBitrate(o.abr),
		MaxVideoBitrateKbps: o.vbr,
		ReEncode:            o.reencode,
		TryAlternateClient:  o.alt,
		Auth:                auth,
	}, nil
}

func start(a *job.Actions, mode string, req model.DownloadRequest) error {
	switch mode {
	case ModeMP3:
		return a.ExtractAudio(req, transcode.AudioMP3)
	case ModeWAV:
		return a.ExtractAudio(req, transcode.AudioWAV)
	case ModeFormats:
		return a.ListFormats(req)
	default:
		if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
			return err
		}
		return a.Download(req)
	}
}

// printer writes relay updates to the terminal.
type printer struct {
	out, errOut io.Writer
	done        bool
}

func (p *printer) apply(u relay.Update) {
	switch u := u.(type) {
	case relay.Log:
		fmt.Fprintln(p.out, u.Line)
	case relay.Notice:
		fmt.Fprintf(p.errOut, "[%s] %s: %s\n", u.Level, u.Title, u.Message)
	case relay.Done:
		p.done = true
	}
}

func run(args []string, stdout, stderr io.Writer, sig <-chan os.Signal) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}
	if opts.verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	req, err := opts.request()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	if missing := transcode.CheckTools(opts.ytdlp); len(missing) > 0 {
		fmt.Fprintln(stderr, transcode.MissingToolsError(missing))
	}

	invoker := download.NewYtdlpInvoker(opts.ytdlp)
	actions := &job.Actions{
		Runner:   job.NewRunner(relay.New(0)),
		Invoker:  invoker,
		Prober:   download.NewYtdlpProber(invoker),
		Fallback: download.NewNativeProber(),
	}

	if err := start(actions, opts.mode, req); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	return loop(actions.Runner, &printer{out: stdout, errOut: stderr}, sig)
}

// loop drains the relay until the job reports Done. It owns the runner state.
func loop(runner *job.Runner, p *printer, sig <-chan os.Signal) int {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for !p.done {
		select {
		case <-ticker.C:
			runner.Tick(p.apply)
		case <-sig:
			runner.Cancel()
		}
	}
	runner.Tick(p.apply)

	if runner.Status() != model.JobStatusSucceeded {
		return 1
	}
	return 0
}

func main() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, sig))
}
