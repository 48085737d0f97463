package job

import (
	"fmt"
	"strings"

	"github.com/ytget/ytmedia/internal/download"
	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/relay"
	"github.com/ytget/ytmedia/internal/selector"
)

// User-facing notice texts.
const (
	DownloadSuccess   = "Download complete."
	DownloadFailure   = "All strategies failed. Last errors:\n\n"
	ListFormatFailure = "Could not fetch format list with provided auth."
	UnknownError      = "Unknown error"
)

// Actions turns user requests into jobs.
type Actions struct {
	Runner  *Runner
	Invoker download.Invoker

	// Prober lists formats per client identity.
	Prober download.Prober

	// Fallback is tried when Prober fails for every client. May be nil.
	Fallback download.Prober
}

// Download validates req and starts a job walking the video ladder. A
// validation error is returned before any job starts.
func (a *Actions) Download(req model.DownloadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	set, err := selector.Build(req)
	if err != nil {
		return err
	}
	plan := download.BuildPlan(set.Strings(), req.TryAlternateClient)

	return a.Runner.Start("download", func(jc *Context) (model.JobStatus, error) {
		out := a.ladder(jc).Run(jc.Context(), plan, a.call(jc, req, set))
		switch out.Status {
		case model.OutcomeSuccess:
			jc.SetProgress(1)
			jc.Notify(relay.LevelInfo, "Success", DownloadSuccess)
		case model.OutcomeFailure:
			jc.Notify(relay.LevelError, "Error", DownloadFailure+joinRecent(out))
		}
		return out.JobStatus(), nil
	})
}

// ExtractAudio validates req and starts a job extracting audio to codec
// (mp3 or wav).
func (a *Actions) ExtractAudio(req model.DownloadRequest, codec string) error {
	if err := req.ValidateExtraction(); err != nil {
		return err
	}
	set := selector.BuildAudio(req, codec)
	plan := download.BuildAudioPlan(set.Strings()[0], codec, req.TryAlternateClient)
	label := strings.ToUpper(codec)

	return a.Runner.Start("extract "+codec, func(jc *Context) (model.JobStatus, error) {
		out := a.ladder(jc).Run(jc.Context(), plan, a.call(jc, req, set))
		switch out.Status {
		case model.OutcomeSuccess:
			jc.SetProgress(1)
			jc.Notify(relay.LevelInfo, "Success", fmt.Sprintf("Saved as %s.", label))
		case model.OutcomeFailure:
			jc.Notify(relay.LevelError, "Error",
				fmt.Sprintf("%s extraction failed. Last errors:\n\n%s", label, joinRecent(out)))
		}
		return out.JobStatus(), nil
	})
}

// ListFormats validates the source of req and starts a job printing the
// available formats. The default client is tried first, then the alternate
// one, then the fallback prober.
func (a *Actions) ListFormats(req model.DownloadRequest) error {
	if err := req.ValidateSource(); err != nil {
		return err
	}

	return a.Runner.Start("list formats", func(jc *Context) (model.JobStatus, error) {
		var (
			formats []download.Format
			used    model.ClientIdentity
		)

		for _, client := range model.Clients(true) {
			if jc.Cancelled() {
				return model.JobStatusCancelled, nil
			}
			f, err := a.Prober.Probe(jc.Context(), download.ProbeCall{URL: req.URL, Client: client, Auth: req.Auth})
			if err != nil {
				jc.Logf("List formats failed on %s: %v", client, err)
				continue
			}
			formats, used = f, client
			break
		}

		if formats == nil && a.Fallback != nil && !jc.Cancelled() {
			f, err := a.Fallback.Probe(jc.Context(), download.ProbeCall{URL: req.URL, Client: model.ClientDefault})
			if err != nil {
				jc.Logf("List formats failed on native client: %v", err)
			} else {
				formats, used = f, "native"
			}
		}

		if jc.Cancelled() {
			return model.JobStatusCancelled, nil
		}
		if formats == nil {
			jc.Notify(relay.LevelError, "Error", ListFormatFailure)
			return model.JobStatusFailed, nil
		}

		jc.ClearLog()
		for _, line := range download.Listing(used, formats) {
			jc.Logf("%s", line)
		}
		return model.JobStatusSucceeded, nil
	})
}

func (a *Actions) ladder(jc *Context) *download.Ladder {
	return &download.Ladder{
		Invoker:   a.Invoker,
		Cancelled: jc.Cancelled,
		Logf:      jc.Logf,
	}
}

func (a *Actions) call(jc *Context, req model.DownloadRequest, set selector.Set) download.Call {
	return download.Call{
		URL:            strings.TrimSpace(req.URL),
		OutputTemplate: download.OutputTemplate(req.OutputDir),
		Auth:           req.Auth,
		Render:         set.Render,
		Progress:       jc.OnProgress,
	}
}

func joinRecent(out model.JobOutcome) string {
	recent := out.Recent(model.MaxReportedErrors)
	if len(recent) == 0 {
		return UnknownError
	}
	return strings.Join(recent, "\n\n")
}
