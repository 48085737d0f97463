package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ytget/ytmedia/internal/model"
)

// Attempt is one entry of the ladder.
type Attempt struct {
	Client   model.ClientIdentity
	Selector string
	Codec    string // set for audio-only extraction
}

// Label names the attempt in error messages.
func (a Attempt) Label() string {
	if a.Codec != "" {
		return strings.ToUpper(a.Codec)
	}
	return a.Selector
}

// Announce returns the log line written before the attempt starts.
func (a Attempt) Announce() string {
	if a.Codec != "" {
		return fmt.Sprintf("→ Audio-only: %s → %s (client=%s)", a.Selector, strings.ToUpper(a.Codec), a.Client)
	}
	return fmt.Sprintf("→ Trying format: %s (client=%s)", a.Selector, a.Client)
}

// Plan is the ordered list of attempts.
type Plan []Attempt

// BuildPlan pairs every selector with every client identity. The client is
// the outer loop, so all default attempts come before the alternate ones.
func BuildPlan(selectors []string, tryAlternate bool) Plan {
	clients := model.Clients(tryAlternate)
	plan := make(Plan, 0, len(clients)*len(selectors))
	for _, c := range clients {
		for _, s := range selectors {
			plan = append(plan, Attempt{Client: c, Selector: s})
		}
	}
	return plan
}

// BuildAudioPlan returns one attempt per client for an audio-only selector.
func BuildAudioPlan(selector, codec string, tryAlternate bool) Plan {
	plan := BuildPlan([]string{selector}, tryAlternate)
	for i := range plan {
		plan[i].Codec = codec
	}
	return plan
}

// OutputTemplate returns the yt-dlp output template for dir.
func OutputTemplate(dir string) string {
	return filepath.Join(dir, "%(title)s.%(ext)s")
}

// Ladder walks a plan until one attempt succeeds.
type Ladder struct {
	Invoker Invoker

	// Cancelled reports whether the user asked to stop. It is checked
	// before each attempt and on every progress event.
	Cancelled func() bool

	// Logf writes a line to the user-facing log. May be nil.
	Logf func(format string, args ...any)
}

// Run invokes the attempts of plan in order. Success stops the walk. A
// failure is recorded and the walk continues. Cancellation stops the walk
// without recording an error.
func (l *Ladder) Run(ctx context.Context, plan Plan, call Call) model.JobOutcome {
	var errs []string

	for _, attempt := range plan {
		if l.cancelled() || ctx.Err() != nil {
			return model.JobOutcome{Status: model.OutcomeCancelled, Errors: errs}
		}

		l.logf("%s", attempt.Announce())
		err := l.try(ctx, attempt, call)
		if err == nil {
			return model.JobOutcome{Status: model.OutcomeSuccess, Errors: errs}
		}
		if errors.Is(err, model.ErrCancelled) {
			return model.JobOutcome{Status: model.OutcomeCancelled, Errors: errs}
		}

		attemptErr := &model.AttemptError{Client: attempt.Client, Selector: attempt.Label(), Err: err}
		errs = append(errs, attemptErr.Error())
		log.Printf("Attempt failed: %v", attemptErr)
		l.logf("ERROR: %v", err)
	}

	return model.JobOutcome{Status: model.OutcomeFailure, Errors: errs}
}

// try runs a single attempt and maps every form of user cancellation onto
// model.ErrCancelled.
func (l *Ladder) try(parent context.Context, attempt Attempt, call Call) error {
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	forward := call.Progress
	call.Selector = attempt.Selector
	call.Client = attempt.Client
	call.Progress = func(ev model.ProgressEvent) {
		if l.cancelled() {
			cancel(model.ErrCancelled)
			return
		}
		if forward != nil {
			forward(ev)
		}
	}

	err := l.Invoker.Invoke(ctx, call)
	if errors.Is(context.Cause(ctx), model.ErrCancelled) || parent.Err() != nil {
		return model.ErrCancelled
	}
	if err != nil && l.cancelled() {
		return model.ErrCancelled
	}
	return err
}

func (l *Ladder) cancelled() bool {
	return l.Cancelled != nil && l.Cancelled()
}

func (l *Ladder) logf(format string, args ...any) {
	if l.Logf != nil {
		l.Logf(format, args...)
	}
}
