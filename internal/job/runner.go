package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/relay"
)

// JobIDPrefix prefixes every job ID.
const JobIDPrefix = "job-"

// Worker is the body of a job. It returns the terminal status; an error
// means the job broke down unexpectedly and is reported to the user.
type Worker func(jc *Context) (model.JobStatus, error)

// Runner starts jobs and tracks the busy state. Start, Cancel, Tick and the
// getters must be called from the UI thread.
type Runner struct {
	relay     *relay.Relay
	cancelled atomic.Bool
	window    time.Duration

	busy bool
	last model.JobStatus

	wg sync.WaitGroup
}

// NewRunner creates a runner publishing to r.
func NewRunner(r *relay.Relay) *Runner {
	return &Runner{
		relay:  r,
		window: relay.DefaultThrottleWindow,
		last:   model.JobStatusIdle,
	}
}

// Relay returns the relay the runner publishes to.
func (r *Runner) Relay() *relay.Relay {
	return r.relay
}

// Busy reports whether a job is running.
func (r *Runner) Busy() bool {
	return r.busy
}

// Status returns Running while busy, otherwise the last terminal status.
func (r *Runner) Status() model.JobStatus {
	if r.busy {
		return model.JobStatusRunning
	}
	return r.last
}

// Start spawns a worker for a new job. It returns model.ErrBusy, after
// posting a warning, when a job is already running.
//
// The UI thread is the relay's consumer, so Start uses Offer and never
// blocks on a full buffer.
func (r *Runner) Start(name string, w Worker) error {
	if r.busy {
		r.relay.Offer(relay.Notice{Level: relay.LevelWarn, Title: "Busy", Message: "A job is already running."})
		return model.ErrBusy
	}

	r.cancelled.Store(false)
	r.busy = true
	r.relay.Offer(relay.Progress{Fraction: 0})
	r.relay.Offer(relay.Busy{Busy: true})

	jc := &Context{
		ID:        generateJobID(),
		ctx:       context.Background(),
		relay:     r.relay,
		cancelled: &r.cancelled,
		throttle:  relay.NewThrottle(r.window, nil),
	}
	log.Printf("Starting %s job %s", name, jc.ID)

	r.wg.Add(1)
	go r.run(name, jc, w)
	return nil
}

// run executes w and always reports Done and Busy{false}, even if w panics.
func (r *Runner) run(name string, jc *Context, w Worker) {
	defer r.wg.Done()

	status := model.JobStatusFailed
	defer func() {
		log.Printf("Job %s (%s) finished: %s", jc.ID, name, status)
		jc.Post(relay.Done{JobID: jc.ID, Status: status})
		jc.Post(relay.Busy{Busy: false})
	}()

	defer func() {
		if p := recover(); p != nil {
			status = model.JobStatusFailed
			r.fail(jc, fmt.Errorf("unexpected failure: %v", p))
		}
	}()

	s, err := w(jc)
	switch {
	case errors.Is(err, model.ErrCancelled):
		status = model.JobStatusCancelled
	case err != nil:
		status = model.JobStatusFailed
		r.fail(jc, err)
	default:
		status = s
	}

	if status == model.JobStatusCancelled {
		jc.Logf("%s", CancelledLine)
	}
}

func (r *Runner) fail(jc *Context, err error) {
	log.Printf("Job %s failed: %v", jc.ID, err)
	jc.Logf("ERROR: %v", err)
	jc.Notify(relay.LevelError, "Error", err.Error())
}

// Cancel requests cooperative cancellation of the running job. It reports
// whether a job was running.
func (r *Runner) Cancel() bool {
	if !r.busy {
		return false
	}
	r.cancelled.Store(true)
	r.relay.Offer(relay.Log{Line: "Cancel requested… (will stop at next safe point)"})
	return true
}

// Tick drains the relay, updates the runner state and hands every update to
// apply. It returns the number of updates applied.
func (r *Runner) Tick(apply func(relay.Update)) int {
	return r.relay.Drain(func(u relay.Update) {
		switch u := u.(type) {
		case relay.Busy:
			r.busy = u.Busy
		case relay.Done:
			r.last = u.Status
		}
		if apply != nil {
			apply(u)
		}
	})
}

// Wait blocks until every started worker has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

// generateJobID returns a time-ordered UUID v7 based ID.
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
