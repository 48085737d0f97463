package job

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/relay"
)

// Log lines written for downloader events.
const (
	FinishedLine  = "Merging / processing…"
	CancelledLine = "Cancelled."
)

// Context is handed to a worker. It is used from the worker goroutine only,
// except for the cancel flag which is shared with the UI thread.
type Context struct {
	ID string

	ctx       context.Context
	relay     *relay.Relay
	cancelled *atomic.Bool
	throttle  *relay.Throttle
}

// Context returns the context for blocking calls made by the worker.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Cancelled reports whether the user asked to stop.
func (c *Context) Cancelled() bool {
	return c.cancelled.Load()
}

// Post delivers u to the UI. It never drops.
func (c *Context) Post(u relay.Update) {
	if err := c.relay.Post(context.Background(), u); err != nil {
		log.Printf("Job %s: failed to post update: %v", c.ID, err)
	}
}

// Logf appends a line to the user-facing log.
func (c *Context) Logf(format string, args ...any) {
	c.Post(relay.Log{Line: fmt.Sprintf(format, args...)})
}

// ClearLog empties the user-facing log.
func (c *Context) ClearLog() {
	c.Post(relay.ClearLog{})
}

// SetProgress moves the progress bar.
func (c *Context) SetProgress(fraction float64) {
	c.Post(relay.Progress{Fraction: fraction})
}

// Notify shows a modal notice.
func (c *Context) Notify(level relay.Level, title, message string) {
	c.Post(relay.Notice{Level: level, Title: title, Message: message})
}

// OnProgress consumes downloader events. Download progress is throttled and
// may be dropped when the UI falls behind; everything else is delivered.
func (c *Context) OnProgress(ev model.ProgressEvent) {
	switch ev := ev.(type) {
	case model.Downloading:
		if !c.throttle.Admit(ev) {
			return
		}
		c.relay.Offer(relay.Progress{Fraction: ev.Fraction})
		c.relay.Offer(relay.Log{Line: relay.ProgressLine(ev)})
	case model.Finished:
		c.Logf("%s", FinishedLine)
	case model.Errored:
		c.Logf("ERROR: %s", ev.Message)
	}
}
