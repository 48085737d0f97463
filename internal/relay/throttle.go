package relay

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/ytget/ytmedia/internal/model"
)

// DefaultThrottleWindow is the minimum spacing between forwarded progress
// updates.
const DefaultThrottleWindow = 200 * time.Millisecond

// Throttle decides which Downloading events reach the UI: at most one per
// window, and only when the integer percentage changed. It is owned by the
// worker and not safe for concurrent use.
type Throttle struct {
	limiter *rate.Limiter
	lastPct int
	now     func() time.Time
}

// NewThrottle creates a throttle with the given window. now may be nil.
func NewThrottle(window time.Duration, now func() time.Time) *Throttle {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(window), 1),
		lastPct: -1,
		now:     now,
	}
}

// Admit reports whether ev should be forwarded.
func (t *Throttle) Admit(ev model.Downloading) bool {
	pct := ev.Percent()
	if pct < 0 || pct == t.lastPct {
		return false
	}
	if !t.limiter.AllowN(t.now(), 1) {
		return false
	}
	t.lastPct = pct
	return true
}

// Reset forgets the last forwarded percentage, e.g. between attempts.
func (t *Throttle) Reset() {
	t.lastPct = -1
}

// ProgressLine renders the log line for a forwarded event.
func ProgressLine(ev model.Downloading) string {
	line := fmt.Sprintf("Downloading… %d%%", ev.Percent())
	if ev.Speed > 0 {
		line += " @ " + humanize.Bytes(uint64(ev.Speed)) + "/s"
	}
	if ev.ETA > 0 {
		line += " | ETA " + model.FormatETA(ev.ETA)
	}
	return line
}
