// Package relay carries updates from the background worker to the UI loop.
//
// The worker posts updates into a bounded channel; the UI drains it on a
// fixed tick without ever blocking on the worker. Only throttled download
// progress may be dropped.
package relay

import "github.com/ytget/ytmedia/internal/model"

// Update is one UI command. The set of implementations is closed.
type Update interface {
	update()
}

// Level is the severity of a Notice.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Progress sets the progress bar, 0.0 to 1.0.
type Progress struct {
	Fraction float64
}

// Log appends one line to the log view.
type Log struct {
	Line string
}

// ClearLog empties the log view.
type ClearLog struct{}

// Busy toggles the busy state of the UI.
type Busy struct {
	Busy bool
}

// Notice is a modal notification.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

// Done reports the terminal status of the job.
type Done struct {
	JobID  string
	Status model.JobStatus
}

func (Progress) update() {}
func (Log) update()      {}
func (ClearLog) update() {}
func (Busy) update()     {}
func (Notice) update()   {}
func (Done) update()     {}
