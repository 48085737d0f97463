package model

import (
	"errors"
	"fmt"
)

// Validation errors. They are returned before any job starts.
var (
	ErrInvalidURL      = errors.New("enter a valid YouTube URL")
	ErrNoOutputDir     = errors.New("choose a save folder")
	ErrCookiesFile     = errors.New("pick a valid cookies.txt file")
	ErrUnknownBrowser  = errors.New("unsupported browser")
	ErrUnknownQuality  = errors.New("unknown quality choice")
	ErrReencodeBitrate = errors.New("set a target bitrate (>0 kbps) when re-encode is enabled")
	ErrBitrateRange    = errors.New("video bitrate out of range")
)

var (
	// ErrCancelled is the cause attached to an attempt aborted by the user.
	ErrCancelled = errors.New("cancelled")

	// ErrBusy is returned when a job is started while another one is running.
	ErrBusy = errors.New("a job is already running")
)

// AttemptError records a single failed attempt of the ladder.
type AttemptError struct {
	Client   ClientIdentity
	Selector string
	Err      error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("[%s] %s → %v", e.Client, e.Selector, e.Err)
}

func (e *AttemptError) Unwrap() error {
	return e.Err
}
