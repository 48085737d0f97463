package model

import (
	"fmt"
	"time"
)

// ProgressEvent is reported by the downloader while an attempt runs. The set
// of implementations is closed: Downloading, Finished and Errored.
type ProgressEvent interface {
	progressEvent()
}

// Downloading reports transfer progress.
type Downloading struct {
	Fraction   float64       // 0.0 to 1.0
	TotalKnown bool          // false when the size is not known yet
	Speed      float64       // bytes per second, 0 if unknown
	ETA        time.Duration // 0 if unknown
}

// Finished reports that the transfer is done and post-processing starts.
type Finished struct{}

// Errored reports an error raised by the downloader mid-attempt.
type Errored struct {
	Message string
}

func (Downloading) progressEvent() {}
func (Finished) progressEvent()    {}
func (Errored) progressEvent()     {}

// Percent returns the integer percentage, or -1 if the total is unknown.
func (d Downloading) Percent() int {
	if !d.TotalKnown {
		return -1
	}
	f := d.Fraction
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return int(f * 100)
}

// FormatETA returns an ETA formatted as hh:mm:ss or mm:ss, or "—" if unknown
func FormatETA(eta time.Duration) string {
	sec := int(eta.Seconds())
	if sec <= 0 {
		return "—"
	}

	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
