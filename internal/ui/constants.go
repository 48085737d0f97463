package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Relay polling
const (
	TickInterval = 100 * time.Millisecond
)

// Video bitrate slider
const (
	VbrSliderStep = 100
)

// Log view
const (
	MaxLogLines = 2000
	IdleLine    = "Idle."
)

// Layout sizing
const (
	WindowMinWidth  float32 = 760
	WindowMinHeight float32 = 640
	LogMinHeight    float32 = 260
)
