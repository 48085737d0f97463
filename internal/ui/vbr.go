package ui

import "fmt"

// VbrLabel returns the caption shown next to the video bitrate slider. With
// re-encoding on the value is an encoder target, otherwise an upper bound
// used for stream selection.
func VbrLabel(kbps int, reencode bool) string {
	if reencode {
		if kbps <= 0 {
			return "set >0 kbps"
		}
		return fmt.Sprintf("≈ %d kbps (encode)", kbps)
	}
	if kbps <= 0 {
		return "Auto"
	}
	return fmt.Sprintf("≤ %d kbps", kbps)
}

// snapToStep rounds v to the nearest slider step.
func snapToStep(v float64) int {
	step := float64(VbrSliderStep)
	return int((v+step/2)/step) * VbrSliderStep
}
