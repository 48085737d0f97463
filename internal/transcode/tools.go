package transcode

import (
	"fmt"
	"os/exec"
)

// Executable names
const (
	YtdlpCommand  = "yt-dlp"
	FFmpegCommand = "ffmpeg"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// CheckTools returns the names of required executables missing from PATH.
// ytdlpPath overrides the yt-dlp lookup when set.
func CheckTools(ytdlpPath string) []string {
	if ytdlpPath == "" {
		ytdlpPath = YtdlpCommand
	}
	var missing []string
	for _, name := range []string{ytdlpPath, FFmpegCommand} {
		if _, err := lookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingToolsError formats the result of CheckTools for the log.
func MissingToolsError(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("required tools not found in PATH: %v", missing)
}
