package transcode

import (
	"strconv"
	"strings"
)

// FFmpeg constants for re-encoding
const (
	// Video codec settings
	VideoCodec  = "libx264"
	VideoPreset = "medium"
	PixelFormat = "yuv420p"

	// Audio is copied untouched
	AudioCopy = "copy"

	// Container flags
	FastStartFlag = "+faststart"

	// BufferFactor sizes the rate control buffer relative to the target bitrate
	BufferFactor = 2

	// Post-processor selector for ffmpeg output arguments of the video convertor
	VideoConvertorOutput = "VideoConvertor+ffmpeg_o"
)

// EncoderArgs builds the ffmpeg output arguments for a re-encode. It returns
// nil for every other mode.
func (o Options) EncoderArgs() []string {
	if o.Mode != ModeReencode || o.VideoKbps <= 0 {
		return nil
	}
	rate := kbps(o.VideoKbps)
	return []string{
		"-c:v", VideoCodec, // Video codec
		"-b:v", rate, // Target bitrate
		"-maxrate", rate, // Peak bitrate
		"-bufsize", kbps(o.VideoKbps * BufferFactor), // Rate control buffer
		"-pix_fmt", PixelFormat, // Widest player support
		"-preset", VideoPreset, // Encoding preset
		"-movflags", FastStartFlag, // MP4 optimization
		"-c:a", AudioCopy, // Keep audio as-is
	}
}

// PostProcessorArgs returns the value for the downloader's post-processor
// arguments flag, or "" when no encoder arguments apply.
func (o Options) PostProcessorArgs() string {
	args := o.EncoderArgs()
	if len(args) == 0 {
		return ""
	}
	return VideoConvertorOutput + ":" + strings.Join(args, " ")
}

func kbps(v int) string {
	return strconv.Itoa(v) + "k"
}
