package transcode

import (
	"fmt"
	"strings"
)

// Mode is the post-processing applied after the download.
type Mode int

const (
	// ModeRemux repackages the streams without re-encoding
	ModeRemux Mode = iota
	// ModeReencode transcodes the video stream and copies audio
	ModeReencode
	// ModeExtractAudio drops the video and converts the audio
	ModeExtractAudio
)

func (m Mode) String() string {
	switch m {
	case ModeRemux:
		return "remux"
	case ModeReencode:
		return "reencode"
	case ModeExtractAudio:
		return "extract-audio"
	default:
		return "unknown"
	}
}

// Output containers and codecs
const (
	ContainerMP4 = "mp4"
	AudioMP3     = "mp3"
	AudioWAV     = "wav"

	// BestAudioQuality is ffmpeg's best VBR setting
	BestAudioQuality = "0"
)

// Options is the render directive for one job.
type Options struct {
	Mode         Mode
	Container    string // target container for remux/reencode
	VideoKbps    int    // reencode target bitrate
	AudioCodec   string // extract-audio codec
	AudioQuality string // extract-audio quality: "0".."10" or "128K"
}

// Remux returns options that repackage into container.
func Remux(container string) Options {
	return Options{Mode: ModeRemux, Container: container}
}

// Reencode returns options that transcode the video to kbps. kbps must be > 0.
func Reencode(kbps int) (Options, error) {
	if kbps <= 0 {
		return Options{}, fmt.Errorf("reencode target must be > 0 kbps, got %d", kbps)
	}
	return Options{Mode: ModeReencode, Container: ContainerMP4, VideoKbps: kbps}, nil
}

// ExtractAudio returns options that convert the audio stream to codec.
func ExtractAudio(codec, quality string) Options {
	if quality == "" {
		quality = BestAudioQuality
	}
	return Options{Mode: ModeExtractAudio, AudioCodec: strings.ToLower(codec), AudioQuality: quality}
}

// MergesVideo reports whether separate video and audio streams get merged
// into Container.
func (o Options) MergesVideo() bool {
	return o.Mode != ModeExtractAudio
}

func (o Options) String() string {
	switch o.Mode {
	case ModeReencode:
		return fmt.Sprintf("re-encode %s @ %dk", o.Container, o.VideoKbps)
	case ModeExtractAudio:
		return fmt.Sprintf("extract %s (q=%s)", strings.ToUpper(o.AudioCodec), o.AudioQuality)
	default:
		return "remux " + o.Container
	}
}
