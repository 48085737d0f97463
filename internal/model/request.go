package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Quality is the video quality choice offered to the user.
type Quality string

const (
	QualityBest           Quality = "Best (auto)"
	QualityProgressive720 Quality = "720p progressive bias"
	Quality1080           Quality = "1080p"
	Quality1440           Quality = "1440p"
	Quality2160           Quality = "2160p (4K)"
)

// ProgressiveMaxHeight bounds the progressive-bias mode.
const ProgressiveMaxHeight = 720

var targetHeights = map[Quality]int{
	Quality1080: 1080,
	Quality1440: 1440,
	Quality2160: 2160,
}

// QualityOptions returns quality choices in display order.
func QualityOptions() []Quality {
	return []Quality{QualityBest, QualityProgressive720, Quality1080, Quality1440, Quality2160}
}

// TargetHeight returns the explicit height for 1080p/1440p/2160p choices.
func (q Quality) TargetHeight() (int, bool) {
	h, ok := targetHeights[q]
	return h, ok
}

// Valid reports whether q is one of the known choices.
func (q Quality) Valid() bool {
	for _, o := range QualityOptions() {
		if o == q {
			return true
		}
	}
	return false
}

// AudioBitrate is the minimum preferred audio bitrate in kbps. Zero means Auto.
type AudioBitrate int

// AudioBitrateAuto imposes no bitrate constraint on the audio stream.
const AudioBitrateAuto AudioBitrate = 0

const audioAutoLabel = "Auto"

// AudioBitrateOptions returns audio choices in display order.
func AudioBitrateOptions() []AudioBitrate {
	return []AudioBitrate{AudioBitrateAuto, 64, 96, 128, 160, 192, 256, 320}
}

// Label returns the display label, e.g. "Auto" or "≥128 kbps".
func (a AudioBitrate) Label() string {
	if a <= AudioBitrateAuto {
		return audioAutoLabel
	}
	return fmt.Sprintf("≥%d kbps", int(a))
}

// ParseAudioBitrate maps a display label back to its value. Unknown labels
// fall back to Auto.
func ParseAudioBitrate(label string) AudioBitrate {
	label = strings.TrimSpace(label)
	if label == "" || label == audioAutoLabel {
		return AudioBitrateAuto
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	v, err := strconv.Atoi(digits)
	if err != nil || v <= 0 {
		return AudioBitrateAuto
	}
	return AudioBitrate(v)
}

// MaxVideoBitrateKbps is the upper bound of the video bitrate slider (25 Mbps).
const MaxVideoBitrateKbps = 25000

// DownloadRequest carries the user's choices for one job.
type DownloadRequest struct {
	URL                 string
	OutputDir           string
	Quality             Quality
	AudioBitrate        AudioBitrate
	MaxVideoBitrateKbps int // 0 = unlimited
	ReEncode            bool
	TryAlternateClient  bool
	Auth                AuthOptions
}

// Validate checks everything a download or extraction job needs.
func (r DownloadRequest) Validate() error {
	if err := r.ValidateSource(); err != nil {
		return err
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ErrNoOutputDir
	}
	if r.MaxVideoBitrateKbps < 0 || r.MaxVideoBitrateKbps > MaxVideoBitrateKbps {
		return fmt.Errorf("%w: %d kbps", ErrBitrateRange, r.MaxVideoBitrateKbps)
	}
	if r.ReEncode && r.MaxVideoBitrateKbps <= 0 {
		return ErrReencodeBitrate
	}
	return nil
}

// ValidateExtraction checks what an audio extraction job needs. Video
// bitrate and re-encode settings do not apply.
func (r DownloadRequest) ValidateExtraction() error {
	if err := r.ValidateSource(); err != nil {
		return err
	}
	if strings.TrimSpace(r.OutputDir) == "" {
		return ErrNoOutputDir
	}
	return nil
}

// ValidateSource checks only the URL and authentication, which is all a
// format listing needs.
func (r DownloadRequest) ValidateSource() error {
	if !IsYouTubeURL(r.URL) {
		return ErrInvalidURL
	}
	return r.Auth.Validate()
}

// IsYouTubeURL reports whether raw parses as a URL on a youtu* host.
func IsYouTubeURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(u.Host), "youtu")
}
