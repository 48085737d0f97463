package download

import (
	"context"
	"errors"
	"testing"

	ytnative "github.com/ytget/ytdlp/v2"
)

func TestNativeFormat(t *testing.T) {
	tests := []struct {
		name     string
		in       ytnative.Format
		expected Format
	}{
		{
			name: "progressive",
			in:   ytnative.Format{Itag: 18, Quality: "360p", MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, Bitrate: 500000},
			expected: Format{ID: "18", Ext: "mp4", Height: 360, VideoCodec: "avc1.42001E", AudioCodec: "mp4a.40.2", TBR: 500},
		},
		{
			name: "adaptive video with fps",
			in:   ytnative.Format{Itag: 299, Quality: "1080p60", MimeType: `video/mp4; codecs="avc1.64002a"`, Bitrate: 6000000},
			expected: Format{ID: "299", Ext: "mp4", Height: 1080, FPS: 60, VideoCodec: "avc1.64002a", AudioCodec: "none", TBR: 6000},
		},
		{
			name: "audio",
			in:   ytnative.Format{Itag: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 130000},
			expected: Format{ID: "140", Ext: "m4a", VideoCodec: "none", AudioCodec: "mp4a.40.2", ABR: 130, TBR: 130},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := nativeFormat(test.in); got != test.expected {
				t.Errorf("nativeFormat() = %+v, expected %+v", got, test.expected)
			}
		})
	}
}

func TestNativeProber(t *testing.T) {
	p := &NativeProber{resolve: func(context.Context, string) (*ytnative.VideoInfo, error) {
		return &ytnative.VideoInfo{Formats: []ytnative.Format{{Itag: 0}, {Itag: 22, MimeType: "video/mp4"}}}, nil
	}}

	formats, err := p.Probe(context.Background(), ProbeCall{URL: "https://youtu.be/abc"})
	if err != nil {
		t.Fatalf("Probe returned %v", err)
	}
	if len(formats) != 1 || formats[0].ID != "22" {
		t.Errorf("unexpected formats %+v", formats)
	}

	p.resolve = func(context.Context, string) (*ytnative.VideoInfo, error) {
		return &ytnative.VideoInfo{}, nil
	}
	if _, err := p.Probe(context.Background(), ProbeCall{}); !errors.Is(err, ErrNoFormats) {
		t.Errorf("Expected ErrNoFormats, got %v", err)
	}
}
