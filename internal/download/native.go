package download

import (
	"context"
	"mime"
	"regexp"
	"strconv"
	"strings"
	"time"

	ytnative "github.com/ytget/ytdlp/v2"
)

// DefaultProbeTimeout bounds a native probe.
const DefaultProbeTimeout = 60 * time.Second

// NativeProber lists formats through the InnerTube API without yt-dlp. It
// runs anonymously, so it only serves as a last resort for public videos.
type NativeProber struct {
	Timeout time.Duration
	resolve func(ctx context.Context, url string) (*ytnative.VideoInfo, error)
}

// NewNativeProber creates a prober backed by github.com/ytget/ytdlp.
func NewNativeProber() *NativeProber {
	return &NativeProber{
		Timeout: DefaultProbeTimeout,
		resolve: func(ctx context.Context, url string) (*ytnative.VideoInfo, error) {
			_, info, err := ytnative.New().ResolveURL(ctx, url)
			return info, err
		},
	}
}

// Probe implements Prober. Client and auth are ignored.
func (p *NativeProber) Probe(ctx context.Context, call ProbeCall) ([]Format, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	info, err := p.resolve(ctx, call.URL)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, ErrNoFormats
	}

	formats := make([]Format, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f.Itag == 0 {
			continue
		}
		formats = append(formats, nativeFormat(f))
	}
	if len(formats) == 0 {
		return nil, ErrNoFormats
	}
	return formats, nil
}

var qualityLabel = regexp.MustCompile(`^(\d+)p(\d+)?`)

// nativeFormat maps an InnerTube format onto a listing row.
func nativeFormat(f ytnative.Format) Format {
	out := Format{ID: strconv.Itoa(f.Itag)}
	if f.Bitrate > 0 {
		out.TBR = float64(f.Bitrate) / 1000
	}

	if m := qualityLabel.FindStringSubmatch(f.Quality); m != nil {
		out.Height, _ = strconv.Atoi(m[1])
		if m[2] != "" {
			out.FPS, _ = strconv.ParseFloat(m[2], 64)
		}
	}

	mediaType, params, err := mime.ParseMediaType(f.MimeType)
	if err != nil {
		return out
	}
	kind, sub, _ := strings.Cut(mediaType, "/")
	out.Ext = sub
	if kind == "audio" && sub == "mp4" {
		out.Ext = "m4a"
	}

	codecs := strings.Split(params["codecs"], ",")
	for i := range codecs {
		codecs[i] = strings.TrimSpace(codecs[i])
	}
	switch {
	case kind == "audio":
		out.VideoCodec = "none"
		out.AudioCodec = codecs[0]
		out.ABR = out.TBR
	case len(codecs) > 1:
		out.VideoCodec = codecs[0]
		out.AudioCodec = codecs[1]
	default:
		out.VideoCodec = codecs[0]
		out.AudioCodec = "none"
	}
	return out
}
