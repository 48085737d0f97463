package download

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ytget/ytmedia/internal/model"
)

// ErrNoFormats is returned when a probe yields no usable format.
var ErrNoFormats = errors.New("no formats found")

// Format is one entry of the format list. Zero values mean "unknown".
type Format struct {
	ID         string  `json:"format_id"`
	Ext        string  `json:"ext"`
	Height     int     `json:"height"`
	FPS        float64 `json:"fps"`
	VideoCodec string  `json:"vcodec"`
	AudioCodec string  `json:"acodec"`
	ABR        float64 `json:"abr"`
	TBR        float64 `json:"tbr"`
}

// Row renders the format as one fixed-width line of the listing.
func (f Format) Row() string {
	return fmt.Sprintf("%6s | %4s | h=%4s | fps=%3s | v=%-12s | a=%-9s | abr=%4s | tbr=%5s",
		f.ID, f.Ext,
		intField(f.Height), floatField(f.FPS),
		truncate(f.VideoCodec, 12), truncate(f.AudioCodec, 9),
		floatField(f.ABR), floatField(f.TBR))
}

// Listing returns the log lines for a format list fetched with client.
func Listing(client model.ClientIdentity, formats []Format) []string {
	lines := make([]string, 0, len(formats)+2)
	lines = append(lines, fmt.Sprintf("Available formats (%s client):", client))
	for _, f := range formats {
		lines = append(lines, f.Row())
	}
	return append(lines, "-- end of list --")
}

// dumpInfo is the subset of the yt-dlp --dump-single-json document we read.
type dumpInfo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Formats []Format `json:"formats"`
}

// parseFormats decodes yt-dlp JSON output and drops entries without an ID.
func parseFormats(output string) ([]Format, error) {
	var info dumpInfo
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	formats := make([]Format, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f.ID == "" {
			continue
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, ErrNoFormats
	}
	return formats, nil
}

// YtdlpProber lists formats with yt-dlp --dump-single-json.
type YtdlpProber struct {
	Invoker *YtdlpInvoker
}

// NewYtdlpProber creates a prober sharing the invoker's executable.
func NewYtdlpProber(invoker *YtdlpInvoker) *YtdlpProber {
	return &YtdlpProber{Invoker: invoker}
}

// Probe implements Prober.
func (p *YtdlpProber) Probe(ctx context.Context, call ProbeCall) ([]Format, error) {
	dl := p.Invoker.command(call.Client, call.Auth).
		SkipDownload().
		DumpSingleJSON()

	res, err := dl.Run(ctx, call.URL)
	if err != nil {
		return nil, runError(res, err)
	}
	return parseFormats(res.Stdout)
}

func intField(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func floatField(v float64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
