package download

import (
	"errors"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/ytmedia/internal/model"
)

func TestTranslateProgress(t *testing.T) {
	now := time.Now()

	ev := translateProgress(&ytdlp.ProgressUpdate{
		Status:          ytdlp.ProgressStatusDownloading,
		TotalBytes:      1000,
		DownloadedBytes: 250,
		Started:         now.Add(-5 * time.Second),
	}, now)
	d, ok := ev.(model.Downloading)
	if !ok {
		t.Fatalf("Expected Downloading, got %T", ev)
	}
	if !d.TotalKnown || d.Fraction != 0.25 || d.Percent() != 25 {
		t.Errorf("unexpected fraction %+v", d)
	}
	if d.Speed != 50 {
		t.Errorf("Expected 50 B/s, got %v", d.Speed)
	}

	ev = translateProgress(&ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusDownloading, DownloadedBytes: 10}, now)
	if d := ev.(model.Downloading); d.TotalKnown || d.Percent() != -1 {
		t.Errorf("Expected unknown total, got %+v", d)
	}

	if _, ok := translateProgress(&ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusFinished}, now).(model.Finished); !ok {
		t.Error("Expected Finished event")
	}
	if _, ok := translateProgress(&ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusError}, now).(model.Errored); !ok {
		t.Error("Expected Errored event")
	}
	if ev := translateProgress(&ytdlp.ProgressUpdate{Status: ytdlp.ProgressStatusPostProcessing}, now); ev != nil {
		t.Errorf("Expected nil event, got %#v", ev)
	}
}

func TestLastErrorLine(t *testing.T) {
	stderr := "WARNING: something\nERROR: [youtube] abc: Sign in to confirm your age\n"
	if got := lastErrorLine(stderr); got != "[youtube] abc: Sign in to confirm your age" {
		t.Errorf("unexpected message %q", got)
	}
	if got := lastErrorLine("all good"); got != "" {
		t.Errorf("Expected empty message, got %q", got)
	}
}

func TestRunError(t *testing.T) {
	base := errors.New("exit status 1")
	if err := runError(nil, base); err != base {
		t.Errorf("Expected base error, got %v", err)
	}
	err := runError(&ytdlp.Result{Stderr: "ERROR: Requested format is not available"}, base)
	if err.Error() != "Requested format is not available" {
		t.Errorf("unexpected error %v", err)
	}
}
