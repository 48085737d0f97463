package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"  https://m.youtube.com/watch?v=abc  ", true},
		{"https://vimeo.com/123", false},
		{"youtube.com/watch?v=abc", false},
		{"", false},
		{"://bad", false},
	}

	for _, test := range tests {
		if got := IsYouTubeURL(test.url); got != test.expected {
			t.Errorf("IsYouTubeURL(%q) = %v, expected %v", test.url, got, test.expected)
		}
	}
}

func TestDownloadRequest_Validate(t *testing.T) {
	base := DownloadRequest{
		URL:       "https://www.youtube.com/watch?v=abc",
		OutputDir: t.TempDir(),
		Quality:   QualityBest,
	}

	tests := []struct {
		name   string
		mutate func(*DownloadRequest)
		want   error
	}{
		{"valid", func(*DownloadRequest) {}, nil},
		{"bad url", func(r *DownloadRequest) { r.URL = "https://example.com/x" }, ErrInvalidURL},
		{"no dir", func(r *DownloadRequest) { r.OutputDir = " " }, ErrNoOutputDir},
		{"reencode zero", func(r *DownloadRequest) { r.ReEncode = true }, ErrReencodeBitrate},
		{"negative vbr", func(r *DownloadRequest) { r.MaxVideoBitrateKbps = -1 }, ErrBitrateRange},
		{"vbr too high", func(r *DownloadRequest) { r.MaxVideoBitrateKbps = MaxVideoBitrateKbps + 1 }, ErrBitrateRange},
		{"reencode ok", func(r *DownloadRequest) { r.ReEncode = true; r.MaxVideoBitrateKbps = 4000 }, nil},
		{"missing cookies", func(r *DownloadRequest) {
			r.Auth = AuthOptions{Mode: AuthCookies, CookiesFile: "/definitely/missing/cookies.txt"}
		}, ErrCookiesFile},
		{"unknown browser", func(r *DownloadRequest) {
			r.Auth = AuthOptions{Mode: AuthBrowser, Browser: "netscape"}
		}, ErrUnknownBrowser},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := base
			test.mutate(&req)
			err := req.Validate()
			if test.want == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, test.want) {
				t.Fatalf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestDownloadRequest_ValidateReencodeIsIdempotent(t *testing.T) {
	req := DownloadRequest{
		URL:       "https://youtu.be/abc",
		OutputDir: t.TempDir(),
		Quality:   Quality1080,
		ReEncode:  true,
	}

	first := req.Validate()
	second := req.Validate()
	if !errors.Is(first, ErrReencodeBitrate) || !errors.Is(second, ErrReencodeBitrate) {
		t.Fatalf("expected ErrReencodeBitrate twice, got %v and %v", first, second)
	}
}

func TestDownloadRequest_ValidateSourceSkipsOutputDir(t *testing.T) {
	req := DownloadRequest{URL: "https://youtu.be/abc"}
	if err := req.ValidateSource(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthOptions_CookiesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte("# Netscape HTTP Cookie File\n"), 0o600); err != nil {
		t.Fatalf("write cookies: %v", err)
	}

	auth := AuthOptions{Mode: AuthCookies, CookiesFile: path}
	if err := auth.Validate(); err != nil {
		t.Fatalf("expected valid cookies file, got %v", err)
	}

	auth.CookiesFile = filepath.Dir(path)
	if err := auth.Validate(); !errors.Is(err, ErrCookiesFile) {
		t.Fatalf("expected ErrCookiesFile for a directory, got %v", err)
	}
}

func TestAuthOptions_BrowserSpec(t *testing.T) {
	auth := AuthOptions{Mode: AuthBrowser, Browser: "firefox"}
	if got := auth.BrowserSpec(); got != "firefox" {
		t.Errorf("BrowserSpec() = %q, expected %q", got, "firefox")
	}

	auth.ProfilePath = " /home/me/.mozilla/firefox/abc.default "
	if got := auth.BrowserSpec(); got != "firefox:/home/me/.mozilla/firefox/abc.default" {
		t.Errorf("BrowserSpec() = %q", got)
	}
}

func TestQuality_TargetHeight(t *testing.T) {
	tests := []struct {
		quality Quality
		height  int
		ok      bool
	}{
		{QualityBest, 0, false},
		{QualityProgressive720, 0, false},
		{Quality1080, 1080, true},
		{Quality1440, 1440, true},
		{Quality2160, 2160, true},
	}

	for _, test := range tests {
		h, ok := test.quality.TargetHeight()
		if h != test.height || ok != test.ok {
			t.Errorf("%s.TargetHeight() = (%d, %v), expected (%d, %v)", test.quality, h, ok, test.height, test.ok)
		}
	}

	if Quality("480p").Valid() {
		t.Error("480p should not be a valid quality")
	}
}

func TestAudioBitrate_LabelRoundTrip(t *testing.T) {
	for _, a := range AudioBitrateOptions() {
		if got := ParseAudioBitrate(a.Label()); got != a {
			t.Errorf("ParseAudioBitrate(%q) = %d, expected %d", a.Label(), got, a)
		}
	}

	if got := ParseAudioBitrate("garbage"); got != AudioBitrateAuto {
		t.Errorf("unknown label should map to Auto, got %d", got)
	}
}

func TestClients(t *testing.T) {
	if got := Clients(false); len(got) != 1 || got[0] != ClientDefault {
		t.Errorf("Clients(false) = %v", got)
	}
	got := Clients(true)
	if len(got) != 2 || got[0] != ClientDefault || got[1] != ClientAlternate {
		t.Errorf("Clients(true) = %v", got)
	}
	if ClientDefault.ExtractorArgs() != "" {
		t.Error("default client must not set extractor args")
	}
	if ClientAlternate.ExtractorArgs() != "youtube:player_client=android" {
		t.Errorf("unexpected alternate extractor args %q", ClientAlternate.ExtractorArgs())
	}
}

func TestDownloadRequest_ValidateExtractionIgnoresVideoSettings(t *testing.T) {
	req := DownloadRequest{URL: "https://youtu.be/abc", OutputDir: "/tmp", ReEncode: true}
	if err := req.ValidateExtraction(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	req.OutputDir = ""
	if err := req.ValidateExtraction(); !errors.Is(err, ErrNoOutputDir) {
		t.Errorf("Expected ErrNoOutputDir, got %v", err)
	}
}
