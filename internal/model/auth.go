package model

import (
	"fmt"
	"os"
	"strings"
)

// AuthMode selects how the downloader authenticates.
type AuthMode string

const (
	AuthNone    AuthMode = "none"
	AuthCookies AuthMode = "cookies"
	AuthBrowser AuthMode = "browser"
)

// Browsers lists the browsers whose profiles yt-dlp can read cookies from.
var Browsers = []string{"chrome", "edge", "opera", "brave", "vivaldi", "chromium", "firefox"}

// AuthOptions holds the active authentication variant. Only the fields of
// Mode are consulted.
type AuthOptions struct {
	Mode        AuthMode
	CookiesFile string // Netscape cookies.txt
	Browser     string
	ProfilePath string // optional profile directory
}

// Validate checks the active variant. A cookies file must exist now.
func (a AuthOptions) Validate() error {
	switch a.Mode {
	case AuthNone, "":
		return nil
	case AuthCookies:
		if strings.TrimSpace(a.CookiesFile) == "" {
			return ErrCookiesFile
		}
		info, err := os.Stat(a.CookiesFile)
		if err != nil || info.IsDir() {
			return ErrCookiesFile
		}
		return nil
	case AuthBrowser:
		for _, b := range Browsers {
			if b == a.Browser {
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrUnknownBrowser, a.Browser)
	default:
		return fmt.Errorf("unknown auth mode: %s", a.Mode)
	}
}

// BrowserSpec returns the yt-dlp cookies-from-browser value, BROWSER[:PROFILE].
func (a AuthOptions) BrowserSpec() string {
	profile := strings.TrimSpace(a.ProfilePath)
	if profile == "" {
		return a.Browser
	}
	return a.Browser + ":" + profile
}

// ClientIdentity names the client the platform is told it is talking to.
type ClientIdentity string

const (
	ClientDefault   ClientIdentity = "normal"
	ClientAlternate ClientIdentity = "android"
)

// ExtractorArgs returns the yt-dlp extractor arguments selecting this
// identity, or "" for the default client.
func (c ClientIdentity) ExtractorArgs() string {
	if c == ClientAlternate {
		return "youtube:player_client=android"
	}
	return ""
}

// Clients returns the identities to walk, default first.
func Clients(tryAlternate bool) []ClientIdentity {
	if tryAlternate {
		return []ClientIdentity{ClientDefault, ClientAlternate}
	}
	return []ClientIdentity{ClientDefault}
}
