// Package download drives yt-dlp (via github.com/lrstanley/go-ytdlp). It walks
// the attempt ladder of format selectors and client identities, translates
// progress into model events, and probes the list of available formats.
package download
