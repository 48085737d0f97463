package transcode

// Package transcode describes what happens to the downloaded streams after
// the transfer: a container remux, an H.264 re-encode at a target bitrate, or
// audio extraction. The downloader hands these directives to ffmpeg through
// its post-processors; this package only builds them.
