package selector

import (
	"fmt"

	"github.com/ytget/ytmedia/internal/model"
	"github.com/ytget/ytmedia/internal/transcode"
)

// Set is the builder's result: selectors in attempt order plus the render
// directive shared by every attempt.
type Set struct {
	Selectors []Expression
	Render    transcode.Options
}

// Strings returns the selectors as plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s.Selectors))
	for i, e := range s.Selectors {
		out[i] = string(e)
	}
	return out
}

// Build turns the request's quality choices into selectors and render
// options. URL, output directory and auth are ignored.
func Build(req model.DownloadRequest) (Set, error) {
	render, err := renderOptions(req)
	if err != nil {
		return Set{}, err
	}

	audio := req.AudioBitrate
	vf := videoFilter(req.MaxVideoBitrateKbps)

	var chains []Chain
	switch {
	case req.Quality == model.QualityBest || req.Quality == "":
		chains = append(chains, bestChain(audio, vf))
	case req.Quality == model.QualityProgressive720:
		chains = append(chains, progressiveChain(model.ProgressiveMaxHeight, vf))
	default:
		h, ok := req.Quality.TargetHeight()
		if !ok {
			return Set{}, fmt.Errorf("%w: %q", model.ErrUnknownQuality, req.Quality)
		}
		chains = append(chains, heightChains(h, audio, vf)...)
	}

	set := Set{Render: render, Selectors: make([]Expression, 0, len(chains))}
	for _, c := range chains {
		set.Selectors = append(set.Selectors, c.Expression())
	}
	return set, nil
}

// BuildAudio returns the audio-only selector and the extraction directive
// for codec (mp3 or wav).
func BuildAudio(req model.DownloadRequest, codec string) Set {
	preferred := audioStream(req.AudioBitrate)
	chain := Chain{preferred}
	if req.AudioBitrate > model.AudioBitrateAuto {
		chain = append(chain, NewStream(BestAudio))
	}
	return Set{
		Selectors: []Expression{chain.Expression()},
		Render:    transcode.ExtractAudio(codec, AudioQuality(req.AudioBitrate, codec)),
	}
}

// AudioQuality maps the audio preference to the extractor's quality value:
// "0" (best VBR) for Auto and for WAV, otherwise an explicit bitrate like "128K".
func AudioQuality(a model.AudioBitrate, codec string) string {
	if codec == transcode.AudioWAV || a <= model.AudioBitrateAuto {
		return transcode.BestAudioQuality
	}
	return fmt.Sprintf("%dK", int(a))
}

func renderOptions(req model.DownloadRequest) (transcode.Options, error) {
	if !req.ReEncode {
		return transcode.Remux(transcode.ContainerMP4), nil
	}
	if req.MaxVideoBitrateKbps <= 0 {
		return transcode.Options{}, model.ErrReencodeBitrate
	}
	return transcode.Reencode(req.MaxVideoBitrateKbps)
}

// videoFilter returns the total bitrate cap, or nothing for Auto.
func videoFilter(kbps int) []Predicate {
	if kbps <= 0 {
		return nil
	}
	return []Predicate{MaxTotalBitrate(kbps)}
}

func audioStream(a model.AudioBitrate) Stream {
	if a <= model.AudioBitrateAuto {
		return NewStream(BestAudio)
	}
	return NewStream(BestAudio, MinAudioBitrate(int(a)))
}

// mergeChain prefers video+preferred audio, then video+any audio, then the
// combined fallback.
func mergeChain(video Stream, audio model.AudioBitrate, combined Stream) Chain {
	if audio <= model.AudioBitrateAuto {
		return Chain{Merge{Video: video, Audio: NewStream(BestAudio)}, combined}
	}
	return Chain{
		Merge{Video: video, Audio: audioStream(audio)},
		Merge{Video: video, Audio: NewStream(BestAudio)},
		combined,
	}
}

func bestChain(audio model.AudioBitrate, vf []Predicate) Chain {
	return mergeChain(NewStream(BestVideoLong, vf...), audio, NewStream(BestLong, vf...))
}

func progressiveChain(maxHeight int, vf []Predicate) Chain {
	capped := NewStream(BestLong, Height(OpLe, maxHeight))
	return Chain{
		capped.With(Ext(transcode.ContainerMP4)).With(vf...),
		capped.With(vf...),
	}
}

// heightChains returns the exact-height chain followed by the at-most chain.
func heightChains(h int, audio model.AudioBitrate, vf []Predicate) []Chain {
	chains := make([]Chain, 0, 2)
	for _, op := range []string{OpEq, OpLe} {
		video := NewStream(BestVideo, Height(op, h)).With(vf...)
		combined := NewStream(Best, Height(op, h)).With(vf...)
		chains = append(chains, mergeChain(video, audio, combined))
	}
	return chains
}
