// Package selector builds yt-dlp format selector expressions from the user's
// quality choices.
//
// Expressions are composed from small terms (a stream class with predicates,
// a video+audio merge, an alternative chain) and only turned into strings at
// the very end, so each construction rule can be tested on its own.
package selector

import (
	"strconv"
	"strings"
)

// Expression is a format selector in the downloader's grammar. It is built
// here and never parsed.
type Expression string

func (e Expression) String() string {
	return string(e)
}

// Class is a stream class keyword of the selector grammar.
type Class string

const (
	// BestVideo is the best video-only (or video-bearing) stream, short form
	BestVideo Class = "bv*"
	// BestVideoLong is the long spelling of BestVideo
	BestVideoLong Class = "bestvideo*"
	// BestAudio is the best audio-only stream
	BestAudio Class = "ba"
	// Best is the best single combined stream, short form
	Best Class = "b"
	// BestLong is the long spelling of Best
	BestLong Class = "best"
)

// Comparison operators
const (
	OpEq  = "="
	OpLe  = "<="
	OpGe  = ">="
)

// Stream fields
const (
	FieldHeight       = "height"
	FieldExt          = "ext"
	FieldTotalBitrate = "tbr"
	FieldAudioBitrate = "abr"
)

// Predicate constrains a stream class, e.g. [height<=720].
type Predicate struct {
	Field string
	Op    string
	Value string
}

func (p Predicate) String() string {
	return "[" + p.Field + p.Op + p.Value + "]"
}

// Height constrains the video height.
func Height(op string, h int) Predicate {
	return Predicate{Field: FieldHeight, Op: op, Value: strconv.Itoa(h)}
}

// Ext constrains the container extension.
func Ext(ext string) Predicate {
	return Predicate{Field: FieldExt, Op: OpEq, Value: ext}
}

// MaxTotalBitrate caps the total bitrate in kbps.
func MaxTotalBitrate(kbps int) Predicate {
	return Predicate{Field: FieldTotalBitrate, Op: OpLe, Value: strconv.Itoa(kbps)}
}

// MinAudioBitrate requires at least kbps of audio bitrate.
func MinAudioBitrate(kbps int) Predicate {
	return Predicate{Field: FieldAudioBitrate, Op: OpGe, Value: strconv.Itoa(kbps)}
}

// Term is one alternative of a chain.
type Term interface {
	String() string
	merge() bool
}

// Stream is a stream class narrowed by predicates.
type Stream struct {
	Class      Class
	Predicates []Predicate
}

// NewStream returns a stream of class c with the given predicates.
func NewStream(c Class, preds ...Predicate) Stream {
	return Stream{Class: c}.With(preds...)
}

// With returns a copy of s with preds appended.
func (s Stream) With(preds ...Predicate) Stream {
	out := Stream{Class: s.Class, Predicates: make([]Predicate, 0, len(s.Predicates)+len(preds))}
	out.Predicates = append(out.Predicates, s.Predicates...)
	out.Predicates = append(out.Predicates, preds...)
	return out
}

func (s Stream) String() string {
	var b strings.Builder
	b.WriteString(string(s.Class))
	for _, p := range s.Predicates {
		b.WriteString(p.String())
	}
	return b.String()
}

func (Stream) merge() bool { return false }

// Merge downloads a video and an audio stream and muxes them.
type Merge struct {
	Video Stream
	Audio Stream
}

func (m Merge) String() string {
	return m.Video.String() + "+" + m.Audio.String()
}

func (Merge) merge() bool { return true }

// Chain is a list of alternatives evaluated left to right; the first that
// matches wins.
type Chain []Term

// String renders the chain. Merge terms are parenthesised when the chain
// holds more than one of them.
func (c Chain) String() string {
	merges := 0
	for _, t := range c {
		if t.merge() {
			merges++
		}
	}
	parts := make([]string, 0, len(c))
	for _, t := range c {
		s := t.String()
		if merges > 1 && t.merge() {
			s = "(" + s + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/")
}

// Expression renders the chain as a selector.
func (c Chain) Expression() Expression {
	return Expression(c.String())
}
