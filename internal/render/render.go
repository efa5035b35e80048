// Package render splits free text that embeds inline math, delimited by
// single dollar signs, into an ordered list of plain and math segments.
// Drawing the segments is left to the presentation layers.
package render

import (
	"regexp"
	"strings"
)

// Kind classifies a segment.
type Kind int

const (
	// Plain is ordinary text.
	Plain Kind = iota
	// Math is a formula body, without its delimiters.
	Math
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Math {
		return "math"
	}
	return "plain"
}

// MarshalText encodes the kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Segment is one piece of rendered text.
type Segment struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Display returns the segment as it is shown in a text surface: math is
// wrapped as a display-mode block, plain text is returned unchanged.
func (s Segment) Display() string {
	if s.Kind == Math {
		return "$$" + s.Text + "$$"
	}
	return s.Text
}

// mathPattern matches a non-empty dollar pair with no dollar inside.
var mathPattern = regexp.MustCompile(`\$([^$]+)\$`)

// Render splits text into segments in source order. Plain chunks between
// math spans are trimmed and dropped when blank. Text without any well
// formed pair comes back as a single plain segment, untouched. Stray
// dollar signs are kept as plain text.
func Render(text string) []Segment {
	if text == "" {
		return nil
	}

	spans := mathPattern.FindAllStringSubmatchIndex(text, -1)
	if len(spans) == 0 {
		return []Segment{{Kind: Plain, Text: text}}
	}

	segments := make([]Segment, 0, 2*len(spans)+1)
	prev := 0
	for _, span := range spans {
		segments = appendPlain(segments, text[prev:span[0]])
		segments = append(segments, Segment{Kind: Math, Text: text[span[2]:span[3]]})
		prev = span[1]
	}
	return appendPlain(segments, text[prev:])
}

func appendPlain(segments []Segment, chunk string) []Segment {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return segments
	}
	return append(segments, Segment{Kind: Plain, Text: chunk})
}

// HasMath reports whether any segment is math.
func HasMath(segments []Segment) bool {
	for _, s := range segments {
		if s.Kind == Math {
			return true
		}
	}
	return false
}

// Join concatenates the display form of segments with single spaces.
func Join(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Display()
	}
	return strings.Join(parts, " ")
}
