package ui

import "strings"

// SparklineChars are the eight bar heights, lowest first.
var SparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline keeps the most recent samples in a ring and draws them as
// block characters. The browser feeds it per-keystroke search latencies.
type Sparkline struct {
	samples []float64
	head    int
	count   int
}

// NewSparkline creates a sparkline showing up to width samples.
func NewSparkline(width int) *Sparkline {
	if width <= 0 {
		width = 20
	}
	return &Sparkline{samples: make([]float64, width)}
}

// Add records a sample, evicting the oldest when full.
func (s *Sparkline) Add(value float64) {
	s.samples[s.head] = value
	s.head = (s.head + 1) % len(s.samples)
	s.count++
}

// Count returns the number of samples added.
func (s *Sparkline) Count() int {
	return s.count
}

// Values returns the retained samples, oldest first.
func (s *Sparkline) Values() []float64 {
	n := min(s.count, len(s.samples))
	out := make([]float64, 0, n)
	start := 0
	if s.count >= len(s.samples) {
		start = s.head
	}
	for i := range n {
		out = append(out, s.samples[(start+i)%len(s.samples)])
	}
	return out
}

// Render draws the retained samples scaled to the largest one.
func (s *Sparkline) Render() string {
	return Bars(s.Values())
}

// Clear drops all samples.
func (s *Sparkline) Clear() {
	clear(s.samples)
	s.head = 0
	s.count = 0
}

// Bars draws values as block characters scaled to the maximum. Empty
// input yields "".
func Bars(values []float64) string {
	maxV := 0.0
	for _, v := range values {
		maxV = max(maxV, v)
	}

	var sb strings.Builder
	sb.Grow(len(values) * 3)
	top := len(SparklineChars) - 1
	for _, v := range values {
		idx := 0
		if maxV > 0 && v > 0 {
			idx = min(max(int(v/maxV*float64(top)), 0), top)
		}
		sb.WriteRune(SparklineChars[idx])
	}
	return sb.String()
}
