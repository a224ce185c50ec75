package shape

import (
	"unicode"

	"github.com/go-text/typesetting/segmenter"

	"github.com/gogpu/typeset/bidi"
	"github.com/gogpu/typeset/layout"
)

// Measurer measures the advance width of one grapheme cluster.
// Implementations must be deterministic; the layout engine assumes a
// cluster's advance never changes after it is pushed.
type Measurer interface {
	Measure(cluster []rune) float64
}

// MeasureFunc adapts a plain function to the Measurer interface.
type MeasureFunc func(cluster []rune) float64

// Measure implements the Measurer interface.
func (f MeasureFunc) Measure(cluster []rune) float64 { return f(cluster) }

// ClusterBuilder turns paragraph text plus resolved embedding levels into
// the clusters the layout store consumes. It segments the text into
// grapheme clusters and line-break opportunities with
// go-text/typesetting's segmenter, classifies whitespace, newlines and
// emoji, and measures advances through a Measurer.
//
// A ClusterBuilder reuses its internal buffers; the slices returned by
// Build are valid until the next call. The zero value is ready to use.
type ClusterBuilder struct {
	seg segmenter.Segmenter

	runes       []rune
	byteOffsets []int
	boundaries  []layout.Boundary

	clusters []layout.Cluster
	levels   []uint8
}

// Build segments text into clusters. levels holds one embedding level per
// rune, as produced by bidi.Resolve; a nil levels lays the paragraph out
// at level 0. The returned level slice carries one entry per cluster
// (the level of its first rune), parallel to the cluster slice.
func (b *ClusterBuilder) Build(text string, levels []uint8, m Measurer) ([]layout.Cluster, []uint8) {
	b.clusters = b.clusters[:0]
	b.levels = b.levels[:0]
	if text == "" {
		return b.clusters, b.levels
	}

	b.runes = b.runes[:0]
	for _, r := range text {
		b.runes = append(b.runes, r)
	}
	b.computeByteOffsets(text)
	b.computeBoundaries()

	b.seg.Init(b.runes)
	iter := b.seg.GraphemeIterator()
	for iter.Next() {
		g := iter.Grapheme()
		end := g.Offset + len(g.Text)

		c := layout.Cluster{
			Offset:     b.byteOffsets[g.Offset],
			Length:     b.byteOffsets[end] - b.byteOffsets[g.Offset],
			Runes:      len(g.Text),
			Advance:    m.Measure(g.Text),
			Boundary:   b.boundaries[end-1],
			Whitespace: classifyWhitespace(g.Text[0]),
			Class:      bidi.ClassifyRune(g.Text[0]),
			Newline:    isNewline(g.Text),
			Emoji:      IsEmojiCluster(g.Text),
		}

		level := uint8(0)
		if g.Offset < len(levels) {
			level = levels[g.Offset]
		}
		b.clusters = append(b.clusters, c)
		b.levels = append(b.levels, level)
	}
	return b.clusters, b.levels
}

// computeByteOffsets maps rune indices to byte offsets, with one extra
// entry holding len(text).
func (b *ClusterBuilder) computeByteOffsets(text string) {
	b.byteOffsets = b.byteOffsets[:0]
	for i := range text {
		b.byteOffsets = append(b.byteOffsets, i)
	}
	b.byteOffsets = append(b.byteOffsets, len(text))
}

// computeBoundaries records the line-break opportunity after each rune:
// the segmenter yields line segments, and the last rune of each segment
// carries the break.
func (b *ClusterBuilder) computeBoundaries() {
	if cap(b.boundaries) < len(b.runes) {
		b.boundaries = make([]layout.Boundary, len(b.runes))
	}
	b.boundaries = b.boundaries[:len(b.runes)]
	for i := range b.boundaries {
		b.boundaries[i] = layout.BoundaryNone
	}

	b.seg.Init(b.runes)
	iter := b.seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		end := line.Offset + len(line.Text) - 1
		if end < 0 || end >= len(b.boundaries) {
			continue
		}
		// The segmenter marks the end of text as a mandatory break
		// (rule LB3); the layout engine only treats explicit terminators
		// as mandatory, so the paragraph-final boundary is downgraded
		// unless a real terminator sits there.
		if line.IsMandatoryBreak && (end < len(b.runes)-1 || isNewline(b.runes[end:end+1])) {
			b.boundaries[end] = layout.BoundaryMandatory
		} else {
			b.boundaries[end] = layout.BoundaryOptional
		}
	}
}

// classifyWhitespace distinguishes space-like whitespace, which may hang
// past the line edge, from other whitespace.
func classifyWhitespace(r rune) layout.Whitespace {
	switch {
	case r == ' ' || r == '\t':
		return layout.WhitespaceSpace
	case unicode.IsSpace(r):
		return layout.WhitespaceOther
	default:
		return layout.WhitespaceNone
	}
}

// isNewline reports whether the cluster is an explicit line terminator.
func isNewline(cluster []rune) bool {
	switch cluster[0] {
	case '\n', '\r', '\u2028', '\u2029', '\u0085':
		return true
	default:
		return false
	}
}
