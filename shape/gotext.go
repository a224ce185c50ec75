package shape

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/typeset/bidi"
	"github.com/gogpu/typeset/layout"
)

// ClustersFromShaping converts one shaped run produced by
// go-text/typesetting into layout clusters, for callers that drive a real
// shaper instead of the monospace cell path. Glyphs sharing a text cluster
// collapse into a single layout cluster whose advance is the sum of the
// glyph advances; this means a ligature contributes one caret stop rather
// than one per swallowed character.
//
// The shaper emits glyphs in visual order, so a right-to-left run arrives
// with decreasing cluster indices. The returned clusters are always in
// logical order regardless of the run's direction.
//
// text must be the exact string the run was shaped from, so that byte
// offsets line up.
func ClustersFromShaping(text string, out shaping.Output) []layout.Cluster {
	if len(out.Glyphs) == 0 {
		return nil
	}

	runes := []rune(text)
	byteOffsets := make([]int, 0, len(runes)+1)
	for i := range text {
		byteOffsets = append(byteOffsets, i)
	}
	byteOffsets = append(byteOffsets, len(text))

	var b ClusterBuilder
	b.runes = append(b.runes, runes...)
	b.computeBoundaries()

	rtl := out.Direction == di.DirectionRTL

	clusters := make([]layout.Cluster, 0, len(out.Glyphs))
	i := 0
	prevStart := len(runes)
	for i < len(out.Glyphs) {
		start := out.Glyphs[i].TextIndex()
		var advance fixed.Int26_6
		j := i
		for j < len(out.Glyphs) && out.Glyphs[j].TextIndex() == start {
			advance += out.Glyphs[j].Advance
			j++
		}
		// In visual order the next group's start bounds this cluster on
		// the right for LTR; for RTL the bound is the previous group's
		// start, since earlier groups sit later in the text.
		end := len(runes)
		if rtl {
			end = prevStart
		} else if j < len(out.Glyphs) {
			end = out.Glyphs[j].TextIndex()
		}
		prevStart = start
		if start >= len(runes) || end <= start {
			i = j
			continue
		}

		cluster := runes[start:end]
		clusters = append(clusters, layout.Cluster{
			Offset:     byteOffsets[start],
			Length:     byteOffsets[end] - byteOffsets[start],
			Runes:      end - start,
			Advance:    fixedToFloat(advance),
			Boundary:   b.boundaries[end-1],
			Whitespace: classifyWhitespace(cluster[0]),
			Class:      bidi.ClassifyRune(cluster[0]),
			Newline:    isNewline(cluster),
			Emoji:      IsEmojiCluster(cluster),
		})
		i = j
	}

	if rtl {
		for l, r := 0, len(clusters)-1; l < r; l, r = l+1, r-1 {
			clusters[l], clusters[r] = clusters[r], clusters[l]
		}
	}
	return clusters
}

// fixedToFloat converts a fixed.Int26_6 value to float64. The fixed-point
// representation uses 6 fractional bits.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
