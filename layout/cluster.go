package layout

import (
	"github.com/gogpu/typeset/bidi"
)

// unknownStr is the string returned for unknown enum values.
const unknownStr = "Unknown"

// Boundary is the line-break opportunity recorded after a cluster.
type Boundary uint8

const (
	// BoundaryNone means no line break may occur after the cluster.
	BoundaryNone Boundary = iota
	// BoundaryOptional is a soft-wrap opportunity after the cluster.
	BoundaryOptional
	// BoundaryMandatory forces a line break after the cluster
	// (an explicit newline).
	BoundaryMandatory
)

// String returns the string representation of the boundary kind.
func (b Boundary) String() string {
	switch b {
	case BoundaryNone:
		return "None"
	case BoundaryOptional:
		return "Optional"
	case BoundaryMandatory:
		return "Mandatory"
	default:
		return unknownStr
	}
}

// Whitespace classifies the whitespace content of a cluster.
type Whitespace uint8

const (
	// WhitespaceNone marks a cluster with no whitespace.
	WhitespaceNone Whitespace = iota
	// WhitespaceSpace marks a space-like cluster (space, tab) that may
	// hang past the line edge when it overflows.
	WhitespaceSpace
	// WhitespaceOther marks other whitespace (newlines, separators).
	WhitespaceOther
)

// String returns the string representation of the whitespace kind.
func (w Whitespace) String() string {
	switch w {
	case WhitespaceNone:
		return "None"
	case WhitespaceSpace:
		return "Space"
	case WhitespaceOther:
		return "Other"
	default:
		return unknownStr
	}
}

// Cluster is the smallest addressable text unit: one grapheme cluster's
// worth of shaped glyphs. Clusters are immutable once pushed into a Store
// and are referenced only by index; their logical (source text) order is
// fixed at creation, while visual order is derived during finalize.
type Cluster struct {
	// Offset is the byte offset of the cluster in the source text.
	Offset int

	// Length is the byte length of the cluster.
	Length int

	// Runes is the number of codepoints in the cluster. Backspace removes
	// a non-emoji multi-codepoint cluster one codepoint at a time.
	Runes int

	// Advance is the horizontal advance width of the cluster.
	Advance float64

	// Boundary is the line-break opportunity after this cluster.
	Boundary Boundary

	// Whitespace classifies the cluster's whitespace content.
	Whitespace Whitespace

	// Class is the bidi class of the cluster's first character.
	Class bidi.Class

	// Continuation marks a cluster that carries glyphs continued from the
	// preceding cluster (interior of a ligature).
	Continuation bool

	// Newline marks a cluster holding an explicit line terminator.
	Newline bool

	// Emoji marks an emoji cluster, which erases atomically.
	Emoji bool
}

// Range is a half-open interval of indices into one of the Store's arrays.
type Range struct {
	Start, End int
}

// Len returns the number of indices covered by the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Metrics carries the vertical metrics of a styled run. The values are
// opaque to the layout engine; a styling collaborator derives them from
// font data.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the run.
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the run,
	// stored as a positive value.
	Descent float64

	// Leading is the extra space recommended between lines.
	Leading float64
}

// Height returns the total line height implied by the metrics.
func (m Metrics) Height() float64 { return m.Ascent + m.Descent + m.Leading }

// maxMetrics merges two metrics component-wise.
func maxMetrics(a, b Metrics) Metrics {
	if b.Ascent > a.Ascent {
		a.Ascent = b.Ascent
	}
	if b.Descent > a.Descent {
		a.Descent = b.Descent
	}
	if b.Leading > a.Leading {
		a.Leading = b.Leading
	}
	return a
}

// Run is a contiguous range of clusters sharing one embedding level and one
// style. Before line breaking a Run spans until its level or style changes;
// after breaking, the Store's line runs are clipped to their line, so the
// first and last run of a line may be fragments of a logical run.
type Run struct {
	// Clusters is the half-open cluster index range of the run.
	Clusters Range

	// Level is the bidi embedding level, in [0, 125].
	Level uint8

	// Style identifies the style span that produced the run.
	Style int

	// Metrics are the run's vertical metrics, supplied by the styling
	// collaborator.
	Metrics Metrics

	// Whitespace reports that every cluster of the run is whitespace.
	// Computed during finalize for line runs.
	Whitespace bool

	// TrailingWhitespace reports that the run ends in the line's trailing
	// hanging whitespace. Computed during finalize for line runs.
	TrailingWhitespace bool
}

// RTL reports whether the run is right-to-left (odd embedding level).
func (r Run) RTL() bool { return r.Level&1 == 1 }

// Alignment specifies where a line sits inside its requested max advance.
type Alignment uint8

const (
	// AlignStart aligns lines to the leading edge (default).
	AlignStart Alignment = iota
	// AlignMiddle centers lines.
	AlignMiddle
	// AlignEnd aligns lines to the trailing edge.
	AlignEnd
)

// String returns the string representation of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignMiddle:
		return "Middle"
	case AlignEnd:
		return "End"
	default:
		return unknownStr
	}
}

// Line is a width-constrained, aligned, vertically positioned row of runs.
type Line struct {
	// Runs is the range of this line's runs in the Store's line-run array.
	// After finalize the runs are in visual order.
	Runs Range

	// Clusters is the logical cluster range covered by the line. Lines
	// partition the paragraph: concatenating all lines' cluster ranges in
	// order reconstructs the full range.
	Clusters Range

	// Width is the total advance of the line's clusters, including any
	// hanging trailing whitespace.
	Width float64

	// MaxAdvance is the width constraint the line was broken under.
	MaxAdvance float64

	// Alignment is the requested alignment.
	Alignment Alignment

	// Metrics are the line's resolved vertical metrics.
	Metrics Metrics

	// Baseline is the line's baseline y position within the layout.
	Baseline float64

	// X is the horizontal shift applied by alignment.
	X float64

	// Explicit reports that the line ended at a mandatory break rather
	// than a soft wrap.
	Explicit bool

	// TrailingWhitespace reports that the line ends in whitespace.
	TrailingWhitespace bool

	// Hang is the number of trailing whitespace clusters excluded from
	// alignment, and HangAdvance their total advance.
	Hang        int
	HangAdvance float64
}

// Height returns the line's total height.
func (l *Line) Height() float64 { return l.Metrics.Height() }
