package typeset

import (
	"github.com/gogpu/typeset/bidi"
	"github.com/gogpu/typeset/layout"
	"github.com/gogpu/typeset/shape"
)

// Options configures a paragraph layout.
type Options struct {
	// MaxAdvance is the line width limit. Zero or negative disables
	// soft wrapping; lines then break only at newlines.
	MaxAdvance float64

	// Alignment positions each line inside MaxAdvance.
	Alignment layout.Alignment

	// Direction is the paragraph base direction. DirectionAuto detects
	// it from the first strong character.
	Direction bidi.Direction

	// Style identifies the style span applied to the whole paragraph.
	// Callers driving the layout packages directly can vary styles per
	// run; Layout applies one.
	Style int

	// Metrics are the vertical metrics for the paragraph's single style.
	Metrics layout.Metrics

	// Measurer measures cluster advances. Nil selects a cell measurer
	// with a cell width of 1, so advances come out in terminal columns.
	Measurer shape.Measurer
}

// DefaultOptions returns options for an unwrapped, start-aligned,
// direction-detected paragraph measured in terminal cells.
func DefaultOptions() Options {
	return Options{
		Alignment: layout.AlignStart,
		Direction: bidi.DirectionAuto,
		Metrics:   layout.Metrics{Ascent: 1},
	}
}
