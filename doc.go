// Package typeset lays out paragraphs of styled text.
//
// The package ties together bidirectional resolution, cluster
// segmentation, width-constrained line breaking, and caret/selection
// navigation. The typical flow is a single call:
//
//	var store layout.Store
//	typeset.Layout(&store, "hello world", typeset.DefaultOptions())
//
// which resolves embedding levels per UAX #9, segments the text into
// grapheme clusters with line-break boundaries, measures each cluster,
// breaks lines against the configured advance limit, and finalizes the
// store so visual ordering, caret navigation, and selection geometry
// are available.
//
// Callers that need incremental control (shaped glyph input, resumable
// breaking, style runs) use the bidi, shape, and layout packages
// directly; Layout is a convenience over the same pipeline.
package typeset
