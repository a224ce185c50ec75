// Package shape prepares input for the layout engine: it segments
// paragraph text into grapheme clusters with line-break opportunities,
// classifies whitespace, newlines and emoji, and measures advances.
//
// Two measurement paths are provided. CellMeasurer assigns terminal-cell
// advances via go-runewidth, which is the natural input for a monospace
// terminal surface. ClustersFromShaping converts shaped output from
// go-text/typesetting for proportional text. Neither path does glyph
// shaping or font matching itself; advances are either grid-derived or
// taken from an external shaper.
package shape
