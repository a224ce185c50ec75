// Package bidi implements the Unicode Bidirectional Algorithm (UAX #9)
// resolution phase: it computes one embedding level per character of a
// paragraph, covering the explicit rules X1-X8 with a bounded directional
// status stack, isolating run sequences, the weak rules W1-W7, bracket
// pairing per N0, the neutral rules N1-N2 and the implicit rules I1-I2.
//
// Character classes come from the Unicode tables of
// golang.org/x/text/unicode/bidi; only the resolver itself is implemented
// here, because the layout pipeline needs the raw per-character levels,
// which x/text's paragraph API does not expose.
//
// The package also provides [Reorder], the rule L2 reversal used to turn a
// row of leveled items into visual order. Reordering whole paragraphs is
// intentionally absent: lines are reordered individually after line
// breaking, by the layout package.
//
// All operations are total. Pathological input nests beyond the 125-level
// or 63-bracket bounds simply stop affecting the outcome, as UAX #9
// specifies; nothing in this package returns an error.
package bidi
