package layout

import "math"

// minRegionWidth is the fallback width of a selection rectangle whose
// measured width rounds to zero, such as a selection reaching into
// end-of-line trailing space.
const minRegionWidth = 8.0

// Selection is an anchor and focus caret over a finalized Store, plus the
// sticky horizontal coordinate carried across consecutive vertical moves.
//
// Selections have immutable value semantics: every mutating operation
// returns a new Selection, the old one stays valid. Any text edit
// invalidates all Selections derived from the previous layout.
type Selection struct {
	Anchor Node
	Focus  Node

	moveX  float64
	sticky bool
}

// SelectionFromPoint returns a collapsed selection at the caret nearest to
// the given point. Queries against an empty layout return the zero
// Selection.
func SelectionFromPoint(s *Store, x, y float64) Selection {
	n := nodeFromPoint(s, x, y)
	return Selection{Anchor: n, Focus: n}
}

// SelectionFromPointDirect is SelectionFromPoint without midpoint
// snapping: the caret always lands on the leading edge of the containing
// cluster. Word and line expansion use it as a stable anchor.
func SelectionFromPointDirect(s *Store, x, y float64) Selection {
	n := nodeFromPointDirect(s, x, y)
	return Selection{Anchor: n, Focus: n}
}

// SelectionFromOffset returns a collapsed selection at the caret for a
// source byte offset.
func SelectionFromOffset(s *Store, offset int) Selection {
	n := nodeFromOffset(s, offset)
	return Selection{Anchor: n, Focus: n}
}

// WordFromPoint returns a selection spanning the word under the point,
// expanded left and right to the nearest word boundaries within the line.
func WordFromPoint(s *Store, x, y float64) Selection {
	n := nodeFromPointDirect(s, x, y)
	if len(s.Clusters) == 0 {
		return Selection{}
	}
	start, end := wordBounds(s, n)
	return Selection{
		Anchor: nodeFromLogical(s, start, false),
		Focus:  nodeFromLogical(s, end, true),
	}
}

// LineFromPoint returns a selection spanning the whole line under the
// point.
func LineFromPoint(s *Store, x, y float64) Selection {
	line, ok := lineForY(s, y)
	if !ok || s.Lines[line].Clusters.Len() == 0 {
		return Selection{}
	}
	r := s.Lines[line].Clusters
	return Selection{
		Anchor: nodeFromLogical(s, firstLogical(s, r), false),
		Focus:  nodeFromLogical(s, lastLogical(s, r), true),
	}
}

// wordBounds expands from the node's logical cluster to the nearest
// word-boundary flags, clamped to the node's line. It returns the first
// and last logical cluster of the word.
func wordBounds(s *Store, n Node) (start, end int) {
	line := s.Lines[n.Line].Clusters
	cl := s.visual[clampSlot(s, n.Cluster)]

	start = cl
	for start > line.Start && s.Clusters[start-1].Boundary == BoundaryNone {
		start--
	}
	end = cl
	for end < line.End-1 && s.Clusters[end].Boundary == BoundaryNone {
		end++
	}
	return start, end
}

// firstLogical and lastLogical return the lowest and highest logical
// cluster indices of a line range. Lines cover contiguous logical ranges,
// so these are simply the range ends.
func firstLogical(_ *Store, r Range) int { return r.Start }
func lastLogical(_ *Store, r Range) int  { return r.End - 1 }

// IsCollapsed reports whether anchor and focus address the same byte
// offset.
func (sel Selection) IsCollapsed(s *Store) bool {
	return sel.Anchor.byteOffset(s) == sel.Focus.byteOffset(s)
}

// Offset returns the byte offset addressed by the focus caret.
func (sel Selection) Offset(s *Store) int { return sel.Focus.byteOffset(s) }

// AnchorOffset returns the byte offset addressed by the anchor caret.
func (sel Selection) AnchorOffset(s *Store) int { return sel.Anchor.byteOffset(s) }

// Range returns the selection's byte range in anchor→focus order; the
// bounds are reversed when the selection was dragged backwards.
func (sel Selection) Range(s *Store) (start, end int) {
	return sel.Anchor.byteOffset(s), sel.Focus.byteOffset(s)
}

// NormalizedRange returns the selection's byte range with start ≤ end.
func (sel Selection) NormalizedRange(s *Store) (start, end int) {
	start, end = sel.Range(s)
	if start > end {
		start, end = end, start
	}
	return start, end
}

// MoveState returns the sticky horizontal coordinate preserved across
// consecutive vertical moves, if one is active.
func (sel Selection) MoveState() (x float64, ok bool) {
	return sel.moveX, sel.sticky
}

// Extend returns a selection with the focus replaced. The anchor's edge
// polarity is normalized so that it references a selected cluster whether
// the drag runs forward or backward, which lets the geometry queries
// ignore drag direction.
func (sel Selection) Extend(s *Store, focus Node) Selection {
	out := Selection{Anchor: sel.Anchor, Focus: focus}
	if sel.Anchor.position() <= focus.position() {
		if out.Anchor.After {
			out.Anchor = nodeAtPosition(s, out.Anchor.position(), false)
		}
	} else {
		if !out.Anchor.After {
			out.Anchor = nodeAtPosition(s, out.Anchor.position(), true)
		}
	}
	return out
}

// ExtendWord grows the selection by whole words: the anchor's word bounds
// are recomputed from the original anchor, joined with the word under the
// new point, and the selection spans the outermost extremes.
func (sel Selection) ExtendWord(s *Store, x, y float64) Selection {
	if len(s.Clusters) == 0 {
		return sel
	}
	aStart, aEnd := wordBounds(s, sel.Anchor)
	n := nodeFromPointDirect(s, x, y)
	nStart, nEnd := wordBounds(s, n)
	return spanOutermost(s, aStart, aEnd, nStart, nEnd)
}

// ExtendFull grows the selection by whole lines, in the manner of
// ExtendWord.
func (sel Selection) ExtendFull(s *Store, x, y float64) Selection {
	if len(s.Clusters) == 0 {
		return sel
	}
	aLine := s.Lines[sel.Anchor.Line].Clusters
	line, ok := lineForY(s, y)
	if !ok {
		return sel
	}
	nLine := s.Lines[line].Clusters
	return spanOutermost(s, aLine.Start, aLine.End-1, nLine.Start, nLine.End-1)
}

// spanOutermost builds a selection covering both cluster ranges, with the
// focus on the side of the newer one.
func spanOutermost(s *Store, aStart, aEnd, nStart, nEnd int) Selection {
	start := aStart
	if nStart < start {
		start = nStart
	}
	end := aEnd
	if nEnd > end {
		end = nEnd
	}
	if nStart < aStart {
		// Dragging backwards: focus on the leading side.
		return Selection{
			Anchor: nodeFromLogical(s, end, true),
			Focus:  nodeFromLogical(s, start, false),
		}
	}
	return Selection{
		Anchor: nodeFromLogical(s, start, false),
		Focus:  nodeFromLogical(s, end, true),
	}
}

// Next moves the caret one visual cluster forward. When the selection is
// non-empty and extend is false it collapses to its trailing edge instead
// of moving. A line's trailing hanging whitespace is skipped as a single
// unit, so arrow navigation lands just past the wrap point.
func (sel Selection) Next(s *Store, extend bool) Selection {
	if len(s.Clusters) == 0 {
		return sel
	}
	if !extend && !sel.IsCollapsed(s) {
		p := sel.Anchor.position()
		if f := sel.Focus.position(); f > p {
			p = f
		}
		n := nodeAtPosition(s, p, true)
		return Selection{Anchor: n, Focus: n}
	}

	p := sel.Focus.position() + 1
	line := &s.Lines[sel.Focus.Line]
	if line.Hang > 0 && sel.Focus.Line < len(s.Lines)-1 {
		hangPos := line.Clusters.End - line.Hang
		if p > hangPos && p <= line.Clusters.End {
			p = line.Clusters.End
		}
	}
	n := nodeAtPosition(s, p, false)
	return sel.moveFocus(s, n, extend)
}

// Previous moves the caret one visual cluster backward; the counterpart of
// Next.
func (sel Selection) Previous(s *Store, extend bool) Selection {
	if len(s.Clusters) == 0 {
		return sel
	}
	if !extend && !sel.IsCollapsed(s) {
		p := sel.Anchor.position()
		if f := sel.Focus.position(); f < p {
			p = f
		}
		n := nodeAtPosition(s, p, false)
		return Selection{Anchor: n, Focus: n}
	}

	p := sel.Focus.position() - 1
	if sel.Focus.Line > 0 {
		prev := &s.Lines[sel.Focus.Line-1]
		if prev.Hang > 0 {
			hangPos := prev.Clusters.End - prev.Hang
			if p > hangPos && p < prev.Clusters.End {
				p = hangPos
			}
		}
	}
	n := nodeAtPosition(s, p, true)
	return sel.moveFocus(s, n, extend)
}

// NextLine moves the caret to the line below, keeping the sticky
// horizontal coordinate across consecutive vertical moves so the caret
// tracks a target column through lines of different width.
func (sel Selection) NextLine(s *Store, extend bool) Selection {
	return sel.verticalMove(s, 1, extend)
}

// PreviousLine moves the caret to the line above; see NextLine.
func (sel Selection) PreviousLine(s *Store, extend bool) Selection {
	return sel.verticalMove(s, -1, extend)
}

// verticalMove steps the focus dir lines up or down, reusing or starting
// the sticky coordinate. Moves beyond the first or last line do nothing.
func (sel Selection) verticalMove(s *Store, dir int, extend bool) Selection {
	if len(s.Lines) == 0 {
		return sel
	}
	target := sel.Focus.Line + dir
	if target < 0 || target >= len(s.Lines) {
		return sel
	}
	x := sel.Focus.X
	if sel.sticky {
		x = sel.moveX
	}
	n := nodeFromPoint(s, x, s.Lines[target].Baseline)
	out := sel.moveFocus(s, n, extend)
	out.moveX = x
	out.sticky = true
	return out
}

// Home moves the caret to the start of its line.
func (sel Selection) Home(s *Store, extend bool) Selection {
	if len(s.Lines) == 0 {
		return sel
	}
	n := nodeFromPoint(s, 0, s.Lines[sel.Focus.Line].Baseline)
	return sel.moveFocus(s, n, extend)
}

// End moves the caret to the end of its line.
func (sel Selection) End(s *Store, extend bool) Selection {
	if len(s.Lines) == 0 {
		return sel
	}
	n := nodeFromPoint(s, infinity, s.Lines[sel.Focus.Line].Baseline)
	return sel.moveFocus(s, n, extend)
}

// moveFocus applies a computed focus node, either extending the selection
// or collapsing onto the node. Non-vertical moves drop the sticky
// coordinate.
func (sel Selection) moveFocus(s *Store, n Node, extend bool) Selection {
	if extend {
		return sel.Extend(s, n)
	}
	return Selection{Anchor: n, Focus: n}
}

// EraseKind distinguishes how an erase range is to be applied.
type EraseKind uint8

const (
	// EraseFull removes the whole byte range.
	EraseFull EraseKind = iota
	// EraseLastRune removes only the final codepoint of the byte range,
	// backspacing through the combining marks of a non-emoji cluster one
	// codepoint at a time.
	EraseLastRune
)

// String returns the string representation of the erase kind.
func (k EraseKind) String() string {
	switch k {
	case EraseFull:
		return "Full"
	case EraseLastRune:
		return "LastRune"
	default:
		return unknownStr
	}
}

// EraseOp is a byte range to delete, produced by Erase and ErasePrevious.
type EraseOp struct {
	Start, End int
	Kind       EraseKind
}

// Erase computes the byte range a forward delete removes: the normalized
// selection range, or, for a collapsed caret, the whole cluster at the
// caret. ok is false when there is nothing to delete.
func (sel Selection) Erase(s *Store) (op EraseOp, ok bool) {
	if len(s.Clusters) == 0 {
		return EraseOp{}, false
	}
	if !sel.IsCollapsed(s) {
		start, end := sel.NormalizedRange(s)
		return EraseOp{Start: start, End: end, Kind: EraseFull}, true
	}
	offset := sel.Offset(s)
	for i := range s.Clusters {
		c := &s.Clusters[i]
		if c.Offset >= offset {
			return EraseOp{Start: c.Offset, End: c.Offset + c.Length, Kind: EraseFull}, true
		}
	}
	return EraseOp{}, false
}

// ErasePrevious computes the byte range a backspace removes. For a
// collapsed caret after a non-emoji cluster of several codepoints, the
// result asks for only the final codepoint to be dropped, so combining
// marks are removed one at a time; emoji sequences erase atomically.
func (sel Selection) ErasePrevious(s *Store) (op EraseOp, ok bool) {
	if len(s.Clusters) == 0 {
		return EraseOp{}, false
	}
	if !sel.IsCollapsed(s) {
		start, end := sel.NormalizedRange(s)
		return EraseOp{Start: start, End: end, Kind: EraseFull}, true
	}
	offset := sel.Offset(s)
	if offset <= 0 {
		return EraseOp{}, false
	}
	for i := len(s.Clusters) - 1; i >= 0; i-- {
		c := &s.Clusters[i]
		if c.Offset+c.Length > offset {
			continue
		}
		op = EraseOp{Start: c.Offset, End: c.Offset + c.Length, Kind: EraseFull}
		if c.Offset+c.Length == offset && c.Runes > 1 && !c.Emoji {
			op.Kind = EraseLastRune
		}
		return op, true
	}
	return EraseOp{}, false
}

// Regions calls fn with one rectangle per contiguous horizontal stretch of
// selected clusters, per line. Adjacent selected visual clusters merge
// into a single rectangle; a stretch whose measured width rounds to zero
// reports the minimum fallback width instead.
func (sel Selection) Regions(s *Store, fn func(x, y, w, h float64)) {
	if !s.finalized || len(s.Clusters) == 0 {
		return
	}
	start, end := sel.NormalizedRange(s)
	if start == end {
		return
	}

	for li := range s.Lines {
		line := &s.Lines[li]
		top := line.Baseline - line.Metrics.Ascent
		height := line.Metrics.Height()

		runOpen := false
		var x0, x1 float64
		flush := func() {
			if !runOpen {
				return
			}
			w := x1 - x0
			if math.Round(w) == 0 {
				w = minRegionWidth
			}
			fn(x0, top, w, height)
			runOpen = false
		}

		for slot := line.Clusters.Start; slot < line.Clusters.End; slot++ {
			c := &s.Clusters[s.visual[slot]]
			selected := c.Offset >= start && c.Offset < end
			if !selected {
				flush()
				continue
			}
			left := s.offsets[slot]
			right := left + c.Advance
			if runOpen {
				x1 = right
			} else {
				runOpen = true
				x0, x1 = left, right
			}
		}
		flush()
	}
}

// Caret returns the focus caret's geometry for an input-handling
// collaborator: the top-left origin of the caret line, its height and the
// direction of the addressed cluster.
func (sel Selection) Caret(s *Store) (x, y, height float64, rtl bool) {
	if !s.finalized || len(s.Lines) == 0 {
		return 0, 0, 0, false
	}
	line := &s.Lines[clampLine(s, sel.Focus.Line)]
	return sel.Focus.X, line.Baseline - line.Metrics.Ascent, line.Metrics.Height(), sel.Focus.RTL
}

func clampLine(s *Store, line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(s.Lines) {
		return len(s.Lines) - 1
	}
	return line
}
