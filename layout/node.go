package layout

import "math"

// Node is a caret location derived on demand from a finalized Store: a
// visual cluster slot, the line it sits on, the x coordinate of the edge
// the caret hugs, and the edge polarity. After selects the trailing rather
// than the leading edge of the referenced cluster; together with RTL it
// identifies the addressed logical character unambiguously, which matters
// because logically adjacent carets need not be visually adjacent under
// bidi.
//
// Nodes are plain values; they are never stored independently of a
// Selection and are invalidated by any text edit.
type Node struct {
	// Cluster is the visual slot the caret refers to.
	Cluster int

	// Line is the index of the line containing the slot.
	Line int

	// X is the horizontal coordinate of the addressed edge, within the
	// line (alignment included).
	X float64

	// RTL reports that the referenced cluster is right-to-left.
	RTL bool

	// After selects the trailing edge of the cluster instead of the
	// leading edge.
	After bool

	// Newline reports that the referenced cluster is a line terminator.
	Newline bool
}

// position maps the node to its caret position in the global visual
// sequence: position p sits before slot p, so (slot, after) and
// (slot+1, before) share a position.
func (n Node) position() int {
	if n.After {
		return n.Cluster + 1
	}
	return n.Cluster
}

// nodeAtSlot derives a Node for a visual slot and edge polarity, clamping
// the slot into the valid range. An empty layout yields the zero Node.
func nodeAtSlot(s *Store, slot int, after bool) Node {
	n := len(s.Clusters)
	if n == 0 || len(s.Lines) == 0 {
		return Node{}
	}
	if slot < 0 {
		slot = 0
	}
	if slot >= n {
		slot = n - 1
		after = true
	}
	cl := s.visual[slot]
	rtl := s.levels[cl]&1 == 1
	return Node{
		Cluster: slot,
		Line:    s.LineOf(slot),
		X:       edgeX(s, slot, after, rtl),
		RTL:     rtl,
		After:   after,
		Newline: s.Clusters[cl].Newline,
	}
}

// nodeAtPosition derives a Node for a caret position. preferAfter picks
// the (slot-1, after) representation, which keeps the caret on the earlier
// line at a soft wrap; otherwise the (slot, before) form is used.
func nodeAtPosition(s *Store, p int, preferAfter bool) Node {
	n := len(s.Clusters)
	if n == 0 {
		return Node{}
	}
	if p <= 0 {
		return nodeAtSlot(s, 0, false)
	}
	if p >= n {
		return nodeAtSlot(s, n-1, true)
	}
	if preferAfter {
		return nodeAtSlot(s, p-1, true)
	}
	return nodeAtSlot(s, p, false)
}

// edgeX computes the x coordinate of a cluster edge. The leading edge of a
// left-to-right cluster is its visual left; for a right-to-left cluster
// the edges swap.
func edgeX(s *Store, slot int, after, rtl bool) float64 {
	x := s.offsets[slot]
	if after != rtl {
		x += s.Clusters[s.visual[slot]].Advance
	}
	return x
}

// nodeFromLogical derives a Node addressing the given logical cluster on
// the requested edge.
func nodeFromLogical(s *Store, cluster int, after bool) Node {
	if len(s.Clusters) == 0 {
		return Node{}
	}
	if cluster < 0 {
		cluster = 0
	}
	if cluster >= len(s.Clusters) {
		cluster = len(s.Clusters) - 1
		after = true
	}
	return nodeAtSlot(s, s.logical[cluster], after)
}

// byteOffset returns the source byte offset the node addresses.
func (n Node) byteOffset(s *Store) int {
	if len(s.Clusters) == 0 {
		return 0
	}
	c := &s.Clusters[s.visual[clampSlot(s, n.Cluster)]]
	if n.After {
		return c.Offset + c.Length
	}
	return c.Offset
}

func clampSlot(s *Store, slot int) int {
	if slot < 0 {
		return 0
	}
	if slot >= len(s.Clusters) {
		return len(s.Clusters) - 1
	}
	return slot
}

// nodeFromPoint maps a point to a caret. The line is the first whose
// baseline plus descent reaches down to y, the last line as fallback.
// Within the line, the caret snaps to the nearer edge of the visual
// cluster containing x; the trailing edge wins on an exact midpoint.
// An x past the last cluster snaps after it, unless the line ends in an
// explicit break, in which case the caret snaps before the terminator.
func nodeFromPoint(s *Store, x, y float64) Node {
	line, ok := lineForY(s, y)
	if !ok {
		return Node{}
	}
	l := &s.Lines[line]
	if l.Clusters.Len() == 0 {
		return Node{}
	}

	last := l.Clusters.End - 1
	if x >= s.offsets[last]+s.AdvanceAt(last) {
		if l.Explicit {
			// Snap before the terminator cluster.
			term := l.Clusters.End - 1
			return nodeFromLogical(s, s.visual[term], false)
		}
		return visualEdgeNode(s, last, true)
	}

	for slot := l.Clusters.Start; slot <= last; slot++ {
		left := s.offsets[slot]
		adv := s.AdvanceAt(slot)
		if x >= left+adv && slot != last {
			continue
		}
		if x-left >= adv/2 {
			return visualEdgeNode(s, slot, true)
		}
		return visualEdgeNode(s, slot, false)
	}
	return visualEdgeNode(s, last, true)
}

// nodeFromPointDirect maps a point to the leading edge of the containing
// visual cluster without midpoint snapping. Word and line expansion use it
// as a stable anchor.
func nodeFromPointDirect(s *Store, x, y float64) Node {
	line, ok := lineForY(s, y)
	if !ok {
		return Node{}
	}
	l := &s.Lines[line]
	if l.Clusters.Len() == 0 {
		return Node{}
	}
	for slot := l.Clusters.Start; slot < l.Clusters.End; slot++ {
		if x < s.offsets[slot]+s.AdvanceAt(slot) {
			return nodeAtSlot(s, slot, false)
		}
	}
	return nodeAtSlot(s, l.Clusters.End-1, false)
}

// visualEdgeNode builds a Node hugging the visual-left or visual-right
// edge of a slot, translating the visual side into logical edge polarity
// (the visual right of a right-to-left cluster is its leading edge).
func visualEdgeNode(s *Store, slot int, visualRight bool) Node {
	rtl := s.levels[s.visual[slot]]&1 == 1
	return nodeAtSlot(s, slot, visualRight != rtl)
}

// lineForY picks the first line whose baseline plus descent reaches y,
// falling back to the last line.
func lineForY(s *Store, y float64) (int, bool) {
	if !s.finalized || len(s.Lines) == 0 {
		return 0, false
	}
	for i := range s.Lines {
		l := &s.Lines[i]
		if l.Baseline+l.Metrics.Descent >= y {
			return i, true
		}
	}
	return len(s.Lines) - 1, true
}

// nodeFromOffset derives the caret for a source byte offset: the first
// logical cluster starting at or after the offset, with edge polarity
// taken from the direction of the preceding cluster.
func nodeFromOffset(s *Store, offset int) Node {
	n := len(s.Clusters)
	if n == 0 || !s.finalized {
		return Node{}
	}
	for i := 0; i < n; i++ {
		if s.Clusters[i].Offset >= offset {
			if i > 0 && s.levels[i-1]&1 == 1 {
				return nodeFromLogical(s, i-1, true)
			}
			return nodeFromLogical(s, i, false)
		}
	}
	return nodeFromLogical(s, n-1, true)
}

// infinity is used by End to push a point past any line width.
var infinity = math.Inf(1)
