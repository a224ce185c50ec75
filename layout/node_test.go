package layout

import "testing"

func TestSelectionFromPointMidpoint(t *testing.T) {
	s := layoutText(t, "abc", 0)
	baseline := s.Lines[0].Baseline

	tests := []struct {
		name string
		x    float64
		want int // byte offset
	}{
		{"left of first cluster", -5, 0},
		{"inside left half", 0.4, 0},
		{"exact midpoint snaps after", 0.5, 1},
		{"inside right half", 0.6, 1},
		{"second cluster left half", 1.2, 1},
		{"second cluster right half", 1.8, 2},
		{"past line end", 100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := SelectionFromPoint(s, tt.x, baseline)
			if got := sel.Offset(s); got != tt.want {
				t.Errorf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectionFromPointDirect(t *testing.T) {
	s := layoutText(t, "abc", 0)
	baseline := s.Lines[0].Baseline

	// No midpoint snapping: anywhere inside a cluster lands on its
	// leading edge.
	sel := SelectionFromPointDirect(s, 1.9, baseline)
	if got := sel.Offset(s); got != 1 {
		t.Errorf("direct offset = %d, want 1", got)
	}
	if sel.Focus.After {
		t.Error("direct hit reported trailing edge")
	}
}

func TestSelectionFromPointExplicitLineEnd(t *testing.T) {
	s := layoutText(t, "ab\ncd", 0)
	// Past the end of a line holding an explicit break, the caret lands
	// before the terminator, not after it.
	sel := SelectionFromPoint(s, 100, s.Lines[0].Baseline)
	if got := sel.Offset(s); got != 2 {
		t.Errorf("offset = %d, want 2", got)
	}
	// The final line has no terminator; past-the-end lands after the
	// last cluster.
	sel = SelectionFromPoint(s, 100, s.Lines[1].Baseline)
	if got := sel.Offset(s); got != 5 {
		t.Errorf("offset = %d, want 5", got)
	}
}

func TestSelectionFromPointLinePicking(t *testing.T) {
	s := layoutText(t, "hello world", 6)
	tests := []struct {
		name     string
		y        float64
		wantLine int
	}{
		{"above layout", -10, 0},
		{"first line", 5, 0},
		{"second line", 15, 1},
		{"below layout", 1000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := SelectionFromPoint(s, 0, tt.y)
			if got := sel.Focus.Line; got != tt.wantLine {
				t.Errorf("line = %d, want %d", got, tt.wantLine)
			}
		})
	}
}

func TestSelectionFromOffsetRoundTrip(t *testing.T) {
	s := layoutText(t, "hello world", 0)
	for offset := 0; offset <= 11; offset++ {
		sel := SelectionFromOffset(s, offset)
		if got := sel.Offset(s); got != offset {
			t.Errorf("offset %d round-tripped to %d", offset, got)
		}
	}
}

func TestSelectionFromOffsetRTLPolarity(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 0, 0, testMetrics)
	pushText(s, "cd", 1, 0, testMetrics)
	pushText(s, "e", 0, 0, testMetrics)
	NewBreaker(s, 0, AlignStart).Finish()

	// Inside the left-to-right prefix the caret sits before the cluster
	// at the offset.
	sel := SelectionFromOffset(s, 2)
	if sel.Focus.After {
		t.Error("caret after cluster 1, want before cluster 2")
	}

	// At the seam following a right-to-left cluster, the caret hugs the
	// trailing edge of that cluster instead.
	sel = SelectionFromOffset(s, 4)
	if !sel.Focus.After || !sel.Focus.RTL {
		t.Errorf("caret after=%v rtl=%v, want trailing edge of rtl cluster",
			sel.Focus.After, sel.Focus.RTL)
	}
	if got := sel.Offset(s); got != 4 {
		t.Errorf("offset = %d, want 4", got)
	}
}

func TestSelectionCaret(t *testing.T) {
	s := layoutText(t, "abc", 0)
	sel := SelectionFromOffset(s, 1)
	x, y, h, rtl := sel.Caret(s)
	if x != 1 || y != 1 || h != 12 || rtl {
		t.Errorf("Caret = (%g, %g, %g, %v), want (1, 1, 12, false)", x, y, h, rtl)
	}
}

func TestSelectionEmptyLayout(t *testing.T) {
	s := NewStore()
	NewBreaker(s, 0, AlignStart).Finish()
	sel := SelectionFromPoint(s, 5, 5)
	if sel != (Selection{}) {
		t.Errorf("selection over empty layout = %+v, want zero", sel)
	}
	if got := sel.Offset(s); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
	if _, ok := sel.Erase(s); ok {
		t.Error("Erase on empty layout reported a range")
	}
}
