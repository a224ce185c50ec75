package layout

import "testing"

func TestBreakerSoftWrap(t *testing.T) {
	s := layoutText(t, "hello world", 6)
	if len(s.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(s.Lines))
	}
	l0, l1 := s.Lines[0], s.Lines[1]
	if l0.Clusters != (Range{0, 6}) || l1.Clusters != (Range{6, 11}) {
		t.Fatalf("cluster ranges %+v %+v", l0.Clusters, l1.Clusters)
	}
	if l0.Width != 6 || l1.Width != 5 {
		t.Errorf("widths %g %g, want 6 5", l0.Width, l1.Width)
	}
	if !l0.TrailingWhitespace || l0.Hang != 1 || l0.HangAdvance != 1 {
		t.Errorf("line 0 hang = %d (%g), trailing = %v", l0.Hang, l0.HangAdvance, l0.TrailingWhitespace)
	}
	if l0.Explicit || l1.Explicit {
		t.Error("soft-wrapped lines flagged explicit")
	}
}

func TestBreakerWhitespaceHangs(t *testing.T) {
	// The space would not fit, but whitespace is allowed past the edge
	// instead of wrapping.
	s := layoutText(t, "ab cd", 2)
	if len(s.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(s.Lines))
	}
	if s.Lines[0].Clusters != (Range{0, 3}) {
		t.Fatalf("line 0 covers %+v", s.Lines[0].Clusters)
	}
	if s.Lines[0].Width != 3 {
		t.Errorf("line 0 width = %g, want 3", s.Lines[0].Width)
	}
}

func TestBreakerBreakBeforeCluster(t *testing.T) {
	// No break opportunity anywhere: the line breaks right before the
	// cluster that would overflow.
	s := layoutText(t, "abcdef", 4)
	if len(s.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(s.Lines))
	}
	if s.Lines[0].Clusters != (Range{0, 4}) || s.Lines[1].Clusters != (Range{4, 6}) {
		t.Fatalf("cluster ranges %+v %+v", s.Lines[0].Clusters, s.Lines[1].Clusters)
	}
}

func TestBreakerSingleTooWide(t *testing.T) {
	s := NewStore()
	s.Push(Cluster{Offset: 0, Length: 1, Runes: 1, Advance: 10}, 0, 0, testMetrics)
	NewBreaker(s, 4, AlignStart).Finish()
	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(s.Lines))
	}
	if s.Lines[0].Width != 10 {
		t.Errorf("width = %g, want 10", s.Lines[0].Width)
	}
}

func TestBreakerZeroWidthBoundaryAtLineStart(t *testing.T) {
	// A boundary at column 0 with no advance cannot make progress;
	// rewinding to it would loop, so the overflow is accepted.
	s := NewStore()
	s.Push(Cluster{Offset: 0, Length: 1, Runes: 1, Advance: 0, Boundary: BoundaryOptional}, 0, 0, testMetrics)
	s.Push(Cluster{Offset: 1, Length: 1, Runes: 1, Advance: 10}, 0, 0, testMetrics)
	NewBreaker(s, 4, AlignStart).Finish()
	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(s.Lines))
	}
	if s.Lines[0].Clusters != (Range{0, 2}) {
		t.Fatalf("line covers %+v", s.Lines[0].Clusters)
	}
}

func TestBreakerMandatory(t *testing.T) {
	s := layoutText(t, "ab\ncd", 0)
	if len(s.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(s.Lines))
	}
	if !s.Lines[0].Explicit {
		t.Error("line ending at a newline not flagged explicit")
	}
	if s.Lines[1].Explicit {
		t.Error("final line flagged explicit")
	}
	if s.Lines[0].Clusters != (Range{0, 3}) || s.Lines[1].Clusters != (Range{3, 5}) {
		t.Fatalf("cluster ranges %+v %+v", s.Lines[0].Clusters, s.Lines[1].Clusters)
	}
}

func TestBreakerNoWrapWithoutMax(t *testing.T) {
	s := layoutText(t, "hello world", 0)
	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(s.Lines))
	}
	if s.Lines[0].Width != 11 {
		t.Errorf("width = %g, want 11", s.Lines[0].Width)
	}
}

func TestBreakerNextExtent(t *testing.T) {
	s := NewStore()
	pushText(s, "hello world", 0, 0, testMetrics)
	b := NewBreaker(s, 6, AlignStart)

	ext, ok := b.Next()
	if !ok || ext.Width != 6 || ext.Height != 12 {
		t.Fatalf("first Next = %+v, %v", ext, ok)
	}
	ext, ok = b.Next()
	if !ok || ext.Width != 5 {
		t.Fatalf("second Next = %+v, %v", ext, ok)
	}
	if _, ok := b.Next(); ok {
		t.Error("Next after exhaustion returned a line")
	}
	b.Finish()
	if !s.Finalized() {
		t.Error("store not finalized after Finish")
	}
}

func TestBreakerRevert(t *testing.T) {
	s := NewStore()
	pushText(s, "hello world", 0, 0, testMetrics)
	b := NewBreaker(s, 6, AlignStart)

	first, _ := b.Next()
	b.Revert()
	if len(s.Lines) != 0 {
		t.Fatalf("Revert left %d lines", len(s.Lines))
	}
	again, ok := b.Next()
	if !ok || again != first {
		t.Fatalf("replayed line = %+v, want %+v", again, first)
	}
}

func TestBreakerReflowWithNewWidth(t *testing.T) {
	s := NewStore()
	pushText(s, "hello world", 0, 0, testMetrics)
	b := NewBreaker(s, 6, AlignStart)

	b.Next()
	b.Revert()
	b.SetMaxAdvance(20)
	b.Finish()
	if len(s.Lines) != 1 {
		t.Fatalf("got %d lines after reflow, want 1", len(s.Lines))
	}
	if s.Lines[0].Width != 11 {
		t.Errorf("width = %g, want 11", s.Lines[0].Width)
	}
}

func TestBreakerLineMetrics(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 0, 0, Metrics{Ascent: 8, Descent: 2})
	pushText(s, "cd", 0, 1, Metrics{Ascent: 10, Descent: 4})
	NewBreaker(s, 0, AlignStart).Finish()

	m := s.Lines[0].Metrics
	if m.Ascent != 10 || m.Descent != 4 {
		t.Errorf("line metrics = %+v, want max of both styles", m)
	}
}

func TestBreakerWhitespaceOnlyLineHasHeight(t *testing.T) {
	s := layoutText(t, "   ", 0)
	if got := s.Lines[0].Metrics.Height(); got != testMetrics.Height() {
		t.Errorf("whitespace line height = %g, want %g", got, testMetrics.Height())
	}
}

func TestBreakerAlignEnd(t *testing.T) {
	s := NewStore()
	pushText(s, "ab ", 0, 0, testMetrics)
	NewBreaker(s, 10, AlignEnd).Finish()

	line := s.Lines[0]
	// Hanging whitespace is excluded: the visible "ab" is flush right.
	if line.X != 8 {
		t.Fatalf("line X = %g, want 8", line.X)
	}
	wantX := []float64{8, 9, 10}
	for slot, want := range wantX {
		if got := s.XAt(slot); got != want {
			t.Errorf("XAt(%d) = %g, want %g", slot, got, want)
		}
	}
}

func TestBreakerAlignMiddle(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 0, 0, testMetrics)
	NewBreaker(s, 10, AlignMiddle).Finish()
	if got := s.Lines[0].X; got != 4 {
		t.Errorf("line X = %g, want 4", got)
	}
}

func TestBreakerRTLIsland(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 0, 0, testMetrics)
	pushText(s, "cd", 1, 0, testMetrics)
	pushText(s, "e", 0, 0, testMetrics)
	NewBreaker(s, 0, AlignStart).Finish()

	// The right-to-left island keeps its place but flips internally.
	wantVisual := []int{0, 1, 3, 2, 4}
	for slot, want := range wantVisual {
		if got := s.VisualAt(slot); got != want {
			t.Errorf("VisualAt(%d) = %d, want %d", slot, got, want)
		}
	}
	for slot := 0; slot < 5; slot++ {
		if got := s.XAt(slot); got != float64(slot) {
			t.Errorf("XAt(%d) = %g, want %d", slot, got, slot)
		}
	}
	if got := s.SlotOf(2); got != 3 {
		t.Errorf("SlotOf(2) = %d, want 3", got)
	}
}

func TestBreakerRTLParagraph(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 1, 0, testMetrics)
	pushText(s, "cd", 2, 0, testMetrics)
	NewBreaker(s, 0, AlignStart).Finish()

	// Level-2 run displays first, level-1 run reversed after it.
	wantVisual := []int{2, 3, 1, 0}
	for slot, want := range wantVisual {
		if got := s.VisualAt(slot); got != want {
			t.Errorf("VisualAt(%d) = %d, want %d", slot, got, want)
		}
	}
}

func TestBreakerFinishIdempotent(t *testing.T) {
	s := NewStore()
	pushText(s, "ab", 0, 0, testMetrics)
	b := NewBreaker(s, 0, AlignStart)
	b.Finish()
	lines := len(s.Lines)
	b.Finish()
	if len(s.Lines) != lines {
		t.Errorf("second Finish changed line count: %d -> %d", lines, len(s.Lines))
	}
}

func TestBreakerEmptyStore(t *testing.T) {
	s := NewStore()
	b := NewBreaker(s, 10, AlignStart)
	if _, ok := b.Next(); ok {
		t.Error("Next on empty store returned a line")
	}
	b.Finish()
	if len(s.Lines) != 0 {
		t.Errorf("empty store produced %d lines", len(s.Lines))
	}
	if !s.Finalized() {
		t.Error("empty store not finalized")
	}
}
