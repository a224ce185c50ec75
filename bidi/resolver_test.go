package bidi

import (
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		text string
		base Direction
		want []uint8
	}{
		{
			"empty", "", DirectionLTR,
			[]uint8{},
		},
		{
			"pure latin", "hello", DirectionLTR,
			[]uint8{0, 0, 0, 0, 0},
		},
		{
			"latin with digits", "abc 123", DirectionLTR,
			[]uint8{0, 0, 0, 0, 0, 0, 0},
		},
		{
			"hebrew inside latin", "abc עברית def", DirectionAuto,
			[]uint8{0, 0, 0, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0},
		},
		{
			"latin inside hebrew", "שלום abc", DirectionAuto,
			[]uint8{1, 1, 1, 1, 1, 2, 2, 2},
		},
		{
			"digits after hebrew", "שלום 123", DirectionAuto,
			[]uint8{1, 1, 1, 1, 1, 2, 2, 2},
		},
		{
			"digits after arabic", "سلام 123", DirectionAuto,
			[]uint8{1, 1, 1, 1, 1, 2, 2, 2},
		},
		{
			"decimal joined by separator", "ש 1.2", DirectionRTL,
			[]uint8{1, 1, 2, 2, 2},
		},
		{
			"currency terminator", "ש $5", DirectionRTL,
			[]uint8{1, 1, 2, 2},
		},
		{
			"rle embedding", "a‫b‬c", DirectionLTR,
			[]uint8{0, 0, 1, 1, 0},
		},
		{
			"rlo override", "a‮b‬c", DirectionLTR,
			[]uint8{0, 0, 1, 1, 0},
		},
		{
			"rli isolate", "a⁧ב⁩c", DirectionLTR,
			[]uint8{0, 0, 1, 0, 0},
		},
		{
			"fsi detects rtl content", "a⁨ב⁩c", DirectionLTR,
			[]uint8{0, 0, 1, 0, 0},
		},
		{
			"auto defaults to ltr", "123", DirectionAuto,
			[]uint8{0, 0, 0},
		},
		{
			"forced rtl over latin", "abc", DirectionRTL,
			[]uint8{2, 2, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Levels([]rune(tt.text), tt.base)
			if len(got) != len(tt.want) {
				t.Fatalf("Levels(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Levels(%q) = %v, want %v", tt.text, got, tt.want)
				}
			}
		})
	}
}

func TestResolverReuse(t *testing.T) {
	var r Resolver
	first := r.Resolve([]rune("שלום abc"), DirectionAuto)
	if first[0] != 1 || first[len(first)-1] != 2 {
		t.Fatalf("first resolve: got %v", first)
	}
	second := r.Resolve([]rune("plain"), DirectionLTR)
	if len(second) != 5 {
		t.Fatalf("second resolve: got %d levels, want 5", len(second))
	}
	for i, l := range second {
		if l != 0 {
			t.Errorf("second resolve: level[%d] = %d, want 0", i, l)
		}
	}
}

func TestResolverIsolateStackReuse(t *testing.T) {
	var r Resolver
	text := []rune(strings.Repeat("⁦", 8) + "a" + strings.Repeat("⁩", 8))
	r.Resolve(text, DirectionLTR)
	if cap(r.openIsolates) < 8 {
		t.Fatalf("isolate stack capacity = %d, want at least 8", cap(r.openIsolates))
	}
	c := cap(r.openIsolates)
	r.Resolve(text, DirectionLTR)
	if cap(r.openIsolates) != c {
		t.Errorf("isolate stack capacity grew from %d to %d on reuse", c, cap(r.openIsolates))
	}
}

func TestResolveFastPathMatchesFull(t *testing.T) {
	// A trailing unmatched PDI forces the full resolution passes but,
	// being a neutral with no strong neighbor disagreement, resolves to
	// the base level. The left-to-right prefix must come out identical
	// to the short-circuit result for the same text without it.
	text := "hello 123 +$,"
	fast := Levels([]rune(text), DirectionLTR)
	full := Levels([]rune(text+"⁩"), DirectionLTR)
	if len(full) != len(fast)+1 {
		t.Fatalf("full resolve: got %d levels, want %d", len(full), len(fast)+1)
	}
	for i, l := range fast {
		if l != 0 {
			t.Fatalf("fast path: level[%d] = %d, want 0", i, l)
		}
		if full[i] != l {
			t.Errorf("level[%d]: fast %d, full %d", i, l, full[i])
		}
	}
	if full[len(full)-1] != 0 {
		t.Errorf("pdi level = %d, want 0", full[len(full)-1])
	}
}

func TestResolveSeparatorsTakeNeighborLevel(t *testing.T) {
	// B and S characters take part in no rule; they copy the level of
	// the preceding regular character so reordering leaves them alone.
	got := Levels([]rune("שלום\tעוד"), DirectionRTL)
	want := []uint8{1, 1, 1, 1, 1, 1, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveEmbeddingOverflow(t *testing.T) {
	// 130 nested embeddings exceed the depth limit; the overflowing
	// initiators are ignored and resolution still terminates.
	text := []rune(strings.Repeat("‫", 130) + "a")
	got := Levels(text, DirectionLTR)
	if len(got) != len(text) {
		t.Fatalf("got %d levels, want %d", len(got), len(text))
	}
	if got[len(got)-1] != MaxDepth+1 {
		t.Errorf("letter level = %d, want %d", got[len(got)-1], MaxDepth+1)
	}
}

func TestResolveIsolateOverflow(t *testing.T) {
	text := []rune(strings.Repeat("⁧", 200) + "a" + strings.Repeat("⁩", 200))
	got := Levels(text, DirectionLTR)
	if len(got) != len(text) {
		t.Fatalf("got %d levels, want %d", len(got), len(text))
	}
	for i, l := range got {
		if l > MaxDepth+1 {
			t.Fatalf("level[%d] = %d exceeds maximum", i, l)
		}
	}
}

func TestResolveAllRemoved(t *testing.T) {
	got := Levels([]rune("‫‬"), DirectionRTL)
	want := []uint8{1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveParagraphSeparatorResets(t *testing.T) {
	// The separator closes the embedding; text after it is back at the
	// base level.
	got := Levels([]rune("‫ש\nab"), DirectionLTR)
	if got[1] != 1 {
		t.Errorf("embedded level = %d, want 1", got[1])
	}
	if got[3] != 0 || got[4] != 0 {
		t.Errorf("levels after separator = %v, want 0s", got[3:])
	}
}

func TestResolveClassesSkipsBrackets(t *testing.T) {
	// Bracket pairing needs the characters themselves; the class-only
	// entry point resolves brackets as plain neutrals instead.
	text := []rune("עבר (עבר) ab")
	var r Resolver

	full := make([]uint8, len(text))
	copy(full, r.Resolve(text, DirectionLTR))
	classOnly := r.ResolveClasses(ClassifyString(string(text)), DirectionLTR)

	// The closing bracket pairs with the opening one and follows the
	// right-to-left content; without pairing it attaches to the Latin
	// that follows.
	if full[8] != 1 {
		t.Errorf("full resolve: closing bracket level = %d, want 1", full[8])
	}
	if classOnly[8] != 0 {
		t.Errorf("class-only resolve: closing bracket level = %d, want 0", classOnly[8])
	}
}

func TestResolveBracketPairs(t *testing.T) {
	tests := []struct {
		name string
		text string
		base Direction
		want []uint8
	}{
		{
			// Both brackets take the direction of their right-to-left
			// contents since the preceding context agrees.
			"rtl content rtl context", "עבר (עבר) ab", DirectionLTR,
			[]uint8{1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0},
		},
		{
			// Matching-direction content inside the pair wins outright.
			"ltr content in ltr paragraph", "ab (cd) עבר", DirectionLTR,
			[]uint8{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1},
		},
		{
			// Empty pair carries no direction and resolves as plain
			// neutrals between the surrounding strong runs.
			"empty pair", "ab () cd", DirectionLTR,
			[]uint8{0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			"unmatched opener", "ab (cd", DirectionLTR,
			[]uint8{0, 0, 0, 0, 0, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Levels([]rune(tt.text), tt.base)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
