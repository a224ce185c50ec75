package bidi

import (
	"github.com/gogpu/typeset/internal/logging"
)

// MaxDepth is the maximum explicit embedding depth of UAX #9.
// Embedding and isolate initiators beyond this depth overflow and are
// ignored; this is defined behavior, not an error.
const MaxDepth = 125

// Resolver computes one embedding level per character of a paragraph.
//
// A Resolver owns scratch buffers that are reused across calls, so laying
// out successive paragraphs of similar size does not allocate. The zero
// value is ready to use. A Resolver must not be used concurrently.
type Resolver struct {
	text     []rune  // original characters; nil when fed raw classes
	initial  []Class // classification before any rule ran
	resolved []Class // working classes, rewritten by rules W, N0-N2
	levels   []uint8

	stack directionalStack

	// Matching isolate bookkeeping (BD9). matchPDI is indexed by isolate
	// initiator position and holds the position of the matching PDI, or
	// len(text) when unmatched. matchInitiator is the reverse mapping, -1
	// for an unmatched PDI.
	matchPDI       []int
	matchInitiator []int
	openIsolates   []int // scratch stack of pending isolate initiators

	runs []levelRun
	seq  []int // positions of the current isolating run sequence
	used []bool

	pairer bracketPairer
}

// directionalStack is the bounded directional status stack of rules X1-X8.
// It never grows beyond MaxDepth+2 entries, so it lives inline in the
// Resolver rather than on the heap.
type directionalStack struct {
	entries [MaxDepth + 2]statusEntry
	depth   int
}

// statusEntry is one entry of the directional status stack: an embedding
// level, a directional override status and an isolate flag.
type statusEntry struct {
	level    uint8
	override Class // ClassL, ClassR, or ClassON for no override
	isolate  bool
}

func (s *directionalStack) reset(base uint8) {
	s.entries[0] = statusEntry{level: base, override: ClassON}
	s.depth = 1
}

func (s *directionalStack) push(e statusEntry) { s.entries[s.depth] = e; s.depth++ }
func (s *directionalStack) pop()               { s.depth-- }
func (s *directionalStack) top() statusEntry   { return s.entries[s.depth-1] }

// Levels computes the embedding level of every rune of text under the given
// base direction. It is a convenience wrapper around a throwaway Resolver;
// callers that lay out many paragraphs should keep a Resolver and call
// [Resolver.Resolve] to reuse its buffers.
func Levels(text []rune, base Direction) []uint8 {
	var r Resolver
	levels := r.Resolve(text, base)
	out := make([]uint8, len(levels))
	copy(out, levels)
	return out
}

// Resolve classifies text and computes one embedding level per rune.
// The returned slice is owned by the Resolver and valid until the next call.
// An empty paragraph returns an empty slice.
func (r *Resolver) Resolve(text []rune, base Direction) []uint8 {
	r.text = text
	r.initial = r.initial[:0]
	for _, c := range text {
		r.initial = append(r.initial, ClassifyRune(c))
	}
	return r.resolveClasses(base)
}

// ResolveClasses computes one embedding level per character from
// precomputed bidi classes. With no access to the characters themselves the
// bracket rule N0 cannot run; callers that care about bracket pairing
// should use [Resolver.Resolve]. The returned slice is owned by the
// Resolver and valid until the next call.
func (r *Resolver) ResolveClasses(classes []Class, base Direction) []uint8 {
	r.text = nil
	r.initial = append(r.initial[:0], classes...)
	return r.resolveClasses(base)
}

func (r *Resolver) resolveClasses(base Direction) []uint8 {
	n := len(r.initial)
	r.levels = r.levels[:0]
	if n == 0 {
		return r.levels
	}

	r.computeMatchingPDI()

	if base == DirectionAuto {
		base = r.detectBase(0, n)
	}
	baseLevel := base.baseLevel()

	if baseLevel == 0 && r.fastPath() {
		for i := 0; i < n; i++ {
			r.levels = append(r.levels, 0)
		}
		return r.levels
	}

	r.resolved = append(r.resolved[:0], r.initial...)
	for i := 0; i < n; i++ {
		r.levels = append(r.levels, baseLevel)
	}

	r.resolveExplicit(baseLevel)

	r.buildLevelRuns()
	for i := range r.runs {
		if r.used[i] {
			continue
		}
		first := r.runs[i].start
		if r.initial[first] == ClassPDI && r.matchInitiator[first] >= 0 {
			// Continuation of an earlier sequence; picked up by its
			// isolate initiator.
			continue
		}
		sos, eos := r.buildSequence(i, baseLevel)
		r.resolveSequence(sos, eos)
	}

	r.repairLevels(baseLevel)
	return r.levels
}

// fastPath reports whether the paragraph needs no bidi handling at all:
// no strong right-to-left characters, no Arabic numbers and no explicit
// formatting characters. Such paragraphs resolve to all-zero levels.
func (r *Resolver) fastPath() bool {
	for _, c := range r.initial {
		switch {
		case c == ClassR || c == ClassAL || c == ClassAN:
			return false
		case c.IsExplicit() || c.IsIsolate() || c == ClassPDI || c == ClassPDF:
			return false
		}
	}
	return true
}

// computeMatchingPDI pairs every isolate initiator with its matching PDI
// per BD9. Unmatched initiators map to len(text), unmatched PDIs to -1.
func (r *Resolver) computeMatchingPDI() {
	n := len(r.initial)
	r.matchPDI = resizeInts(r.matchPDI, n)
	r.matchInitiator = resizeInts(r.matchInitiator, n)

	open := r.openIsolates[:0]
	for i, c := range r.initial {
		r.matchPDI[i] = -1
		r.matchInitiator[i] = -1
		switch {
		case c.IsIsolate():
			r.matchPDI[i] = n // provisional: unmatched
			open = append(open, i)
		case c == ClassPDI:
			if len(open) > 0 {
				init := open[len(open)-1]
				open = open[:len(open)-1]
				r.matchPDI[init] = i
				r.matchInitiator[i] = init
			}
		}
	}
	r.openIsolates = open
}

// detectBase applies rules P2 and P3 to text positions [from, to): the
// first strong character outside any isolate decides the base direction,
// defaulting to left-to-right.
func (r *Resolver) detectBase(from, to int) Direction {
	depth := 0
	for i := from; i < to; i++ {
		c := r.initial[i]
		switch {
		case c.IsIsolate():
			depth++
		case c == ClassPDI:
			if depth > 0 {
				depth--
			}
		case depth > 0:
			// Inside an isolate: ignored by P2.
		case c == ClassL:
			return DirectionLTR
		case c == ClassR || c == ClassAL:
			return DirectionRTL
		}
	}
	return DirectionLTR
}

// resolveExplicit runs rules X1-X8: it walks the paragraph once,
// maintaining the bounded directional status stack, assigns each character
// its embedding level and applies directional overrides. Characters removed
// by X9 are reclassified as BN and keep a provisional level for the later
// repair pass.
func (r *Resolver) resolveExplicit(baseLevel uint8) {
	r.stack.reset(baseLevel)
	overflowIsolate := 0
	overflowEmbedding := 0
	validIsolate := 0

	for i, c := range r.initial {
		switch c {
		case ClassRLE, ClassLRE, ClassRLO, ClassLRO:
			// X2-X5. The initiator itself takes the level in force
			// before the push and is removed from further processing.
			r.levels[i] = r.stack.top().level
			r.resolved[i] = ClassBN

			rtl := c == ClassRLE || c == ClassRLO
			next := nextLevel(r.stack.top().level, rtl)
			if next <= MaxDepth && overflowIsolate == 0 && overflowEmbedding == 0 {
				override := ClassON
				if c == ClassLRO {
					override = ClassL
				} else if c == ClassRLO {
					override = ClassR
				}
				r.stack.push(statusEntry{level: next, override: override})
			} else if overflowIsolate == 0 {
				overflowEmbedding++
			}

		case ClassLRI, ClassRLI, ClassFSI:
			// X5a-X5c. FSI behaves as LRI or RLI depending on the first
			// strong character up to its matching PDI.
			rtl := c == ClassRLI
			if c == ClassFSI {
				end := r.matchPDI[i]
				if end < 0 {
					end = len(r.initial)
				}
				rtl = r.detectBase(i+1, end) == DirectionRTL
			}

			top := r.stack.top()
			r.levels[i] = top.level
			if top.override != ClassON {
				r.resolved[i] = top.override
			}

			next := nextLevel(top.level, rtl)
			if next <= MaxDepth && overflowIsolate == 0 && overflowEmbedding == 0 {
				validIsolate++
				r.stack.push(statusEntry{level: next, override: ClassON, isolate: true})
			} else {
				overflowIsolate++
			}

		case ClassPDI:
			// X6a: pop back to the last valid isolate, if any.
			if overflowIsolate > 0 {
				overflowIsolate--
			} else if validIsolate > 0 {
				overflowEmbedding = 0
				for !r.stack.top().isolate {
					r.stack.pop()
				}
				r.stack.pop()
				validIsolate--
			}
			top := r.stack.top()
			r.levels[i] = top.level
			if top.override != ClassON {
				r.resolved[i] = top.override
			}

		case ClassPDF:
			// X7: pop one non-isolate level.
			r.levels[i] = r.stack.top().level
			r.resolved[i] = ClassBN
			if overflowIsolate > 0 {
				// No effect inside an overflowing isolate.
			} else if overflowEmbedding > 0 {
				overflowEmbedding--
			} else if !r.stack.top().isolate && r.stack.depth >= 2 {
				r.stack.pop()
			}

		case ClassB:
			// X8: a paragraph separator resets everything to the base.
			r.levels[i] = baseLevel
			r.stack.reset(baseLevel)
			overflowIsolate = 0
			overflowEmbedding = 0
			validIsolate = 0

		case ClassBN:
			r.levels[i] = r.stack.top().level

		default:
			// X6: ordinary characters take the current level; an active
			// override rewrites their class.
			top := r.stack.top()
			r.levels[i] = top.level
			if top.override != ClassON {
				r.resolved[i] = top.override
			}
		}
	}

	if overflowIsolate > 0 || overflowEmbedding > 0 {
		logging.Logger().Debug("bidi: explicit level overflow",
			"isolates", overflowIsolate, "embeddings", overflowEmbedding)
	}
}

// nextLevel returns the next greater level of the requested parity:
// the least odd level above cur for right-to-left, the least even level
// above cur for left-to-right. The result may exceed MaxDepth; callers
// must check.
func nextLevel(cur uint8, rtl bool) uint8 {
	if rtl {
		return (cur + 1) | 1
	}
	return (cur + 2) &^ 1
}

// repairLevels assigns usable levels to the characters that took no part
// in resolution: X9-removed characters and paragraph/segment separators
// copy the level of the nearest preceding regular character (or, at the
// start of the paragraph, the following one), so that visual reordering
// is undisturbed by their presence.
func (r *Resolver) repairLevels(baseLevel uint8) {
	skip := func(i int) bool {
		c := r.resolved[i]
		return c == ClassBN || r.initial[i].IsRemoved() || r.initial[i] == ClassB || r.initial[i] == ClassS
	}

	first := -1
	prev := -1
	for i := range r.initial {
		if skip(i) {
			if prev >= 0 {
				r.levels[i] = r.levels[prev]
			}
			continue
		}
		if first < 0 {
			first = i
		}
		prev = i
	}

	if first < 0 {
		// Paragraph consists only of removed characters.
		for i := range r.levels {
			r.levels[i] = baseLevel
		}
		return
	}

	// Leading removed characters copy from the first regular one.
	for i := 0; i < first; i++ {
		r.levels[i] = r.levels[first]
	}
}

// resizeInts returns s resized to n entries, reusing capacity.
func resizeInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}
