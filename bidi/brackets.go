package bidi

import (
	ucd "golang.org/x/text/unicode/bidi"
)

// maxBracketPairs bounds the bracket stack of rule N0 (BD16). When the
// stack is full, further brackets in the sequence are simply not paired;
// this is defined behavior, not an error.
const maxBracketPairs = 63

// bracketPairs maps an opening paired bracket to its closing counterpart,
// per the Unicode BidiBrackets data file. Neither x/text/unicode/bidi nor
// go-text/typesetting export the pairing, so the table is embedded here;
// detection of bracket-hood itself still uses the x/text property tables.
var bracketPairs = map[rune]rune{
	0x0028: 0x0029, // ( )
	0x005B: 0x005D, // [ ]
	0x007B: 0x007D, // { }
	0x0F3A: 0x0F3B, // Tibetan gug rtags
	0x0F3C: 0x0F3D, // Tibetan ang khang
	0x169B: 0x169C, // Ogham feather marks
	0x2045: 0x2046, // square bracket with quill
	0x207D: 0x207E, // superscript parentheses
	0x208D: 0x208E, // subscript parentheses
	0x2308: 0x2309, // ceiling
	0x230A: 0x230B, // floor
	0x2329: 0x232A, // pointing angle brackets (deprecated)
	0x2768: 0x2769, // medium parenthesis ornaments
	0x276A: 0x276B,
	0x276C: 0x276D,
	0x276E: 0x276F,
	0x2770: 0x2771,
	0x2772: 0x2773,
	0x2774: 0x2775,
	0x27C5: 0x27C6, // s-shaped bag delimiters
	0x27E6: 0x27E7, // white square brackets
	0x27E8: 0x27E9, // mathematical angle brackets
	0x27EA: 0x27EB, // double angle brackets
	0x27EC: 0x27ED, // white tortoise shell brackets
	0x27EE: 0x27EF, // flattened parentheses
	0x2983: 0x2984, // white curly brackets
	0x2985: 0x2986, // white parentheses
	0x2987: 0x2988, // Z notation image brackets
	0x2989: 0x298A, // Z notation binding brackets
	0x298B: 0x298C, // square brackets with underbar
	0x298D: 0x2990, // square brackets with tick, top-left corner
	0x298F: 0x298E, // square brackets with tick, bottom-left corner
	0x2991: 0x2992, // angle brackets with dot
	0x2993: 0x2994, // arc less-than/greater-than brackets
	0x2995: 0x2996, // double arc brackets
	0x2997: 0x2998, // black tortoise shell brackets
	0x29D8: 0x29D9, // wiggly fences
	0x29DA: 0x29DB, // double wiggly fences
	0x29FC: 0x29FD, // curved angle brackets
	0x2E22: 0x2E23, // half brackets, top
	0x2E24: 0x2E25, // half brackets, bottom
	0x2E26: 0x2E27, // sideways U brackets
	0x2E28: 0x2E29, // double parentheses
	0x2E55: 0x2E56, // oblique hyphen brackets
	0x2E57: 0x2E58,
	0x2E59: 0x2E5A,
	0x2E5B: 0x2E5C,
	0x3008: 0x3009, // CJK angle brackets
	0x300A: 0x300B, // CJK double angle brackets
	0x300C: 0x300D, // corner brackets
	0x300E: 0x300F, // white corner brackets
	0x3010: 0x3011, // black lenticular brackets
	0x3014: 0x3015, // tortoise shell brackets
	0x3016: 0x3017, // white lenticular brackets
	0x3018: 0x3019, // white tortoise shell brackets
	0x301A: 0x301B, // white square brackets
	0xFE59: 0xFE5A, // small parentheses
	0xFE5B: 0xFE5C, // small curly brackets
	0xFE5D: 0xFE5E, // small tortoise shell brackets
	0xFF08: 0xFF09, // fullwidth parentheses
	0xFF3B: 0xFF3D, // fullwidth square brackets
	0xFF5B: 0xFF5D, // fullwidth curly brackets
	0xFF5F: 0xFF60, // fullwidth white parentheses
	0xFF62: 0xFF63, // halfwidth corner brackets
}

// canonicalBracket maps the deprecated pointing angle brackets onto their
// CJK canonical equivalents, the only canonical decomposition among the
// paired brackets.
func canonicalBracket(r rune) rune {
	switch r {
	case 0x2329:
		return 0x3008
	case 0x232A:
		return 0x3009
	}
	return r
}

// bracketStackEntry records an open bracket awaiting its match.
type bracketStackEntry struct {
	closer rune // canonicalized expected closing bracket
	seqIdx int  // index into the current sequence
}

// bracketPair is a matched pair, identified by sequence indices.
type bracketPair struct {
	open, close int
}

// bracketPairer finds bracket pairs within one isolating run sequence
// using a fixed-capacity stack.
type bracketPairer struct {
	stack [maxBracketPairs]bracketStackEntry
	depth int
	pairs []bracketPair
}

// resolveBrackets runs rule N0 over the current sequence: it pairs
// brackets with the bounded stack, then assigns each pair a direction from
// its strongly-directional contents, falling back to the context before
// the pair and finally the embedding direction.
//
// The pairer needs the original text because bracket-hood is a property of
// the character, which the class arrays no longer carry; text is indexed by
// paragraph position and may be nil when the resolver was fed raw classes,
// in which case N0 is skipped.
func (r *Resolver) resolveBrackets(level uint8, sos Class) {
	if r.text == nil {
		return
	}
	r.pairer.find(r)
	if len(r.pairer.pairs) == 0 {
		return
	}

	e := directionOfLevel(level)
	o := ClassL
	if e == ClassL {
		o = ClassR
	}

	for _, pair := range r.pairer.pairs {
		dir := r.pairDirection(pair, e, o, sos)
		if dir == ClassON {
			continue
		}
		r.setBracket(pair.open, dir)
		r.setBracket(pair.close, dir)
	}
}

// find locates bracket pairs per BD16. Pairs are recorded in order of the
// opening bracket's position. A full stack stops the search; pairs already
// found stand.
func (p *bracketPairer) find(r *Resolver) {
	p.depth = 0
	p.pairs = p.pairs[:0]

	for i, pos := range r.seq {
		if r.resolved[pos] != ClassON {
			continue
		}
		props, _ := ucd.LookupRune(r.text[pos])
		if !props.IsBracket() {
			continue
		}

		ch := r.text[pos]
		if props.IsOpeningBracket() {
			closer, ok := bracketPairs[ch]
			if !ok {
				continue
			}
			if p.depth >= maxBracketPairs {
				// BD16: stop processing brackets entirely.
				return
			}
			p.stack[p.depth] = bracketStackEntry{closer: canonicalBracket(closer), seqIdx: i}
			p.depth++
			continue
		}

		want := canonicalBracket(ch)
		for d := p.depth - 1; d >= 0; d-- {
			if p.stack[d].closer != want {
				continue
			}
			p.pairs = append(p.pairs, bracketPair{open: p.stack[d].seqIdx, close: i})
			p.depth = d
			break
		}
	}

	// Restore opening order; pairs were appended in closing order.
	sortPairs(p.pairs)
}

// sortPairs orders pairs by opening position. The slice is small (≤63), so
// insertion sort keeps this allocation-free.
func sortPairs(pairs []bracketPair) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j].open < pairs[j-1].open; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
}

// pairDirection decides the direction of one bracket pair per N0:
// a strong type matching the embedding direction inside the pair wins;
// otherwise an opposite strong type defers to the preceding context;
// otherwise the pair is left unresolved (ON).
func (r *Resolver) pairDirection(pair bracketPair, e, o, sos Class) Class {
	sawOpposite := false
	for i := pair.open + 1; i < pair.close; i++ {
		switch inside := strongSide(r.resolved[r.seq[i]]); inside {
		case e:
			return e
		case o:
			sawOpposite = true
		}
	}
	if !sawOpposite {
		return ClassON
	}

	context := sos
	for i := pair.open - 1; i >= 0; i-- {
		if s := strongSide(r.resolved[r.seq[i]]); s == ClassL || s == ClassR {
			context = s
			break
		}
	}
	if context == o {
		return o
	}
	return e
}

// setBracket rewrites the class of the bracket at sequence index i, and of
// any nonspacing marks attached to it, which take the bracket's new class
// per the note to N0.
func (r *Resolver) setBracket(i int, dir Class) {
	r.resolved[r.seq[i]] = dir
	for j := i + 1; j < len(r.seq); j++ {
		if r.initial[r.seq[j]] != ClassNSM {
			break
		}
		r.resolved[r.seq[j]] = dir
	}
}
