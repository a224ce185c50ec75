package bidi

// levelRun is a maximal run of adjacent characters sharing one embedding
// level, with X9-removed characters skipped (BD7 over the retained text).
type levelRun struct {
	start, end int // half-open positions into the paragraph
	level      uint8
}

// buildLevelRuns slices the paragraph into level runs, skipping characters
// removed by X9. It fills r.runs and resets r.used.
func (r *Resolver) buildLevelRuns() {
	r.runs = r.runs[:0]
	cur := -1
	for i := range r.initial {
		if r.resolved[i] == ClassBN {
			continue
		}
		if cur >= 0 && r.levels[i] == r.runs[cur].level && r.contiguous(r.runs[cur].end, i) {
			r.runs[cur].end = i + 1
			continue
		}
		r.runs = append(r.runs, levelRun{start: i, end: i + 1, level: r.levels[i]})
		cur++
	}

	if cap(r.used) < len(r.runs) {
		r.used = make([]bool, len(r.runs))
	}
	r.used = r.used[:len(r.runs)]
	for i := range r.used {
		r.used[i] = false
	}
}

// contiguous reports whether only removed characters separate position from
// (exclusive) and position to.
func (r *Resolver) contiguous(from, to int) bool {
	for i := from; i < to; i++ {
		if r.resolved[i] != ClassBN {
			return false
		}
	}
	return true
}

// buildSequence assembles the isolating run sequence starting at run index
// i per BD13: while a run ends in an isolate initiator with a matching PDI,
// the run beginning at that PDI is chained on. The sequence's character
// positions are collected into r.seq, and the sos and eos boundary classes
// are returned.
func (r *Resolver) buildSequence(i int, baseLevel uint8) (sos, eos Class) {
	r.seq = r.seq[:0]
	level := r.runs[i].level

	last := i
	for {
		r.used[last] = true
		run := r.runs[last]
		for p := run.start; p < run.end; p++ {
			if r.resolved[p] != ClassBN {
				r.seq = append(r.seq, p)
			}
		}

		endCh := run.end - 1
		if !r.initial[endCh].IsIsolate() || r.matchPDI[endCh] >= len(r.initial) {
			break
		}
		next := r.runIndexAt(r.matchPDI[endCh])
		if next < 0 || r.used[next] {
			break
		}
		last = next
	}

	// sos: compare the sequence level against the level of the nearest
	// retained character before the first run (or the paragraph level).
	sosLevel := baseLevel
	for p := r.runs[i].start - 1; p >= 0; p-- {
		if r.resolved[p] != ClassBN {
			sosLevel = r.levels[p]
			break
		}
	}
	sos = directionOfLevel(max8(level, sosLevel))

	// eos: likewise after the last run, except that a sequence ending in an
	// unmatched isolate initiator compares against the paragraph level.
	endRun := r.runs[last]
	endCh := endRun.end - 1
	eosLevel := baseLevel
	if !(r.initial[endCh].IsIsolate() && r.matchPDI[endCh] >= len(r.initial)) {
		for p := endRun.end; p < len(r.initial); p++ {
			if r.resolved[p] != ClassBN {
				eosLevel = r.levels[p]
				break
			}
		}
	}
	eos = directionOfLevel(max8(level, eosLevel))

	return sos, eos
}

// runIndexAt returns the index of the level run whose first character is at
// position pos, or -1.
func (r *Resolver) runIndexAt(pos int) int {
	for i := range r.runs {
		if r.runs[i].start == pos {
			return i
		}
	}
	return -1
}

// resolveSequence applies the weak rules W1-W7, the bracket rule N0, the
// neutral rules N1-N2 and the implicit rules I1-I2 to the current sequence.
func (r *Resolver) resolveSequence(sos, eos Class) {
	if len(r.seq) == 0 {
		return
	}
	level := r.levels[r.seq[0]]

	r.applyWeakRules(sos)
	r.resolveBrackets(level, sos)
	r.resolveNeutrals(level, sos, eos)
	r.applyImplicitLevels(level)
}

func max8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}
