package bidi

// applyWeakRules runs W1-W7 over the current isolating run sequence.
// The rules operate on r.resolved, indexed through r.seq.
func (r *Resolver) applyWeakRules(sos Class) {
	seq := r.seq

	// W1: nonspacing marks take the class of the preceding character;
	// at the sequence start they take sos, and after an isolate initiator
	// or PDI they resolve to ON.
	prev := sos
	for _, p := range seq {
		c := r.resolved[p]
		if c == ClassNSM {
			if prev.IsIsolate() || prev == ClassPDI {
				r.resolved[p] = ClassON
			} else {
				r.resolved[p] = prev
			}
		}
		prev = r.resolved[p]
	}

	// W2: European numbers after an Arabic letter become Arabic numbers.
	strong := sos
	for _, p := range seq {
		switch c := r.resolved[p]; {
		case c.IsStrong():
			strong = c
		case c == ClassEN && strong == ClassAL:
			r.resolved[p] = ClassAN
		}
	}

	// W3: Arabic letters resolve to R.
	for _, p := range seq {
		if r.resolved[p] == ClassAL {
			r.resolved[p] = ClassR
		}
	}

	// W4: a single separator between matching numbers joins them.
	for i := 1; i < len(seq)-1; i++ {
		c := r.resolved[seq[i]]
		before := r.resolved[seq[i-1]]
		after := r.resolved[seq[i+1]]
		switch {
		case c == ClassES && before == ClassEN && after == ClassEN:
			r.resolved[seq[i]] = ClassEN
		case c == ClassCS && before == ClassEN && after == ClassEN:
			r.resolved[seq[i]] = ClassEN
		case c == ClassCS && before == ClassAN && after == ClassAN:
			r.resolved[seq[i]] = ClassAN
		}
	}

	// W5: a run of terminators adjacent to a European number becomes EN.
	for i := 0; i < len(seq); i++ {
		if r.resolved[seq[i]] != ClassET {
			continue
		}
		j := i
		for j < len(seq) && r.resolved[seq[j]] == ClassET {
			j++
		}
		beforeEN := i > 0 && r.resolved[seq[i-1]] == ClassEN
		afterEN := j < len(seq) && r.resolved[seq[j]] == ClassEN
		if beforeEN || afterEN {
			for k := i; k < j; k++ {
				r.resolved[seq[k]] = ClassEN
			}
		}
		i = j - 1
	}

	// W6: remaining separators and terminators become neutral.
	for _, p := range seq {
		switch r.resolved[p] {
		case ClassES, ClassET, ClassCS:
			r.resolved[p] = ClassON
		}
	}

	// W7: European numbers after a strong L resolve to L.
	strong = sos
	for _, p := range seq {
		switch c := r.resolved[p]; {
		case c == ClassL || c == ClassR:
			strong = c
		case c == ClassEN && strong == ClassL:
			r.resolved[p] = ClassL
		}
	}
}

// resolveNeutrals runs N1 and N2: runs of neutral or isolate characters
// take the surrounding direction when both sides agree, and the embedding
// direction otherwise. European and Arabic numbers count as R on either
// side of a neutral run.
func (r *Resolver) resolveNeutrals(level uint8, sos, eos Class) {
	seq := r.seq
	e := directionOfLevel(level)

	for i := 0; i < len(seq); i++ {
		if !r.resolved[seq[i]].isNeutralOrIsolate() {
			continue
		}
		j := i
		for j < len(seq) && r.resolved[seq[j]].isNeutralOrIsolate() {
			j++
		}

		before := sos
		if i > 0 {
			before = strongSide(r.resolved[seq[i-1]])
		}
		after := eos
		if j < len(seq) {
			after = strongSide(r.resolved[seq[j]])
		}

		dir := e
		if before == after && (before == ClassL || before == ClassR) {
			dir = before
		}
		for k := i; k < j; k++ {
			r.resolved[seq[k]] = dir
		}
		i = j - 1
	}
}

// strongSide maps a resolved class to the direction it contributes to a
// neutral run boundary: numbers act like R per N1.
func strongSide(c Class) Class {
	switch c {
	case ClassEN, ClassAN:
		return ClassR
	default:
		return c
	}
}

// applyImplicitLevels runs I1 and I2, bumping character levels according to
// their resolved class and the parity of the sequence level.
func (r *Resolver) applyImplicitLevels(level uint8) {
	even := level&1 == 0
	for _, p := range r.seq {
		c := r.resolved[p]
		if even {
			switch c {
			case ClassR:
				r.levels[p] = level + 1
			case ClassEN, ClassAN:
				r.levels[p] = level + 2
			}
		} else {
			switch c {
			case ClassL, ClassEN, ClassAN:
				r.levels[p] = level + 1
			}
		}
	}
}
