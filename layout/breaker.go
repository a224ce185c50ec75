package layout

import (
	"math"

	"github.com/gogpu/typeset/bidi"
	"github.com/gogpu/typeset/internal/logging"
)

// Extent is the size of one produced line.
type Extent struct {
	Width  float64
	Height float64
}

// Breaker is a resumable cursor producing width-constrained lines from the
// clusters and runs accumulated in a Store.
//
// Usage: call Next until it reports no more lines (or stop early), Revert
// to undo the most recent line (for example to re-flow with a different
// width), and Finish exactly once to drain remaining lines and finalize
// the layout. No geometry may be read from the Store before Finish.
type Breaker struct {
	store      *Store
	maxAdvance float64
	alignment  Alignment

	state breakState
	prev  breakState

	finished bool

	// scratch buffers for finalize, reused across lines
	runScratch   []Run
	levelScratch []uint8
	orderScratch []int
}

// breakState is the cursor state snapshotted before every step; Revert is
// simply restoring the previous snapshot.
type breakState struct {
	cluster       int     // next cluster to consume
	run           int     // logical run containing cluster
	x             float64 // running advance within the current line
	boundary      int     // cluster index of the best break point, -1 if none
	boundaryX     float64 // running advance just after the boundary cluster
	lastMandatory int     // last mandatory boundary committed, -1 initially
	lines         int     // committed line count
	lineRuns      int     // committed line-run count
}

// NewBreaker returns a cursor over the store's accumulated clusters.
// A maxAdvance of zero or less disables soft wrapping: only mandatory
// breaks produce new lines.
func NewBreaker(s *Store, maxAdvance float64, alignment Alignment) *Breaker {
	b := &Breaker{
		store:      s,
		maxAdvance: maxAdvance,
		alignment:  alignment,
	}
	b.state = breakState{boundary: -1, lastMandatory: -1}
	b.prev = b.state
	return b
}

// Next produces the next line and returns its extent, or ok=false when the
// input is exhausted. Degenerate input (no clusters) commits nothing.
func (b *Breaker) Next() (ext Extent, ok bool) {
	s := b.store
	n := len(s.Clusters)
	if b.finished || b.state.cluster >= n {
		return Extent{}, false
	}

	b.prev = b.state
	st := &b.state
	lineStart := st.cluster
	st.x = 0
	st.boundary = -1

	for i := lineStart; i < n; i++ {
		c := &s.Clusters[i]

		if b.maxAdvance > 0 && st.x+c.Advance > b.maxAdvance {
			switch {
			case c.Whitespace != WhitespaceNone:
				// Whitespace hangs past the edge.
				st.x += c.Advance
				return b.commit(lineStart, i+1, false), true

			case st.boundary >= lineStart && !(st.boundary == lineStart && st.boundaryX == 0):
				// Rewind to the recorded break point.
				st.x = st.boundaryX
				return b.commit(lineStart, st.boundary+1, false), true

			case st.boundary >= lineStart:
				// The break point sits at column 0 with no advance;
				// rewinding would make no progress. Accept the overflow.
				st.x += c.Advance
				return b.commit(lineStart, i+1, false), true

			case i > lineStart:
				// No break point mid-line: break before the cluster.
				return b.commit(lineStart, i, false), true

			default:
				// A single cluster wider than the max advance.
				st.x += c.Advance
				return b.commit(lineStart, i+1, false), true
			}
		}

		st.x += c.Advance

		if c.Boundary == BoundaryMandatory {
			if st.lastMandatory == i {
				continue
			}
			st.lastMandatory = i
			return b.commit(lineStart, i+1, true), true
		}
		if c.Boundary == BoundaryOptional {
			st.boundary = i
			st.boundaryX = st.x
		}
	}

	return b.commit(lineStart, n, false), true
}

// Revert restores the state preceding the most recent Next, removing the
// line it committed. Only one step can be undone.
func (b *Breaker) Revert() {
	if b.finished {
		return
	}
	b.state = b.prev
	b.store.Lines = b.store.Lines[:b.state.lines]
	b.store.LineRuns = b.store.LineRuns[:b.state.lineRuns]
}

// SetMaxAdvance changes the width constraint for subsequently produced
// lines. Combined with Revert this re-flows a paragraph on resize.
func (b *Breaker) SetMaxAdvance(maxAdvance float64) {
	b.maxAdvance = maxAdvance
}

// Finish drains all remaining lines and finalizes the layout: it reorders
// each line's runs into visual order, builds the visual offset tables,
// applies alignment and stacks baselines. It must run exactly once, after
// which the Store's geometry and navigation queries are valid.
func (b *Breaker) Finish() {
	if b.finished {
		return
	}
	for {
		if _, ok := b.Next(); !ok {
			break
		}
	}
	b.finalize()
	b.finished = true

	logging.Logger().Debug("layout: finalized",
		"lines", len(b.store.Lines),
		"clusters", len(b.store.Clusters),
		"width", b.store.Width())
}

// commit seals one line covering clusters [start, end): it clips the
// logical runs overlapping the range into line-run fragments, resolves the
// line's metrics and appends the Line. The end index is clamped to the
// cluster count.
func (b *Breaker) commit(start, end int, explicit bool) Extent {
	s := b.store
	st := &b.state
	if end > len(s.Clusters) {
		end = len(s.Clusters)
	}

	line := Line{
		Clusters:   Range{Start: start, End: end},
		Width:      st.x,
		MaxAdvance: b.maxAdvance,
		Alignment:  b.alignment,
		Explicit:   explicit,
	}

	runStart := len(s.LineRuns)
	ri := st.run
	for ri < len(s.Runs) && s.Runs[ri].Clusters.End <= start {
		ri++
	}
	for ri < len(s.Runs) && s.Runs[ri].Clusters.Start < end {
		fr := s.Runs[ri]
		if fr.Clusters.Start < start {
			fr.Clusters.Start = start
		}
		clipped := fr.Clusters.End > end
		if clipped {
			fr.Clusters.End = end
		}
		fr.Whitespace = b.fragmentWhitespace(fr.Clusters)
		s.LineRuns = append(s.LineRuns, fr)
		if clipped {
			break
		}
		ri++
	}
	line.Runs = Range{Start: runStart, End: len(s.LineRuns)}
	line.Metrics = b.lineMetrics(line.Runs)

	s.Lines = append(s.Lines, line)

	st.cluster = end
	st.run = ri
	st.lines = len(s.Lines)
	st.lineRuns = len(s.LineRuns)

	return Extent{Width: line.Width, Height: line.Metrics.Height()}
}

// fragmentWhitespace reports whether every cluster in the range is
// whitespace.
func (b *Breaker) fragmentWhitespace(r Range) bool {
	for i := r.Start; i < r.End; i++ {
		if b.store.Clusters[i].Whitespace == WhitespaceNone {
			return false
		}
	}
	return r.Len() > 0
}

// lineMetrics resolves a line's metrics as the maximum over its
// non-whitespace-only runs. A line consisting entirely of whitespace takes
// its first run's metrics, so an empty-looking line still has height.
func (b *Breaker) lineMetrics(runs Range) Metrics {
	s := b.store
	var m Metrics
	found := false
	for i := runs.Start; i < runs.End; i++ {
		if s.LineRuns[i].Whitespace {
			continue
		}
		m = maxMetrics(m, s.LineRuns[i].Metrics)
		found = true
	}
	if !found && runs.Len() > 0 {
		m = s.LineRuns[runs.Start].Metrics
	}
	return m
}

// finalize runs the post-breaking passes over every line.
func (b *Breaker) finalize() {
	s := b.store
	n := len(s.Clusters)
	s.visual = resizeInts(s.visual, n)
	s.logical = resizeInts(s.logical, n)
	s.offsets = resizeFloats(s.offsets, n)

	var y float64
	for li := range s.Lines {
		line := &s.Lines[li]
		b.hangWhitespace(line)
		b.reorderLine(line)
		b.buildOffsets(line)
		b.align(line)

		line.Baseline = y + math.Round(line.Metrics.Ascent+line.Metrics.Leading/2)
		y = line.Baseline + math.Round(line.Metrics.Descent+line.Metrics.Leading/2)
	}
	s.finalized = true
}

// hangWhitespace measures the line's trailing whitespace (in logical
// order) and flags the run fragments that end in it.
func (b *Breaker) hangWhitespace(line *Line) {
	s := b.store
	hang := 0
	var adv float64
	for i := line.Clusters.End - 1; i >= line.Clusters.Start; i-- {
		if s.Clusters[i].Whitespace == WhitespaceNone {
			break
		}
		hang++
		adv += s.Clusters[i].Advance
	}
	line.Hang = hang
	line.HangAdvance = adv
	line.TrailingWhitespace = hang > 0

	if hang > 0 {
		hangStart := line.Clusters.End - hang
		for i := line.Runs.Start; i < line.Runs.End; i++ {
			fr := &s.LineRuns[i]
			if fr.Clusters.End > hangStart {
				fr.TrailingWhitespace = true
			}
		}
	}
}

// reorderLine permutes the line's run fragments into visual order when
// more than one embedding level is present (rule L2 over run levels).
func (b *Breaker) reorderLine(line *Line) {
	s := b.store
	count := line.Runs.Len()
	if count < 2 {
		return
	}

	b.levelScratch = b.levelScratch[:0]
	uniform := true
	for i := line.Runs.Start; i < line.Runs.End; i++ {
		b.levelScratch = append(b.levelScratch, s.LineRuns[i].Level)
		if s.LineRuns[i].Level != s.LineRuns[line.Runs.Start].Level {
			uniform = false
		}
	}
	if uniform {
		return
	}

	if cap(b.orderScratch) < count {
		b.orderScratch = make([]int, count)
	}
	order := bidi.ReorderInto(b.levelScratch, b.orderScratch[:count])

	b.runScratch = append(b.runScratch[:0], s.LineRuns[line.Runs.Start:line.Runs.End]...)
	for vi, logical := range order {
		s.LineRuns[line.Runs.Start+vi] = b.runScratch[logical]
	}
}

// buildOffsets fills the visual↔logical cluster tables and x offsets for
// one line: runs are walked in visual order, clusters within a
// right-to-left run in reverse logical order, accumulating advances.
func (b *Breaker) buildOffsets(line *Line) {
	s := b.store
	slot := line.Clusters.Start
	var x float64
	for ri := line.Runs.Start; ri < line.Runs.End; ri++ {
		run := &s.LineRuns[ri]
		if run.RTL() {
			for ci := run.Clusters.End - 1; ci >= run.Clusters.Start; ci-- {
				s.visual[slot] = ci
				s.logical[ci] = slot
				s.offsets[slot] = x
				x += s.Clusters[ci].Advance
				slot++
			}
		} else {
			for ci := run.Clusters.Start; ci < run.Clusters.End; ci++ {
				s.visual[slot] = ci
				s.logical[ci] = slot
				s.offsets[slot] = x
				x += s.Clusters[ci].Advance
				slot++
			}
		}
	}
}

// align shifts the line per its alignment. Trailing hanging whitespace is
// excluded from the remaining space so that, for example, end-aligned
// lines put their trailing space past the edge rather than shifting the
// visible text left.
func (b *Breaker) align(line *Line) {
	if line.MaxAdvance <= 0 || line.Alignment == AlignStart {
		return
	}
	remaining := line.MaxAdvance - (line.Width - line.HangAdvance)
	if remaining <= 0 {
		return
	}
	shift := remaining
	if line.Alignment == AlignMiddle {
		shift = remaining / 2
	}
	line.X = shift

	s := b.store
	for slot := line.Clusters.Start; slot < line.Clusters.End; slot++ {
		s.offsets[slot] += shift
	}
}

// resizeInts returns s resized to n entries, reusing capacity.
func resizeInts(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

// resizeFloats returns s resized to n entries, reusing capacity.
func resizeFloats(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
