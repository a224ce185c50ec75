package layout

// Store is the arena owning a paragraph's layout: flat arrays of clusters,
// logical runs, per-line run fragments and lines, cross-referenced by index
// ranges rather than pointers, plus the visual↔logical cluster mapping
// produced by finalize.
//
// Clear truncates the arrays without releasing capacity, so repeated layout
// of similarly sized paragraphs is allocation-stable.
type Store struct {
	// Clusters are the paragraph's clusters in logical (source) order.
	Clusters []Cluster

	// Runs are the logical runs: maximal cluster ranges sharing one
	// embedding level and style.
	Runs []Run

	// LineRuns are the per-line run fragments produced by line breaking.
	// Within a line they are in visual order once the layout is finalized.
	LineRuns []Run

	// Lines are the broken lines, in top-to-bottom order.
	Lines []Line

	// levels holds one embedding level per cluster, parallel to Clusters.
	levels []uint8

	// visual maps a visual slot to its logical cluster index, logical maps
	// back, and offsets holds the x offset of each visual slot within its
	// line (alignment included). Slots are global: the slots of line i are
	// exactly the indices of its cluster range.
	visual  []int
	logical []int
	offsets []float64

	finalized bool
}

// NewStore returns an empty Store.
func NewStore() *Store { return &Store{} }

// Clear empties the store for reuse, keeping all allocated capacity.
func (s *Store) Clear() {
	s.Clusters = s.Clusters[:0]
	s.Runs = s.Runs[:0]
	s.LineRuns = s.LineRuns[:0]
	s.Lines = s.Lines[:0]
	s.levels = s.levels[:0]
	s.visual = s.visual[:0]
	s.logical = s.logical[:0]
	s.offsets = s.offsets[:0]
	s.finalized = false
}

// Push appends a cluster with its embedding level, style id and metrics.
// Clusters sharing the previous cluster's level and style extend the
// current logical run; otherwise a new run starts.
//
// Cluster offsets must be non-overlapping and strictly increasing; Push
// does not re-sort.
func (s *Store) Push(c Cluster, level uint8, style int, m Metrics) {
	idx := len(s.Clusters)
	s.Clusters = append(s.Clusters, c)
	s.levels = append(s.levels, level)

	if n := len(s.Runs); n > 0 {
		last := &s.Runs[n-1]
		if last.Level == level && last.Style == style && last.Clusters.End == idx {
			last.Clusters.End = idx + 1
			last.Whitespace = last.Whitespace && c.Whitespace != WhitespaceNone
			return
		}
	}
	s.Runs = append(s.Runs, Run{
		Clusters:   Range{Start: idx, End: idx + 1},
		Level:      level,
		Style:      style,
		Metrics:    m,
		Whitespace: c.Whitespace != WhitespaceNone,
	})
}

// Finalized reports whether line breaking has been drained and finalized,
// making the visual order tables valid. Navigation queries require this.
func (s *Store) Finalized() bool { return s.finalized }

// Level returns the embedding level of a cluster.
func (s *Store) Level(cluster int) uint8 {
	if cluster < 0 || cluster >= len(s.levels) {
		return 0
	}
	return s.levels[cluster]
}

// VisualAt returns the logical cluster index displayed at the given visual
// slot. Valid only after finalize.
func (s *Store) VisualAt(slot int) int {
	if slot < 0 || slot >= len(s.visual) {
		return 0
	}
	return s.visual[slot]
}

// SlotOf returns the visual slot displaying the given logical cluster.
// Valid only after finalize.
func (s *Store) SlotOf(cluster int) int {
	if cluster < 0 || cluster >= len(s.logical) {
		return 0
	}
	return s.logical[cluster]
}

// XAt returns the x offset of the leading (visual-left) edge of the given
// visual slot within its line, with alignment applied. Valid only after
// finalize.
func (s *Store) XAt(slot int) float64 {
	if slot < 0 || slot >= len(s.offsets) {
		return 0
	}
	return s.offsets[slot]
}

// AdvanceAt returns the advance width of the cluster at a visual slot.
func (s *Store) AdvanceAt(slot int) float64 {
	if slot < 0 || slot >= len(s.visual) {
		return 0
	}
	return s.Clusters[s.visual[slot]].Advance
}

// EachVisual calls fn for every visual slot of a line in display order,
// passing the logical cluster index and the slot's x offset. This is the
// surface a rendering collaborator consumes. Valid only after finalize.
func (s *Store) EachVisual(line int, fn func(cluster int, x float64)) {
	if line < 0 || line >= len(s.Lines) {
		return
	}
	r := s.Lines[line].Clusters
	for slot := r.Start; slot < r.End; slot++ {
		fn(s.visual[slot], s.offsets[slot])
	}
}

// LineOf returns the index of the line containing the given logical
// cluster, clamped into the valid line range.
func (s *Store) LineOf(cluster int) int {
	lo, hi := 0, len(s.Lines)-1
	if hi < 0 {
		return 0
	}
	for lo < hi {
		mid := (lo + hi) / 2
		switch r := s.Lines[mid].Clusters; {
		case cluster < r.Start:
			hi = mid - 1
		case cluster >= r.End:
			lo = mid + 1
		default:
			return mid
		}
	}
	return lo
}

// Height returns the total height of the finalized layout.
func (s *Store) Height() float64 {
	if len(s.Lines) == 0 {
		return 0
	}
	last := &s.Lines[len(s.Lines)-1]
	return last.Baseline + last.Metrics.Descent + last.Metrics.Leading/2
}

// Width returns the widest line width of the layout.
func (s *Store) Width() float64 {
	var w float64
	for i := range s.Lines {
		if s.Lines[i].Width > w {
			w = s.Lines[i].Width
		}
	}
	return w
}

// Capacities reports the capacity of the store's backing arrays, exposed
// for allocation-stability checks in tests.
func (s *Store) Capacities() (clusters, runs, lineRuns, lines int) {
	return cap(s.Clusters), cap(s.Runs), cap(s.LineRuns), cap(s.Lines)
}
