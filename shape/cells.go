package shape

import (
	"github.com/mattn/go-runewidth"
)

// CellMeasurer measures clusters in terminal cells: each cluster's advance
// is its East Asian display width (via go-runewidth) times the width of
// one cell. This is the natural measurer for a monospace terminal surface,
// where the grid, not a font, dictates advances.
//
// A CellMeasurer is safe to reuse across paragraphs but not for concurrent
// use.
type CellMeasurer struct {
	// CellWidth is the advance of a single-width cell.
	CellWidth float64

	cond *runewidth.Condition
}

// NewCellMeasurer returns a measurer with the given cell width, honoring
// the ambient East Asian width handling of go-runewidth.
func NewCellMeasurer(cellWidth float64) *CellMeasurer {
	return &CellMeasurer{
		CellWidth: cellWidth,
		cond:      runewidth.NewCondition(),
	}
}

// NewCellMeasurerEastAsian returns a measurer that treats ambiguous-width
// characters as wide, for East Asian locales.
func NewCellMeasurerEastAsian(cellWidth float64) *CellMeasurer {
	c := runewidth.NewCondition()
	c.EastAsianWidth = true
	return &CellMeasurer{CellWidth: cellWidth, cond: c}
}

// Measure implements the Measurer interface. Control characters and
// zero-width clusters measure zero; emoji presentation sequences measure
// two cells, matching terminal convention.
func (m *CellMeasurer) Measure(cluster []rune) float64 {
	if len(cluster) == 0 {
		return 0
	}
	if IsEmojiCluster(cluster) {
		return 2 * m.CellWidth
	}
	cells := m.cond.StringWidth(string(cluster))
	return float64(cells) * m.CellWidth
}
