package mondrian

import (
	"cmp"
	"maps"
	"slices"
	"strconv"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

// candidate is a record with its derived area and category, waiting for a cell.
type candidate struct {
	rec      pathway.Record
	area     float64
	category Category
	order    int
}

// placer assigns cells to candidates. Larger tiles go first so they keep
// their own cell; the rest spill into the nearest free cell.
type placer struct {
	grid     GridSystem
	minSide  float64
	occupied map[Cell]bool
}

func newPlacer(g GridSystem, minSide float64) *placer {
	return &placer{grid: g, minSide: minSide, occupied: make(map[Cell]bool)}
}

// place positions every candidate. Candidates that cannot be placed are
// returned as validation errors in input order; placed blocks keep
// placement order (area descending, ties in input order).
func (p *placer) place(cands []candidate) ([]Block, []*apperrors.ValidationError) {
	order := slices.Clone(cands)
	slices.SortStableFunc(order, func(a, b candidate) int {
		return cmp.Compare(b.area, a.area)
	})

	var (
		blocks   []Block
		rejected []candidate
		reasons  = make(map[int]*apperrors.ValidationError)
	)
	for _, c := range order {
		if !p.grid.InBounds(c.rec.X, c.rec.Y) {
			reasons[c.order] = apperrors.RowError(c.rec.Row, pathway.ColX, formatPoint(c.rec.X, c.rec.Y),
				"coordinates outside canvas [0, %d] × [0, %d]", p.grid.Width, p.grid.Height)
			rejected = append(rejected, c)
			continue
		}
		home := p.grid.CellAt(c.rec.X, c.rec.Y)
		cell, ok := p.nearestFree(home, Point{X: c.rec.X, Y: c.rec.Y})
		if !ok {
			reasons[c.order] = apperrors.RowError(c.rec.Row, pathway.ColID, c.rec.ID,
				"no free grid cell left (canvas holds %d tiles)", p.grid.Cells())
			rejected = append(rejected, c)
			continue
		}
		p.occupied[cell] = true
		blocks = append(blocks, p.block(c, cell, cell != home))
	}

	slices.SortFunc(rejected, func(a, b candidate) int { return cmp.Compare(a.order, b.order) })
	errs := make([]*apperrors.ValidationError, len(rejected))
	for i, c := range rejected {
		errs[i] = reasons[c.order]
	}
	return blocks, errs
}

// nearestFree searches Chebyshev rings around home. Within a ring the cell
// whose center is closest to pt wins, then the lower row, then the lower
// column.
func (p *placer) nearestFree(home Cell, pt Point) (Cell, bool) {
	if !p.occupied[home] {
		return home, true
	}
	if len(p.occupied) >= p.grid.Cells() {
		return Cell{}, false
	}
	maxRing := max(p.grid.Cols(), p.grid.Rows())
	for r := 1; r <= maxRing; r++ {
		var (
			best  Cell
			bestD float64
			found bool
		)
		for _, c := range ring(home, r) {
			if !p.grid.Contains(c) || p.occupied[c] {
				continue
			}
			ctr := p.grid.CellRect(c).Center()
			d := (ctr.X-pt.X)*(ctr.X-pt.X) + (ctr.Y-pt.Y)*(ctr.Y-pt.Y)
			if !found || d < bestD || (d == bestD && (c.Row < best.Row || (c.Row == best.Row && c.Col < best.Col))) {
				best, bestD, found = c, d, true
			}
		}
		if found {
			return best, true
		}
	}
	return Cell{}, false
}

// ring returns the cells at Chebyshev distance r from c.
func ring(c Cell, r int) []Cell {
	cells := make([]Cell, 0, 8*r)
	for dc := -r; dc <= r; dc++ {
		cells = append(cells, Cell{Col: c.Col + dc, Row: c.Row - r}, Cell{Col: c.Col + dc, Row: c.Row + r})
	}
	for dr := -r + 1; dr <= r-1; dr++ {
		cells = append(cells, Cell{Col: c.Col - r, Row: c.Row + dr}, Cell{Col: c.Col + r, Row: c.Row + dr})
	}
	return cells
}

func (p *placer) block(c candidate, cell Cell, displaced bool) Block {
	maxW, maxH := p.grid.usable()
	w, h := TileSize(c.area, maxW, maxH, p.minSide)
	ctr := p.grid.CellRect(cell).Center()
	return Block{
		ID:          c.rec.ID,
		Name:        c.rec.Name,
		FoldChange:  c.rec.FoldChange,
		PValue:      c.rec.PValue,
		X:           c.rec.X,
		Y:           c.rec.Y,
		Area:        c.area,
		Category:    c.category,
		Color:       c.category.Color(),
		Cell:        cell,
		Rect:        Rect{Left: ctr.X - w/2, Top: ctr.Y - h/2, Right: ctr.X + w/2, Bottom: ctr.Y + h/2},
		Displaced:   displaced,
		Description: c.rec.Description,
		Ontology:    c.rec.Ontology,
		Disease:     c.rec.Disease,
		Extra:       maps.Clone(c.rec.Extra),
		Row:         c.rec.Row,
	}
}

func formatPoint(x, y float64) string {
	return "(" + strconv.FormatFloat(x, 'g', -1, 64) + ", " + strconv.FormatFloat(y, 'g', -1, 64) + ")"
}
