package mondrian

import (
	"fmt"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
)

// Default canvas: 1001×1001 split into 20×20 cells of 50 units, with grid
// lines at 0, 50, …, 1000.
const (
	DefaultCanvasSize = 1001
	DefaultCellSize   = 50
)

// Cell is a position on the grid partition. Col and Row are zero-based.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String returns "(col,row)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// GridSystem is the fixed cell partition of a canvas.
type GridSystem struct {
	Width      int `json:"width"`
	Height     int `json:"height"`
	CellWidth  int `json:"cell_width"`
	CellHeight int `json:"cell_height"`
}

// DefaultGridSystem returns the 20×20 grid over a 1001×1001 canvas.
func DefaultGridSystem() GridSystem {
	return GridSystem{
		Width:      DefaultCanvasSize,
		Height:     DefaultCanvasSize,
		CellWidth:  DefaultCellSize,
		CellHeight: DefaultCellSize,
	}
}

// NewGridSystem validates and returns a grid. The canvas must hold at least
// one cell in each direction and every cell must leave room for a minimum
// tile plus its outline.
func NewGridSystem(width, height, cellWidth, cellHeight int) (GridSystem, error) {
	g := GridSystem{Width: width, Height: height, CellWidth: cellWidth, CellHeight: cellHeight}
	if err := g.Validate(); err != nil {
		return GridSystem{}, err
	}
	return g, nil
}

// Validate reports the first invalid dimension as a ConfigError.
func (g GridSystem) Validate() error {
	minCell := int(2*LineWidth + MinTileSide)
	switch {
	case g.Width <= 0:
		return apperrors.NewConfigError("canvas.width", "must be positive, got %d", g.Width)
	case g.Height <= 0:
		return apperrors.NewConfigError("canvas.height", "must be positive, got %d", g.Height)
	case g.CellWidth < minCell:
		return apperrors.NewConfigError("canvas.cell_width", "must be at least %d, got %d", minCell, g.CellWidth)
	case g.CellHeight < minCell:
		return apperrors.NewConfigError("canvas.cell_height", "must be at least %d, got %d", minCell, g.CellHeight)
	case g.CellWidth > g.Width:
		return apperrors.NewConfigError("canvas.cell_width", "cell width %d exceeds canvas width %d", g.CellWidth, g.Width)
	case g.CellHeight > g.Height:
		return apperrors.NewConfigError("canvas.cell_height", "cell height %d exceeds canvas height %d", g.CellHeight, g.Height)
	}
	return nil
}

// Cols returns the number of cell columns.
func (g GridSystem) Cols() int { return g.Width / g.CellWidth }

// Rows returns the number of cell rows.
func (g GridSystem) Rows() int { return g.Height / g.CellHeight }

// Cells returns Cols × Rows.
func (g GridSystem) Cells() int { return g.Cols() * g.Rows() }

// Extent returns the drawable area covered by cells, anchored at the origin.
func (g GridSystem) Extent() Rect {
	return Rect{Right: float64(g.Cols() * g.CellWidth), Bottom: float64(g.Rows() * g.CellHeight)}
}

// InBounds reports whether (x, y) lies on the canvas, which may extend past
// the cell extent when the canvas size is not a multiple of the cell size.
func (g GridSystem) InBounds(x, y float64) bool {
	return x >= 0 && x <= float64(g.Width) && y >= 0 && y <= float64(g.Height)
}

// CellAt returns the cell containing (x, y). Points on the far edges of the
// extent, or in the strip between the extent and the canvas edge, belong to
// the last column or row.
func (g GridSystem) CellAt(x, y float64) Cell {
	col := min(max(int(x)/g.CellWidth, 0), g.Cols()-1)
	row := min(max(int(y)/g.CellHeight, 0), g.Rows()-1)
	return Cell{Col: col, Row: row}
}

// CellRect returns the bounds of c.
func (g GridSystem) CellRect(c Cell) Rect {
	l := float64(c.Col * g.CellWidth)
	t := float64(c.Row * g.CellHeight)
	return Rect{Left: l, Top: t, Right: l + float64(g.CellWidth), Bottom: t + float64(g.CellHeight)}
}

// Contains reports whether c is on the grid.
func (g GridSystem) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols() && c.Row >= 0 && c.Row < g.Rows()
}

// VerticalLines returns the x positions of cell boundaries.
func (g GridSystem) VerticalLines() []float64 {
	xs := make([]float64, g.Cols()+1)
	for i := range xs {
		xs[i] = float64(i * g.CellWidth)
	}
	return xs
}

// HorizontalLines returns the y positions of cell boundaries.
func (g GridSystem) HorizontalLines() []float64 {
	ys := make([]float64, g.Rows()+1)
	for i := range ys {
		ys[i] = float64(i * g.CellHeight)
	}
	return ys
}

// usable returns the largest tile that fits in a cell with its outline.
func (g GridSystem) usable() (w, h float64) {
	return float64(g.CellWidth) - 2*LineWidth, float64(g.CellHeight) - 2*LineWidth
}
