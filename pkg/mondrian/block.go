package mondrian

import (
	"maps"

	"github.com/matzehuels/mondrian/pkg/pathway"
)

// Block is one pathway's tile on the map.
type Block struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	FoldChange float64  `json:"wfc"`
	PValue     float64  `json:"pfdr"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Area       float64  `json:"area"`
	Category   Category `json:"category"`
	Color      Color    `json:"color"`
	Cell       Cell     `json:"cell"`
	Rect       Rect     `json:"rect"`

	// Displaced is set when the record's own cell was taken and the block
	// moved to the nearest free one.
	Displaced bool `json:"displaced,omitempty"`

	Description string `json:"description,omitempty"`
	Ontology    string `json:"ontology,omitempty"`
	Disease     string `json:"disease,omitempty"`

	// Extra holds the input columns the layout does not interpret.
	Extra map[string]string `json:"extra,omitempty"`
	Row   int               `json:"row,omitempty"`
}

// Label returns the short ID drawn on the tile.
func (b Block) Label() string { return pathway.ShortID(b.ID) }

// Center returns the center of the tile.
func (b Block) Center() Point { return b.Rect.Center() }

// Bounds returns the tile including its outline stroke.
func (b Block) Bounds() Rect { return b.Rect.Expand(adjust) }

// Corners returns the tile corners in TopLeft, TopRight, BottomLeft,
// BottomRight order.
func (b Block) Corners() [4]Corner {
	r := b.Rect
	return [4]Corner{
		{Point: Point{X: r.Left, Y: r.Top}, Pos: TopLeft},
		{Point: Point{X: r.Right, Y: r.Top}, Pos: TopRight},
		{Point: Point{X: r.Left, Y: r.Bottom}, Pos: BottomLeft},
		{Point: Point{X: r.Right, Y: r.Bottom}, Pos: BottomRight},
	}
}

// Outline returns the four thick black strokes drawn clockwise around the tile.
func (b Block) Outline() []Line {
	r := b.Rect
	return []Line{
		newLine(Point{r.Left - adjust, r.Top}, Point{r.Right + adjust, r.Top}, Black, LineWidth, KindOutline),
		newLine(Point{r.Right, r.Top - adjust}, Point{r.Right, r.Bottom + adjust}, Black, LineWidth, KindOutline),
		newLine(Point{r.Right + adjust, r.Bottom}, Point{r.Left - adjust, r.Bottom}, Black, LineWidth, KindOutline),
		newLine(Point{r.Left, r.Bottom + adjust}, Point{r.Left, r.Top - adjust}, Black, LineWidth, KindOutline),
	}
}

// Record converts the block back to the pathway row it was built from.
// Coordinates are the original (x, y), not the tile position.
func (b Block) Record() pathway.Record {
	return pathway.Record{
		ID:          b.ID,
		Name:        b.Name,
		FoldChange:  b.FoldChange,
		PValue:      b.PValue,
		X:           b.X,
		Y:           b.Y,
		Description: b.Description,
		Ontology:    b.Ontology,
		Disease:     b.Disease,
		Extra:       maps.Clone(b.Extra),
		Row:         b.Row,
	}
}
