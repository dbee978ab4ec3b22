package mondrian

import (
	"maps"
	"slices"

	apperrors "github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/pathway"
)

// Layout is a computed Mondrian map: every shape a renderer needs.
type Layout struct {
	Title      string     `json:"title,omitempty"`
	Grid       GridSystem `json:"grid"`
	Thresholds Thresholds `json:"thresholds"`
	AreaScale  float64    `json:"area_scale"`

	// Blocks are in placement order: area descending, ties in input order.
	Blocks     []Block     `json:"blocks"`
	GridLines  []Line      `json:"grid_lines,omitempty"`
	Borders    []Line      `json:"borders,omitempty"`
	Connectors []Connector `json:"connectors,omitempty"`

	// Rejected holds records that were not placed, in input order.
	Rejected []*apperrors.ValidationError `json:"rejected,omitempty"`
}

// Width returns the canvas width.
func (l Layout) Width() float64 { return l.Grid.Extent().Width() }

// Height returns the canvas height.
func (l Layout) Height() float64 { return l.Grid.Extent().Height() }

// Outlines returns the outline strokes of every block.
func (l Layout) Outlines() []Line {
	lines := make([]Line, 0, 4*len(l.Blocks))
	for _, b := range l.Blocks {
		lines = append(lines, b.Outline()...)
	}
	return lines
}

// Block returns the block with the given ID.
func (l Layout) Block(id string) (Block, bool) {
	for _, b := range l.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// Counts returns the number of blocks per category.
func (l Layout) Counts() map[Category]int {
	n := make(map[Category]int, len(Categories()))
	for _, b := range l.Blocks {
		n[b.Category]++
	}
	return n
}

// Records converts the blocks back to pathway rows, in the order given by
// each block's source row.
func (l Layout) Records() []pathway.Record {
	blocks := slices.Clone(l.Blocks)
	slices.SortStableFunc(blocks, func(a, b Block) int { return a.Row - b.Row })
	recs := make([]pathway.Record, len(blocks))
	for i, b := range blocks {
		recs[i] = b.Record()
	}
	return recs
}

// =============================================================================
// Options
// =============================================================================

type options struct {
	title      string
	grid       GridSystem
	thresholds Thresholds
	areaScale  float64
	minSide    float64
}

// Option configures Build.
type Option func(*options)

// WithTitle sets the map title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithGrid sets the canvas partition. Defaults to DefaultGridSystem.
func WithGrid(g GridSystem) Option {
	return func(o *options) { o.grid = g }
}

// WithThresholds sets the classification table. Defaults to DefaultThresholds.
func WithThresholds(t Thresholds) Option {
	return func(o *options) { o.thresholds = t }
}

// WithAreaScale sets the area multiplier. Defaults to DefaultAreaScale.
func WithAreaScale(s float64) Option {
	return func(o *options) { o.areaScale = s }
}

// WithMinTileSide sets the smallest drawn tile side. Defaults to MinTileSide.
func WithMinTileSide(s float64) Option {
	return func(o *options) { o.minSide = s }
}

// =============================================================================
// Build
// =============================================================================

// Build lays out records on the grid and routes connectors for relations.
//
// Records that cannot be placed (coordinates off the canvas, no free cell,
// repeated IDs) are skipped and reported in Layout.Rejected; Build fails only
// on an invalid configuration. Relations whose endpoints were not placed,
// self loops, and repeats of an already routed pair are ignored.
func Build(records []pathway.Record, relations []pathway.Relation, opts ...Option) (Layout, error) {
	o := options{
		grid:       DefaultGridSystem(),
		thresholds: DefaultThresholds(),
		areaScale:  DefaultAreaScale,
		minSide:    MinTileSide,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.grid.Validate(); err != nil {
		return Layout{}, err
	}
	if err := o.thresholds.Validate(); err != nil {
		return Layout{}, err
	}
	if !(o.areaScale > 0) {
		return Layout{}, apperrors.NewConfigError("canvas.area_scale", "must be positive, got %v", o.areaScale)
	}
	maxW, maxH := o.grid.usable()
	if o.minSide < 0 || o.minSide > min(maxW, maxH) {
		return Layout{}, apperrors.NewConfigError("canvas.min_tile_side", "must be within [0, %g], got %v", min(maxW, maxH), o.minSide)
	}

	var (
		cands    []candidate
		rejected []*apperrors.ValidationError
		seen     = make(map[string]bool, len(records))
	)
	for i, r := range records {
		if seen[r.ID] {
			rejected = append(rejected, apperrors.RowError(r.Row, pathway.ColID, r.ID, "duplicate GS_ID"))
			continue
		}
		seen[r.ID] = true
		cands = append(cands, candidate{
			rec:      r,
			area:     Area(r.FoldChange, o.areaScale),
			category: o.thresholds.Classify(r.FoldChange, r.PValue),
			order:    i,
		})
	}

	blocks, unplaced := newPlacer(o.grid, o.minSide).place(cands)
	rejected = append(rejected, unplaced...)
	slices.SortStableFunc(rejected, func(a, b *apperrors.ValidationError) int { return a.Row - b.Row })

	extent := o.grid.Extent()
	tiles := make([]Rect, len(blocks))
	byID := make(map[string]Block, len(blocks))
	for i, b := range blocks {
		tiles[i] = b.Rect
		byID[b.ID] = b
	}

	l := Layout{
		Title:      o.title,
		Grid:       o.grid,
		Thresholds: o.thresholds,
		AreaScale:  o.areaScale,
		Blocks:     blocks,
		GridLines:  GridLines(extent, tiles),
		Borders:    BorderLines(extent),
		Rejected:   rejected,
	}

	rt := router{grid: o.grid, tiles: tiles}
	routed := make(map[[2]string]bool)
	for _, rel := range relations {
		s, ok1 := byID[rel.From]
		b, ok2 := byID[rel.To]
		if !ok1 || !ok2 || rel.From == rel.To {
			continue
		}
		if routed[[2]string{rel.From, rel.To}] || routed[[2]string{rel.To, rel.From}] {
			continue
		}
		routed[[2]string{rel.From, rel.To}] = true
		l.Connectors = append(l.Connectors, rt.connect(s, b))
	}
	return l, nil
}

// IDs returns the placed block IDs in sorted order.
func (l Layout) IDs() []string {
	ids := make(map[string]bool, len(l.Blocks))
	for _, b := range l.Blocks {
		ids[b.ID] = true
	}
	return slices.Sorted(maps.Keys(ids))
}
