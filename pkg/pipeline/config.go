package pipeline

import "github.com/matzehuels/mondrian/pkg/config"

// FromConfig returns options carrying the layout and render settings of c.
// Input fields are left empty.
func FromConfig(c config.Config) Options {
	return Options{
		Width:        c.Canvas.Width,
		Height:       c.Canvas.Height,
		CellWidth:    c.Canvas.CellWidth,
		CellHeight:   c.Canvas.CellHeight,
		AreaScale:    c.Canvas.AreaScale,
		MinTileSide:  c.Canvas.MinTileSide,
		Thresholds:   c.Thresholds,
		MaxRelations: c.Relations.Max,
		Style:        c.Render.Style,
		ShowIDs:      c.Render.ShowIDs,
		Tooltips:     c.Render.Tooltips,
		Maximize:     c.Render.Maximize,
		PNGScale:     c.Render.PNGScale,
	}
}
