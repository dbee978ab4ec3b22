package pipeline

import (
	"github.com/matzehuels/mondrian/pkg/mondrian"
)

// GenerateLayout computes the map of a loaded input.
func GenerateLayout(in *Input, opts Options) (mondrian.Layout, error) {
	opts.SetLayoutDefaults()
	return mondrian.Build(in.Dataset.Records, in.Selected(opts.MaxRelations),
		mondrian.WithTitle(opts.Title),
		mondrian.WithGrid(opts.Grid()),
		mondrian.WithThresholds(opts.Thresholds),
		mondrian.WithAreaScale(opts.AreaScale),
		mondrian.WithMinTileSide(opts.MinTileSide),
	)
}
