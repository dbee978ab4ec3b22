// Package mondrian computes Mondrian map layouts from pathway records.
//
// # Overview
//
// A Mondrian map places one colored tile per pathway on a square canvas that
// is partitioned into a fixed grid of cells. The tile's area grows with the
// magnitude of the pathway's fold change, its color encodes the direction
// and significance of the change, and thick Manhattan-style connector lines
// join pathways that share crosstalk.
//
// The layout runs in three stages:
//
//  1. Blocks: each record is classified ([Thresholds.Classify]), sized
//     ([Area], [TileSize]) and assigned a grid cell. Records are placed
//     largest first; a record whose cell is taken moves to the nearest free
//     cell. Tiles are centered in their cell.
//  2. Grid lines: thin light-gray lines are drawn at tile edges, running from
//     the canvas edge to the first tile and through gaps between tiles, but
//     never across a tile.
//  3. Connectors: related blocks are joined by orthogonal paths anchored at
//     tile corners. A path that would cross another tile is rerouted along
//     the cell boundaries, which tiles never touch.
//
// # Building a Layout
//
// Use [Build] with records and relations:
//
//	l, err := mondrian.Build(ds.Records, rels,
//	    mondrian.WithGrid(grid),
//	    mondrian.WithThresholds(mondrian.DefaultThresholds()),
//	)
//
// Invalid grid or threshold parameters fail the build with a
// [errors.ConfigError]. Individual records that cannot be placed (outside
// the canvas, or no free cell left) are reported in [Layout.Rejected] and the
// remaining records are laid out normally.
//
// # Coordinates
//
// Canvas coordinates start at the top-left corner with y growing downward,
// matching SVG. A canvas of width 1001 spans x = 0..1000.
package mondrian
