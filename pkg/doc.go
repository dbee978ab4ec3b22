// Package pkg provides the core libraries for Mondrian map visualization.
//
// # Overview
//
// A Mondrian map draws each biological pathway of an experiment as a
// colored rectangle on a fixed grid: the tile's area encodes the magnitude
// of the pathway's fold change, its color encodes the direction and
// significance of the regulation, and Manhattan connectors link pathways
// that share crosstalk. The pkg directory is organized into these areas:
//
//  1. [pathway] - Input records, pathway info and relations
//  2. [mondrian] - The layout engine (grid, tiles, lines, connectors)
//  3. [render] - Output sinks (SVG, PNG, PDF, JSON, CSV, network)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//  5. [cache], [store], [config], [stats] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Pathway CSV (+ relations CSV, + pathway info JSON)
//	         ↓
//	    [pathway] package (parse and validate rows)
//	         ↓
//	    [mondrian] package (classify, size, place, route)
//	         ↓
//	    [render/sink] package (draw)
//	         ↓
//	    SVG/PDF/PNG/JSON/CSV output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/mondrian/pkg/mondrian"
//	    "github.com/matzehuels/mondrian/pkg/pathway"
//	    "github.com/matzehuels/mondrian/pkg/render/sink"
//	)
//
//	ds, _ := pathway.LoadCSV("wt_mp_gene_set.csv")
//	rels, _ := pathway.LoadRelations("wt_mp_network.csv")
//	rels = pathway.SelectRelations(rels, ds.Has, 2)
//
//	l, _ := mondrian.Build(ds.Records, rels, mondrian.WithTitle("WT"))
//	svg := sink.RenderSVG(l, sink.WithIDs())
//
// # Main Packages
//
// [pathway] - CSV parsing with per-row validation. Bad rows are collected
// as [errors.ValidationError] values instead of aborting the load.
//
// [mondrian] - Deterministic layout. Given the same records, relations and
// options, [mondrian.Build] always returns the same tiles, grid lines and
// connectors.
//
// [render] - Format conversion (SVG to PDF/PNG via rsvg-convert) and the
// [render/sink], [render/styles] and [render/network] subpackages.
//
// [pipeline] - The load → layout → render pipeline shared by the CLI and
// the HTTP explorer, with artifact caching through [cache].
//
// [stats] - Dataset summaries: category counts, fold change statistics and
// crosstalk hubs.
//
// [pathway]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/pathway
// [mondrian]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/mondrian
// [mondrian.Build]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/mondrian#Build
// [render]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/render/sink
// [render/styles]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/render/styles
// [render/network]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/render/network
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/config
// [stats]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/stats
// [errors.ValidationError]: https://pkg.go.dev/github.com/matzehuels/mondrian/pkg/errors#ValidationError
package pkg
