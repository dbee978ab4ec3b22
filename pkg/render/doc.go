// Package render turns Mondrian map layouts into files.
//
// # Overview
//
// Rendering is split by output:
//
//   - [sink]: SVG, PNG, PDF, JSON and CSV for a single map, plus the
//     multi-map canvas grid and the color legend
//   - [styles]: visual styles for tiles, lines and labels (classic, flat)
//   - [network]: the relation network as a Graphviz diagram
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both sinks and the network renderer use
// them.
//
//	svg := sink.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/mondrian/pkg/render/sink
// [styles]: github.com/matzehuels/mondrian/pkg/render/styles
// [network]: github.com/matzehuels/mondrian/pkg/render/network
package render
