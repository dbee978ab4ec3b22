// Package sink writes Mondrian map layouts in output formats.
//
// # Formats
//
//   - [RenderSVG]: a single map, optionally titled, labeled and with hover
//     tooltips
//   - [RenderPNG], [RenderPDF]: the SVG converted by rsvg-convert
//   - [RenderJSON]: the full layout, readable by mondrian.UnmarshalLayout
//   - [RenderCSV]: one row per block; the file loads back as a dataset
//   - [RenderCanvas]: several maps in a rows × cols grid
//   - [RenderLegend]: the category color key
//
// SVG output is sized at 600px wide by default and 1000px with
// [WithMaximize]. Styles come from the styles package:
//
//	style, _ := styles.Lookup("classic")
//	svg := sink.RenderSVG(layout, sink.WithStyle(style), sink.WithIDs(), sink.WithTooltips())
package sink
