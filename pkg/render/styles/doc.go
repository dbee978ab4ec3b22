// Package styles defines visual styles for Mondrian map rendering.
//
// All styles implement [Style], which renders tiles, lines and labels into
// an SVG buffer. Two styles are provided:
//
//   - [Classic]: solid tiles with thick black outlines
//   - [Flat]: no outlines, hairline tile edges
//
// Use [Lookup] to resolve a style by name:
//
//	style, err := styles.Lookup("flat")
//	svg := sink.RenderSVG(layout, sink.WithStyle(style))
package styles
