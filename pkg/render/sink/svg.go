package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

// Output sizes in pixels.
const (
	DefaultSize   = 600.0
	MaximizedSize = 1000.0
)

const (
	framePadding = 10.0 // canvas units around the map
	titleHeight  = 40.0 // canvas units reserved above the map for the title
	titleFont    = 24.0
)

const tileInteractionCSS = `
    .tile { transition: opacity 0.15s ease; }
    .tile:hover { opacity: 0.8; }`

// SVGOption configures RenderSVG and RenderCanvas.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    styles.Style
	title    string
	showIDs  bool
	size     float64
	tooltips bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithTitle(t string) SVGOption       { return func(r *svgRenderer) { r.title = t } }
func WithIDs() SVGOption                 { return func(r *svgRenderer) { r.showIDs = true } }
func WithTooltips() SVGOption            { return func(r *svgRenderer) { r.tooltips = true } }

// WithMaximize renders at 1000px instead of 600px.
func WithMaximize() SVGOption { return func(r *svgRenderer) { r.size = MaximizedSize } }

// WithSize sets the output width in pixels.
func WithSize(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.size = px
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Classic{}, size: DefaultSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders a single map. The title defaults to the layout's title.
func RenderSVG(l mondrian.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	title := r.title
	if title == "" {
		title = l.Title
	}

	top := framePadding
	if title != "" {
		top += titleHeight
	}
	vbW := l.Width() + 2*framePadding
	vbH := l.Height() + top + framePadding
	pxW := r.size
	pxH := r.size * vbH / vbW

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vbW, vbH, pxW, pxH)
	r.style.RenderDefs(&buf)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)

	if title != "" {
		renderTitle(&buf, title, vbW/2, framePadding+titleHeight/2, titleFont)
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f)">`+"\n", framePadding, top)
	renderMap(&buf, &r, l)
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderMap draws the layout in its own coordinates: background, tiles,
// grid lines, borders, outlines, connectors, labels.
func renderMap(buf *bytes.Buffer, r *svgRenderer, l mondrian.Layout) {
	fmt.Fprintf(buf, `    <rect class="background" x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		l.Width(), l.Height(), mondrian.White)

	tiles := buildTiles(l, r.showIDs, r.tooltips)
	for _, t := range tiles {
		r.style.RenderTile(buf, t)
	}
	for _, group := range [][]mondrian.Line{l.GridLines, l.Borders, l.Outlines()} {
		for _, ln := range group {
			r.style.RenderLine(buf, styleLine(ln))
		}
	}
	for _, c := range l.Connectors {
		for _, ln := range c.Segments {
			r.style.RenderLine(buf, styleLine(ln))
		}
	}
	if r.showIDs {
		for _, t := range tiles {
			r.style.RenderLabel(buf, t)
		}
	}
}

func renderTitle(buf *bytes.Buffer, title string, x, y, size float64) {
	fmt.Fprintf(buf, `  <text class="title" x="%.1f" y="%.1f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" font-weight="bold" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		x, y, size, mondrian.Black, styles.EscapeXML(title))
}

func buildTiles(l mondrian.Layout, showIDs, tooltips bool) []styles.Tile {
	tiles := make([]styles.Tile, len(l.Blocks))
	for i, b := range l.Blocks {
		c := b.Center()
		t := styles.Tile{
			ID: b.ID,
			X:  b.Rect.Left, Y: b.Rect.Top,
			W: b.Rect.Width(), H: b.Rect.Height(),
			CX: c.X, CY: c.Y,
			Fill: string(b.Color),
		}
		if showIDs {
			t.Label = b.Label()
		}
		if tooltips {
			t.Tooltip = Tooltip(b, l.Thresholds)
		}
		tiles[i] = t
	}
	return tiles
}

func styleLine(ln mondrian.Line) styles.Line {
	return styles.Line{
		X1: ln.A.X, Y1: ln.A.Y, X2: ln.B.X, Y2: ln.B.Y,
		Color: string(ln.Color),
		Width: ln.Width,
		Kind:  string(ln.Kind),
	}
}

// Tooltip returns the hover text of a block.
func Tooltip(b mondrian.Block, th mondrian.Thresholds) string {
	var sb strings.Builder
	if b.Name != "" && b.Name != b.ID {
		fmt.Fprintf(&sb, "%s (%s)\n", b.Name, b.ID)
	} else {
		fmt.Fprintf(&sb, "%s\n", b.ID)
	}
	fmt.Fprintf(&sb, "wFC: %.4g  pFDR: %.3g\n", b.FoldChange, b.PValue)
	sb.WriteString(th.Describe(b.Category))
	if b.Description != "" {
		fmt.Fprintf(&sb, "\n%s", b.Description)
	}
	if b.Ontology != "" {
		fmt.Fprintf(&sb, "\nOntology: %s", b.Ontology)
	}
	if b.Disease != "" {
		fmt.Fprintf(&sb, "\nDisease: %s", b.Disease)
	}
	return sb.String()
}
