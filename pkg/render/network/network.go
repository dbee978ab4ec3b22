// Package network renders the crosstalk network of a Mondrian map as a
// Graphviz node-link diagram.
//
// Nodes are the pathways taking part in at least one relation, filled with
// their category color; edges are the relations, colored like the map's
// connectors.
//
//	dot := network.ToDOT(layout, network.Options{})
//	svg, err := network.RenderSVG(ctx, dot)
package network

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/render"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

// Options configures network diagram rendering.
type Options struct {
	// Detailed includes the pathway name and fold change in node labels.
	// When false, only the short ID is shown.
	Detailed bool
	// All includes pathways without relations as isolated nodes.
	All bool
}

// ToDOT converts the blocks and connectors of a layout to Graphviz DOT.
// Nodes are ordered by ID so the output is stable.
func ToDOT(l mondrian.Layout, opts Options) string {
	linked := make(map[string]bool)
	for _, c := range l.Connectors {
		linked[c.From] = true
		linked[c.To] = true
	}

	blocks := slices.Clone(l.Blocks)
	slices.SortFunc(blocks, func(a, b mondrian.Block) int { return strings.Compare(a.ID, b.ID) })

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, penwidth=3, color=\"#050103\", fontname=\"Helvetica\", fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [penwidth=4];\n")
	buf.WriteString("\n")

	for _, b := range blocks {
		if !opts.All && !linked[b.ID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(fmtAttrs(b, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, c := range l.Connectors {
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", c.From, c.To, string(c.Color))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(b mondrian.Block, detailed bool) string {
	if !detailed {
		return b.Label()
	}
	name := b.Name
	if name == "" {
		name = b.ID
	}
	return fmt.Sprintf("%s\n%s\nwFC %.3g", b.Label(), name, b.FoldChange)
}

func fmtAttrs(b mondrian.Block, detailed bool) []string {
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(b, detailed)),
		fmt.Sprintf("fillcolor=%q", string(b.Color)),
		fmt.Sprintf("fontcolor=%q", styles.TextColor(string(b.Color))),
		fmt.Sprintf("tooltip=%q", b.ID),
	}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
