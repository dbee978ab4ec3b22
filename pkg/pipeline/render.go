package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/render/network"
	"github.com/matzehuels/mondrian/pkg/render/sink"
	"github.com/matzehuels/mondrian/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, l mondrian.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if opts.IsNetwork() {
		return renderNetwork(ctx, l, opts)
	}
	return renderMap(ctx, l, opts)
}

// renderMap generates map outputs.
func renderMap(ctx context.Context, l mondrian.Layout, opts Options) (map[string][]byte, error) {
	svgOpts, err := SVGOptions(opts)
	if err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatCSV:
			data, err = sink.RenderCSV(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNetwork generates relation network outputs.
func renderNetwork(ctx context.Context, l mondrian.Layout, opts Options) (map[string][]byte, error) {
	dot := network.ToDOT(l, network.Options{Detailed: opts.Detailed, All: opts.AllNodes})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = network.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = network.RenderPNG(ctx, dot, opts.PNGScale)
		case FormatPDF:
			data, err = network.RenderPDF(ctx, dot)
		default:
			return nil, fmt.Errorf("unsupported network format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render network %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// SVGOptions converts render options into SVG sink options.
func SVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.Lookup(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.ShowIDs {
		svgOpts = append(svgOpts, sink.WithIDs())
	}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	if opts.Maximize {
		svgOpts = append(svgOpts, sink.WithMaximize())
	}
	return svgOpts, nil
}
