package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/render"
)

// RenderLayout generates output artifacts for l in the requested formats.
// Style falls back to the one recorded in the layout.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts = applyLayoutMetadata(opts, l)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = render.RenderSVG(l, svgOpts...)
		}
		return svg
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			l.Style = opts.Style
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			l.Style = opts.Style
			data = []byte(render.ToDOT(l))
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

// applyLayoutMetadata applies layout metadata to options if not already set.
// This ensures that serialized layouts preserve their original rendering settings.
func applyLayoutMetadata(opts Options, l graph.Layout) Options {
	if opts.Style == "" && l.Style != "" {
		opts.Style = l.Style
	}
	return opts
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) ([]render.SVGOption, error) {
	style, err := render.StyleByName(opts.Style)
	if err != nil {
		return nil, err
	}
	return []render.SVGOption{
		render.WithStyle(style),
		render.WithSelected(opts.Selected),
		render.WithLabels(opts.Labels),
		render.WithAnimation(opts.Animate),
	}, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderLayout(ctx, parsed, opts)
}
