package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/render/plan"
	"github.com/matzehuels/roomscene/pkg/render/scenegraph"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/scene"
)

// RenderLayout generates output artifacts in the requested formats.
// Options must have been validated with ValidateForRender.
func RenderLayout(ctx context.Context, l room.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// The scene graph is assembled at most once, on demand.
	var graph *scene.Graph
	sceneGraph := func() (*scene.Graph, error) {
		if graph != nil {
			return graph, nil
		}
		g, err := scene.Assemble(l)
		if err != nil {
			return nil, fmt.Errorf("assemble scene: %w", err)
		}
		graph = g
		return g, nil
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = plan.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatText:
			data, err = plan.RenderText(l)
		case FormatDOT, FormatGraphSVG:
			var g *scene.Graph
			if g, err = sceneGraph(); err != nil {
				return nil, err
			}
			dot := scenegraph.ToDOT(g, scenegraph.Options{Detailed: opts.Detailed})
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = scenegraph.RenderSVG(ctx, dot)
			}
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

// ValidateGrid rejects grid steps that would draw more than
// plan.MaxGridLines lines across the floor.
func ValidateGrid(floor room.Floor, step float64) error {
	if step == 0 {
		return nil
	}
	if plan.GridLines(floor.Width, step) > plan.MaxGridLines || plan.GridLines(floor.Depth, step) > plan.MaxGridLines {
		return errors.New(errors.ErrCodeInvalidInput,
			"grid step %v draws more than %d lines across a %vx%v floor", step, plan.MaxGridLines, floor.Width, floor.Depth)
	}
	return nil
}

// buildSVGOptions builds floor plan rendering options.
func buildSVGOptions(opts Options) []plan.SVGOption {
	var svgOpts []plan.SVGOption
	if opts.Scale > 0 {
		svgOpts = append(svgOpts, plan.WithScale(opts.Scale))
	}
	if opts.Labels {
		svgOpts = append(svgOpts, plan.WithLabels())
	}
	if opts.Grid > 0 {
		svgOpts = append(svgOpts, plan.WithGrid(opts.Grid))
	}
	return svgOpts
}
