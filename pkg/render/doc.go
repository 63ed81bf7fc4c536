// Package render groups the visualization sinks for room layouts.
//
// # Overview
//
// A layout lives in three dimensions, but most places it has to be looked at
// (a terminal, a browser, a CI artifact) are flat. The sinks here give
// two-dimensional views of a layout without a GPU:
//
//   - Floor plans (in [plan] subpackage): a top-down SVG drawing and a
//     character raster of the floor, shared by the text output and the
//     terminal preview.
//   - Scene graphs (in [scenegraph] subpackage): the assembled scene graph as
//     Graphviz DOT, rendered in-process to SVG.
//
//	svg := plan.RenderSVG(layout, plan.WithScale(24), plan.WithLabels())
//	txt := plan.RenderText(layout)
//
//	g, _ := scene.Assemble(layout)
//	dot := scenegraph.ToDOT(g, scenegraph.Options{Detailed: true})
//	svg, err := scenegraph.RenderSVG(ctx, dot)
//
// The interactive 3D view is not a sink; it lives in the viewer behind the
// scene.Backend interface.
//
// [plan]: github.com/matzehuels/roomscene/pkg/render/plan
// [scenegraph]: github.com/matzehuels/roomscene/pkg/render/scenegraph
package render
