// Package pkg provides the core libraries for roomscene.
//
// # Overview
//
// Roomscene builds 3D room layouts: a floor, lights, a camera and objects
// that are either hand-placed furniture (the static variant) or primitives
// scattered by a seeded generator (the random variant). The same seed always
// yields the same room. The packages are organized as:
//
//  1. [room] - Data model (vectors, colors, catalog, palette, layouts, environment)
//  2. [sequence] - Seeded deterministic number sources
//  3. [layout] - Static and randomized layout policies
//  4. [scene] - Scene graph assembly, resource lifecycle, orbit camera and render loop
//  5. [pipeline] - Orchestration (options → layout → fingerprint → render)
//  6. [render] - Floor plan and scene graph sinks
//  7. [inspect] - Spread statistics and generator uniformity checks
//  8. [config] - Room files and environment overrides
//
// # Architecture
//
//	room file / flags / environment
//	         ↓
//	    [config] package (defaults + overrides)
//	         ↓
//	    [layout] package (static or random policy, fed by [sequence])
//	         ↓
//	    room.Layout
//	      ↙       ↘
//	[scene] graph   [render] sinks (SVG, text, DOT)
//	      ↓
//	3D viewer
//
// # Quick Start
//
//	l, err := layout.Random(layout.RandomConfig{
//	    Seed:       7,
//	    Count:      40,
//	    HalfExtent: 20,
//	    Catalog:    room.DefaultCatalog(),
//	    Palette:    room.DefaultPalette(),
//	})
//	if err != nil {
//	    return err
//	}
//	svg := plan.RenderSVG(l, plan.WithLabels())
//
// Or run the whole pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Seed:        7,
//	    ObjectCount: 40,
//	    HalfExtent:  20,
//	    Formats:     []string{pipeline.FormatSVG, pipeline.FormatDOT},
//	})
//
// [room]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/room
// [sequence]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/sequence
// [layout]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/render
// [inspect]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/inspect
// [config]: https://pkg.go.dev/github.com/matzehuels/roomscene/pkg/config
package pkg
