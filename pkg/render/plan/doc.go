// Package plan renders top-down floor plans of room layouts.
//
// The plan looks straight down the Y axis. World X maps to the drawing's
// horizontal axis and world Z to its vertical axis, so an object at larger Z
// appears lower in the drawing, matching the default camera's view.
//
// # SVG
//
// [RenderSVG] draws the floor, then every object in layout order: boxes and
// planes as rotated rectangles, spheres and cylinders as circles. Later
// objects paint over earlier ones, exactly as draw order would in the 3D
// scene.
//
// # Raster
//
// [Rasterize] samples the floor on a character grid. Each cell records the
// last object covering it. [RenderText] prints a raster with a legend, and
// the terminal preview colors the same raster cell by cell.
package plan
