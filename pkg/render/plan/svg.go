package plan

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/matzehuels/roomscene/pkg/room"
)

const (
	defaultScale  = 20.0
	defaultMargin = 20.0

	// MaxGridLines bounds the grid lines drawn along either floor axis.
	MaxGridLines = 10000
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale    float64
	margin   float64
	labels   bool
	gridStep float64
}

// WithScale sets pixels per world unit.
func WithScale(px float64) SVGOption { return func(r *svgRenderer) { r.scale = px } }

// WithLabels writes each object's name at its center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithGrid draws floor grid lines every step world units. Steps that would
// draw more than MaxGridLines lines along an axis are ignored.
func WithGrid(step float64) SVGOption { return func(r *svgRenderer) { r.gridStep = step } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: defaultScale, margin: defaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = defaultScale
	}
	return r
}

// bounds is a world-space XZ rectangle.
type bounds struct {
	minX, maxX, minZ, maxZ float64
}

func (b *bounds) include(x, z, half float64) {
	b.minX = min(b.minX, x-half)
	b.maxX = max(b.maxX, x+half)
	b.minZ = min(b.minZ, z-half)
	b.maxZ = max(b.maxZ, z+half)
}

func planBounds(env room.Environment, instances []room.Instance) bounds {
	fw, fd := env.Floor.Width/2, env.Floor.Depth/2
	b := bounds{minX: -fw, maxX: fw, minZ: -fd, maxZ: fd}
	for _, inst := range instances {
		// Half diagonal covers any rotation.
		half := math.Hypot(inst.Size.X(), inst.Size.Z()) / 2
		b.include(inst.Position.X(), inst.Position.Z(), half)
	}
	return b
}

// RenderSVG renders l as a top-down SVG floor plan. Layouts whose objects
// reference missing catalog or palette entries render the floor only.
func RenderSVG(l room.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	instances, _ := l.Instances()
	b := planBounds(l.Env, instances)

	width := (b.maxX-b.minX)*r.scale + 2*r.margin
	height := (b.maxZ-b.minZ)*r.scale + 2*r.margin
	px := func(x float64) float64 { return (x-b.minX)*r.scale + r.margin }
	pz := func(z float64) float64 { return (z-b.minZ)*r.scale + r.margin }

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", l.Env.Background)

	floor := l.Env.Floor
	fx, fz := px(-floor.Width/2), pz(-floor.Depth/2)
	fmt.Fprintf(&buf, `  <rect id="floor" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
		fx, fz, floor.Width*r.scale, floor.Depth*r.scale, floor.Color)

	if nx, nz := GridLines(floor.Width, r.gridStep), GridLines(floor.Depth, r.gridStep); nx > 0 && nx <= MaxGridLines && nz <= MaxGridLines {
		renderGrid(&buf, r, floor, px, pz)
	}

	for _, inst := range instances {
		renderInstance(&buf, r, inst, px(inst.Position.X()), pz(inst.Position.Z()))
	}

	if r.labels {
		for _, inst := range instances {
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				px(inst.Position.X()), pz(inst.Position.Z()), r.scale*0.4, html.EscapeString(inst.Name))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// GridLines returns the number of grid lines a step draws across a floor
// dimension, or zero when step is not a positive finite number.
func GridLines(size, step float64) int {
	if !(step > 0) || math.IsInf(step, 0) {
		return 0
	}
	n := math.Floor(size/step + 1e-9)
	if n > MaxGridLines {
		return MaxGridLines + 1
	}
	return int(n) + 1
}

func renderGrid(buf *bytes.Buffer, r svgRenderer, floor room.Floor, px, pz func(float64) float64) {
	hw, hd := floor.Width/2, floor.Depth/2
	buf.WriteString(`  <g id="grid" stroke="#000000" stroke-opacity="0.1" stroke-width="1">` + "\n")
	for i := range GridLines(floor.Width, r.gridStep) {
		x := -hw + float64(i)*r.gridStep
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", px(x), pz(-hd), px(x), pz(hd))
	}
	for i := range GridLines(floor.Depth, r.gridStep) {
		z := -hd + float64(i)*r.gridStep
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", px(-hw), pz(z), px(hw), pz(z))
	}
	buf.WriteString("  </g>\n")
}

func renderInstance(buf *bytes.Buffer, r svgRenderer, inst room.Instance, cx, cy float64) {
	id := fmt.Sprintf("obj-%d", inst.Index)
	switch inst.Shape {
	case room.ShapeSphere, room.ShapeCylinder:
		fmt.Fprintf(buf, `  <circle id="%s" class="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="#333333" stroke-width="1"/>`+"\n",
			id, inst.Shape, cx, cy, inst.Size.X()/2*r.scale, inst.Color)
	default:
		w, d := inst.Size.X()*r.scale, inst.Size.Z()*r.scale
		fmt.Fprintf(buf, `  <rect id="%s" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="#333333" stroke-width="1"`,
			id, inst.Shape, cx-w/2, cy-d/2, w, d, inst.Color)
		if inst.RotationY != 0 {
			// Positive rotation about +Y turns +X toward -Z, which is
			// counterclockwise in a Y-down drawing.
			fmt.Fprintf(buf, ` transform="rotate(%.2f %.2f %.2f)"`, -inst.RotationY*180/math.Pi, cx, cy)
		}
		buf.WriteString("/>\n")
	}
}
