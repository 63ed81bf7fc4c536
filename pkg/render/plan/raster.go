package plan

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/roomscene/pkg/room"
)

// FloorGlyph marks floor cells no object covers.
const FloorGlyph = '.'

var shapeGlyphs = map[room.Shape]rune{
	room.ShapeBox:      '#',
	room.ShapeSphere:   'o',
	room.ShapeCylinder: '@',
	room.ShapePlane:    '=',
}

// Cell is one raster sample. Index is -1 for bare floor.
type Cell struct {
	Glyph rune
	Color room.Color
	Index int
}

// Raster is a top-down character sampling of the floor. Row 0 is the
// most negative Z.
type Raster struct {
	Cols, Rows int
	Cells      [][]Cell
	Legend     []LegendEntry
}

// LegendEntry explains a glyph.
type LegendEntry struct {
	Glyph rune
	Label string
	Color room.Color
}

// Rasterize samples l's floor on a cols×rows grid. Objects are painted in
// layout order, so later objects cover earlier ones. Parts of objects
// outside the floor are clipped.
func Rasterize(l room.Layout, cols, rows int) (*Raster, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("raster size must be positive, got %dx%d", cols, rows)
	}
	floor := l.Env.Floor
	if floor.Width <= 0 || floor.Depth <= 0 {
		return nil, fmt.Errorf("floor size must be positive, got %vx%v", floor.Width, floor.Depth)
	}
	instances, err := l.Instances()
	if err != nil {
		return nil, err
	}

	r := &Raster{Cols: cols, Rows: rows, Cells: make([][]Cell, rows)}
	for z := range r.Cells {
		r.Cells[z] = make([]Cell, cols)
		for x := range r.Cells[z] {
			r.Cells[z][x] = Cell{Glyph: FloorGlyph, Color: floor.Color, Index: -1}
		}
	}

	cellW := floor.Width / float64(cols)
	cellD := floor.Depth / float64(rows)

	glyphs := glyphsFor(l, instances)
	for i, inst := range instances {
		w, d := footprint(inst)
		c0, c1 := span(inst.Position.X()+floor.Width/2, w, cellW)
		r0, r1 := span(inst.Position.Z()+floor.Depth/2, d, cellD)
		cell := Cell{Glyph: glyphs[i], Color: inst.Color, Index: inst.Index}
		for z := max(r0, 0); z <= min(r1, rows-1); z++ {
			for x := max(c0, 0); x <= min(c1, cols-1); x++ {
				r.Cells[z][x] = cell
			}
		}
	}
	r.Legend = legendFor(l, instances, glyphs)
	return r, nil
}

// span returns the inclusive cell range covered by an extent of the given
// size centered at offset, measured from the floor edge. Every object
// covers at least the cell holding its center.
func span(offset, size, cell float64) (first, last int) {
	first = int(math.Floor((offset - size/2) / cell))
	last = int(math.Ceil((offset+size/2)/cell)) - 1
	center := int(math.Floor(offset / cell))
	return min(first, center), max(last, center)
}

// footprint returns the XZ extent, swapping axes for pieces turned closer
// to a quarter turn than to square.
func footprint(inst room.Instance) (w, d float64) {
	w, d = inst.Size.X(), inst.Size.Z()
	if math.Abs(math.Sin(inst.RotationY)) > math.Sqrt2/2 {
		w, d = d, w
	}
	return w, d
}

// glyphsFor assigns shape glyphs to primitives and letters to furniture.
func glyphsFor(l room.Layout, instances []room.Instance) []rune {
	out := make([]rune, len(instances))
	for i, inst := range instances {
		switch {
		case l.IsStatic() && i < 26:
			out[i] = rune('A' + i)
		case l.IsStatic():
			out[i] = '*'
		default:
			g, ok := shapeGlyphs[inst.Shape]
			if !ok {
				g = '?'
			}
			out[i] = g
		}
	}
	return out
}

func legendFor(l room.Layout, instances []room.Instance, glyphs []rune) []LegendEntry {
	if l.IsStatic() {
		out := make([]LegendEntry, len(instances))
		for i, inst := range instances {
			out[i] = LegendEntry{Glyph: glyphs[i], Label: inst.Name, Color: inst.Color}
		}
		return out
	}
	var out []LegendEntry
	seen := map[room.Shape]bool{}
	for _, k := range l.Catalog {
		if seen[k.Shape] {
			continue
		}
		seen[k.Shape] = true
		g, ok := shapeGlyphs[k.Shape]
		if !ok {
			g = '?'
		}
		out = append(out, LegendEntry{Glyph: g, Label: string(k.Shape)})
	}
	return out
}

// String renders the raster framed by a border, without a legend.
func (r *Raster) String() string {
	var sb strings.Builder
	border := "+" + strings.Repeat("-", r.Cols) + "+\n"
	sb.WriteString(border)
	for _, row := range r.Cells {
		sb.WriteByte('|')
		for _, c := range row {
			sb.WriteRune(c.Glyph)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// DefaultTextSize picks a raster size for the floor: two columns per world
// unit across, one row per unit deep, which keeps proportions in a
// terminal font.
func DefaultTextSize(env room.Environment) (cols, rows int) {
	cols = max(1, int(math.Ceil(env.Floor.Width*2)))
	rows = max(1, int(math.Ceil(env.Floor.Depth)))
	return cols, rows
}

// RenderText renders l as a framed character plan followed by a legend.
func RenderText(l room.Layout) ([]byte, error) {
	cols, rows := DefaultTextSize(l.Env)
	r, err := Rasterize(l, cols, rows)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s layout, %d objects", l.Variant, l.Len())
	if l.IsRandom() {
		fmt.Fprintf(&sb, ", seed %d", l.Seed)
	}
	sb.WriteString("\n")
	sb.WriteString(r.String())
	for _, e := range r.Legend {
		fmt.Fprintf(&sb, "  %c  %s\n", e.Glyph, e.Label)
	}
	return []byte(sb.String()), nil
}
