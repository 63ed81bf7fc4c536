package plan

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/room"
)

func smallLayout() room.Layout {
	env := room.DefaultEnvironment()
	env.Floor.Width, env.Floor.Depth = 4, 4
	return room.Layout{
		Variant: room.VariantRandom,
		Catalog: room.DefaultCatalog(),
		Palette: room.DefaultPalette(),
		Objects: []room.PlacedObject{
			{Kind: 0, Color: 1, Position: room.Vec3{0.5, 0.5, -1.5}},
			{Kind: 1, Color: 2, Position: room.Vec3{-1.5, 0.5, 1.5}},
		},
		Env: env,
	}
}

func referenceRandom(t *testing.T) room.Layout {
	t.Helper()
	l, err := layout.Random(layout.RandomConfig{
		Seed:       1,
		Count:      30,
		Catalog:    room.DefaultCatalog(),
		Palette:    room.DefaultPalette(),
		HalfExtent: 15,
	})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func referenceStatic(t *testing.T) room.Layout {
	t.Helper()
	l, err := layout.Static(room.DefaultFurniture(), room.Environment{})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestRasterize(t *testing.T) {
	r, err := Rasterize(smallLayout(), 4, 4)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	want := "+----+\n" +
		"|..#.|\n" +
		"|....|\n" +
		"|....|\n" +
		"|o...|\n" +
		"+----+\n"
	if got := r.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if c := r.Cells[0][2]; c.Index != 0 || c.Color != 0xff0000 {
		t.Errorf("box cell = %+v", c)
	}
	if c := r.Cells[1][1]; c.Index != -1 || c.Glyph != FloorGlyph {
		t.Errorf("floor cell = %+v", c)
	}
}

func TestRasterizeDrawOrder(t *testing.T) {
	l := smallLayout()
	l.Objects[1].Position = l.Objects[0].Position
	r, err := Rasterize(l, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if c := r.Cells[0][2]; c.Index != 1 || c.Glyph != 'o' {
		t.Errorf("overlapping cell = %+v, want later sphere", c)
	}
}

func TestRasterizeClipsOutsideFloor(t *testing.T) {
	l := smallLayout()
	l.Objects[0].Position = room.Vec3{40, 0.5, 40}
	r, err := Rasterize(l, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(r.String(), "#") != 0 {
		t.Errorf("off-floor box drawn:\n%s", r)
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize(smallLayout(), 0, 4); err == nil {
		t.Error("zero columns accepted")
	}
	l := smallLayout()
	l.Env.Floor.Width = 0
	if _, err := Rasterize(l, 4, 4); err == nil {
		t.Error("zero floor accepted")
	}
	l = smallLayout()
	l.Objects[0].Kind = 7
	if _, err := Rasterize(l, 4, 4); err == nil {
		t.Error("dangling kind accepted")
	}
}

func TestRasterizeRotatedFurniture(t *testing.T) {
	env := room.DefaultEnvironment()
	env.Floor.Width, env.Floor.Depth = 6, 6
	l, err := layout.Static([]room.Furniture{
		{Name: "sofa", Color: 0x4682b4, Size: room.Vec3{3, 0.7, 1}, Position: room.Vec3{0.5, 0.35, 0.5}, RotationY: 1.5707963267948966},
	}, env)
	if err != nil {
		t.Fatal(err)
	}
	r, err := Rasterize(l, 6, 6)
	if err != nil {
		t.Fatal(err)
	}
	// Turned a quarter, the 3x1 sofa covers one column and three rows.
	covered := 0
	for z, row := range r.Cells {
		for x, c := range row {
			if c.Index == 0 {
				covered++
				if x != 3 {
					t.Errorf("sofa in column %d (row %d), want column 3", x, z)
				}
			}
		}
	}
	if covered != 3 {
		t.Errorf("sofa covers %d cells, want 3\n%s", covered, r)
	}
	if len(r.Legend) != 1 || r.Legend[0].Glyph != 'A' || r.Legend[0].Label != "sofa" {
		t.Errorf("legend = %+v", r.Legend)
	}
}

func TestRenderText(t *testing.T) {
	out, err := RenderText(referenceRandom(t))
	if err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	text := string(out)
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if lines[0] != "random layout, 30 objects, seed 1" {
		t.Errorf("header = %q", lines[0])
	}
	// header + border + 30 rows + border + 3 legend lines
	if len(lines) != 1+1+30+1+3 {
		t.Errorf("got %d lines", len(lines))
	}
	if len(lines[1]) != 62 {
		t.Errorf("border width = %d, want 62", len(lines[1]))
	}
	for _, want := range []string{"#  box", "o  sphere", "@  cylinder"} {
		if !strings.Contains(text, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}

func TestRenderTextStatic(t *testing.T) {
	out, err := RenderText(referenceStatic(t))
	if err != nil {
		t.Fatal(err)
	}
	text := string(out)
	if !strings.HasPrefix(text, "static layout, 6 objects\n") {
		t.Errorf("header = %q", strings.SplitN(text, "\n", 2)[0])
	}
	for _, want := range []string{"A  area rug", "F  bed"} {
		if !strings.Contains(text, want) {
			t.Errorf("legend missing %q", want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(referenceRandom(t)))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an SVG document: %.80s", svg)
	}
	if !strings.Contains(svg, `id="floor"`) || !strings.Contains(svg, `width="600.00" height="600.00" fill="#aaaaaa"`) {
		t.Error("floor rect missing or wrong size")
	}
	objects := strings.Count(svg, `id="obj-`)
	if objects != 30 {
		t.Errorf("drew %d objects, want 30", objects)
	}
	if !strings.Contains(svg, `fill="#f0f0f0"`) {
		t.Error("background missing")
	}
	if strings.Contains(svg, "<text") {
		t.Error("labels drawn without WithLabels")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(referenceStatic(t), WithScale(10), WithLabels(), WithGrid(1)))
	if !strings.Contains(svg, `width="500.00" height="500.00"`) {
		t.Error("scale not applied to floor")
	}
	if !strings.Contains(svg, ">coffee table</text>") {
		t.Error("labels missing")
	}
	if !strings.Contains(svg, `id="grid"`) || strings.Count(svg, "<line") != 2*51 {
		t.Errorf("grid lines = %d, want 102", strings.Count(svg, "<line"))
	}
	if !strings.Contains(svg, `transform="rotate(-90.00`) {
		t.Error("sofa rotation missing")
	}
}

func TestGridLines(t *testing.T) {
	tests := []struct {
		size, step float64
		want       int
	}{
		{50, 1, 51},
		{4, 3, 2},
		{30, 0.1, 301},
		{30, 0, 0},
		{30, -1, 0},
		{30, math.NaN(), 0},
		{30, math.Inf(1), 0},
		{30, 1e-300, MaxGridLines + 1},
	}
	for _, tt := range tests {
		if got := GridLines(tt.size, tt.step); got != tt.want {
			t.Errorf("GridLines(%v, %v) = %d, want %d", tt.size, tt.step, got, tt.want)
		}
	}
}

func TestRenderSVGTinyGrid(t *testing.T) {
	done := make(chan string, 1)
	go func() { done <- string(RenderSVG(smallLayout(), WithGrid(1e-300))) }()
	select {
	case svg := <-done:
		if strings.Contains(svg, `id="grid"`) {
			t.Error("grid drawn for a step beyond the line limit")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RenderSVG did not return")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(referenceRandom(t))
	b := RenderSVG(referenceRandom(t))
	if string(a) != string(b) {
		t.Error("same layout rendered differently")
	}
}
