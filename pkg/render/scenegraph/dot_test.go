package scenegraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/scene"
)

func staticGraph(t *testing.T) *scene.Graph {
	t.Helper()
	l, err := layout.Static(room.DefaultFurniture(), room.Environment{})
	if err != nil {
		t.Fatal(err)
	}
	g, err := scene.Assemble(l)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(staticGraph(t), Options{})

	if !strings.HasPrefix(dot, "digraph scene {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("malformed DOT:\n%s", dot)
	}
	// floor + 6 furniture + 2 lights + camera
	if got := strings.Count(dot, `"scene" -> `); got != 10 {
		t.Errorf("edges = %d, want 10", got)
	}
	for _, want := range []string{
		`"mesh-2" [label="sofa", fillcolor="#4682b4", fontcolor="#ffffff"]`,
		`"floor" [label="floor", fillcolor="#aaaaaa", fontcolor="#000000"]`,
		`"sun" [label="directional light", shape=diamond`,
		`"camera" [label="camera", shape=house`,
		`label="static scene\n10 nodes"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s", want)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(staticGraph(t), Options{Detailed: true})
	for _, want := range []string{
		`sofa\nbox (2.00, 0.70, 1.00)\nat (-8.00, 0.35, 2.00)\nrotY 1.57`,
		`directional light\nintensity 0.80\nfrom (25.00, 50.00, 25.00)`,
		`ambient light\nintensity 0.60`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %s", want)
		}
	}
}

func TestContrast(t *testing.T) {
	tests := []struct {
		c    room.Color
		want string
	}{
		{0xffffff, "#000000"},
		{0x000000, "#ffffff"},
		{0x00ff00, "#000000"},
		{0x0000ff, "#ffffff"},
	}
	for _, tt := range tests {
		if got := contrast(tt.c); got != tt.want {
			t.Errorf("contrast(%v) = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="200pt" height="100pt" viewBox="0.00 0.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200.00 100.00" width="200" height="100">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg></svg>")); string(got) != "<svg></svg>" {
		t.Errorf("no viewBox changed input: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(staticGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "coffee table") {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}
