// Package scenegraph renders assembled scene graphs as Graphviz diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	g, _ := scene.Assemble(layout)
//	dot := scenegraph.ToDOT(g, scenegraph.Options{Detailed: true})
//	svg, err := scenegraph.RenderSVG(ctx, dot)
//
// The diagram has a single "scene" root with one child per graph node,
// grouped by kind. Mesh and floor nodes are filled with their material
// color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package scenegraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/scene"
)

// Options configures scene graph diagrams.
type Options struct {
	// Detailed adds shape, size and position to node labels.
	Detailed bool
}

const rootID = "scene"

// ToDOT converts a scene graph to Graphviz DOT.
func ToDOT(g *scene.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, shape=oval, fillcolor=%q];\n", rootID, rootLabel(g), g.Background.String())
	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q -> %q;\n", rootID, n.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rootLabel(g *scene.Graph) string {
	return fmt.Sprintf("%s scene\n%d nodes", g.Variant, len(g.Nodes))
}

func fmtLabel(n scene.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	parts := []string{n.Name}
	switch n.Kind {
	case scene.NodeFloor, scene.NodeMesh:
		parts = append(parts,
			fmt.Sprintf("%s %s", n.Shape, fmtVec(n.Size)),
			"at "+fmtVec(n.Position))
		if ry := n.Rotation.Y(); ry != 0 {
			parts = append(parts, fmt.Sprintf("rotY %.2f", ry))
		}
	case scene.NodeAmbient:
		parts = append(parts, fmt.Sprintf("intensity %.2f", n.Intensity))
	case scene.NodeDirectional:
		parts = append(parts, fmt.Sprintf("intensity %.2f", n.Intensity), "from "+fmtVec(n.Position))
	case scene.NodeCamera:
		parts = append(parts, "at "+fmtVec(n.Position))
	}
	return strings.Join(parts, "\n")
}

func fmtVec(v room.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}

func fmtAttrs(n scene.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	switch n.Kind {
	case scene.NodeFloor, scene.NodeMesh:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color.String()), fmt.Sprintf("fontcolor=%q", contrast(n.Color)))
	case scene.NodeAmbient, scene.NodeDirectional:
		attrs = append(attrs, "shape=diamond", "style=\"filled\"", "fillcolor=\"#fff3b0\"")
	case scene.NodeCamera:
		attrs = append(attrs, "shape=house", "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// contrast picks black or white text for a fill color.
func contrast(c room.Color) string {
	r, g, b := c.RGB()
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luma > 140 {
		return "#000000"
	}
	return "#ffffff"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// pixel-sized one so the diagram scales like the floor plan.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
