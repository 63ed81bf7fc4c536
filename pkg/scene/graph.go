// Package scene converts layouts into renderer-neutral scene graphs and
// manages the lifecycle of the renderer resources built from them.
//
// [Assemble] is pure: it maps a [room.Layout] to a [Graph] of floor, mesh,
// light and camera nodes. An [Assembler] hands each graph to a [Backend] to
// acquire GPU (or other) resources and tracks the result under a [Handle]
// until [Assembler.Dispose] releases it.
//
//	asm := scene.NewAssembler(backend, logger)
//	defer asm.Close()
//
//	err := scene.With(ctx, asm, layout, func(h scene.Handle, g *scene.Graph) error {
//	    _, err := scene.Loop(ctx, window, frame)
//	    return err
//	})
//
// [Loop] drives a render loop one explicit [Frame] at a time, and [Orbit]
// steers the camera from drag and wheel input.
package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/roomscene/pkg/room"
)

// NodeKind classifies scene graph nodes.
type NodeKind string

// Node kinds.
const (
	NodeFloor       NodeKind = "floor"
	NodeMesh        NodeKind = "mesh"
	NodeAmbient     NodeKind = "ambient_light"
	NodeDirectional NodeKind = "directional_light"
	NodeCamera      NodeKind = "camera"
)

// Well-known node IDs.
const (
	FloorID       = "floor"
	AmbientID     = "ambient"
	DirectionalID = "sun"
	CameraID      = "camera"
)

// Node is one element of a scene graph. Which fields are meaningful depends
// on Kind: meshes and the floor use Shape, Size and Color; lights use Color,
// Intensity and Position.
type Node struct {
	ID       string
	Kind     NodeKind
	Name     string
	Shape    room.Shape
	Size     room.Vec3
	Color    room.Color
	Position room.Vec3
	// Rotation holds Euler angles in radians, applied X then Y then Z.
	Rotation  room.Vec3
	Intensity float64
}

// Graph is a flat, ordered scene graph. Nodes appear in the order floor,
// meshes (layout order), ambient light, directional light, camera.
type Graph struct {
	Variant    room.Variant
	Background room.Color
	Camera     room.Camera
	Controls   room.Controls
	Nodes      []Node
}

// Meshes returns the floor and mesh nodes in draw order.
func (g *Graph) Meshes() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.Kind == NodeFloor || n.Kind == NodeMesh {
			out = append(out, n)
		}
	}
	return out
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Assemble converts a layout into a scene graph.
func Assemble(l room.Layout) (*Graph, error) {
	instances, err := l.Instances()
	if err != nil {
		return nil, fmt.Errorf("resolve layout: %w", err)
	}

	env := l.Env
	g := &Graph{
		Variant:    l.Variant,
		Background: env.Background,
		Camera:     env.Camera,
		Controls:   env.Controls,
		Nodes:      make([]Node, 0, len(instances)+4),
	}

	g.Nodes = append(g.Nodes, Node{
		ID:       FloorID,
		Kind:     NodeFloor,
		Name:     "floor",
		Shape:    room.ShapePlane,
		Size:     room.Vec3{env.Floor.Width, 0, env.Floor.Depth},
		Color:    env.Floor.Color,
		Rotation: room.Vec3{-math.Pi / 2, 0, 0},
	})

	for _, inst := range instances {
		g.Nodes = append(g.Nodes, Node{
			ID:       fmt.Sprintf("mesh-%d", inst.Index),
			Kind:     NodeMesh,
			Name:     inst.Name,
			Shape:    inst.Shape,
			Size:     inst.Size,
			Color:    inst.Color,
			Position: inst.Position,
			Rotation: room.Vec3{0, inst.RotationY, 0},
		})
	}

	g.Nodes = append(g.Nodes,
		Node{
			ID:        AmbientID,
			Kind:      NodeAmbient,
			Name:      "ambient light",
			Color:     env.Ambient.Color,
			Intensity: env.Ambient.Intensity,
		},
		Node{
			ID:        DirectionalID,
			Kind:      NodeDirectional,
			Name:      "directional light",
			Color:     env.Directional.Color,
			Intensity: env.Directional.Intensity,
			Position:  env.Directional.Position,
		},
		Node{
			ID:       CameraID,
			Kind:     NodeCamera,
			Name:     "camera",
			Position: env.Camera.Position,
		},
	)
	return g, nil
}
