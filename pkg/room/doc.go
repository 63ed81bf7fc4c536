// Package room defines the data contracts shared by the layout policies,
// scene assembly and the render sinks.
//
// # Overview
//
// A [Layout] is the complete, immutable description of one scene instance:
// an ordered list of placed primitives (randomized variant) or hand-authored
// furniture (static variant), together with the [Environment] the renderer
// needs (floor, lights, camera, orbit controls).
//
// Placed primitives reference their shape and color by index:
//
//	obj := layout.Objects[0]
//	kind := layout.Catalog[obj.Kind]
//	color := layout.Palette[obj.Color]
//
// [Layout.Instances] resolves those indices into a flat list that both kinds
// of layout share, so consumers do not need to branch on the variant.
//
// # Coordinates
//
// The scene is Y-up. The floor lies in the XZ plane at Y=0 and is centered on
// the origin. Positions are object centers; an object rests on the floor when
// its center Y equals half its height.
//
// # Lifecycle
//
// Layouts are built once per scene initialization, handed to scene assembly,
// and then discarded. Nothing in this module mutates a Layout after a policy
// returns it.
package room
