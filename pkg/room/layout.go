package room

import (
	"fmt"
)

// Variant discriminates how a layout was produced.
type Variant string

// Layout variants.
const (
	VariantStatic Variant = "static"
	VariantRandom Variant = "random"
)

// ParseVariant validates a variant name.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantStatic, VariantRandom:
		return Variant(s), nil
	default:
		return "", fmt.Errorf("invalid variant: %q (must be one of: static, random)", s)
	}
}

// PlacedObject is one concrete instance of a catalog kind positioned in the
// scene. Kind and Color are indices into the owning layout's Catalog and
// Palette.
type PlacedObject struct {
	Kind      int
	Color     int
	Position  Vec3
	RotationY float64 // radians
}

// Furniture is an author-supplied static furniture descriptor. Size is the
// box extent (width, height, depth); Position is the box center.
type Furniture struct {
	Name      string  `toml:"name" yaml:"name"`
	Color     Color   `toml:"color" yaml:"color"`
	Size      Vec3    `toml:"size" yaml:"size"`
	Position  Vec3    `toml:"position" yaml:"position"`
	RotationY float64 `toml:"rotation_y,omitempty" yaml:"rotation_y,omitempty"`
}

// Base returns the Y coordinate of the bottom face.
func (f Furniture) Base() float64 {
	return f.Position.Y() - f.Size.Y()/2
}

// Layout is the ordered description of one scene's objects plus its
// environment. Exactly one of Objects or Furniture is populated, according
// to Variant.
//
//	Random ("random"):
//	  - Objects: placed primitives in generation order
//	  - Catalog, Palette: what the object indices refer to
//	  - Seed: the seed the objects were generated from
//
//	Static ("static"):
//	  - Furniture: descriptors in authoring order
type Layout struct {
	Variant Variant
	Seed    int64

	Catalog   Catalog
	Palette   Palette
	Objects   []PlacedObject
	Furniture []Furniture

	Env Environment
}

// IsStatic returns true if this is a static furniture layout.
func (l *Layout) IsStatic() bool { return l.Variant == VariantStatic }

// IsRandom returns true if this is a randomized primitive layout.
func (l *Layout) IsRandom() bool { return l.Variant == VariantRandom }

// Len returns the number of objects in the layout.
func (l *Layout) Len() int {
	if l.IsStatic() {
		return len(l.Furniture)
	}
	return len(l.Objects)
}

// Instance is a placed object with its catalog and palette references
// resolved. Static furniture resolves to box instances.
type Instance struct {
	Index     int
	Name      string
	Shape     Shape
	Size      Vec3
	Color     Color
	Position  Vec3
	RotationY float64
}

// Instances resolves the layout into a flat, ordered instance list.
// It returns an error if a placed object references a kind or color outside
// the layout's catalog or palette.
func (l *Layout) Instances() ([]Instance, error) {
	if l.IsStatic() {
		out := make([]Instance, len(l.Furniture))
		for i, f := range l.Furniture {
			out[i] = Instance{
				Index:     i,
				Name:      f.Name,
				Shape:     ShapeBox,
				Size:      f.Size,
				Color:     f.Color,
				Position:  f.Position,
				RotationY: f.RotationY,
			}
		}
		return out, nil
	}

	out := make([]Instance, len(l.Objects))
	for i, o := range l.Objects {
		if o.Kind < 0 || o.Kind >= len(l.Catalog) {
			return nil, fmt.Errorf("object %d: kind index %d out of range [0,%d)", i, o.Kind, len(l.Catalog))
		}
		if o.Color < 0 || o.Color >= len(l.Palette) {
			return nil, fmt.Errorf("object %d: color index %d out of range [0,%d)", i, o.Color, len(l.Palette))
		}
		k := l.Catalog[o.Kind]
		out[i] = Instance{
			Index:     i,
			Name:      fmt.Sprintf("%s-%d", k.Name, i),
			Shape:     k.Shape,
			Size:      k.Size(),
			Color:     l.Palette[o.Color],
			Position:  o.Position,
			RotationY: o.RotationY,
		}
	}
	return out, nil
}
