package room

import (
	"github.com/matzehuels/roomscene/pkg/errors"
)

// Shape identifies the mesh a primitive kind is drawn with.
type Shape string

// Supported primitive shapes.
const (
	ShapeBox      Shape = "box"
	ShapeSphere   Shape = "sphere"
	ShapeCylinder Shape = "cylinder"
	ShapePlane    Shape = "plane"
)

// Kind is one entry of an object kind catalog: a primitive shape together
// with the intrinsic dimensions needed to draw it and to compute where it
// rests on the floor.
//
// Height is the kind's height dimension. Kinds without one (spheres) leave
// it zero; their resting height then comes from configuration instead of
// being derived from Radius.
type Kind struct {
	Name   string  `toml:"name" yaml:"name"`
	Shape  Shape   `toml:"shape" yaml:"shape"`
	Width  float64 `toml:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `toml:"height,omitempty" yaml:"height,omitempty"`
	Depth  float64 `toml:"depth,omitempty" yaml:"depth,omitempty"`
	Radius float64 `toml:"radius,omitempty" yaml:"radius,omitempty"`
}

// HasHeight reports whether the kind exposes a height dimension.
func (k Kind) HasHeight() bool { return k.Height > 0 }

// RestingHeight returns the center Y at which the kind sits on the floor:
// half its height, or fallback for kinds without a height dimension.
func (k Kind) RestingHeight(fallback float64) float64 {
	if k.HasHeight() {
		return k.Height / 2
	}
	return fallback
}

// Size returns the axis-aligned extent of one instance of the kind.
func (k Kind) Size() Vec3 {
	switch k.Shape {
	case ShapeSphere:
		d := 2 * k.Radius
		return Vec3{d, d, d}
	case ShapeCylinder:
		d := 2 * k.Radius
		return Vec3{d, k.Height, d}
	case ShapePlane:
		return Vec3{k.Width, 0, k.Depth}
	default:
		return Vec3{k.Width, k.Height, k.Depth}
	}
}

// Validate checks that the kind has a known shape and the dimensions that
// shape needs.
func (k Kind) Validate() error {
	switch k.Shape {
	case ShapeBox:
		for i, v := range []float64{k.Width, k.Height, k.Depth} {
			if v <= 0 {
				return errors.New(errors.ErrCodeInvalidConfiguration,
					"kind %q: box dimension %d must be positive, got %v", k.Name, i, v)
			}
		}
	case ShapeSphere:
		if k.Radius <= 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"kind %q: sphere radius must be positive, got %v", k.Name, k.Radius)
		}
	case ShapeCylinder:
		if k.Radius <= 0 || k.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"kind %q: cylinder needs positive radius and height", k.Name)
		}
	case ShapePlane:
		if k.Width <= 0 || k.Depth <= 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration,
				"kind %q: plane needs positive width and depth", k.Name)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"kind %q: unknown shape %q (must be one of: box, sphere, cylinder, plane)", k.Name, k.Shape)
	}
	return nil
}

// Catalog is the ordered sequence of primitive kinds a randomized layout
// draws from. Order is significant: placed objects store indices into it.
type Catalog []Kind

// Validate checks that the catalog is non-empty and every kind is valid.
func (c Catalog) Validate() error {
	if err := errors.ValidateNonEmpty("object kind catalog", len(c)); err != nil {
		return err
	}
	for _, k := range c {
		if err := k.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Palette is the ordered sequence of colors a randomized layout draws from.
type Palette []Color

// Validate checks that the palette is non-empty.
func (p Palette) Validate() error {
	return errors.ValidateNonEmpty("color palette", len(p))
}
