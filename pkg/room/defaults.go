package room

import "math"

// Reference configuration of the randomized scene.
const (
	DefaultSeed          = int64(1)
	DefaultObjectCount   = 30
	DefaultHalfExtent    = 15.0
	DefaultRestingHeight = 0.5
)

// DefaultEnvironment returns the environment of the reference room: a light
// gray background, a 50×50 floor, soft white ambient light, a directional
// light from above-right, and a camera above and behind the origin.
func DefaultEnvironment() Environment {
	return Environment{
		Background: 0xf0f0f0,
		Floor: Floor{
			Width: 50,
			Depth: 50,
			Color: 0xaaaaaa,
		},
		Ambient: Light{
			Color:     0xffffff,
			Intensity: 0.6,
		},
		Directional: Light{
			Color:     0xffffff,
			Intensity: 0.8,
			Position:  Vec3{25, 50, 25},
		},
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: Vec3{0, 15, 25},
			Target:   Vec3{0, 0, 0},
		},
		Controls: Controls{
			Damping:       true,
			DampingFactor: 0.25,
			Zoom:          true,
		},
	}
}

// DefaultCatalog returns the reference primitive kinds: a unit box, a sphere
// of radius 0.5 and a cylinder of radius 0.5 and height 1.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "box", Shape: ShapeBox, Width: 1, Height: 1, Depth: 1},
		{Name: "sphere", Shape: ShapeSphere, Radius: 0.5},
		{Name: "cylinder", Shape: ShapeCylinder, Radius: 0.5, Height: 1},
	}
}

// DefaultPalette returns green, red and blue, in that order.
func DefaultPalette() Palette {
	return Palette{0x00ff00, 0xff0000, 0x0000ff}
}

// DefaultFurniture returns the hand-authored living room and bedroom pieces.
func DefaultFurniture() []Furniture {
	return []Furniture{
		{Name: "area rug", Color: 0x8b4513, Size: Vec3{6, 0.3, 2.5}, Position: Vec3{-5, 0.15, 2}},
		{Name: "coffee table", Color: 0xdeb887, Size: Vec3{2, 0.5, 1}, Position: Vec3{-5, 0.75, 2}},
		{Name: "sofa", Color: 0x4682b4, Size: Vec3{2, 0.7, 1}, Position: Vec3{-8, 0.35, 2}, RotationY: math.Pi / 2},
		{Name: "tv unit", Color: 0x4682b4, Size: Vec3{1, 0.7, 0.5}, Position: Vec3{-5, 0.35, 4}},
		{Name: "bedroom rug", Color: 0x8b4513, Size: Vec3{3, 0.3, 2}, Position: Vec3{5, 0.15, -4}},
		{Name: "bed", Color: 0x4682b4, Size: Vec3{2, 0.7, 1.5}, Position: Vec3{5, 0.35, -4}},
	}
}
