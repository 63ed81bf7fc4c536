package layout_test

import (
	"fmt"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/room"
)

func ExampleRandom() {
	l, err := layout.Random(layout.RandomConfig{
		Seed:       1,
		Count:      3,
		Catalog:    room.DefaultCatalog(),
		Palette:    room.DefaultPalette(),
		HalfExtent: 15,
	})
	if err != nil {
		panic(err)
	}
	for _, o := range l.Objects {
		fmt.Printf("%s %s (%.3f, %.2f, %.3f)\n",
			l.Catalog[o.Kind].Name, l.Palette[o.Color],
			o.Position.X(), o.Position.Y(), o.Position.Z())
	}
	// Output:
	// cylinder #0000ff (-8.998, 0.50, 14.251)
	// cylinder #0000ff (10.980, 0.50, 2.474)
	// box #0000ff (-12.062, 0.50, -6.875)
}

func ExampleStatic() {
	l, err := layout.Static(room.DefaultFurniture(), room.Environment{})
	if err != nil {
		panic(err)
	}
	for _, f := range l.Furniture {
		fmt.Printf("%s at %v\n", f.Name, f.Position)
	}
	// Output:
	// area rug at [-5 0.15 2]
	// coffee table at [-5 0.75 2]
	// sofa at [-8 0.35 2]
	// tv unit at [-5 0.35 4]
	// bedroom rug at [5 0.15 -4]
	// bed at [5 0.35 -4]
}
