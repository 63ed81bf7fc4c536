package layout

import (
	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// RandomConfig parameterizes the randomized policy.
type RandomConfig struct {
	Seed  int64
	Count int

	Catalog room.Catalog
	Palette room.Palette

	// HalfExtent bounds positions: x and z lie in [-HalfExtent, HalfExtent).
	HalfExtent float64

	// RestingHeight is the center Y of kinds without a height dimension.
	// Nil selects room.DefaultRestingHeight; zero is a valid height.
	RestingHeight *float64

	// Source overrides the generator. When nil a sine generator seeded with
	// Seed is created for this call.
	Source sequence.Source

	// Env is the scene environment. A zero Env selects
	// room.DefaultEnvironment. A floor with zero width and depth is sized to
	// cover the placement square.
	Env room.Environment
}

// Validate reports the first configuration error.
func (c *RandomConfig) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateObjectCount(c.Count); err != nil {
		return err
	}
	if err := errors.ValidatePositive("floor half extent", c.HalfExtent); err != nil {
		return err
	}
	if c.RestingHeight != nil && !(*c.RestingHeight >= 0) {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"resting height must not be negative, got %v", *c.RestingHeight)
	}
	return nil
}

// Random places cfg.Count primitives on the floor.
//
// Object i consumes draws 4i..4i+3 as kind, color, x and z. Positions are
// 2E·v - E for extent E, and every object rests on the floor with zero
// rotation. Objects are returned in generation order.
func Random(cfg RandomConfig) (room.Layout, error) {
	if err := cfg.Validate(); err != nil {
		return room.Layout{}, err
	}

	src := cfg.Source
	if src == nil {
		src = sequence.New(cfg.Seed)
	}
	fallback := room.DefaultRestingHeight
	if cfg.RestingHeight != nil {
		fallback = *cfg.RestingHeight
	}

	env := cfg.Env
	if env == (room.Environment{}) {
		env = room.DefaultEnvironment()
		env.Floor.Width, env.Floor.Depth = 0, 0
	}
	if env.Floor.Width == 0 && env.Floor.Depth == 0 {
		env.Floor.Width = 2 * cfg.HalfExtent
		env.Floor.Depth = 2 * cfg.HalfExtent
	}
	if err := env.Validate(); err != nil {
		return room.Layout{}, err
	}

	objects := make([]room.PlacedObject, cfg.Count)
	for i := range objects {
		kind := pick(src.Next(), len(cfg.Catalog))
		color := pick(src.Next(), len(cfg.Palette))
		x := spread(src.Next(), cfg.HalfExtent)
		z := spread(src.Next(), cfg.HalfExtent)
		y := cfg.Catalog[kind].RestingHeight(fallback)
		objects[i] = room.PlacedObject{
			Kind:     kind,
			Color:    color,
			Position: room.Vec3{x, y, z},
		}
	}

	return room.Layout{
		Variant: room.VariantRandom,
		Seed:    cfg.Seed,
		Catalog: cfg.Catalog,
		Palette: cfg.Palette,
		Objects: objects,
		Env:     env,
	}, nil
}

// pick maps v in [0,1) to an index in [0,n).
func pick(v float64, n int) int {
	return min(int(v*float64(n)), n-1)
}

func spread(v, halfExtent float64) float64 {
	return v*2*halfExtent - halfExtent
}
