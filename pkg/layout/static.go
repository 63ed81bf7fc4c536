package layout

import (
	"fmt"

	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/room"
)

// floorEpsilon absorbs rounding in authored positions.
const floorEpsilon = 1e-9

// Static returns a layout holding furniture in the given order. A zero env
// selects room.DefaultEnvironment.
//
// Every size component must be positive. Whether pieces rest on the floor is
// not enforced; see [BelowFloor].
func Static(furniture []room.Furniture, env room.Environment) (room.Layout, error) {
	for i, f := range furniture {
		for axis, v := range f.Size {
			name := fmt.Sprintf("furniture %d (%s) size[%d]", i, f.Name, axis)
			if err := errors.ValidatePositive(name, v); err != nil {
				return room.Layout{}, err
			}
		}
	}
	if env == (room.Environment{}) {
		env = room.DefaultEnvironment()
	}
	if err := env.Validate(); err != nil {
		return room.Layout{}, err
	}

	pieces := make([]room.Furniture, len(furniture))
	copy(pieces, furniture)
	return room.Layout{
		Variant:   room.VariantStatic,
		Furniture: pieces,
		Env:       env,
	}, nil
}

// BelowFloor returns the pieces whose bottom face lies below y=0.
func BelowFloor(furniture []room.Furniture) []room.Furniture {
	var out []room.Furniture
	for _, f := range furniture {
		if f.Base() < -floorEpsilon {
			out = append(out, f)
		}
	}
	return out
}
