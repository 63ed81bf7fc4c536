package room

import (
	"github.com/matzehuels/roomscene/pkg/errors"
)

// Floor is the ground plane, centered on the origin in the XZ plane.
type Floor struct {
	Width float64 `toml:"width" yaml:"width"`
	Depth float64 `toml:"depth" yaml:"depth"`
	Color Color   `toml:"color" yaml:"color"`
}

// Light is an ambient or directional light. Position is ignored for ambient
// lights; for directional lights it is the point the light shines from
// toward the origin.
type Light struct {
	Color     Color   `toml:"color" yaml:"color"`
	Intensity float64 `toml:"intensity" yaml:"intensity"`
	Position  Vec3    `toml:"position,omitempty" yaml:"position,omitempty"`
}

// Camera is the fixed perspective camera pose the orbit controls start from.
type Camera struct {
	FOV      float64 `toml:"fov" yaml:"fov"` // vertical, degrees
	Near     float64 `toml:"near" yaml:"near"`
	Far      float64 `toml:"far" yaml:"far"`
	Position Vec3    `toml:"position" yaml:"position"`
	Target   Vec3    `toml:"target" yaml:"target"`
}

// Controls configures orbit-style navigation.
type Controls struct {
	Damping       bool    `toml:"damping" yaml:"damping"`
	DampingFactor float64 `toml:"damping_factor" yaml:"damping_factor"`
	Zoom          bool    `toml:"zoom" yaml:"zoom"`
}

// Environment holds everything scene assembly needs besides the objects.
type Environment struct {
	Background  Color    `toml:"background" yaml:"background"`
	Floor       Floor    `toml:"floor" yaml:"floor"`
	Ambient     Light    `toml:"ambient" yaml:"ambient"`
	Directional Light    `toml:"directional" yaml:"directional"`
	Camera      Camera   `toml:"camera" yaml:"camera"`
	Controls    Controls `toml:"controls" yaml:"controls"`
}

// Validate checks the dimensions the renderer cannot work without.
func (e Environment) Validate() error {
	if err := errors.ValidatePositive("floor width", e.Floor.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("floor depth", e.Floor.Depth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("camera fov", e.Camera.FOV); err != nil {
		return err
	}
	if e.Camera.Near <= 0 || e.Camera.Far <= e.Camera.Near {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"camera clip planes must satisfy 0 < near < far, got near=%v far=%v", e.Camera.Near, e.Camera.Far)
	}
	return nil
}
