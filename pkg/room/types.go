package room

import (
	"fmt"
	"strconv"
	"strings"
)

// Vec3 is a point or extent in world space, ordered X, Y, Z.
type Vec3 [3]float64

// X returns the first component.
func (v Vec3) X() float64 { return v[0] }

// Y returns the second (up) component.
func (v Vec3) Y() float64 { return v[1] }

// Z returns the third component.
func (v Vec3) Z() float64 { return v[2] }

// Color is a 24-bit RGB color packed as 0xRRGGBB.
//
// In TOML and YAML files colors are written as strings: "#8b4513",
// "0x8b4513" or one of the names in [namedColors].
type Color uint32

// namedColors are accepted by UnmarshalText in addition to hex notation.
var namedColors = map[string]Color{
	"black":  0x000000,
	"white":  0xffffff,
	"red":    0xff0000,
	"green":  0x00ff00,
	"blue":   0x0000ff,
	"yellow": 0xffff00,
	"gray":   0x808080,
	"grey":   0x808080,
}

// RGB returns the three 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String formats the color as "#rrggbb".
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rrggbb", "0xrrggbb", "rrggbb" or a color name.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}
