// Package config loads room configuration from TOML or YAML files, .env
// files and ROOMSCENE_* environment variables.
//
// Precedence, lowest first: built-in defaults, the room file, the process
// environment (after .env loading), command-line flags. Flags are applied by
// the CLI on top of the Config this package returns.
//
// A room file in TOML:
//
//	variant = "random"
//	seed = 7
//	object_count = 40
//	floor_half_extent = 20
//	palette = ["green", "#ff8800"]
//
//	[[catalog]]
//	name = "crate"
//	shape = "box"
//	width = 1
//	height = 2
//	depth = 1
//
// Keys that are absent keep their defaults. A present catalog, palette or
// furniture list replaces the default list as a whole.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/roomscene/pkg/errors"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// Format is a room file encoding.
type Format string

// Supported room file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the complete, file-level room configuration.
type Config struct {
	Variant       string  `toml:"variant" yaml:"variant"`
	Seed          int64   `toml:"seed" yaml:"seed"`
	ObjectCount   int     `toml:"object_count" yaml:"object_count"`
	HalfExtent    float64 `toml:"floor_half_extent" yaml:"floor_half_extent"`
	RestingHeight float64 `toml:"resting_height" yaml:"resting_height"`
	Generator     string  `toml:"generator" yaml:"generator"`

	Catalog   room.Catalog     `toml:"catalog" yaml:"catalog"`
	Palette   room.Palette     `toml:"palette" yaml:"palette"`
	Furniture []room.Furniture `toml:"furniture" yaml:"furniture"`

	// Environment defaults to room.DefaultEnvironment with a zero floor
	// size. A zero floor is sized by the layout policy.
	Environment room.Environment `toml:"environment" yaml:"environment"`
}

// Default returns the reference configuration.
func Default() *Config {
	c := scalarDefaults()
	c.fillLists()
	return c
}

// scalarDefaults returns defaults with nil lists, ready to decode into.
func scalarDefaults() *Config {
	env := room.DefaultEnvironment()
	env.Floor.Width, env.Floor.Depth = 0, 0
	return &Config{
		Variant:       string(room.VariantRandom),
		Seed:          room.DefaultSeed,
		ObjectCount:   room.DefaultObjectCount,
		HalfExtent:    room.DefaultHalfExtent,
		RestingHeight: room.DefaultRestingHeight,
		Generator:     string(sequence.AlgorithmSine),
		Environment:   env,
	}
}

func (c *Config) fillLists() {
	if c.Catalog == nil {
		c.Catalog = room.DefaultCatalog()
	}
	if c.Palette == nil {
		c.Palette = room.DefaultPalette()
	}
	if c.Furniture == nil {
		c.Furniture = room.DefaultFurniture()
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported config file %q (must end in .toml, .yaml or .yml)", path)
	}
}

// Load reads and validates the room file at path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open config file %s", path)
	}
	defer f.Close()

	c, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	return c, c.Validate()
}

// Decode reads a room file in the given format on top of the defaults.
func Decode(r io.Reader, format Format) (*Config, error) {
	switch format {
	case FormatTOML:
		return LoadTOML(r)
	case FormatYAML:
		return LoadYAML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported config format %q", format)
	}
}

// LoadTOML decodes a TOML room file. Unknown keys are rejected.
func LoadTOML(r io.Reader) (*Config, error) {
	c := scalarDefaults()
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse TOML config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown config key %q", undecoded[0].String())
	}
	c.fillLists()
	return c, nil
}

// LoadYAML decodes a YAML room file. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read YAML config")
	}
	c := scalarDefaults()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse YAML config")
		}
	}
	c.fillLists()
	return c, nil
}

// Validate checks the options shared by both layout variants and the
// options of the selected variant.
func (c *Config) Validate() error {
	variant, err := room.ParseVariant(c.Variant)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "variant")
	}
	if _, err := sequence.ParseAlgorithm(c.Generator); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "generator")
	}
	if variant == room.VariantStatic {
		return nil
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.Palette.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateObjectCount(c.ObjectCount); err != nil {
		return err
	}
	return errors.ValidatePositive("floor half extent", c.HalfExtent)
}
