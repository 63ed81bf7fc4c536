package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/matzehuels/roomscene/pkg/errors"
)

// Environment variables that override room file values.
const (
	EnvSeed        = "ROOMSCENE_SEED"
	EnvObjectCount = "ROOMSCENE_OBJECT_COUNT"
	EnvHalfExtent  = "ROOMSCENE_FLOOR_HALF_EXTENT"
	EnvGenerator   = "ROOMSCENE_GENERATOR"
	EnvVariant     = "ROOMSCENE_VARIANT"
)

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "load %s", p)
		}
	}
	return nil
}

// ApplyEnv overrides fields from ROOMSCENE_* variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError(EnvSeed, v, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvObjectCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(EnvObjectCount, v, err)
		}
		c.ObjectCount = n
	}
	if v, ok := lookup(EnvHalfExtent); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError(EnvHalfExtent, v, err)
		}
		c.HalfExtent = f
	}
	if v, ok := lookup(EnvGenerator); ok {
		c.Generator = v
	}
	if v, ok := lookup(EnvVariant); ok {
		c.Variant = v
	}
	return nil
}

func envError(name, value string, err error) error {
	return errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "%s=%q", name, value)
}
