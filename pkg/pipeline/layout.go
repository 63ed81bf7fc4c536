package pipeline

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/matzehuels/roomscene/pkg/layout"
	"github.com/matzehuels/roomscene/pkg/room"
	"github.com/matzehuels/roomscene/pkg/sequence"
)

// GenerateLayout builds the layout described by opts. Options must have
// been validated with ValidateForLayout. It also returns the number of
// generator draws consumed.
func GenerateLayout(opts Options) (room.Layout, int, error) {
	if opts.IsStatic() {
		return generateStatic(opts)
	}
	return generateRandom(opts)
}

func generateStatic(opts Options) (room.Layout, int, error) {
	env := opts.Env
	if env != (room.Environment{}) && env.Floor.Width == 0 && env.Floor.Depth == 0 {
		def := room.DefaultEnvironment()
		env.Floor.Width, env.Floor.Depth = def.Floor.Width, def.Floor.Depth
	}
	l, err := layout.Static(opts.Furniture, env)
	return l, 0, err
}

func generateRandom(opts Options) (room.Layout, int, error) {
	alg, err := sequence.ParseAlgorithm(opts.Generator)
	if err != nil {
		return room.Layout{}, 0, err
	}
	src, err := sequence.NewSource(alg, opts.Seed)
	if err != nil {
		return room.Layout{}, 0, err
	}
	counter := &countingSource{Source: src}
	l, err := layout.Random(layout.RandomConfig{
		Seed:          opts.Seed,
		Count:         opts.ObjectCount,
		Catalog:       opts.Catalog,
		Palette:       opts.Palette,
		HalfExtent:    opts.HalfExtent,
		RestingHeight: opts.RestingHeight,
		Source:        counter,
		Env:           opts.Env,
	})
	return l, counter.draws, err
}

type countingSource struct {
	sequence.Source
	draws int
}

func (c *countingSource) Next() float64 {
	c.draws++
	return c.Source.Next()
}

// Fingerprint hashes the content of a layout: its variant, seed, catalog,
// palette, every object or furniture piece and the full environment. The
// result is a 16 digit hex string. Layouts with equal fingerprints render
// identically.
func Fingerprint(l room.Layout) string {
	h := xxhash.New()
	var buf [8]byte
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	putInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	// Strings are length-prefixed so adjacent fields cannot run together.
	putString := func(s string) {
		putInt(int64(len(s)))
		_, _ = h.WriteString(s)
	}
	putBool := func(b bool) {
		if b {
			putInt(1)
		} else {
			putInt(0)
		}
	}
	putVec := func(v room.Vec3) {
		for _, c := range v {
			putFloat(c)
		}
	}
	putLight := func(li room.Light) {
		putInt(int64(li.Color))
		putFloat(li.Intensity)
		putVec(li.Position)
	}

	putString(string(l.Variant))
	putInt(l.Seed)

	env := l.Env
	putInt(int64(env.Background))
	putFloat(env.Floor.Width)
	putFloat(env.Floor.Depth)
	putInt(int64(env.Floor.Color))
	putLight(env.Ambient)
	putLight(env.Directional)
	putFloat(env.Camera.FOV)
	putFloat(env.Camera.Near)
	putFloat(env.Camera.Far)
	putVec(env.Camera.Position)
	putVec(env.Camera.Target)
	putBool(env.Controls.Damping)
	putFloat(env.Controls.DampingFactor)
	putBool(env.Controls.Zoom)

	putInt(int64(len(l.Catalog)))
	for _, k := range l.Catalog {
		putString(k.Name)
		putString(string(k.Shape))
		putVec(k.Size())
	}
	putInt(int64(len(l.Palette)))
	for _, c := range l.Palette {
		putInt(int64(c))
	}
	putInt(int64(len(l.Objects)))
	for _, o := range l.Objects {
		putInt(int64(o.Kind))
		putInt(int64(o.Color))
		putVec(o.Position)
		putFloat(o.RotationY)
	}
	putInt(int64(len(l.Furniture)))
	for _, f := range l.Furniture {
		putString(f.Name)
		putInt(int64(f.Color))
		putVec(f.Size)
		putVec(f.Position)
		putFloat(f.RotationY)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
