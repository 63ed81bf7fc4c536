package sequence

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// amplitude scales sin(c) so that its fractional part varies quickly
// between consecutive integer counters.
const amplitude = 10000

// State is the generator counter.
type State float64

// Next returns the value for counter s and the advanced counter.
func Next(s State) (float64, State) {
	return frac(math.Sin(float64(s)) * amplitude), s + 1
}

func frac(x float64) float64 {
	v := x - math.Floor(x)
	if v >= 1 {
		return 0
	}
	return v
}

// Source produces values in [0, 1).
type Source interface {
	Next() float64
}

// Generator is the owned form of the sine sequence.
type Generator struct {
	seed  int64
	state State
	draws int
}

// New returns a generator whose counter starts at seed.
func New(seed int64) *Generator {
	return &Generator{seed: seed, state: State(seed)}
}

// Next returns the next value and advances the counter.
func (g *Generator) Next() float64 {
	var v float64
	v, g.state = Next(g.state)
	g.draws++
	return v
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() int64 { return g.seed }

// State returns the current counter.
func (g *Generator) State() State { return g.state }

// Draws returns how many values have been drawn since creation or Reset.
func (g *Generator) Draws() int { return g.draws }

// Reset rewinds the generator to its seed.
func (g *Generator) Reset() {
	g.state = State(g.seed)
	g.draws = 0
}

// PCG is a Source backed by math/rand/v2's PCG generator.
type PCG struct {
	rng *rand.Rand
}

// NewPCG seeds a PCG source. Equal seeds produce equal sequences.
func NewPCG(seed int64) *PCG {
	s := uint64(seed)
	return &PCG{rng: rand.New(rand.NewPCG(s, s^0xdeadbeef))}
}

// Next returns the next value in [0, 1).
func (p *PCG) Next() float64 { return p.rng.Float64() }

// Algorithm names a Source implementation.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmSine Algorithm = "sine"
	AlgorithmPCG  Algorithm = "pcg"
)

// ParseAlgorithm validates an algorithm name. The empty string selects
// AlgorithmSine.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case "", AlgorithmSine:
		return AlgorithmSine, nil
	case AlgorithmPCG:
		return AlgorithmPCG, nil
	default:
		return "", fmt.Errorf("invalid generator: %q (must be one of: sine, pcg)", s)
	}
}

// NewSource returns a fresh source of the given algorithm seeded with seed.
func NewSource(alg Algorithm, seed int64) (Source, error) {
	switch alg {
	case "", AlgorithmSine:
		return New(seed), nil
	case AlgorithmPCG:
		return NewPCG(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", alg)
	}
}
