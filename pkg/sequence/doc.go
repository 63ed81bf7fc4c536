// Package sequence provides the seeded pseudo-random sequences that drive
// randomized room layouts.
//
// # Sine Generator
//
// The default generator maps a floating-point counter c to
//
//	frac(sin(c) * 10000)
//
// and then increments c by one. The counter starts at the seed. Output lies
// in [0, 1); a result that rounds up to exactly 1.0 is folded to 0.
//
// The sequence is not statistically strong. It is deterministic, cheap and
// reproducible across machines, which is all layout generation needs: the
// same seed always yields the same room.
//
// Use the pure form when state must be threaded explicitly:
//
//	v, s := sequence.Next(sequence.State(seed))
//	w, s := sequence.Next(s)
//
// or the owned form when a single consumer draws in order:
//
//	g := sequence.New(seed)
//	v := g.Next()
//
// # Alternative Sources
//
// [Source] abstracts over generators. [NewPCG] returns a source backed by
// math/rand/v2's PCG, and [NewSource] selects a source by [Algorithm] name.
//
// # Concurrency
//
// Generators are not safe for concurrent use. Each layout build owns its own
// generator; nothing in this package holds global state.
package sequence
