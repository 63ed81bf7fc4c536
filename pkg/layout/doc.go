// Package layout computes room layouts.
//
// Two policies produce a [room.Layout]:
//
//   - [Static] passes hand-authored furniture through unchanged, in order.
//   - [Random] places N primitives drawn from a catalog and palette at
//     uniformly distributed floor positions, driven by a seeded
//     [sequence.Source].
//
// Both are synchronous, allocate O(N), and share no state between calls.
// The randomized policy is fully determined by its configuration: the same
// seed, count, catalog, palette and extent always yield the same objects in
// the same order.
//
// # Draw Order
//
// For every object the randomized policy draws exactly four values, in this
// order: kind index, color index, x, z. Any change to that order changes
// every layout produced from a given seed.
package layout
