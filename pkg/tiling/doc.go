// Package tiling provides the immutable tiling model: tiles, per-tile
// constraints, and the validated [State] snapshot with its derived seams.
//
// # Invariants
//
// A [State] is a perfect partition of the 100×100 container. [New] enforces,
// at construction time and never incrementally:
//
//  1. No two tiles overlap (shared extent greater than ε on both axes)
//  2. Every tile lies inside the container
//  3. The tile areas sum to the container area within [AreaTolerance]
//
// A violation is a structural error from pkg/errors, not a recoverable
// condition: it signals a caller bug or a corrupted snapshot.
//
// # Seams
//
// Seams are derived, never stored. Each construction collects the edge
// coordinates of every tile per axis, merges coordinates within ε, and emits
// one [Seam] per unique coordinate and orientation, container edges included.
// Seam ids are canonical: "seam|v|55.000000".
//
// # Copy-on-write
//
// States are never mutated. [State.WithTiles] and friends validate and return
// a fresh State with an incremented adjacency version, so readers holding an
// older pointer keep a consistent view.
package tiling
