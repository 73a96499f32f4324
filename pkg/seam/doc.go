// Package seam computes how far a seam may travel and moves it.
//
// A seam is a line where tile edges meet. Moving it by delta grows every tile
// on one side and shrinks every tile on the other by the same amount along
// the same span, so the tiling stays a partition and total area is conserved
// by construction.
//
// # Chains
//
// The chain of a seam is the set of tiles touching it: Before holds the tiles
// whose right (bottom) edge lies on a vertical (horizontal) seam, After holds
// the tiles whose left (top) edge does. A chain is covered when both sides
// span exactly the same stretch of the seam. Container edges are never
// covered because one side is empty.
//
// # Clamp
//
// [Clamp] derives the legal range [Min, Max] for a delta from the current
// tiling only:
//
//	Max = min(slack of After tiles to their minimum size,
//	          headroom of Before tiles to their maximum size)
//	Min = -min(slack of Before tiles, headroom of After tiles)
//
// Because nothing is remembered between calls, applying n clamped increments
// gives the same tiling as one clamped move of their sum, as long as the
// chain does not change in between.
//
// # Apply
//
// [Apply] snaps every touching edge to the new coordinate and returns a new
// validated state.
package seam
