// Package geom provides pure functions over axis-aligned rectangles expressed
// in container percentages.
//
// The container is the square [0, 100] × [0, 100]. Every comparison in this
// package takes the same tolerance ε so that "touching" and "distinct" are
// classified consistently: two rectangles whose shared extent is within ε are
// adjacent, never overlapping, and a coordinate within ε of the container edge
// is inside the container.
//
// # Primitives
//
//   - [Area]: width × height
//   - [Overlaps]: shared area with both extents greater than ε
//   - [Adjacent]: a shared edge with overlapping orthogonal extent
//   - [WithinBounds]: the rectangle lies inside the container
//   - [Eq]: coordinate equality within ε
package geom
