package strategy

import (
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Resize strategy keys.
const (
	ResizeLinear  = "linear"
	ResizeSegment = "segment"
)

// Resizer decides which part of a seam a tile-edge resize moves.
type Resizer interface {
	Options(tileID string, lim tiling.Limits) seam.Options
}

// Linear moves every tile on the seam.
type Linear struct{}

func (Linear) Options(_ string, lim tiling.Limits) seam.Options {
	return seam.Options{Limits: lim}
}

// Segment moves only the tiles connected to the resized tile across the
// seam, leaving the rest of the seam in place.
type Segment struct{}

func (Segment) Options(tileID string, lim tiling.Limits) seam.Options {
	return seam.Options{Limits: lim, Anchor: tileID}
}
