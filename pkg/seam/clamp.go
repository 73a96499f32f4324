package seam

import (
	"math"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Options configure Clamp and Apply.
type Options struct {
	// Limits resolves per-tile size constraints. Nil means only the
	// positive-size floor applies.
	Limits tiling.Limits

	// Anchor narrows the move to the connected segment of the seam that
	// contains this tile. Empty moves the whole seam.
	Anchor string

	// PinLocked gives the seam zero travel when any tile it would move is
	// locked.
	PinLocked bool
}

// Range is the result of a clamp computation.
type Range struct {
	SeamID       string  `json:"seamId"`
	Delta        float64 `json:"clampedDelta"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	ChainCovered bool    `json:"chainCovered"`
}

// Clamp computes the legal travel of a seam and clamps delta into it. An
// uncovered chain yields a zero range with ChainCovered false; callers must
// reject it rather than treat it as a no-op.
func Clamp(s *tiling.State, seamID string, delta float64, opts Options) (Range, error) {
	c, err := ChainOf(s, seamID, opts.Anchor)
	if err != nil {
		return Range{}, err
	}
	return clampChain(c, s.Epsilon(), delta, opts), nil
}

func clampChain(c Chain, eps, delta float64, opts Options) Range {
	r := Range{SeamID: c.Seam.ID, ChainCovered: c.Covered}
	if !c.Covered {
		return r
	}

	if opts.PinLocked && slices.ContainsFunc(c.Touching(), func(t tiling.Tile) bool { return t.Locked }) {
		return r
	}

	o := c.Seam.Orientation
	trailing, leading := tiling.EdgeRight, tiling.EdgeLeft
	if o == tiling.Horizontal {
		trailing, leading = tiling.EdgeBottom, tiling.EdgeTop
	}

	shrinkBefore, growBefore := math.Inf(1), math.Inf(1)
	for _, t := range c.Before {
		lim := limitsFor(opts.Limits, t)
		if lim.EdgeLocked(trailing) {
			return r
		}
		shrinkBefore = min(shrinkBefore, t.Size(o)-floor(lim.Min(o), eps))
		if m := lim.Max(o); m > 0 {
			growBefore = min(growBefore, m-t.Size(o))
		}
	}

	shrinkAfter, growAfter := math.Inf(1), math.Inf(1)
	for _, t := range c.After {
		lim := limitsFor(opts.Limits, t)
		if lim.EdgeLocked(leading) {
			return r
		}
		shrinkAfter = min(shrinkAfter, t.Size(o)-floor(lim.Min(o), eps))
		if m := lim.Max(o); m > 0 {
			growAfter = min(growAfter, m-t.Size(o))
		}
	}

	r.Max = max(0, min(shrinkAfter, growBefore))
	r.Min = -max(0, min(shrinkBefore, growAfter))
	r.Delta = min(max(delta, r.Min), r.Max)
	return r
}

// floor keeps every tile strictly larger than the validation threshold.
func floor(minSize, eps float64) float64 {
	return max(minSize, 2*eps)
}

func limitsFor(l tiling.Limits, t tiling.Tile) tiling.Constraints {
	if l == nil {
		if t.Constraints != nil {
			return t.Constraints.Clone()
		}
		return tiling.Constraints{}
	}
	return l.Limits(t)
}

// Apply moves the seam by delta and returns the new state. Delta must lie
// within the range Clamp reports; Apply never clamps on its own.
func Apply(s *tiling.State, seamID string, delta float64, opts Options) (*tiling.State, error) {
	c, err := ChainOf(s, seamID, opts.Anchor)
	if err != nil {
		return nil, err
	}
	if !c.Covered {
		return nil, errors.New(errors.ErrCodeSeamNotCovered, "seam %s is not covered on both sides", seamID)
	}
	eps := s.Epsilon()
	r := clampChain(c, eps, delta, opts)
	if delta < r.Min-eps || delta > r.Max+eps {
		return nil, errors.New(errors.ErrCodeDeltaOutOfRange, "delta %g outside [%g, %g] for seam %s", delta, r.Min, r.Max, seamID)
	}
	if delta == 0 {
		return s, nil
	}

	coord := c.Seam.Coord + delta
	moved := make(map[string]tiling.Tile, len(c.Before)+len(c.After))
	for _, t := range c.Before {
		if c.Seam.Orientation == tiling.Vertical {
			t.Width = coord - t.X
		} else {
			t.Height = coord - t.Y
		}
		moved[t.ID] = t
	}
	for _, t := range c.After {
		if c.Seam.Orientation == tiling.Vertical {
			t.Width = t.Right() - coord
			t.X = coord
		} else {
			t.Height = t.Bottom() - coord
			t.Y = coord
		}
		moved[t.ID] = t
	}

	tiles := s.Tiles()
	for i, t := range tiles {
		if m, ok := moved[t.ID]; ok {
			tiles[i] = m
		}
	}
	return s.WithTiles(tiles)
}
