package seam

import (
	"cmp"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Chain holds the tiles touching each side of a seam.
type Chain struct {
	Seam    tiling.Seam
	Before  []tiling.Tile
	After   []tiling.Tile
	Covered bool
}

// Touching returns the tiles of both sides, Before first.
func (c Chain) Touching() []tiling.Tile {
	return append(slices.Clone(c.Before), c.After...)
}

// Contains reports whether the tile with the given id touches the seam.
func (c Chain) Contains(id string) bool {
	for _, t := range c.Touching() {
		if t.ID == id {
			return true
		}
	}
	return false
}

// ChainOf computes the chain of the seam with the given id. When anchor is
// non-empty the chain is narrowed to the connected segment of the seam that
// contains the anchor tile.
func ChainOf(s *tiling.State, seamID, anchor string) (Chain, error) {
	sm, ok := s.Seam(seamID)
	if !ok {
		return Chain{}, errors.New(errors.ErrCodeSeamNotFound, "seam %s does not exist", seamID)
	}
	trailing, leading := tiling.EdgeRight, tiling.EdgeLeft
	if sm.Orientation == tiling.Horizontal {
		trailing, leading = tiling.EdgeBottom, tiling.EdgeTop
	}

	c := Chain{Seam: sm}
	for _, t := range s.Tiles() {
		switch {
		case s.OnSeam(t, trailing, sm):
			c.Before = append(c.Before, t)
		case s.OnSeam(t, leading, sm):
			c.After = append(c.After, t)
		}
	}

	if anchor != "" {
		if !c.Contains(anchor) {
			return Chain{}, errors.New(errors.ErrCodeSeamNotFound, "tile %s does not touch seam %s", anchor, seamID)
		}
		c = c.segment(anchor, s.Epsilon())
	}

	byExtent := func(a, b tiling.Tile) int {
		alo, _ := a.Extent(sm.Orientation)
		blo, _ := b.Extent(sm.Orientation)
		return cmp.Compare(alo, blo)
	}
	slices.SortFunc(c.Before, byExtent)
	slices.SortFunc(c.After, byExtent)

	c.Covered = len(c.Before) > 0 && len(c.After) > 0 &&
		sameIntervals(union(c.Before, sm.Orientation, s.Epsilon()), union(c.After, sm.Orientation, s.Epsilon()), s.Epsilon())
	return c, nil
}

// segment narrows the chain to the tiles connected to anchor through
// cross-seam overlaps.
func (c Chain) segment(anchor string, eps float64) Chain {
	o := c.Seam.Orientation
	in := map[string]bool{anchor: true}
	for changed := true; changed; {
		changed = false
		for _, b := range c.Before {
			for _, a := range c.After {
				if in[a.ID] == in[b.ID] {
					continue
				}
				blo, bhi := b.Extent(o)
				alo, ahi := a.Extent(o)
				if geom.Span(blo, bhi, alo, ahi) > eps {
					in[a.ID], in[b.ID] = true, true
					changed = true
				}
			}
		}
	}

	out := Chain{Seam: c.Seam}
	for _, t := range c.Before {
		if in[t.ID] {
			out.Before = append(out.Before, t)
		}
	}
	for _, t := range c.After {
		if in[t.ID] {
			out.After = append(out.After, t)
		}
	}
	return out
}

type interval struct{ lo, hi float64 }

// union merges the extents of tiles along the seam into disjoint intervals.
func union(tiles []tiling.Tile, o tiling.Orientation, eps float64) []interval {
	var ivs []interval
	for _, t := range tiles {
		lo, hi := t.Extent(o)
		ivs = append(ivs, interval{lo, hi})
	}
	slices.SortFunc(ivs, func(a, b interval) int { return cmp.Compare(a.lo, b.lo) })

	var out []interval
	for _, iv := range ivs {
		if n := len(out); n > 0 && iv.lo <= out[n-1].hi+eps {
			out[n-1].hi = max(out[n-1].hi, iv.hi)
			continue
		}
		out = append(out, iv)
	}
	return out
}

func sameIntervals(a, b []interval, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !geom.Eq(a[i].lo, b[i].lo, eps) || !geom.Eq(a[i].hi, b[i].hi, eps) {
			return false
		}
	}
	return true
}
