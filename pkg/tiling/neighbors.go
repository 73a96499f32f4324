package tiling

import (
	"cmp"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Neighbors returns the tiles adjacent to id across side e, ordered by their
// position along the shared edge.
func (s *State) Neighbors(id string, e Edge) []Tile {
	t, ok := s.Tile(id)
	if !ok {
		return nil
	}
	o := e.Orientation()
	coord := t.EdgeCoord(e)
	lo, hi := t.Extent(o)

	var out []Tile
	for _, n := range s.tiles {
		if n.ID == id {
			continue
		}
		if !geom.Eq(n.EdgeCoord(e.Opposite()), coord, s.eps) {
			continue
		}
		nlo, nhi := n.Extent(o)
		if geom.Span(lo, hi, nlo, nhi) > s.eps {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b Tile) int {
		alo, _ := a.Extent(o)
		blo, _ := b.Extent(o)
		return cmp.Compare(alo, blo)
	})
	return out
}

// FullSpan returns the neighbors across side e when they can absorb the
// tile's space: they must lie entirely within the tile's extent along that
// side and cover it without gaps. The bool is false when no such set exists,
// including the container border.
func (s *State) FullSpan(id string, e Edge) ([]Tile, bool) {
	t, ok := s.Tile(id)
	if !ok {
		return nil, false
	}
	ns := s.Neighbors(id, e)
	if len(ns) == 0 {
		return nil, false
	}
	o := e.Orientation()
	lo, hi := t.Extent(o)
	cursor := lo
	for _, n := range ns {
		nlo, nhi := n.Extent(o)
		if nlo < lo-s.eps || nhi > hi+s.eps {
			return nil, false
		}
		if !geom.Eq(nlo, cursor, s.eps) {
			return nil, false
		}
		cursor = nhi
	}
	if !geom.Eq(cursor, hi, s.eps) {
		return nil, false
	}
	return ns, true
}

// Adjacent reports whether the tiles with ids a and b share an edge.
func (s *State) Adjacent(a, b string) bool {
	ta, ok := s.Tile(a)
	if !ok {
		return false
	}
	tb, ok := s.Tile(b)
	if !ok {
		return false
	}
	return geom.Adjacent(ta.Rect(), tb.Rect(), s.eps)
}
