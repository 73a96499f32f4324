package tiling

import "slices"

// Absorption describes one way to reclaim a deleted tile's space: the
// full-span neighbors on Side grow across it.
type Absorption struct {
	Side      Edge
	Absorbers []Tile

	// GroupMates is true when every absorber shares a group with the tile.
	GroupMates bool

	// Locked lists absorbers that carry the lock flag.
	Locked []string

	// Oversize lists absorbers that would exceed their maximum size.
	Oversize []string
}

// Grow returns the rectangles the absorbers take once the tile identified
// by gone is removed.
func (a Absorption) Grow(gone Tile) []Tile {
	out := make([]Tile, len(a.Absorbers))
	for i, t := range a.Absorbers {
		switch a.Side {
		case EdgeLeft:
			t.Width = gone.Right() - t.X
		case EdgeRight:
			t.Width = t.Right() - gone.X
			t.X = gone.X
		case EdgeTop:
			t.Height = gone.Bottom() - t.Y
		case EdgeBottom:
			t.Height = t.Bottom() - gone.Y
			t.Y = gone.Y
		}
		out[i] = t
	}
	return out
}

// AbsorbFailure explains why no absorption is usable.
type AbsorbFailure int

const (
	AbsorbOK AbsorbFailure = iota
	AbsorbNoFullSpan
	AbsorbGroupIsolated
	AbsorbNeighborLocked
	AbsorbMaxSize
)

// Absorptions lists every side of id whose neighbors span it fully, in
// [Edges] order. lim may be nil.
func (s *State) Absorptions(id string, lim Limits) []Absorption {
	t, ok := s.Tile(id)
	if !ok {
		return nil
	}
	mates := s.GroupMates(id)

	var out []Absorption
	for _, side := range Edges {
		ns, ok := s.FullSpan(id, side)
		if !ok {
			continue
		}
		a := Absorption{Side: side, Absorbers: ns, GroupMates: len(mates) > 0}
		for _, n := range ns {
			if !slices.Contains(mates, n.ID) {
				a.GroupMates = false
			}
			if n.Locked {
				a.Locked = append(a.Locked, n.ID)
			}
		}
		if lim != nil {
			o := side.Orientation()
			for _, g := range a.Grow(t) {
				if m := lim.Limits(g).Max(o); m > 0 && g.Size(o) > m+s.eps {
					a.Oversize = append(a.Oversize, g.ID)
				}
			}
		}
		out = append(out, a)
	}
	return out
}

// EligibleAbsorptions filters [State.Absorptions] by the delete policy. A
// tile that shares a group with any present tile may only be absorbed by its
// group-mates; sides with locked or oversize absorbers are skipped. When the
// result is empty the failure names the tightest reason.
func (s *State) EligibleAbsorptions(id string, lim Limits) ([]Absorption, AbsorbFailure) {
	all := s.Absorptions(id, lim)
	if len(all) == 0 {
		return nil, AbsorbNoFullSpan
	}

	candidates := all
	if len(s.GroupMates(id)) > 0 {
		candidates = nil
		for _, a := range all {
			if a.GroupMates {
				candidates = append(candidates, a)
			}
		}
		if len(candidates) == 0 {
			return nil, AbsorbGroupIsolated
		}
	}

	var eligible []Absorption
	failure := AbsorbOK
	for _, a := range candidates {
		switch {
		case len(a.Locked) > 0:
			failure = AbsorbNeighborLocked
		case len(a.Oversize) > 0:
			if failure == AbsorbOK {
				failure = AbsorbMaxSize
			}
		default:
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		return nil, failure
	}
	return eligible, AbsorbOK
}
