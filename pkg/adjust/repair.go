package adjust

import (
	"math"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// DefaultPasses bounds the relaxation passes of Redistribute.
const DefaultPasses = 8

// axis pairs a seam orientation with the edges that bound a tile along it.
type axis struct {
	o              tiling.Orientation
	leading, trail tiling.Edge
}

var axes = []axis{
	{tiling.Vertical, tiling.EdgeLeft, tiling.EdgeRight},
	{tiling.Horizontal, tiling.EdgeTop, tiling.EdgeBottom},
}

// capacity returns how far the seam on edge e of id can move by delta in
// the tile's own segment. Segments touching a locked tile do not move.
func capacity(s *tiling.State, cfg config.Config, id string, e tiling.Edge, delta float64) float64 {
	sm, ok := s.EdgeSeam(id, e)
	if !ok {
		return 0
	}
	r, err := seam.Clamp(s, sm.ID, delta, seam.Options{Limits: cfg, Anchor: id, PinLocked: true})
	if err != nil || !r.ChainCovered {
		return 0
	}
	return math.Abs(r.Delta)
}

func moveEdge(s *tiling.State, cfg config.Config, id string, e tiling.Edge, delta float64) (*tiling.State, error) {
	if delta == 0 {
		return s, nil
	}
	sm, _ := s.EdgeSeam(id, e)
	return seam.Apply(s, sm.ID, delta, seam.Options{Limits: cfg, Anchor: id, PinLocked: true})
}

// Proportional resizes each violating tile by moving its own two edges,
// splitting the change by the free capacity on each side. It fails as soon
// as one tile cannot be fixed.
type Proportional struct{}

func (Proportional) Name() string { return StrategyProportional }

func (Proportional) Repair(s *tiling.State, cfg config.Config) (*tiling.State, bool) {
	cur := s
	eps := s.Epsilon()
	for _, ax := range axes {
		for _, id := range tileIDs(Scan(cur, cfg)) {
			t, _ := cur.Tile(id)
			want, ok := target(t, cfg.Limits(t), ax.o, eps)
			if !ok {
				continue
			}
			need := want - t.Size(ax.o)

			capTrail := capacity(cur, cfg, id, ax.trail, need)
			capLead := capacity(cur, cfg, id, ax.leading, -need)
			if capTrail+capLead < math.Abs(need)-eps {
				return s, false
			}
			trail := need * capTrail / (capTrail + capLead)
			lead := need - trail

			next, err := moveEdge(cur, cfg, id, ax.trail, trail)
			if err != nil {
				return s, false
			}
			if next, err = moveEdge(next, cfg, id, ax.leading, -lead); err != nil {
				return s, false
			}
			cur = next
		}
	}
	if len(Scan(cur, cfg)) > 0 {
		return s, false
	}
	return cur, true
}

// Redistribute relaxes the layout over several passes. When a neighbor has
// no room to give, the tiles beyond it are pushed first so the space ripples
// through the layout. Partial moves are kept between passes.
type Redistribute struct {
	Passes int
}

func (Redistribute) Name() string { return StrategyRedistribute }

func (r Redistribute) Repair(s *tiling.State, cfg config.Config) (*tiling.State, bool) {
	passes := r.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}
	eps := s.Epsilon()
	depth := s.Len()

	cur := s
	for range passes {
		before := cur
		for _, ax := range axes {
			for _, id := range tileIDs(Scan(cur, cfg)) {
				t, _ := cur.Tile(id)
				want, ok := target(t, cfg.Limits(t), ax.o, eps)
				if !ok {
					continue
				}
				need := want - t.Size(ax.o)
				var moved float64
				cur, moved = push(cur, cfg, id, ax.trail, need, depth)
				if rest := need - moved; math.Abs(rest) > eps {
					cur, _ = push(cur, cfg, id, ax.leading, -rest, depth)
				}
			}
		}
		if len(Scan(cur, cfg)) == 0 {
			return cur, true
		}
		if cur == before {
			break
		}
	}
	return s, false
}

// push moves the seam on edge e of tile id by up to delta. When the tiles
// across the seam block the move, they are pushed the same way first, up to
// depth levels deep. It returns the distance actually moved.
func push(s *tiling.State, cfg config.Config, id string, e tiling.Edge, delta float64, depth int) (*tiling.State, float64) {
	sm, ok := s.EdgeSeam(id, e)
	if !ok || delta == 0 {
		return s, 0
	}
	opts := seam.Options{Limits: cfg, Anchor: id, PinLocked: true}
	r, err := seam.Clamp(s, sm.ID, delta, opts)
	if err != nil || !r.ChainCovered {
		return s, 0
	}

	eps := s.Epsilon()
	if math.Abs(r.Delta) < math.Abs(delta)-eps && depth > 0 {
		ch, err := seam.ChainOf(s, sm.ID, id)
		if err != nil {
			return s, 0
		}
		beyond := ch.After
		if e.Leading() {
			beyond = ch.Before
		}
		rest := delta - r.Delta
		for _, n := range beyond {
			s, _ = push(s, cfg, n.ID, e, rest, depth-1)
		}
		if sm, ok = s.EdgeSeam(id, e); !ok {
			return s, 0
		}
		if r, err = seam.Clamp(s, sm.ID, delta, opts); err != nil {
			return s, 0
		}
	}

	if r.Delta == 0 {
		return s, 0
	}
	next, err := seam.Apply(s, sm.ID, r.Delta, opts)
	if err != nil {
		return s, 0
	}
	return next, r.Delta
}
