package strategy

import "github.com/matzehuels/tilegrid/pkg/tiling"

// Delete strategy keys.
const DeleteHeuristic = "heuristic"

// Deleter chooses which eligible side absorbs a deleted tile. eligible is in
// [tiling.Edges] order and never empty.
type Deleter interface {
	Choose(s *tiling.State, id string, eligible []tiling.Absorption) tiling.Absorption
}

// Heuristic prefers the side with the fewest absorbers, so the freed space
// leaves the fewest seam segments behind. Ties keep edge order.
type Heuristic struct{}

func (Heuristic) Choose(_ *tiling.State, _ string, eligible []tiling.Absorption) tiling.Absorption {
	best := eligible[0]
	for _, a := range eligible[1:] {
		if len(a.Absorbers) < len(best.Absorbers) {
			best = a
		}
	}
	return best
}
