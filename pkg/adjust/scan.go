// Package adjust repairs a tiling after its constraints change.
//
// [Adjust] scans every tile against the effective limits (per-call
// overrides, then tile constraints, then configuration), and when anything
// violates them tries each [Repairer] in turn:
//
//   - proportional: moves the violating tile's own edges, splitting the
//     change between both sides by their free capacity; all or nothing
//   - redistribute: iterative relaxation that also pushes the tiles beyond
//     a blocked neighbor to make room, accepting partial progress per pass
//
// A repair only counts when a fresh scan comes back clean. Nothing is ever
// applied partially: on failure the input state is returned together with
// the ids that could not be fixed.
package adjust

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Kind names the limit a tile breaks.
type Kind string

const (
	MinWidth  Kind = "min-width"
	MaxWidth  Kind = "max-width"
	MinHeight Kind = "min-height"
	MaxHeight Kind = "max-height"
	MinAspect Kind = "min-aspect"
	MaxAspect Kind = "max-aspect"
)

// Violation is one limit broken by one tile.
type Violation struct {
	TileID string  `json:"tileId"`
	Kind   Kind    `json:"kind"`
	Value  float64 `json:"value"`
	Limit  float64 `json:"limit"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s %.4g (limit %.4g)", v.TileID, v.Kind, v.Value, v.Limit)
}

// Scan returns every limit violation in s under cfg, in tile order.
func Scan(s *tiling.State, cfg config.Config) []Violation {
	var out []Violation
	for _, t := range s.Tiles() {
		out = append(out, scanTile(t, cfg.Limits(t), s.Epsilon())...)
	}
	return out
}

func scanTile(t tiling.Tile, lim tiling.Constraints, eps float64) []Violation {
	var out []Violation
	add := func(k Kind, value, limit float64) {
		out = append(out, Violation{TileID: t.ID, Kind: k, Value: value, Limit: limit})
	}
	if t.Width < lim.MinWidth-eps {
		add(MinWidth, t.Width, lim.MinWidth)
	}
	if lim.MaxWidth > 0 && t.Width > lim.MaxWidth+eps {
		add(MaxWidth, t.Width, lim.MaxWidth)
	}
	if t.Height < lim.MinHeight-eps {
		add(MinHeight, t.Height, lim.MinHeight)
	}
	if lim.MaxHeight > 0 && t.Height > lim.MaxHeight+eps {
		add(MaxHeight, t.Height, lim.MaxHeight)
	}
	aspect := t.Width / t.Height
	if lim.MinAspect > 0 && aspect < lim.MinAspect-eps {
		add(MinAspect, aspect, lim.MinAspect)
	}
	if lim.MaxAspect > 0 && aspect > lim.MaxAspect+eps {
		add(MaxAspect, aspect, lim.MaxAspect)
	}
	return out
}

// target returns the size t should have along the axis seams of
// orientation o move on, and whether it differs from the current size.
// Aspect limits are expressed as width targets.
func target(t tiling.Tile, lim tiling.Constraints, o tiling.Orientation, eps float64) (float64, bool) {
	size := t.Size(o)
	want := size
	switch {
	case size < lim.Min(o)-eps:
		want = lim.Min(o)
	case lim.Max(o) > 0 && size > lim.Max(o)+eps:
		want = lim.Max(o)
	case o == tiling.Vertical && lim.MinAspect > 0 && t.Width/t.Height < lim.MinAspect-eps:
		want = lim.MinAspect * t.Height
		if lim.MaxWidth > 0 {
			want = min(want, lim.MaxWidth)
		}
	case o == tiling.Vertical && lim.MaxAspect > 0 && t.Width/t.Height > lim.MaxAspect+eps:
		want = max(lim.MaxAspect*t.Height, lim.MinWidth)
	}
	return want, want != size
}

func tileIDs(vs []Violation) []string {
	var ids []string
	seen := map[string]bool{}
	for _, v := range vs {
		if !seen[v.TileID] {
			seen[v.TileID] = true
			ids = append(ids, v.TileID)
		}
	}
	return ids
}
