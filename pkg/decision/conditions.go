package decision

import (
	"fmt"
	"math"

	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

const (
	noteSeam       = "seam"
	noteChain      = "chain"
	noteAbsorb     = "absorptions"
	noteAbsorbFail = "absorb-failure"
)

// =============================================================================
// Tile conditions
// =============================================================================

// TileExists passes when Params.TileID names a tile.
func TileExists() Node {
	return Condition("tile-exists",
		func(c *Context) bool {
			_, ok := c.Tile()
			return ok
		},
		func(c *Context) Violation {
			return Violate(CodeTileNotFound, "tile %q does not exist", c.Params.TileID).At("tileId")
		})
}

// TileUnlocked passes when the target tile is not locked.
func TileUnlocked() Node {
	return Condition("tile-unlocked",
		func(c *Context) bool {
			t, _ := c.Tile()
			return !t.Locked
		},
		func(c *Context) Violation {
			return Violate(CodeTileLocked, "tile %q is locked", c.Params.TileID).At("tileId")
		})
}

// NotLastTile passes when more than one tile remains.
func NotLastTile() Node {
	return Condition("not-last-tile",
		func(c *Context) bool { return c.State.Len() > 1 },
		func(c *Context) Violation {
			return Violate(CodeLastTile, "cannot remove the last remaining tile")
		})
}

// MaxTiles passes when adding n tiles keeps the count within the limit.
func MaxTiles(n int) Node {
	return Condition("max-tiles",
		func(c *Context) bool { return c.State.Len()+n <= c.Config.MaxTiles },
		func(c *Context) Violation {
			return Violate(CodeMaxTilesExceeded, "layout already has %d of %d tiles", c.State.Len(), c.Config.MaxTiles).
				With("max", c.Config.MaxTiles)
		})
}

// =============================================================================
// Parameter conditions
// =============================================================================

func openUnit(v float64) bool { return v > 0 && v < 1 && !math.IsNaN(v) }

// RatioInRange passes when Params.Ratio lies strictly between 0 and 1.
func RatioInRange() Node {
	return Condition("ratio-in-range",
		func(c *Context) bool { return openUnit(c.Params.Ratio) },
		func(c *Context) Violation {
			return Violate(CodeInvalidParams, "ratio %g must be between 0 and 1", c.Params.Ratio).At("ratio")
		})
}

// SizeInRange passes when Params.Size lies strictly between 0 and 1.
func SizeInRange() Node {
	return Condition("size-in-range",
		func(c *Context) bool { return openUnit(c.Params.Size) },
		func(c *Context) Violation {
			return Violate(CodeInvalidParams, "size %g must be between 0 and 1", c.Params.Size).At("size")
		})
}

// DeltaFinite passes when Params.Delta is a finite number.
func DeltaFinite() Node {
	return Condition("delta-finite",
		func(c *Context) bool { return !math.IsNaN(c.Params.Delta) && !math.IsInf(c.Params.Delta, 0) },
		func(c *Context) Violation {
			return Violate(CodeInvalidParams, "delta %g must be a finite number", c.Params.Delta).At("delta")
		})
}

func orientationIs(o tiling.Orientation) Node {
	return Condition("orientation-"+string(o),
		func(c *Context) bool { return c.Params.Orientation == o },
		func(c *Context) Violation {
			return Violate(CodeInvalidParams, "orientation %q must be vertical or horizontal", c.Params.Orientation).At("orientation")
		})
}

// OrientationValid passes for either split orientation.
func OrientationValid() Node {
	return Selector("orientation-valid", orientationIs(tiling.Vertical), orientationIs(tiling.Horizontal))
}

// EdgeValid passes when Params.Edge names an edge.
func EdgeValid() Node {
	return Condition("edge-valid",
		func(c *Context) bool {
			_, err := tiling.ParseEdge(string(c.Params.Edge))
			return err == nil
		},
		func(c *Context) Violation {
			return Violate(CodeInvalidParams, "edge %q must be one of left, right, top, bottom", c.Params.Edge).At("edge")
		})
}

// =============================================================================
// Size conditions
// =============================================================================

func minSizeViolation(id string, o tiling.Orientation, got, want float64) Violation {
	dim := "width"
	if o == tiling.Horizontal {
		dim = "height"
	}
	return Violate(CodeMinSize, "tile %q %s %.4g below minimum %.4g", id, dim, got, want).
		At(fmt.Sprintf("tiles.%s.%s", id, dim)).
		With("tileId", id)
}

// fits reports whether a part of size v meets minimum m and stays above the
// positive-size floor every tile must clear.
func fits(v, m, eps float64) bool { return v >= m-eps && v >= 2*eps }

// SplitFits passes when both parts of the split meet the minimum size.
func SplitFits() Node {
	parts := func(c *Context) (tiling.Tile, float64, float64) {
		t, _ := c.Tile()
		size := t.Size(c.Params.Orientation)
		return t, size * c.Params.Ratio, size * (1 - c.Params.Ratio)
	}
	return Condition("split-fits",
		func(c *Context) bool {
			t, a, b := parts(c)
			m := c.Config.Limits(t).Min(c.Params.Orientation)
			return fits(a, m, c.Config.Epsilon) && fits(b, m, c.Config.Epsilon)
		},
		func(c *Context) Violation {
			t, a, b := parts(c)
			return minSizeViolation(t.ID, c.Params.Orientation, min(a, b), c.Config.Limits(t).Min(c.Params.Orientation))
		})
}

// InsertFits passes when both the new tile and the shrunken reference tile
// meet the minimum size.
func InsertFits() Node {
	parts := func(c *Context) (tiling.Tile, tiling.Orientation, float64, float64) {
		t, _ := c.Tile()
		o := c.Params.Edge.Orientation()
		size := t.Size(o)
		return t, o, size * c.Params.Size, size * (1 - c.Params.Size)
	}
	return Condition("insert-fits",
		func(c *Context) bool {
			t, o, a, b := parts(c)
			m := c.Config.Limits(t).Min(o)
			base := c.Config.Base().Min(o)
			return fits(a, base, c.Config.Epsilon) && fits(b, m, c.Config.Epsilon)
		},
		func(c *Context) Violation {
			t, o, a, b := parts(c)
			return minSizeViolation(t.ID, o, min(a, b), c.Config.Limits(t).Min(o))
		})
}

// =============================================================================
// Seam conditions
// =============================================================================

// ResolveEdgeSeam records the seam under the target tile's edge.
func ResolveEdgeSeam() Node {
	return Action("resolve-edge-seam", func(c *Context) {
		if sm, ok := c.State.EdgeSeam(c.Params.TileID, c.Params.Edge); ok {
			c.Note(noteSeam, sm)
		}
	})
}

func seamOf(c *Context) (tiling.Seam, bool) {
	if v, ok := c.Noted(noteSeam); ok {
		return v.(tiling.Seam), true
	}
	return c.State.Seam(c.Params.SeamID)
}

func chainOf(c *Context) (seam.Chain, bool) {
	if v, ok := c.Noted(noteChain); ok {
		return v.(seam.Chain), true
	}
	sm, ok := seamOf(c)
	if !ok {
		return seam.Chain{}, false
	}
	ch, err := seam.ChainOf(c.State, sm.ID, c.Params.Anchor)
	if err != nil {
		return seam.Chain{}, false
	}
	c.Note(noteChain, ch)
	return ch, true
}

// SeamExists passes when the addressed seam exists.
func SeamExists() Node {
	return Condition("seam-exists",
		func(c *Context) bool {
			_, ok := seamOf(c)
			return ok
		},
		func(c *Context) Violation {
			if c.Params.SeamID == "" {
				return Violate(CodeSeamNotFound, "edge %s of tile %q lies on no seam", c.Params.Edge, c.Params.TileID)
			}
			return Violate(CodeSeamNotFound, "seam %q does not exist", c.Params.SeamID).At("seamId")
		})
}

// SeamCovered passes when both sides of the seam span the same stretch.
func SeamCovered() Node {
	return Condition("seam-covered",
		func(c *Context) bool {
			ch, ok := chainOf(c)
			return ok && ch.Covered
		},
		func(c *Context) Violation {
			sm, _ := seamOf(c)
			return Violate(CodeSeamNotCovered, "seam %s is not covered on both sides", sm.ID).With("seamId", sm.ID)
		})
}

func lockedEdge(c *Context) (string, bool) {
	ch, ok := chainOf(c)
	if !ok {
		return "", false
	}
	trailing, leading := tiling.EdgeRight, tiling.EdgeLeft
	if ch.Seam.Orientation == tiling.Horizontal {
		trailing, leading = tiling.EdgeBottom, tiling.EdgeTop
	}
	for _, t := range ch.Before {
		if c.Config.Limits(t).EdgeLocked(trailing) {
			return t.ID, true
		}
	}
	for _, t := range ch.After {
		if c.Config.Limits(t).EdgeLocked(leading) {
			return t.ID, true
		}
	}
	return "", false
}

// ChainEdgesUnlocked passes when no tile on the seam has locked the edge
// lying on it.
func ChainEdgesUnlocked() Node {
	return Condition("chain-edges-unlocked",
		func(c *Context) bool {
			_, locked := lockedEdge(c)
			return !locked
		},
		func(c *Context) Violation {
			id, _ := lockedEdge(c)
			return Violate(CodeEdgeLocked, "tile %q has locked its edge on this seam", id).With("tileId", id)
		})
}

func lockedInChain(c *Context, skip string) (string, bool) {
	ch, ok := chainOf(c)
	if !ok {
		return "", false
	}
	for _, t := range ch.Touching() {
		if t.ID != skip && t.Locked {
			return t.ID, true
		}
	}
	return "", false
}

// NeighborsUnlocked passes when no other tile moved by the resize is locked.
func NeighborsUnlocked() Node {
	return Condition("neighbors-unlocked",
		func(c *Context) bool {
			_, locked := lockedInChain(c, c.Params.TileID)
			return !locked
		},
		func(c *Context) Violation {
			id, _ := lockedInChain(c, c.Params.TileID)
			return Violate(CodeNeighborLocked, "neighbor %q is locked", id).With("tileId", id)
		})
}

// ChainUnlocked passes when no tile touching the seam is locked.
func ChainUnlocked() Node {
	return Condition("chain-unlocked",
		func(c *Context) bool {
			_, locked := lockedInChain(c, "")
			return !locked
		},
		func(c *Context) Violation {
			id, _ := lockedInChain(c, "")
			return Violate(CodeTileLocked, "tile %q on the seam is locked", id).With("tileId", id)
		})
}

// =============================================================================
// Delete conditions
// =============================================================================

// PlanDelete records which sides can absorb the target tile.
func PlanDelete() Node {
	return Action("plan-delete", func(c *Context) {
		eligible, failure := c.State.EligibleAbsorptions(c.Params.TileID, c.Config)
		c.Note(noteAbsorb, eligible)
		c.Note(noteAbsorbFail, failure)
	})
}

// Absorptions returns the eligible absorptions recorded by PlanDelete.
func (c *Context) Absorptions() []tiling.Absorption {
	v, _ := c.Noted(noteAbsorb)
	a, _ := v.([]tiling.Absorption)
	return a
}

func absorbFailure(c *Context) tiling.AbsorbFailure {
	v, _ := c.Noted(noteAbsorbFail)
	f, _ := v.(tiling.AbsorbFailure)
	return f
}

func absorbCondition(name string, f tiling.AbsorbFailure, v ViolationFunc) Node {
	return Condition(name, func(c *Context) bool { return absorbFailure(c) != f }, v)
}

// HasFullSpan passes when some side of the tile is spanned exactly by its
// neighbors.
func HasFullSpan() Node {
	return absorbCondition("has-full-span", tiling.AbsorbNoFullSpan, func(c *Context) Violation {
		return Violate(CodeNoFullSpan, "no side of tile %q is fully spanned by neighbors", c.Params.TileID)
	})
}

// GroupPolicy passes when a grouped tile can be absorbed by its group-mates.
func GroupPolicy() Node {
	return absorbCondition("group-policy", tiling.AbsorbGroupIsolated, func(c *Context) Violation {
		return Violate(CodeGroupIsolated, "no group-mate of tile %q can absorb its space", c.Params.TileID).
			With("groups", c.State.GroupsOf(c.Params.TileID))
	})
}

// AbsorberAvailable passes when some side's absorbers are unlocked and can
// grow.
func AbsorberAvailable() Node {
	return Sequence("absorber-available",
		absorbCondition("absorber-unlocked", tiling.AbsorbNeighborLocked, func(c *Context) Violation {
			return Violate(CodeNeighborLocked, "every neighbor able to absorb tile %q is locked", c.Params.TileID)
		}),
		absorbCondition("absorber-fits", tiling.AbsorbMaxSize, func(c *Context) Violation {
			return Violate(CodeMaxSize, "absorbing tile %q would exceed a neighbor's maximum size", c.Params.TileID)
		}),
	)
}

// =============================================================================
// Whole-layout conditions
// =============================================================================

func firstTile(c *Context, bad func(tiling.Tile) bool) (tiling.Tile, bool) {
	for _, t := range c.State.Tiles() {
		if bad(t) {
			return t, true
		}
	}
	return tiling.Tile{}, false
}

func tileCondition(name string, bad func(*Context, tiling.Tile) bool, v func(*Context, tiling.Tile) Violation) Node {
	return Condition(name,
		func(c *Context) bool {
			_, found := firstTile(c, func(t tiling.Tile) bool { return bad(c, t) })
			return !found
		},
		func(c *Context) Violation {
			t, _ := firstTile(c, func(t tiling.Tile) bool { return bad(c, t) })
			return v(c, t)
		})
}

// BoundsValid passes when every tile lies inside the container.
func BoundsValid() Node {
	return tileCondition("bounds-valid",
		func(c *Context, t tiling.Tile) bool { return !geom.WithinBounds(t.Rect(), c.Config.Epsilon) },
		func(c *Context, t tiling.Tile) Violation {
			return Violate(CodeOutOfBounds, "tile %q lies outside the container", t.ID).With("tileId", t.ID)
		})
}

func overlapping(c *Context) (a, b string, found bool) {
	tiles := c.State.Tiles()
	for i := range tiles {
		for j := i + 1; j < len(tiles); j++ {
			if geom.Overlaps(tiles[i].Rect(), tiles[j].Rect(), c.Config.Epsilon) {
				return tiles[i].ID, tiles[j].ID, true
			}
		}
	}
	return "", "", false
}

// NoOverlap passes when no two tiles overlap.
func NoOverlap() Node {
	return Condition("no-overlap",
		func(c *Context) bool {
			_, _, found := overlapping(c)
			return !found
		},
		func(c *Context) Violation {
			a, b, _ := overlapping(c)
			return Violate(CodeOverlap, "tiles %q and %q overlap", a, b)
		})
}

// CoverageComplete passes when the tiles cover the container area.
func CoverageComplete() Node {
	return Condition("coverage-complete",
		func(c *Context) bool {
			return math.Abs(c.State.TotalArea()-geom.ContainerArea) <= tiling.AreaTolerance
		},
		func(c *Context) Violation {
			return Violate(CodeCoverageGap, "tiles cover %.4f of %.0f", c.State.TotalArea(), geom.ContainerArea)
		})
}

// TilesMinSize passes when every tile meets its minimum size.
func TilesMinSize() Node {
	return tileCondition("tiles-min-size",
		func(c *Context, t tiling.Tile) bool {
			lim := c.Config.Limits(t)
			return t.Width < lim.MinWidth-c.Config.Epsilon || t.Height < lim.MinHeight-c.Config.Epsilon
		},
		func(c *Context, t tiling.Tile) Violation {
			lim := c.Config.Limits(t)
			if t.Width < lim.MinWidth-c.Config.Epsilon {
				return minSizeViolation(t.ID, tiling.Vertical, t.Width, lim.MinWidth)
			}
			return minSizeViolation(t.ID, tiling.Horizontal, t.Height, lim.MinHeight)
		})
}

// TilesMaxSize passes when no tile exceeds its maximum size.
func TilesMaxSize() Node {
	over := func(size, limit, eps float64) bool { return limit > 0 && size > limit+eps }
	return tileCondition("tiles-max-size",
		func(c *Context, t tiling.Tile) bool {
			lim := c.Config.Limits(t)
			return over(t.Width, lim.MaxWidth, c.Config.Epsilon) || over(t.Height, lim.MaxHeight, c.Config.Epsilon)
		},
		func(c *Context, t tiling.Tile) Violation {
			return Violate(CodeMaxSize, "tile %q %.4gx%.4g exceeds its maximum size", t.ID, t.Width, t.Height).
				With("tileId", t.ID)
		})
}

// TileCount passes when the layout holds no more than MaxTiles tiles.
func TileCount() Node {
	return Condition("tile-count",
		func(c *Context) bool { return c.State.Len() <= c.Config.MaxTiles },
		func(c *Context) Violation {
			return Violate(CodeMaxTilesExceeded, "layout has %d tiles, maximum is %d", c.State.Len(), c.Config.MaxTiles)
		})
}
