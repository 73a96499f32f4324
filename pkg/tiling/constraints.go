package tiling

import (
	"fmt"
	"slices"
)

// Constraints are optional size limits. A zero field means "unset"; when
// resolved through a [Limits] the unset fields fall back to broader defaults.
// Aspect values are width / height.
type Constraints struct {
	MinWidth    float64 `json:"minWidth,omitempty" toml:"min_width" yaml:"min_width"`
	MinHeight   float64 `json:"minHeight,omitempty" toml:"min_height" yaml:"min_height"`
	MaxWidth    float64 `json:"maxWidth,omitempty" toml:"max_width" yaml:"max_width"`
	MaxHeight   float64 `json:"maxHeight,omitempty" toml:"max_height" yaml:"max_height"`
	MinAspect   float64 `json:"minAspect,omitempty" toml:"min_aspect" yaml:"min_aspect"`
	MaxAspect   float64 `json:"maxAspect,omitempty" toml:"max_aspect" yaml:"max_aspect"`
	LockedEdges []Edge  `json:"lockedEdges,omitempty" toml:"locked_edges" yaml:"locked_edges"`
}

// Validate rejects negative values and inverted ranges.
func (c Constraints) Validate() error {
	for name, v := range map[string]float64{
		"minWidth": c.MinWidth, "minHeight": c.MinHeight,
		"maxWidth": c.MaxWidth, "maxHeight": c.MaxHeight,
		"minAspect": c.MinAspect, "maxAspect": c.MaxAspect,
	} {
		if v < 0 {
			return fmt.Errorf("constraint %s must not be negative", name)
		}
	}
	if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth {
		return fmt.Errorf("minWidth %g exceeds maxWidth %g", c.MinWidth, c.MaxWidth)
	}
	if c.MaxHeight > 0 && c.MinHeight > c.MaxHeight {
		return fmt.Errorf("minHeight %g exceeds maxHeight %g", c.MinHeight, c.MaxHeight)
	}
	if c.MaxAspect > 0 && c.MinAspect > c.MaxAspect {
		return fmt.Errorf("minAspect %g exceeds maxAspect %g", c.MinAspect, c.MaxAspect)
	}
	for _, e := range c.LockedEdges {
		if _, err := ParseEdge(string(e)); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c Constraints) Clone() Constraints {
	c.LockedEdges = slices.Clone(c.LockedEdges)
	return c
}

// Merge returns c with every set field of over taking precedence.
func (c Constraints) Merge(over Constraints) Constraints {
	out := c.Clone()
	if over.MinWidth > 0 {
		out.MinWidth = over.MinWidth
	}
	if over.MinHeight > 0 {
		out.MinHeight = over.MinHeight
	}
	if over.MaxWidth > 0 {
		out.MaxWidth = over.MaxWidth
	}
	if over.MaxHeight > 0 {
		out.MaxHeight = over.MaxHeight
	}
	if over.MinAspect > 0 {
		out.MinAspect = over.MinAspect
	}
	if over.MaxAspect > 0 {
		out.MaxAspect = over.MaxAspect
	}
	if len(over.LockedEdges) > 0 {
		out.LockedEdges = slices.Clone(over.LockedEdges)
	}
	return out
}

// EdgeLocked reports whether e is in the locked edge set.
func (c Constraints) EdgeLocked(e Edge) bool {
	return slices.Contains(c.LockedEdges, e)
}

// Min returns the minimum size along the axis a seam of orientation o moves on.
func (c Constraints) Min(o Orientation) float64 {
	if o == Vertical {
		return c.MinWidth
	}
	return c.MinHeight
}

// Max returns the maximum size along the axis a seam of orientation o moves
// on, or 0 when unbounded.
func (c Constraints) Max(o Orientation) float64 {
	if o == Vertical {
		return c.MaxWidth
	}
	return c.MaxHeight
}

// Limits resolves the effective constraints for a tile: per-tile overrides
// first, then global defaults.
type Limits interface {
	Limits(t Tile) Constraints
}

// LimitsFunc adapts a function to the Limits interface.
type LimitsFunc func(t Tile) Constraints

// Limits calls f(t).
func (f LimitsFunc) Limits(t Tile) Constraints { return f(t) }

// Fixed returns Limits that apply base to every tile, overlaid by the tile's
// own constraints.
func Fixed(base Constraints) Limits {
	return LimitsFunc(func(t Tile) Constraints {
		if t.Constraints == nil {
			return base.Clone()
		}
		return base.Merge(*t.Constraints)
	})
}
