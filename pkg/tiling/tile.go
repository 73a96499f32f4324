package tiling

import (
	"maps"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Edge names one side of a tile. The same values name the side of a
// reference tile that an insert carves from.
type Edge string

const (
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

// Edges lists every edge in delete tie-break order: left and top come before
// right and bottom.
var Edges = []Edge{EdgeLeft, EdgeTop, EdgeRight, EdgeBottom}

// ParseEdge converts a string to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch e := Edge(s); e {
	case EdgeLeft, EdgeRight, EdgeTop, EdgeBottom:
		return e, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid edge: %q (must be one of: left, right, top, bottom)", s)
}

// Orientation returns the orientation of the seam an edge lies on.
func (e Edge) Orientation() Orientation {
	if e == EdgeLeft || e == EdgeRight {
		return Vertical
	}
	return Horizontal
}

// Opposite returns the edge on the other side of the tile.
func (e Edge) Opposite() Edge {
	switch e {
	case EdgeLeft:
		return EdgeRight
	case EdgeRight:
		return EdgeLeft
	case EdgeTop:
		return EdgeBottom
	default:
		return EdgeTop
	}
}

// Leading reports whether the edge is at the low end of its axis (left or top).
func (e Edge) Leading() bool { return e == EdgeLeft || e == EdgeTop }

// Metadata stores arbitrary key-value pairs attached to a tile.
type Metadata map[string]any

// Tile is an immutable rectangle with identity. Every mutation produces a new
// Tile; the Meta map must be treated as read-only.
type Tile struct {
	ID          string       `json:"id"`
	X           float64      `json:"x"`
	Y           float64      `json:"y"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Locked      bool         `json:"locked"`
	Meta        Metadata     `json:"meta"`
	Constraints *Constraints `json:"constraints,omitempty"`
}

// NewTile builds and validates a tile with the default tolerance.
func NewTile(id string, x, y, width, height float64) (Tile, error) {
	t := Tile{ID: id, X: x, Y: y, Width: width, Height: height, Meta: Metadata{}}
	if err := t.Validate(geom.DefaultEpsilon); err != nil {
		return Tile{}, err
	}
	return t, nil
}

// Validate checks the tile's identity, finiteness, positive size and bounds.
func (t Tile) Validate(eps float64) error {
	if err := errors.ValidateTileID(t.ID); err != nil {
		return err
	}
	r := t.Rect()
	if !r.Finite() {
		return errors.New(errors.ErrCodeInvalidTile, "tile %s: coordinates must be finite", t.ID)
	}
	if t.Width <= eps || t.Height <= eps {
		return errors.New(errors.ErrCodeInvalidTile, "tile %s: size %gx%g must be positive", t.ID, t.Width, t.Height)
	}
	if !geom.WithinBounds(r, eps) {
		return errors.New(errors.ErrCodeOutOfBounds, "tile %s: [%g,%g %gx%g] lies outside the container", t.ID, t.X, t.Y, t.Width, t.Height)
	}
	if t.Constraints != nil {
		if err := t.Constraints.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTile, err, "tile %s", t.ID)
		}
	}
	return nil
}

// Rect returns the tile's rectangle.
func (t Tile) Rect() geom.Rect {
	return geom.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Right returns the x coordinate of the right edge.
func (t Tile) Right() float64 { return t.X + t.Width }

// Bottom returns the y coordinate of the bottom edge.
func (t Tile) Bottom() float64 { return t.Y + t.Height }

// Area returns width × height.
func (t Tile) Area() float64 { return t.Width * t.Height }

// EdgeCoord returns the coordinate of the given edge on its axis.
func (t Tile) EdgeCoord(e Edge) float64 {
	switch e {
	case EdgeLeft:
		return t.X
	case EdgeRight:
		return t.Right()
	case EdgeTop:
		return t.Y
	default:
		return t.Bottom()
	}
}

// Extent returns the tile's span along the axis perpendicular to o's seams:
// the vertical span for a vertical seam, the horizontal span otherwise.
func (t Tile) Extent(o Orientation) (lo, hi float64) {
	if o == Vertical {
		return t.Y, t.Bottom()
	}
	return t.X, t.Right()
}

// Size returns the tile's length along the axis a seam of orientation o moves
// on: the width for vertical seams, the height for horizontal ones.
func (t Tile) Size(o Orientation) float64 {
	if o == Vertical {
		return t.Width
	}
	return t.Height
}

// WithRect returns a copy of the tile moved to r.
func (t Tile) WithRect(r geom.Rect) Tile {
	t.X, t.Y, t.Width, t.Height = r.X, r.Y, r.Width, r.Height
	return t
}

// WithID returns a copy of the tile with a new identity and empty metadata.
// Constraints are not carried over.
func (t Tile) WithID(id string) Tile {
	t.ID = id
	t.Meta = Metadata{}
	t.Constraints = nil
	t.Locked = false
	return t
}

// WithLocked returns a copy of the tile with the lock flag set.
func (t Tile) WithLocked(locked bool) Tile {
	t.Locked = locked
	return t
}

// WithMeta returns a copy of the tile with key set to value.
func (t Tile) WithMeta(key string, value any) Tile {
	meta := make(Metadata, len(t.Meta)+1)
	maps.Copy(meta, t.Meta)
	meta[key] = value
	t.Meta = meta
	return t
}

// WithConstraints returns a copy of the tile with c as its overrides.
func (t Tile) WithConstraints(c *Constraints) Tile {
	if c != nil {
		cc := c.Clone()
		t.Constraints = &cc
	} else {
		t.Constraints = nil
	}
	return t
}
