package decision

import (
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Params carries the primitive arguments of an operation. Each operation
// reads only the fields it needs.
type Params struct {
	TileID      string             `json:"tileId,omitempty"`
	SeamID      string             `json:"seamId,omitempty"`
	Edge        tiling.Edge        `json:"edge,omitempty"`
	Orientation tiling.Orientation `json:"orientation,omitempty"`
	Ratio       float64            `json:"ratio,omitempty"`
	Size        float64            `json:"size,omitempty"`
	Delta       float64            `json:"delta,omitempty"`

	// Anchor narrows seam checks to the segment around this tile.
	Anchor string `json:"anchor,omitempty"`
}

// Context is the ephemeral input of one evaluation.
type Context struct {
	State     *tiling.State
	Operation string
	Params    Params
	Config    config.Config

	notes map[string]any
}

// NewContext builds a context for op.
func NewContext(s *tiling.State, op string, p Params, cfg config.Config) *Context {
	return &Context{State: s, Operation: op, Params: p, Config: cfg}
}

// Note stores a value computed by an action for later nodes.
func (c *Context) Note(key string, v any) {
	if c.notes == nil {
		c.notes = make(map[string]any)
	}
	c.notes[key] = v
}

// Noted returns a value stored with Note.
func (c *Context) Noted(key string) (any, bool) {
	v, ok := c.notes[key]
	return v, ok
}

// Tile returns the tile named by Params.TileID.
func (c *Context) Tile() (tiling.Tile, bool) {
	return c.State.Tile(c.Params.TileID)
}
