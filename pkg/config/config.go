// Package config holds the immutable configuration every tiling operation is
// evaluated against.
//
// A [Config] is a plain value. It is passed explicitly into each evaluation
// and never captured by closures, so two calls with different configurations
// never influence each other. Load it from TOML, YAML or JSON with [Load], or
// start from [Default].
//
// # Size Limits
//
// Effective limits for a tile are resolved by [Config.Limits] in three layers,
// later layers winning field by field:
//
//  1. Global defaults: MinTile and MaxTile
//  2. The tile's own constraints, as stored in the snapshot
//  3. Per-tile overrides in Tiles, keyed by tile id
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultMinTile is the minimum tile width and height in percent.
	DefaultMinTile = 5.0

	// DefaultMaxTiles bounds the number of tiles in one layout. Tiling
	// validation is quadratic in this number.
	DefaultMaxTiles = 32

	// DefaultHistoryLimit is the number of undo steps kept by an engine.
	DefaultHistoryLimit = 100

	// Default strategy keys.
	DefaultSplitStrategy  = "ratio"
	DefaultResizeStrategy = "linear"
	DefaultDeleteStrategy = "heuristic"
)

// =============================================================================
// Config
// =============================================================================

// Size is a width/height pair in percent. Zero means unset.
type Size struct {
	Width  float64 `json:"width,omitempty" toml:"width" yaml:"width"`
	Height float64 `json:"height,omitempty" toml:"height" yaml:"height"`
}

// Strategies selects the algorithm used for each operation.
type Strategies struct {
	Split  string `json:"split,omitempty" toml:"split" yaml:"split"`
	Resize string `json:"resize,omitempty" toml:"resize" yaml:"resize"`
	Delete string `json:"delete,omitempty" toml:"delete" yaml:"delete"`
}

// Config is the effective configuration of a tiling.
type Config struct {
	MinTile      Size                          `json:"minTile" toml:"min_tile" yaml:"min_tile"`
	MaxTile      Size                          `json:"maxTile,omitempty" toml:"max_tile" yaml:"max_tile"`
	MaxTiles     int                           `json:"maxTiles" toml:"max_tiles" yaml:"max_tiles"`
	Epsilon      float64                       `json:"epsilon" toml:"epsilon" yaml:"epsilon"`
	HistoryLimit int                           `json:"historyLimit,omitempty" toml:"history_limit" yaml:"history_limit"`
	Strategies   Strategies                    `json:"strategies,omitempty" toml:"strategies" yaml:"strategies"`
	Tiles        map[string]tiling.Constraints `json:"tiles,omitempty" toml:"tiles" yaml:"tiles"`
}

// Default returns the built-in configuration.
func Default() Config {
	c := Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.MinTile.Width == 0 {
		c.MinTile.Width = DefaultMinTile
	}
	if c.MinTile.Height == 0 {
		c.MinTile.Height = DefaultMinTile
	}
	if c.MaxTiles == 0 {
		c.MaxTiles = DefaultMaxTiles
	}
	if c.Epsilon == 0 {
		c.Epsilon = geom.DefaultEpsilon
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = DefaultHistoryLimit
	}
	if c.Strategies.Split == "" {
		c.Strategies.Split = DefaultSplitStrategy
	}
	if c.Strategies.Resize == "" {
		c.Strategies.Resize = DefaultResizeStrategy
	}
	if c.Strategies.Delete == "" {
		c.Strategies.Delete = DefaultDeleteStrategy
	}
}

// ValidateAndSetDefaults fills unset fields and rejects inconsistent values.
// Calling it more than once has the same effect as calling it once.
func (c *Config) ValidateAndSetDefaults() error {
	c.setDefaults()

	if c.MinTile.Width < 0 || c.MinTile.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min_tile must not be negative")
	}
	if c.MinTile.Width >= geom.ContainerSize || c.MinTile.Height >= geom.ContainerSize {
		return errors.New(errors.ErrCodeInvalidConfig, "min_tile %gx%g leaves no room for a second tile", c.MinTile.Width, c.MinTile.Height)
	}
	if c.MaxTile.Width < 0 || c.MaxTile.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_tile must not be negative")
	}
	if c.MaxTile.Width > 0 && c.MaxTile.Width < c.MinTile.Width {
		return errors.New(errors.ErrCodeInvalidConfig, "max_tile.width %g below min_tile.width %g", c.MaxTile.Width, c.MinTile.Width)
	}
	if c.MaxTile.Height > 0 && c.MaxTile.Height < c.MinTile.Height {
		return errors.New(errors.ErrCodeInvalidConfig, "max_tile.height %g below min_tile.height %g", c.MaxTile.Height, c.MinTile.Height)
	}
	if c.MaxTiles < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_tiles must be at least 1, got %d", c.MaxTiles)
	}
	if c.Epsilon < 0 || c.Epsilon > 0.01 {
		return errors.New(errors.ErrCodeInvalidConfig, "epsilon %g out of range (0, 0.01]", c.Epsilon)
	}
	if c.MinTile.Width < 2*c.Epsilon || c.MinTile.Height < 2*c.Epsilon {
		return errors.New(errors.ErrCodeInvalidConfig, "min_tile %gx%g must be at least twice epsilon %g", c.MinTile.Width, c.MinTile.Height, c.Epsilon)
	}
	if c.HistoryLimit < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "history_limit must not be negative")
	}
	for id, tc := range c.Tiles {
		if err := errors.ValidateTileID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tiles")
		}
		if err := tc.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "tiles.%s", id)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	if c.Tiles != nil {
		tiles := make(map[string]tiling.Constraints, len(c.Tiles))
		for id, tc := range c.Tiles {
			tiles[id] = tc.Clone()
		}
		c.Tiles = tiles
	}
	return c
}

// WithOverrides returns a copy whose per-tile constraints are merged with
// overrides, the overrides winning field by field.
func (c Config) WithOverrides(overrides map[string]tiling.Constraints) Config {
	out := c.Clone()
	if len(overrides) == 0 {
		return out
	}
	if out.Tiles == nil {
		out.Tiles = make(map[string]tiling.Constraints, len(overrides))
	}
	for id, tc := range overrides {
		out.Tiles[id] = out.Tiles[id].Merge(tc)
	}
	return out
}

// Base returns the global constraints every tile starts from.
func (c Config) Base() tiling.Constraints {
	return tiling.Constraints{
		MinWidth:  c.MinTile.Width,
		MinHeight: c.MinTile.Height,
		MaxWidth:  c.MaxTile.Width,
		MaxHeight: c.MaxTile.Height,
	}
}

// Limits resolves the effective constraints for t. Config implements
// [tiling.Limits].
func (c Config) Limits(t tiling.Tile) tiling.Constraints {
	out := c.Base()
	if t.Constraints != nil {
		out = out.Merge(*t.Constraints)
	}
	if tc, ok := c.Tiles[t.ID]; ok {
		out = out.Merge(tc)
	}
	return out
}

// TileIDs returns the ids with per-tile overrides.
func (c Config) TileIDs() []string {
	return sortedKeys(c.Tiles)
}

// String returns a compact one-line summary.
func (c Config) String() string {
	return fmt.Sprintf("min=%gx%g max_tiles=%d eps=%g split=%s resize=%s delete=%s",
		c.MinTile.Width, c.MinTile.Height, c.MaxTiles, c.Epsilon,
		c.Strategies.Split, c.Strategies.Resize, c.Strategies.Delete)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
