package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.MinTile.Width != DefaultMinTile || c.MinTile.Height != DefaultMinTile {
		t.Errorf("MinTile = %+v, want %v", c.MinTile, DefaultMinTile)
	}
	if c.MaxTiles != DefaultMaxTiles {
		t.Errorf("MaxTiles = %d, want %d", c.MaxTiles, DefaultMaxTiles)
	}
	if c.Strategies.Split != DefaultSplitStrategy {
		t.Errorf("Strategies.Split = %q, want %q", c.Strategies.Split, DefaultSplitStrategy)
	}
	if err := c.ValidateAndSetDefaults(); err != nil {
		t.Errorf("Default().ValidateAndSetDefaults() error: %v", err)
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	c := Config{MinTile: Size{Width: 10}}
	if err := c.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := c.String()
	if err := c.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if c.String() != first {
		t.Errorf("second call changed config: %s -> %s", first, c.String())
	}
	if c.MinTile.Width != 10 || c.MinTile.Height != DefaultMinTile {
		t.Errorf("MinTile = %+v, want 10x%v", c.MinTile, DefaultMinTile)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative min", Config{MinTile: Size{Width: -1}}},
		{"huge min", Config{MinTile: Size{Width: 100}}},
		{"max below min", Config{MinTile: Size{Width: 20}, MaxTile: Size{Width: 10}}},
		{"negative max tiles", Config{MaxTiles: -3}},
		{"bad epsilon", Config{Epsilon: 1}},
		{"min within epsilon", Config{MinTile: Size{Width: 1e-7, Height: 5}}},
		{"bad tile id", Config{Tiles: map[string]tiling.Constraints{"a b": {}}}},
		{"bad tile constraints", Config{Tiles: map[string]tiling.Constraints{"a": {MinWidth: 50, MaxWidth: 10}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateAndSetDefaults()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLimitsPrecedence(t *testing.T) {
	c := Default().WithOverrides(map[string]tiling.Constraints{
		"a": {MinWidth: 30},
	})

	own := tiling.Tile{ID: "a", Constraints: &tiling.Constraints{MinWidth: 20, MaxWidth: 60}}
	got := c.Limits(own)
	if got.MinWidth != 30 {
		t.Errorf("MinWidth = %v, want 30 (override wins)", got.MinWidth)
	}
	if got.MaxWidth != 60 {
		t.Errorf("MaxWidth = %v, want 60 (tile constraint)", got.MaxWidth)
	}
	if got.MinHeight != DefaultMinTile {
		t.Errorf("MinHeight = %v, want %v (global)", got.MinHeight, DefaultMinTile)
	}

	plain := c.Limits(tiling.Tile{ID: "b"})
	if plain.MinWidth != DefaultMinTile {
		t.Errorf("plain MinWidth = %v, want %v", plain.MinWidth, DefaultMinTile)
	}
}

func TestWithOverridesDoesNotMutate(t *testing.T) {
	base := Default().WithOverrides(map[string]tiling.Constraints{"a": {MinWidth: 10}})
	_ = base.WithOverrides(map[string]tiling.Constraints{"a": {MinWidth: 40}})
	if base.Tiles["a"].MinWidth != 10 {
		t.Errorf("base.Tiles[a].MinWidth = %v, want 10", base.Tiles["a"].MinWidth)
	}
}

func TestLoadFormats(t *testing.T) {
	files := map[string]string{
		"layout.toml": `
max_tiles = 12

[min_tile]
width = 10

[tiles.hero]
min_width = 40
`,
		"layout.yaml": `
max_tiles: 12
min_tile:
  width: 10
tiles:
  hero:
    min_width: 40
`,
		"layout.json": `{"maxTiles": 12, "minTile": {"width": 10}, "tiles": {"hero": {"minWidth": 40}}}`,
	}

	dir := t.TempDir()
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			t.Setenv(EnvMinTile, "")
			t.Setenv(EnvMaxTiles, "")
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			c, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if c.MaxTiles != 12 {
				t.Errorf("MaxTiles = %d, want 12", c.MaxTiles)
			}
			if c.MinTile.Width != 10 || c.MinTile.Height != DefaultMinTile {
				t.Errorf("MinTile = %+v, want 10x%v", c.MinTile, DefaultMinTile)
			}
			if c.Tiles["hero"].MinWidth != 40 {
				t.Errorf("Tiles[hero].MinWidth = %v, want 40", c.Tiles["hero"].MinWidth)
			}
			if c.Strategies.Resize != DefaultResizeStrategy {
				t.Errorf("Strategies.Resize = %q, want %q", c.Strategies.Resize, DefaultResizeStrategy)
			}
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    Size
		tiles   int
		wantErr bool
	}{
		{"single", map[string]string{EnvMinTile: "8"}, Size{8, 8}, DefaultMaxTiles, false},
		{"pair", map[string]string{EnvMinTile: "8x12", EnvMaxTiles: "4"}, Size{8, 12}, 4, false},
		{"bad", map[string]string{EnvMinTile: "wide"}, Size{}, 0, true},
		{"bad count", map[string]string{EnvMaxTiles: "many"}, Size{}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			err := ApplyEnv(&c, func(k string) string { return tt.env[k] })
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyEnv() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error: %v", err)
			}
			if c.MinTile != tt.want {
				t.Errorf("MinTile = %+v, want %+v", c.MinTile, tt.want)
			}
			if c.MaxTiles != tt.tiles {
				t.Errorf("MaxTiles = %d, want %d", c.MaxTiles, tt.tiles)
			}
		})
	}
}
