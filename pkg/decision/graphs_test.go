package decision

import (
	"math"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func tile(id string, x, y, w, h float64) tiling.Tile {
	return tiling.Tile{ID: id, X: x, Y: y, Width: w, Height: h}
}

func mustState(t *testing.T, tiles []tiling.Tile, opts ...tiling.Option) *tiling.State {
	t.Helper()
	s, err := tiling.New(tiles, opts...)
	if err != nil {
		t.Fatalf("tiling.New() error: %v", err)
	}
	return s
}

func run(t *testing.T, s *tiling.State, op string, p Params, cfg config.Config) Result {
	t.Helper()
	res, err := Builtin().Evaluate(op, NewContext(s, op, p, cfg))
	if err != nil {
		t.Fatalf("Evaluate(%s) error: %v", op, err)
	}
	return res
}

func wantCode(t *testing.T, res Result, code Code) {
	t.Helper()
	if code == "" {
		if !res.Valid {
			t.Errorf("Valid = false (%v), want true", res.Violations)
		}
		return
	}
	if res.Valid {
		t.Fatalf("Valid = true, want %s", code)
	}
	if res.Violations[0].Code != code {
		t.Errorf("Code = %s (%s), want %s", res.Violations[0].Code, res.Violations[0].Message, code)
	}
}

func TestSplitGraph(t *testing.T) {
	locked := tile("root", 0, 0, 100, 100)
	locked.Locked = true

	single := mustState(t, []tiling.Tile{tile("root", 0, 0, 100, 100)})
	small := config.Default()
	small.MaxTiles = 1
	tiny := config.Default()
	tiny.MinTile = config.Size{Width: 1e-7, Height: 1e-7}

	tests := []struct {
		name  string
		state *tiling.State
		p     Params
		cfg   config.Config
		code  Code
	}{
		{"ok", single, Params{TileID: "root", Orientation: tiling.Vertical, Ratio: 0.5}, config.Default(), ""},
		{"missing", single, Params{TileID: "x", Orientation: tiling.Vertical, Ratio: 0.5}, config.Default(), CodeTileNotFound},
		{"locked", mustState(t, []tiling.Tile{locked}), Params{TileID: "root", Orientation: tiling.Vertical, Ratio: 0.5}, config.Default(), CodeTileLocked},
		{"bad orientation", single, Params{TileID: "root", Orientation: "diagonal", Ratio: 0.5}, config.Default(), CodeInvalidParams},
		{"bad ratio", single, Params{TileID: "root", Orientation: tiling.Vertical, Ratio: 1}, config.Default(), CodeInvalidParams},
		{"max tiles", single, Params{TileID: "root", Orientation: tiling.Vertical, Ratio: 0.5}, small, CodeMaxTilesExceeded},
		{"too small", single, Params{TileID: "root", Orientation: tiling.Horizontal, Ratio: 0.02}, config.Default(), CodeMinSize},
		{"below epsilon floor", single, Params{TileID: "root", Orientation: tiling.Vertical, Ratio: 1e-9}, tiny, CodeMinSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, run(t, tt.state, OpSplit, tt.p, tt.cfg), tt.code)
		})
	}
}

func TestDeleteGraph(t *testing.T) {
	halves := []tiling.Tile{tile("l", 0, 0, 50, 100), tile("r", 50, 0, 50, 100)}
	lockedR := tile("r", 50, 0, 50, 100)
	lockedR.Locked = true

	// a | b
	// --+--
	//   c
	tee := []tiling.Tile{tile("a", 0, 0, 50, 50), tile("b", 50, 0, 50, 50), tile("c", 0, 50, 100, 50)}

	capped := config.Default().WithOverrides(map[string]tiling.Constraints{"r": {MaxWidth: 60}})

	tests := []struct {
		name  string
		state *tiling.State
		id    string
		cfg   config.Config
		code  Code
	}{
		{"two tiles", mustState(t, halves), "l", config.Default(), ""},
		{"last tile", mustState(t, []tiling.Tile{tile("root", 0, 0, 100, 100)}), "root", config.Default(), CodeLastTile},
		{"neighbor locked", mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), lockedR}), "l", config.Default(), CodeNeighborLocked},
		{"neighbor max size", mustState(t, halves), "l", capped, CodeMaxSize},
		{"partial side skipped", mustState(t, []tiling.Tile{
			tile("a", 0, 0, 50, 50), tile("b", 50, 0, 50, 60),
			tile("c", 0, 50, 50, 50), tile("d", 50, 60, 50, 40),
		}), "a", config.Default(), ""},
		{"ungrouped next to group", mustState(t, tee, tiling.WithGroups(tiling.Groups{"g": {"a", "b"}})), "c", config.Default(), ""},
		{"grouped with non-adjacent", mustState(t, []tiling.Tile{
			tile("a", 0, 0, 30, 100), tile("b", 30, 0, 40, 100), tile("c", 70, 0, 30, 100),
		}, tiling.WithGroups(tiling.Groups{"g": {"a", "c"}})), "a", config.Default(), CodeGroupIsolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, run(t, tt.state, OpDelete, Params{TileID: tt.id}, tt.cfg), tt.code)
		})
	}
}

func TestDeleteNoFullSpan(t *testing.T) {
	// a sits in a pinwheel: no side is spanned exactly by its neighbors.
	s := mustState(t, []tiling.Tile{
		tile("n", 0, 0, 70, 30),
		tile("e", 70, 0, 30, 70),
		tile("s", 30, 70, 70, 30),
		tile("w", 0, 30, 30, 70),
		tile("a", 30, 30, 40, 40),
	})
	wantCode(t, run(t, s, OpDelete, Params{TileID: "a"}, config.Default()), CodeNoFullSpan)
}

func TestResizeGraph(t *testing.T) {
	lockedR := tile("r", 50, 0, 50, 100)
	lockedR.Locked = true
	edgeR := tile("r", 50, 0, 50, 100)
	edgeR.Constraints = &tiling.Constraints{LockedEdges: []tiling.Edge{tiling.EdgeLeft}}

	halves := mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), tile("r", 50, 0, 50, 100)})

	tests := []struct {
		name  string
		state *tiling.State
		p     Params
		code  Code
	}{
		{"ok", halves, Params{TileID: "l", Edge: tiling.EdgeRight, Delta: 5}, ""},
		{"bad edge", halves, Params{TileID: "l", Edge: "middle"}, CodeInvalidParams},
		{"nan delta", halves, Params{TileID: "l", Edge: tiling.EdgeRight, Delta: math.NaN()}, CodeInvalidParams},
		{"inf delta", halves, Params{TileID: "l", Edge: tiling.EdgeRight, Delta: math.Inf(-1)}, CodeInvalidParams},
		{"container edge", halves, Params{TileID: "l", Edge: tiling.EdgeLeft}, CodeSeamNotCovered},
		{"neighbor locked", mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), lockedR}), Params{TileID: "l", Edge: tiling.EdgeRight}, CodeNeighborLocked},
		{"edge locked", mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), edgeR}), Params{TileID: "l", Edge: tiling.EdgeRight}, CodeEdgeLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, run(t, tt.state, OpResize, tt.p, config.Default()), tt.code)
		})
	}
}

func TestSeamResizeGraph(t *testing.T) {
	lockedR := tile("r", 50, 0, 50, 100)
	lockedR.Locked = true
	halves := mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), tile("r", 50, 0, 50, 100)})

	tests := []struct {
		name  string
		state *tiling.State
		seam  string
		delta float64
		code  Code
	}{
		{"ok", halves, "seam|v|50.000000", 5, ""},
		{"missing", halves, "seam|v|40.000000", 0, CodeSeamNotFound},
		{"border", halves, "seam|h|0.000000", 0, CodeSeamNotCovered},
		{"locked", mustState(t, []tiling.Tile{tile("l", 0, 0, 50, 100), lockedR}), "seam|v|50.000000", 0, CodeTileLocked},
		{"nan delta", halves, "seam|v|50.000000", math.NaN(), CodeInvalidParams},
		{"inf delta", halves, "seam|v|50.000000", math.Inf(1), CodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{SeamID: tt.seam, Delta: tt.delta}
			wantCode(t, run(t, tt.state, OpSeamResize, p, config.Default()), tt.code)
		})
	}
}

func TestInsertGraph(t *testing.T) {
	s := mustState(t, []tiling.Tile{tile("root", 0, 0, 100, 100)})
	tests := []struct {
		name string
		p    Params
		code Code
	}{
		{"ok", Params{TileID: "root", Edge: tiling.EdgeTop, Size: 0.3}, ""},
		{"bad size", Params{TileID: "root", Edge: tiling.EdgeTop, Size: 0}, CodeInvalidParams},
		{"bad side", Params{TileID: "root", Edge: "inside", Size: 0.3}, CodeInvalidParams},
		{"too small", Params{TileID: "root", Edge: tiling.EdgeLeft, Size: 0.01}, CodeMinSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, run(t, s, OpInsert, tt.p, config.Default()), tt.code)
		})
	}
}

func TestValidateGraph(t *testing.T) {
	s := mustState(t, []tiling.Tile{tile("l", 0, 0, 8, 100), tile("r", 8, 0, 92, 100)})

	wantCode(t, run(t, s, OpValidate, Params{}, config.Default()), "")

	strict := config.Default()
	strict.MinTile.Width = 10
	res := run(t, s, OpValidate, Params{}, strict)
	wantCode(t, res, CodeMinSize)
	if v, _ := res.First(); v.Data["tileId"] != "l" {
		t.Errorf("violation tileId = %v, want l", v.Data["tileId"])
	}

	few := config.Default()
	few.MaxTiles = 1
	wantCode(t, run(t, s, OpValidate, Params{}, few), CodeMaxTilesExceeded)
}
