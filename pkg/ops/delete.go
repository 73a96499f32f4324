package ops

import (
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/decision"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Delete removes a tile and lets the neighbors on one side absorb its
// space. The side is chosen by the configured delete strategy among those
// the group policy allows.
func (o *Operator) Delete(s *tiling.State, cfg config.Config, tileID string) (Result, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	deleter, err := o.Strategies.Delete.Get(cfg.Strategies.Delete)
	if err != nil {
		return Result{}, err
	}
	ctx, res, err := o.check(decision.OpDelete, s, &cfg, decision.Params{TileID: tileID})
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}

	gone, _ := s.Tile(tileID)
	chosen := deleter.Choose(s, tileID, ctx.Absorptions())
	grown := make(map[string]tiling.Tile, len(chosen.Absorbers))
	for _, g := range chosen.Grow(gone) {
		grown[g.ID] = g
	}

	tiles := make([]tiling.Tile, 0, s.Len()-1)
	for _, t := range s.Tiles() {
		if t.ID == tileID {
			continue
		}
		if g, ok := grown[t.ID]; ok {
			t = g
		}
		tiles = append(tiles, t)
	}

	next, err := s.WithTiles(tiles)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: true, State: next}, nil
}
