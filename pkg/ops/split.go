package ops

import (
	"slices"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/decision"
	"github.com/matzehuels/tilegrid/pkg/strategy"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Split divides a tile in two along orientation. The first part keeps the
// tile's id, metadata and constraints; the second gets a fresh id and joins
// the same groups. A ratio of 0 means [DefaultRatio].
func (o *Operator) Split(s *tiling.State, cfg config.Config, tileID string, orientation tiling.Orientation, ratio float64) (Result, error) {
	if ratio == 0 {
		ratio = DefaultRatio
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	splitter, err := o.Strategies.Split.Get(cfg.Strategies.Split)
	if err != nil {
		return Result{}, err
	}
	p := decision.Params{TileID: tileID, Orientation: orientation, Ratio: ratio}
	_, res, err := o.check(decision.OpSplit, s, &cfg, p)
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}

	t, _ := s.Tile(tileID)
	first, second := splitter.Split(t, orientation, ratio)
	newID := o.newID(s)
	second = second.WithID(newID)

	tiles := s.Tiles()
	i := s.IndexOf(tileID)
	tiles[i] = first
	tiles = slices.Insert(tiles, i+1, second)

	groups := s.Groups()
	for _, name := range s.GroupsOf(tileID) {
		groups[name] = append(groups[name], newID)
	}

	next, err := s.WithTilesAndGroups(tiles, groups)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: true, NewTileID: newID, State: next}, nil
}

// Insert carves a new tile of the given fraction off side of the reference
// tile, shrinking the reference. A size of 0 means [DefaultRatio].
func (o *Operator) Insert(s *tiling.State, cfg config.Config, refID string, side tiling.Edge, size float64) (Result, error) {
	if size == 0 {
		size = DefaultRatio
	}
	p := decision.Params{TileID: refID, Edge: side, Size: size}
	_, res, err := o.check(decision.OpInsert, s, &cfg, p)
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}

	ref, _ := s.Tile(refID)
	newID := o.newID(s)
	tiles := s.Tiles()
	i := s.IndexOf(refID)

	var cut strategy.Ratio
	if side.Leading() {
		carved, rest := cut.Split(ref, side.Orientation(), size)
		tiles[i] = rest
		tiles = slices.Insert(tiles, i, carved.WithID(newID))
	} else {
		rest, carved := cut.Split(ref, side.Orientation(), 1-size)
		tiles[i] = rest
		tiles = slices.Insert(tiles, i+1, carved.WithID(newID))
	}

	next, err := s.WithTiles(tiles)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: true, NewTileID: newID, State: next}, nil
}
