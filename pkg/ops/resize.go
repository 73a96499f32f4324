package ops

import (
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/decision"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Resize moves one edge of a tile by delta along its axis: positive moves
// right or down. The delta is clamped to the seam's legal range; the clamped
// value is reported in AppliedDelta.
func (o *Operator) Resize(s *tiling.State, cfg config.Config, tileID string, edge tiling.Edge, delta float64) (Result, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Result{}, err
	}
	resizer, err := o.Strategies.Resize.Get(cfg.Strategies.Resize)
	if err != nil {
		return Result{}, err
	}
	opts := resizer.Options(tileID, cfg)
	p := decision.Params{TileID: tileID, Edge: edge, Delta: delta, Anchor: opts.Anchor}
	_, res, err := o.check(decision.OpResize, s, &cfg, p)
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}

	sm, _ := s.EdgeSeam(tileID, edge)
	return move(s, sm.ID, delta, opts)
}

// SeamResize moves a seam addressed by id by delta, clamped to its legal
// range.
func (o *Operator) SeamResize(s *tiling.State, cfg config.Config, seamID string, delta float64) (Result, error) {
	_, res, err := o.check(decision.OpSeamResize, s, &cfg, decision.Params{SeamID: seamID, Delta: delta})
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}
	return move(s, seamID, delta, seam.Options{Limits: cfg})
}

func move(s *tiling.State, seamID string, delta float64, opts seam.Options) (Result, error) {
	r, err := seam.Clamp(s, seamID, delta, opts)
	if err != nil {
		return Result{}, err
	}
	next, err := seam.Apply(s, seamID, r.Delta, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Valid: true, State: next, AppliedDelta: r.Delta}, nil
}

// ClampSeam reports the legal range of a seam under cfg.
func (o *Operator) ClampSeam(s *tiling.State, cfg config.Config, seamID string, delta float64) (seam.Range, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return seam.Range{}, err
	}
	return seam.Clamp(s, seamID, delta, seam.Options{Limits: cfg})
}

// ClampEdge reports the legal range of a tile edge under cfg and the
// configured resize strategy.
func (o *Operator) ClampEdge(s *tiling.State, cfg config.Config, tileID string, edge tiling.Edge, delta float64) (seam.Range, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return seam.Range{}, err
	}
	resizer, err := o.Strategies.Resize.Get(cfg.Strategies.Resize)
	if err != nil {
		return seam.Range{}, err
	}
	if _, ok := s.Tile(tileID); !ok {
		return seam.Range{}, errors.New(errors.ErrCodeNotFound, "tile %q does not exist", tileID)
	}
	sm, ok := s.EdgeSeam(tileID, edge)
	if !ok {
		return seam.Range{}, errors.New(errors.ErrCodeSeamNotFound, "edge %s of tile %q lies on no seam", edge, tileID)
	}
	return seam.Clamp(s, sm.ID, delta, resizer.Options(tileID, cfg))
}
