// Package ops implements the mutating tiling operations.
//
// Every operation follows the same shape: resolve its strategy, evaluate the
// operation's decision graph, and only if that passes compute a new
// [tiling.State]. A rejected operation returns Valid=false with the
// violation and the input state untouched; an error is returned only for
// programming mistakes such as an unknown strategy key or a missing graph.
//
// # Usage
//
//	op := ops.New()
//	res, err := op.Split(state, cfg, "root", tiling.Vertical, 0.5)
//	if err != nil {
//	    return err // programmer error
//	}
//	if !res.Valid {
//	    fmt.Println(res.Violations[0].Message)
//	}
//	state = res.State
package ops

import (
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/decision"
	"github.com/matzehuels/tilegrid/pkg/idgen"
	"github.com/matzehuels/tilegrid/pkg/strategy"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// DefaultRatio is used when a split or insert is requested with ratio 0.
const DefaultRatio = 0.5

// Result is the outcome of one operation.
type Result struct {
	Valid        bool                 `json:"valid"`
	Violations   []decision.Violation `json:"violations,omitempty"`
	NewTileID    string               `json:"newTileId,omitempty"`
	AppliedDelta float64              `json:"appliedDelta,omitempty"`

	// State is the resulting tiling, or the input tiling when rejected.
	State *tiling.State `json:"-"`
}

// Operator runs operations against immutable states. The zero value is not
// usable; call [New].
type Operator struct {
	Graphs     *decision.Registry
	Strategies *strategy.Set
	IDs        idgen.Generator
}

// New returns an Operator with the built-in graphs and strategies.
func New() *Operator {
	return &Operator{
		Graphs:     decision.Builtin(),
		Strategies: strategy.Builtin(),
		IDs:        idgen.Default,
	}
}

// check validates cfg and evaluates the graph of op.
func (o *Operator) check(op string, s *tiling.State, cfg *config.Config, p decision.Params) (*decision.Context, decision.Result, error) {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, decision.Result{}, err
	}
	ctx := decision.NewContext(s, op, p, *cfg)
	res, err := o.Graphs.Evaluate(op, ctx)
	return ctx, res, err
}

func rejected(s *tiling.State, res decision.Result) Result {
	return Result{Valid: false, Violations: res.Violations, State: s}
}

// newID returns a fresh id not used by any tile in s.
func (o *Operator) newID(s *tiling.State) string {
	gen := o.IDs
	if gen == nil {
		gen = idgen.Default
	}
	return idgen.Unique(gen, func(id string) bool {
		_, taken := s.Tile(id)
		return taken
	})()
}

// Validate checks a whole layout against cfg.
func (o *Operator) Validate(s *tiling.State, cfg config.Config) (Result, error) {
	_, res, err := o.check(decision.OpValidate, s, &cfg, decision.Params{})
	if err != nil {
		return Result{}, err
	}
	if !res.Valid {
		return rejected(s, res), nil
	}
	return Result{Valid: true, State: s}, nil
}
