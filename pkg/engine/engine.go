// Package engine is the stateful entry point to tilegrid.
//
// An Engine owns the current tiling, its configuration and an undo history.
// Every operation takes primitive arguments, runs through [ops.Operator] and
// commits the resulting state only when it is valid. Readers always get a
// frozen *tiling.State; a write lock is held while an operation computes, so
// two mutations never interleave.
//
// # Usage
//
//	eng, err := engine.New(nil, engine.Options{})
//	res, err := eng.Split(ctx, "root", "vertical", 0.6)
//	if err != nil {
//	    return err // programmer error
//	}
//	if !res.Valid {
//	    fmt.Println(res.Violations[0].Message)
//	}
//	eng.Undo()
package engine

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tilegrid/pkg/adjust"
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/decision"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/history"
	"github.com/matzehuels/tilegrid/pkg/observability"
	"github.com/matzehuels/tilegrid/pkg/ops"
	"github.com/matzehuels/tilegrid/pkg/seam"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// RootTileID names the single tile of a fresh layout.
const RootTileID = "root"

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Config is validated and defaulted by New.
	Config config.Config

	// Operator runs the operations. Defaults to ops.New().
	Operator *ops.Operator

	// Logger receives debug logs for each operation. Defaults to a discard
	// logger.
	Logger *log.Logger
}

// Engine holds one layout and its history. It is safe for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	state  *tiling.State
	cfg    config.Config
	op     *ops.Operator
	hist   *history.Stack
	logger *log.Logger

	// batch is the state before the first commit made with SkipHistory
	// since the last checkpoint.
	batch *tiling.State
}

// New returns an engine over s. A nil s starts from a single full-size tile.
func New(s *tiling.State, opts Options) (*Engine, error) {
	cfg := opts.Config
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	var err error
	if s == nil {
		s, err = tiling.Initial(RootTileID, tiling.WithEpsilon(cfg.Epsilon))
	} else {
		s, err = s.WithTolerance(cfg.Epsilon)
	}
	if err != nil {
		return nil, err
	}
	op := opts.Operator
	if op == nil {
		op = ops.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{
		state:  s,
		cfg:    cfg,
		op:     op,
		hist:   history.New(cfg.HistoryLimit),
		logger: logger,
	}, nil
}

// CallOption modifies a single mutating call.
type CallOption func(*call)

type call struct {
	skipHistory bool
}

// SkipHistory commits without recording an undo step. Use it for the
// intermediate steps of a drag and call Checkpoint when the gesture ends.
func SkipHistory() CallOption {
	return func(c *call) { c.skipHistory = true }
}

func collect(opts []CallOption) call {
	var c call
	for _, o := range opts {
		o(&c)
	}
	return c
}

// State returns the current tiling.
func (e *Engine) State() *tiling.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() config.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg.Clone()
}

// SetConfig replaces the configuration. The tiling is rebuilt under the new
// epsilon but its sizes are not checked; call Validate or Adjust afterwards.
// Changing epsilon drops the undo history.
func (e *Engine) SetConfig(cfg config.Config) error {
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s, err := e.state.WithTolerance(cfg.Epsilon)
	if err != nil {
		return err
	}
	if s != e.state {
		e.resetHistory()
	}
	e.state = s
	e.cfg = cfg
	return nil
}

// Load replaces both the tiling and the configuration, recording the old
// tiling as an undo step. A change of epsilon drops the history instead.
func (e *Engine) Load(s *tiling.State, cfg config.Config) error {
	if s == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot load a nil tiling")
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return err
	}
	s, err := s.WithTolerance(cfg.Epsilon)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if cfg.Epsilon != e.cfg.Epsilon {
		e.resetHistory()
		e.state = s
	} else {
		e.commit(s, call{})
	}
	e.cfg = cfg
	return nil
}

// resetHistory forgets every recorded state. States validated under another
// epsilon must not come back through undo.
func (e *Engine) resetHistory() {
	e.batch = nil
	e.hist.Clear()
}

// Seams returns the seams of the current tiling.
func (e *Engine) Seams() []tiling.Seam {
	return e.State().Seams()
}

// ClampSeam reports the legal range for moving seamID by delta.
func (e *Engine) ClampSeam(seamID string, delta float64) (seam.Range, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.op.ClampSeam(e.state, e.cfg, seamID, delta)
}

// ClampEdge reports the legal range for moving one edge of tileID by delta.
func (e *Engine) ClampEdge(tileID, edge string, delta float64) (seam.Range, error) {
	ed, err := tiling.ParseEdge(edge)
	if err != nil {
		return seam.Range{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.op.ClampEdge(e.state, e.cfg, tileID, ed, delta)
}

// Split divides tileID along orientation ("vertical" or "horizontal").
func (e *Engine) Split(ctx context.Context, tileID, orientation string, ratio float64, opts ...CallOption) (ops.Result, error) {
	o := orientationArg(orientation)
	return e.run(ctx, decision.OpSplit, opts, func(s *tiling.State, cfg config.Config) (ops.Result, error) {
		return e.op.Split(s, cfg, tileID, o, ratio)
	}, "tile", tileID, "orientation", orientation, "ratio", ratio)
}

// Delete removes tileID, growing its neighbors into the freed space.
func (e *Engine) Delete(ctx context.Context, tileID string, opts ...CallOption) (ops.Result, error) {
	return e.run(ctx, decision.OpDelete, opts, func(s *tiling.State, cfg config.Config) (ops.Result, error) {
		return e.op.Delete(s, cfg, tileID)
	}, "tile", tileID)
}

// Insert carves a new tile of the given size from the side of refID.
func (e *Engine) Insert(ctx context.Context, refID, side string, size float64, opts ...CallOption) (ops.Result, error) {
	return e.run(ctx, decision.OpInsert, opts, func(s *tiling.State, cfg config.Config) (ops.Result, error) {
		return e.op.Insert(s, cfg, refID, tiling.Edge(side), size)
	}, "ref", refID, "side", side, "size", size)
}

// Resize moves one edge of tileID by delta, clamped to its legal range.
func (e *Engine) Resize(ctx context.Context, tileID, edge string, delta float64, opts ...CallOption) (ops.Result, error) {
	return e.run(ctx, decision.OpResize, opts, func(s *tiling.State, cfg config.Config) (ops.Result, error) {
		return e.op.Resize(s, cfg, tileID, tiling.Edge(edge), delta)
	}, "tile", tileID, "edge", edge, "delta", delta)
}

// SeamResize moves seamID by delta, clamped to its legal range.
func (e *Engine) SeamResize(ctx context.Context, seamID string, delta float64, opts ...CallOption) (ops.Result, error) {
	return e.run(ctx, decision.OpSeamResize, opts, func(s *tiling.State, cfg config.Config) (ops.Result, error) {
		return e.op.SeamResize(s, cfg, seamID, delta)
	}, "seam", seamID, "delta", delta)
}

// Validate checks the current tiling against the configuration. It never
// changes the state.
func (e *Engine) Validate(ctx context.Context) (ops.Result, error) {
	e.mu.RLock()
	s, cfg := e.state, e.cfg
	e.mu.RUnlock()

	start := time.Now()
	res, err := e.op.Validate(s, cfg)
	e.observe(ctx, decision.OpValidate, res, err, time.Since(start))
	return res, err
}

// Adjust repairs the current tiling against the configuration plus
// overrides and commits the result on success.
func (e *Engine) Adjust(ctx context.Context, overrides map[string]tiling.Constraints, opts ...CallOption) adjust.Result {
	c := collect(opts)
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res := adjust.Adjust(e.state, e.cfg, overrides)
	if res.Success && res.State != e.state {
		e.commit(res.State, c)
	}
	observability.Operations().OnAdjust(ctx, res.Strategy, len(res.Adjusted), time.Since(start), res.Err)
	e.logger.Debug("adjust", "success", res.Success, "strategy", res.Strategy, "adjusted", res.Adjusted)
	return res
}

// Undo restores the previous tiling. It reports false when there is nothing
// to undo.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushBatch()
	prev, ok := e.hist.Undo(e.state)
	if ok {
		e.state = prev
	}
	return ok
}

// Redo re-applies the last undone change.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, ok := e.hist.Redo(e.state)
	if ok {
		e.state = next
	}
	return ok
}

// CanUndo reports whether Undo would change the tiling.
func (e *Engine) CanUndo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.batch != nil || e.hist.CanUndo()
}

// CanRedo reports whether Redo would change the tiling.
func (e *Engine) CanRedo() bool {
	return e.hist.CanRedo()
}

// Checkpoint closes a run of SkipHistory commits, recording the state before
// the run as a single undo step.
func (e *Engine) Checkpoint() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushBatch()
}

func (e *Engine) flushBatch() {
	if e.batch != nil && e.batch != e.state {
		e.hist.Push(e.batch)
	}
	e.batch = nil
}

// commit installs next as the current state. Callers hold the write lock.
func (e *Engine) commit(next *tiling.State, c call) {
	if next == e.state {
		return
	}
	if c.skipHistory {
		if e.batch == nil {
			e.batch = e.state
			e.hist.ClearRedo()
		}
	} else {
		e.flushBatch()
		e.hist.Push(e.state)
	}
	e.state = next
}

type opFunc func(s *tiling.State, cfg config.Config) (ops.Result, error)

// run evaluates fn under the write lock and commits a valid result.
func (e *Engine) run(ctx context.Context, name string, opts []CallOption, fn opFunc, kv ...any) (ops.Result, error) {
	c := collect(opts)
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	res, err := fn(e.state, e.cfg)
	if err == nil && res.Valid {
		e.commit(res.State, c)
	}
	e.observe(ctx, name, res, err, time.Since(start), kv...)
	return res, err
}

func (e *Engine) observe(ctx context.Context, name string, res ops.Result, err error, d time.Duration, kv ...any) {
	observability.Operations().OnOperation(ctx, name, err == nil && res.Valid, len(res.Violations), d)
	if err != nil {
		e.logger.Error("operation failed", append([]any{"op", name, "err", err}, kv...)...)
		return
	}
	fields := append([]any{"op", name, "valid", res.Valid}, kv...)
	if len(res.Violations) > 0 {
		fields = append(fields, "violation", res.Violations[0].Code)
	}
	e.logger.Debug("operation", fields...)
}

// orientationArg accepts the long and single-letter forms and leaves
// anything else for the decision graph to reject.
func orientationArg(s string) tiling.Orientation {
	if o, err := tiling.ParseOrientation(s); err == nil {
		return o
	}
	return tiling.Orientation(s)
}
