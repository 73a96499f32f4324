package adjust

import (
	"slices"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Strategy names reported in Result.Strategy.
const (
	StrategyNone         = "none"
	StrategyProportional = "proportional"
	StrategyRedistribute = "redistribute"
)

// Repairer attempts to remove every violation from a state. It returns the
// repaired state and true only when a fresh scan is clean.
type Repairer interface {
	Name() string
	Repair(s *tiling.State, cfg config.Config) (*tiling.State, bool)
}

// DefaultRepairers is the order Adjust tries repairs in.
func DefaultRepairers() []Repairer {
	return []Repairer{Proportional{}, Redistribute{Passes: DefaultPasses}}
}

// Result is the outcome of an adjustment.
type Result struct {
	Success  bool   `json:"success"`
	Strategy string `json:"strategy,omitempty"`

	// Adjusted lists the tiles whose rectangle changed.
	Adjusted []string `json:"adjusted,omitempty"`

	// ViolatingTiles lists the tiles that could not be fixed.
	ViolatingTiles []string `json:"violatingTiles,omitempty"`

	// Violations holds the repaired violations on success and the
	// unresolved ones on failure.
	Violations []Violation `json:"violations,omitempty"`

	// Err describes the failure, with code ADJUST_FAILED.
	Err error `json:"-"`

	// State is the repaired state, or the input state on failure or when
	// nothing needed repair.
	State *tiling.State `json:"-"`
}

// Adjust repairs s against cfg with the per-tile overrides applied, using
// [DefaultRepairers].
func Adjust(s *tiling.State, cfg config.Config, overrides map[string]tiling.Constraints) Result {
	return AdjustWith(s, cfg, overrides, DefaultRepairers()...)
}

// AdjustWith is Adjust with an explicit repair chain.
func AdjustWith(s *tiling.State, cfg config.Config, overrides map[string]tiling.Constraints, repairers ...Repairer) Result {
	cfg = cfg.WithOverrides(overrides)
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Result{State: s, Err: errors.Wrap(errors.ErrCodeAdjustFailed, err, "Cannot adjust layout: invalid configuration")}
	}

	found := Scan(s, cfg)
	if len(found) == 0 {
		return Result{Success: true, Strategy: StrategyNone, State: s}
	}

	for _, r := range repairers {
		if next, ok := r.Repair(s, cfg); ok {
			return Result{
				Success:    true,
				Strategy:   r.Name(),
				Adjusted:   changed(s, next),
				Violations: found,
				State:      next,
			}
		}
	}

	ids := tileIDs(found)
	return Result{
		ViolatingTiles: ids,
		Violations:     found,
		State:          s,
		Err: errors.New(errors.ErrCodeAdjustFailed, "Cannot adjust layout: %d tile(s) cannot satisfy their constraints: %s",
			len(ids), strings.Join(ids, ", ")),
	}
}

// changed returns the ids whose rectangle differs between a and b.
func changed(a, b *tiling.State) []string {
	var ids []string
	for _, t := range b.Tiles() {
		old, ok := a.Tile(t.ID)
		if !ok || old.Rect() != t.Rect() {
			ids = append(ids, t.ID)
		}
	}
	slices.Sort(ids)
	return ids
}
