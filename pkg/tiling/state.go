package tiling

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// AreaTolerance is the coarse tolerance applied to the aggregate area check.
// Per-coordinate drift of ε over a handful of tiles stays well inside it,
// while any real gap of meaningful size is caught.
const AreaTolerance = 1e-2

// Groups maps a group name to the ids of its member tiles.
type Groups map[string][]string

// Clone returns a deep copy.
func (g Groups) Clone() Groups {
	if g == nil {
		return Groups{}
	}
	out := make(Groups, len(g))
	for name, ids := range g {
		out[name] = slices.Clone(ids)
	}
	return out
}

// State is an immutable, validated tiling snapshot. The zero value is not
// usable; build one with [New] or [Initial].
type State struct {
	tiles   []Tile
	index   map[string]int
	groups  Groups
	version uint64
	eps     float64

	seams     []Seam
	seamIndex map[string]int
}

type options struct {
	eps     float64
	groups  Groups
	version uint64
}

// Option customises State construction.
type Option func(*options)

// WithEpsilon sets the tolerance used for every geometric comparison.
func WithEpsilon(eps float64) Option { return func(o *options) { o.eps = eps } }

// WithGroups sets the group membership map. Members that are not present in
// the tiling are dropped, and groups left empty are removed.
func WithGroups(g Groups) Option { return func(o *options) { o.groups = g } }

// WithVersion sets the adjacency version of the constructed state.
func WithVersion(v uint64) Option { return func(o *options) { o.version = v } }

// New validates tiles and builds a State.
func New(tiles []Tile, opts ...Option) (*State, error) {
	o := options{eps: geom.DefaultEpsilon}
	for _, opt := range opts {
		opt(&o)
	}
	if o.eps <= 0 || math.IsNaN(o.eps) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "epsilon must be positive, got %g", o.eps)
	}
	if len(tiles) == 0 {
		return nil, errors.New(errors.ErrCodeCoverageGap, "tiling has no tiles")
	}

	s := &State{
		tiles:   slices.Clone(tiles),
		index:   make(map[string]int, len(tiles)),
		version: o.version,
		eps:     o.eps,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	groups, err := s.pruneGroups(o.groups)
	if err != nil {
		return nil, err
	}
	s.groups = groups
	s.deriveSeams()
	return s, nil
}

// Initial returns a state holding one tile with the given id covering the
// whole container.
func Initial(id string, opts ...Option) (*State, error) {
	t, err := NewTile(id, 0, 0, geom.ContainerSize, geom.ContainerSize)
	if err != nil {
		return nil, err
	}
	return New([]Tile{t}, opts...)
}

// validate enforces per-tile validity, pairwise non-overlap and coverage.
func (s *State) validate() error {
	var total float64
	for i, t := range s.tiles {
		if err := t.Validate(s.eps); err != nil {
			return err
		}
		if _, dup := s.index[t.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateTile, "duplicate tile id %q", t.ID)
		}
		s.index[t.ID] = i
		total += t.Area()
	}

	for i := 0; i < len(s.tiles); i++ {
		for j := i + 1; j < len(s.tiles); j++ {
			if geom.Overlaps(s.tiles[i].Rect(), s.tiles[j].Rect(), s.eps) {
				return errors.New(errors.ErrCodeOverlap, "tiles %s and %s overlap", s.tiles[i].ID, s.tiles[j].ID)
			}
		}
	}

	if math.Abs(total-geom.ContainerArea) > AreaTolerance {
		return errors.New(errors.ErrCodeCoverageGap, "tiles cover %.6f of %.0f", total, geom.ContainerArea)
	}
	return nil
}

func (s *State) pruneGroups(in Groups) (Groups, error) {
	out := Groups{}
	for name, ids := range in {
		if err := errors.ValidateGroupName(name); err != nil {
			return nil, err
		}
		var members []string
		for _, id := range ids {
			if _, ok := s.index[id]; ok && !slices.Contains(members, id) {
				members = append(members, id)
			}
		}
		if len(members) > 0 {
			out[name] = members
		}
	}
	return out, nil
}

// WithTiles returns a new validated state holding tiles, keeping the current
// groups (pruned to the surviving ids) and incrementing the adjacency version.
func (s *State) WithTiles(tiles []Tile) (*State, error) {
	return s.WithTilesAndGroups(tiles, s.groups)
}

// WithTilesAndGroups is WithTiles with a replacement group map.
func (s *State) WithTilesAndGroups(tiles []Tile, groups Groups) (*State, error) {
	return New(tiles, WithEpsilon(s.eps), WithGroups(groups), WithVersion(s.version+1))
}

// WithGroups returns a copy of the state with a new group map. Geometry is
// unchanged, so the adjacency version is kept.
func (s *State) WithGroups(groups Groups) (*State, error) {
	return New(s.tiles, WithEpsilon(s.eps), WithGroups(groups), WithVersion(s.version))
}

// WithTolerance returns the state re-validated under eps. Seams are derived
// again, so the adjacency version is incremented when eps changes.
func (s *State) WithTolerance(eps float64) (*State, error) {
	if eps == s.eps {
		return s, nil
	}
	return New(s.tiles, WithEpsilon(eps), WithGroups(s.groups), WithVersion(s.version+1))
}

// Epsilon returns the tolerance the state was validated with.
func (s *State) Epsilon() float64 { return s.eps }

// Version returns the adjacency version counter.
func (s *State) Version() uint64 { return s.version }

// Len returns the number of tiles.
func (s *State) Len() int { return len(s.tiles) }

// Tiles returns the tiles in insertion order. The returned slice is a copy.
func (s *State) Tiles() []Tile { return slices.Clone(s.tiles) }

// Tile returns the tile with the given id.
func (s *State) Tile(id string) (Tile, bool) {
	i, ok := s.index[id]
	if !ok {
		return Tile{}, false
	}
	return s.tiles[i], true
}

// IndexOf returns the position of the tile in Tiles, or -1.
func (s *State) IndexOf(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Groups returns a copy of the group membership map.
func (s *State) Groups() Groups { return s.groups.Clone() }

// GroupNames returns the group names in sorted order.
func (s *State) GroupNames() []string {
	return slices.Sorted(maps.Keys(s.groups))
}

// GroupsOf returns the names of the groups containing id, sorted.
func (s *State) GroupsOf(id string) []string {
	var names []string
	for _, name := range s.GroupNames() {
		if slices.Contains(s.groups[name], id) {
			names = append(names, name)
		}
	}
	return names
}

// GroupMates returns the ids sharing at least one group with id, excluding
// id itself, sorted.
func (s *State) GroupMates(id string) []string {
	var mates []string
	for _, name := range s.GroupsOf(id) {
		for _, m := range s.groups[name] {
			if m != id && !slices.Contains(mates, m) {
				mates = append(mates, m)
			}
		}
	}
	slices.Sort(mates)
	return mates
}

// TotalArea returns the sum of all tile areas.
func (s *State) TotalArea() float64 {
	var total float64
	for _, t := range s.tiles {
		total += t.Area()
	}
	return total
}
