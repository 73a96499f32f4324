// Package strategy holds the pluggable algorithms operations delegate to,
// each selected by a string key from the configuration.
//
//   - Split: "ratio" honours the requested ratio, "equal" always halves
//   - Resize: "linear" moves the whole seam under an edge, "segment" moves
//     only the connected stretch of the seam around the tile
//   - Delete: "heuristic" picks the side with the fewest absorbing tiles,
//     breaking ties left, top, right, bottom
//
// An unknown key is a programming error reported as STRATEGY_NOT_FOUND.
package strategy

import (
	"maps"
	"slices"
	"sync"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

// Registry maps strategy keys to implementations. It is safe for concurrent
// use.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// NewRegistry returns an empty registry; kind names the strategy family in
// error messages.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Register binds name to v.
func (r *Registry[T]) Register(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = v
}

// Get returns the implementation registered under name.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	v, ok := r.items[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, errors.NotFound(errors.ErrCodeStrategyNotFound, r.kind+" strategy", name, r.Names())
	}
	return v, nil
}

// Names returns the registered keys, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.items))
}

// Set groups the registries of every strategy family.
type Set struct {
	Split  *Registry[Splitter]
	Resize *Registry[Resizer]
	Delete *Registry[Deleter]
}

// Builtin returns a Set holding the built-in strategies.
func Builtin() *Set {
	s := &Set{
		Split:  NewRegistry[Splitter]("split"),
		Resize: NewRegistry[Resizer]("resize"),
		Delete: NewRegistry[Deleter]("delete"),
	}
	s.Split.Register(SplitRatio, Ratio{})
	s.Split.Register(SplitEqual, Equal{})
	s.Resize.Register(ResizeLinear, Linear{})
	s.Resize.Register(ResizeSegment, Segment{})
	s.Delete.Register(DeleteHeuristic, Heuristic{})
	return s
}
