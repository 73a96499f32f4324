// Package history keeps undo and redo stacks of tiling states.
//
// States are immutable, so the stacks simply hold pointers. Pushing a new
// state clears the redo stack. The oldest entries are dropped once the limit
// is reached.
package history

import (
	"sync"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// DefaultLimit is the number of undo steps kept when none is given.
const DefaultLimit = 100

// Stack is an undo/redo history. It is safe for concurrent use.
type Stack struct {
	mu    sync.Mutex
	limit int
	undo  []*tiling.State
	redo  []*tiling.State
}

// New returns an empty stack keeping at most limit undo steps. A limit of
// zero or less selects DefaultLimit.
func New(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

// Push records prev as the state to return to on the next Undo.
func (h *Stack) Push(prev *tiling.State) {
	if prev == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.undo); n > 0 && h.undo[n-1] == prev {
		return
	}
	h.undo = append(h.undo, prev)
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	h.redo = nil
}

// Undo returns the previous state, saving cur for Redo. The bool is false
// when there is nothing to undo.
func (h *Stack) Undo(cur *tiling.State) (*tiling.State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		return nil, false
	}
	prev := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, cur)
	return prev, true
}

// Redo returns the state undone last, saving cur for Undo.
func (h *Stack) Redo(cur *tiling.State) (*tiling.State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		return nil, false
	}
	next := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, cur)
	return next, true
}

// CanUndo reports whether Undo would succeed.
func (h *Stack) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (h *Stack) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// Len returns the number of undo and redo steps held.
func (h *Stack) Len() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo), len(h.redo)
}

// ClearRedo drops the redo stack. Use it when a change is applied without a
// Push.
func (h *Stack) ClearRedo() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redo = nil
}

// Clear drops all history.
func (h *Stack) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
}
