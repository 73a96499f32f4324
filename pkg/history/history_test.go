package history

import (
	"testing"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func states(t *testing.T, n int) []*tiling.State {
	t.Helper()
	out := make([]*tiling.State, n)
	for i := range out {
		s, err := tiling.Initial("root", tiling.WithVersion(uint64(i)))
		if err != nil {
			t.Fatal(err)
		}
		out[i] = s
	}
	return out
}

func TestUndoRedo(t *testing.T) {
	s := states(t, 3)
	h := New(0)
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("new stack reports history")
	}

	h.Push(s[0])
	h.Push(s[1])

	got, ok := h.Undo(s[2])
	if !ok || got != s[1] {
		t.Fatalf("Undo() = %v, %v, want s1", got, ok)
	}
	got, ok = h.Undo(s[1])
	if !ok || got != s[0] {
		t.Fatalf("Undo() = %v, %v, want s0", got, ok)
	}
	if _, ok := h.Undo(s[0]); ok {
		t.Error("Undo() on empty stack succeeded")
	}

	got, ok = h.Redo(s[0])
	if !ok || got != s[1] {
		t.Fatalf("Redo() = %v, %v, want s1", got, ok)
	}
	got, ok = h.Redo(s[1])
	if !ok || got != s[2] {
		t.Fatalf("Redo() = %v, %v, want s2", got, ok)
	}
	if h.CanRedo() {
		t.Error("CanRedo() = true after redoing everything")
	}
}

func TestPushClearsRedo(t *testing.T) {
	s := states(t, 3)
	h := New(0)
	h.Push(s[0])
	h.Undo(s[1])
	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	h.Push(s[0])
	if h.CanRedo() {
		t.Error("CanRedo() = true after push")
	}
}

func TestPushSkipsDuplicates(t *testing.T) {
	s := states(t, 1)
	h := New(0)
	h.Push(s[0])
	h.Push(s[0])
	if undo, _ := h.Len(); undo != 1 {
		t.Errorf("undo len = %d, want 1", undo)
	}
}

func TestLimit(t *testing.T) {
	s := states(t, 5)
	h := New(3)
	for _, st := range s {
		h.Push(st)
	}
	if undo, _ := h.Len(); undo != 3 {
		t.Fatalf("undo len = %d, want 3", undo)
	}
	got, _ := h.Undo(s[4])
	if got != s[4] {
		t.Errorf("Undo() = version %d, want 4", got.Version())
	}
	h.Clear()
	if h.CanUndo() {
		t.Error("CanUndo() = true after Clear")
	}
}

func TestClearRedo(t *testing.T) {
	s := states(t, 2)
	h := New(0)
	h.Push(s[0])
	h.Undo(s[1])
	h.ClearRedo()
	if h.CanRedo() {
		t.Error("CanRedo() = true after ClearRedo")
	}
	if h.CanUndo() {
		t.Error("CanUndo() = true, want false")
	}
}
