package idgen

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDv7(t *testing.T) {
	id := UUIDv7()()
	u, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("uuid.Parse(%q) error: %v", id, err)
	}
	if u.Version() != 7 {
		t.Errorf("Version() = %d, want 7", u.Version())
	}
}

func TestShort(t *testing.T) {
	gen := Short(8)
	seen := map[string]bool{}
	for range 100 {
		id := gen()
		if len(id) != 8 {
			t.Fatalf("len(%q) = %d, want 8", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestSequential(t *testing.T) {
	gen := Sequential("tile-")
	for _, want := range []string{"tile-1", "tile-2", "tile-3"} {
		if got := gen(); got != want {
			t.Errorf("Sequential() = %q, want %q", got, want)
		}
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"n1": true, "n2": true}
	gen := Unique(Sequential("n"), func(id string) bool { return taken[id] })
	if got := gen(); got != "n3" {
		t.Errorf("Unique() = %q, want n3", got)
	}
}

func TestDefault(t *testing.T) {
	if id := New(); !strings.HasPrefix(id, "t-") || len(id) != 10 {
		t.Errorf("New() = %q, want t- prefix and 10 characters", id)
	}
}
