package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func TestRenderGrid(t *testing.T) {
	s, err := tiling.New([]tiling.Tile{
		{ID: "left", Width: 50, Height: 100},
		{ID: "right", X: 50, Width: 50, Height: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := renderGrid(s, 20, 10, "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	if lines[0] != "+"+strings.Repeat("-", 9)+"+"+strings.Repeat("-", 9)+"+" {
		t.Errorf("top border = %q", lines[0])
	}
	if mid := []rune(lines[3]); mid[0] != '|' || mid[10] != '|' || mid[20] != '|' {
		t.Errorf("row 3 = %q, want borders at 0, 10 and 20", lines[3])
	}
	if !strings.Contains(out, "left") || !strings.Contains(out, "right") {
		t.Errorf("labels missing:\n%s", out)
	}
}

func TestRenderGridSelected(t *testing.T) {
	s, _ := tiling.Initial("root")
	out := renderGrid(s, 20, 10, "root")
	if !strings.ContainsRune(out, fillSelected) {
		t.Errorf("selected tile not shaded:\n%s", out)
	}
	if strings.ContainsRune(renderGrid(s, 20, 10, ""), fillSelected) {
		t.Error("unselected grid should not be shaded")
	}
}

func TestRenderGridClipsLabel(t *testing.T) {
	s, err := tiling.New([]tiling.Tile{
		{ID: "a-very-long-tile-name", Width: 10, Height: 100},
		{ID: "b", X: 10, Width: 90, Height: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := renderGrid(s, 20, 10, "")
	if strings.Contains(out, "a-very-long-tile-name") {
		t.Error("label should be clipped to the tile width")
	}
	for _, line := range strings.Split(out, "\n") {
		if n := len([]rune(line)); n != 0 && n != 21 {
			t.Errorf("line %q has width %d, want 21", line, n)
		}
	}
}
