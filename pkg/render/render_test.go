package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func twoTiles(t *testing.T) *tiling.State {
	t.Helper()
	s, err := tiling.New([]tiling.Tile{
		{ID: "a", Width: 50, Height: 100},
		{ID: "b", X: 50, Width: 50, Height: 100, Locked: true},
	}, tiling.WithGroups(tiling.Groups{"pair": {"a"}}))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(twoTiles(t), Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, `"a" [label="a", pos="2.0000,4.0000!", width=4.0000, height=8.0000`) {
		t.Errorf("ToDOT() output missing pinned node a:\n%s", dot)
	}
	if !strings.Contains(dot, `pos="6.0000,4.0000!"`) {
		t.Error("ToDOT() output missing pinned node b")
	}
	if strings.Contains(dot, "--") {
		t.Error("ToDOT() should not draw edges without Adjacency")
	}
}

func TestToDOT_Adjacency(t *testing.T) {
	dot := ToDOT(twoTiles(t), Options{Adjacency: true})
	if !strings.Contains(dot, `"a" -- "b"`) {
		t.Errorf("ToDOT() output missing adjacency edge:\n%s", dot)
	}
}

func TestToDOT_Styles(t *testing.T) {
	dot := ToDOT(twoTiles(t), Options{Detailed: true, Scale: 0.1})

	if !strings.Contains(dot, groupColors[0]) {
		t.Error("grouped tile should be filled with the group color")
	}
	if !strings.Contains(dot, "bold") {
		t.Error("locked tile should be drawn bold")
	}
	if !strings.Contains(dot, `0,0 50x100`) {
		t.Error("detailed label missing rectangle")
	}
	if !strings.Contains(dot, "width=5.0000") {
		t.Error("Scale not applied")
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"dot", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	s := twoTiles(t)

	dot, err := Render(ctx, s, FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Render(dot) error: %v", err)
	}
	if string(dot) != ToDOT(s, Options{}) {
		t.Error("Render(dot) should return the DOT source")
	}

	svg, err := Render(ctx, s, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Render(svg) error: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("Render(svg) output is not SVG")
	}

	if _, err := Render(ctx, s, "pdf", Options{}); err == nil {
		t.Error("Render(pdf) should fail")
	}
}
