package tiling_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/tiling"
)

func ExampleState_Seams() {
	// Two side-by-side halves share the vertical seam at 50
	s, _ := tiling.New([]tiling.Tile{
		{ID: "left", Width: 50, Height: 100},
		{ID: "right", X: 50, Width: 50, Height: 100},
	})

	for _, sm := range s.Seams() {
		fmt.Println(sm.ID)
	}
	// Output:
	// seam|v|0.000000
	// seam|v|50.000000
	// seam|v|100.000000
	// seam|h|0.000000
	// seam|h|100.000000
}

func ExampleState_Neighbors() {
	// An L-shaped arrangement: a on top, b and c below
	s, _ := tiling.New([]tiling.Tile{
		{ID: "a", Width: 100, Height: 50},
		{ID: "b", Y: 50, Width: 40, Height: 50},
		{ID: "c", X: 40, Y: 50, Width: 60, Height: 50},
	})

	for _, t := range s.Neighbors("a", tiling.EdgeBottom) {
		fmt.Println(t.ID)
	}
	fmt.Println("a-b adjacent:", s.Adjacent("a", "b"))
	// Output:
	// b
	// c
	// a-b adjacent: true
}

func ExampleNew_overlap() {
	// Overlapping tiles are a structural error, not a rejection
	_, err := tiling.New([]tiling.Tile{
		{ID: "a", Width: 60, Height: 100},
		{ID: "b", X: 50, Width: 50, Height: 100},
	})
	fmt.Println(err != nil)
	// Output: true
}
