package strategy

import "github.com/matzehuels/tilegrid/pkg/tiling"

// Split strategy keys.
const (
	SplitRatio = "ratio"
	SplitEqual = "equal"
)

// Splitter divides a tile into two parts along o. A vertical split divides
// the width.
type Splitter interface {
	Split(t tiling.Tile, o tiling.Orientation, ratio float64) (first, second tiling.Tile)
}

// Ratio splits at the requested ratio.
type Ratio struct{}

func (Ratio) Split(t tiling.Tile, o tiling.Orientation, ratio float64) (tiling.Tile, tiling.Tile) {
	return cut(t, o, ratio)
}

// Equal always halves the tile and ignores the ratio.
type Equal struct{}

func (Equal) Split(t tiling.Tile, o tiling.Orientation, _ float64) (tiling.Tile, tiling.Tile) {
	return cut(t, o, 0.5)
}

// cut keeps the outer edges of t exact: the second part ends where t ended.
func cut(t tiling.Tile, o tiling.Orientation, ratio float64) (first, second tiling.Tile) {
	first, second = t, t
	if o == tiling.Vertical {
		first.Width = t.Width * ratio
		second.X = first.Right()
		second.Width = t.Right() - second.X
	} else {
		first.Height = t.Height * ratio
		second.Y = first.Bottom()
		second.Height = t.Bottom() - second.Y
	}
	return first, second
}
