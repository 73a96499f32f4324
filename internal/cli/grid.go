package cli

import (
	"strings"

	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/tiling"
)

// Default canvas size for renderGrid. Terminal cells are about twice as tall
// as they are wide.
const (
	gridCols = 60
	gridRows = 24
)

// fillSelected marks the interior of the selected tile.
const fillSelected = '░'

// renderGrid draws s as ASCII art on a cols x rows canvas, labelling each
// tile with its id. The tile named selected is shaded.
func renderGrid(s *tiling.State, cols, rows int, selected string) string {
	tiles := s.Tiles()
	owner := make([][]int, rows)
	for r := range rows {
		owner[r] = make([]int, cols)
		y := (float64(r) + 0.5) * geom.ContainerSize / float64(rows)
		for c := range cols {
			x := (float64(c) + 0.5) * geom.ContainerSize / float64(cols)
			owner[r][c] = -1
			for i, t := range tiles {
				if x >= t.X && x < t.Right() && y >= t.Y && y < t.Bottom() {
					owner[r][c] = i
					break
				}
			}
		}
	}
	at := func(r, c int) int {
		return owner[min(max(r, 0), rows-1)][min(max(c, 0), cols-1)]
	}

	canvas := make([][]rune, rows+1)
	for r := range canvas {
		canvas[r] = make([]rune, cols+1)
		for c := range canvas[r] {
			v := c == 0 || c == cols || at(r, c-1) != at(r, c)
			h := r == 0 || r == rows || at(r-1, c) != at(r, c)
			switch {
			case v && h:
				canvas[r][c] = '+'
			case v:
				canvas[r][c] = '|'
			case h:
				canvas[r][c] = '-'
			case at(r, c) >= 0 && tiles[at(r, c)].ID == selected:
				canvas[r][c] = fillSelected
			default:
				canvas[r][c] = ' '
			}
		}
	}

	for _, t := range tiles {
		label(canvas, t, cols, rows)
	}

	var b strings.Builder
	for _, line := range canvas {
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}

// label writes the tile id centred in the tile, clipped to its interior.
func label(canvas [][]rune, t tiling.Tile, cols, rows int) {
	sx := float64(cols) / geom.ContainerSize
	sy := float64(rows) / geom.ContainerSize
	left, right := int(t.X*sx)+1, int(t.Right()*sx)-1
	r := int((t.Y + t.Height/2) * sy)
	if right < left || r <= int(t.Y*sy) || r >= rows {
		return
	}
	id := []rune(t.ID)
	if room := right - left + 1; len(id) > room {
		id = id[:room]
	}
	start := left + (right-left+1-len(id))/2
	for i, ch := range id {
		canvas[r][start+i] = ch
	}
}
