package tiling

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// Orientation is the direction a seam runs in. A vertical seam is a vertical
// line at some x and moves horizontally.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// ParseOrientation converts a string to an Orientation. The single-letter
// forms used in seam ids are accepted too.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid orientation: %q (must be one of: vertical, horizontal)", s)
}

func (o Orientation) letter() string {
	if o == Vertical {
		return "v"
	}
	return "h"
}

// Seam is a straight line at which tile edges meet. It is derived from the
// tiling and stops existing when the tiling changes.
type Seam struct {
	ID          string      `json:"id"`
	Orientation Orientation `json:"orientation"`
	Coord       float64     `json:"coord"`
}

// SeamID returns the canonical id of the seam with orientation o at coord.
func SeamID(o Orientation, coord float64) string {
	return fmt.Sprintf("seam|%s|%.6f", o.letter(), coord)
}

// ParseSeamID splits a canonical seam id into its orientation and coordinate.
func ParseSeamID(id string) (Orientation, float64, error) {
	parts := strings.Split(id, "|")
	if len(parts) != 3 || parts[0] != "seam" {
		return "", 0, errors.New(errors.ErrCodeSeamNotFound, "malformed seam id %q", id)
	}
	o, err := ParseOrientation(parts[1])
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeSeamNotFound, err, "malformed seam id %q", id)
	}
	coord, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return "", 0, errors.Wrap(errors.ErrCodeSeamNotFound, err, "malformed seam id %q", id)
	}
	return o, coord, nil
}

// deriveSeams collects edge coordinates per axis, snaps coordinates within ε
// together and emits one seam per unique coordinate.
func (s *State) deriveSeams() {
	var xs, ys []float64
	for _, t := range s.tiles {
		xs = append(xs, t.X, t.Right())
		ys = append(ys, t.Y, t.Bottom())
	}

	s.seams = s.seams[:0]
	for _, c := range mergeCoords(xs, s.eps) {
		s.seams = append(s.seams, Seam{ID: SeamID(Vertical, c), Orientation: Vertical, Coord: c})
	}
	for _, c := range mergeCoords(ys, s.eps) {
		s.seams = append(s.seams, Seam{ID: SeamID(Horizontal, c), Orientation: Horizontal, Coord: c})
	}

	s.seamIndex = make(map[string]int, len(s.seams))
	for i, sm := range s.seams {
		s.seamIndex[sm.ID] = i
	}
}

// mergeCoords sorts coords and collapses runs whose neighbors lie within eps
// into the first coordinate of the run.
func mergeCoords(coords []float64, eps float64) []float64 {
	slices.Sort(coords)
	var out []float64
	for _, c := range coords {
		if len(out) > 0 && c-out[len(out)-1] <= eps {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Seams returns every seam, vertical seams first, each group ordered by
// coordinate.
func (s *State) Seams() []Seam { return slices.Clone(s.seams) }

// Seam looks up a seam by id.
func (s *State) Seam(id string) (Seam, bool) {
	i, ok := s.seamIndex[id]
	if !ok {
		return Seam{}, false
	}
	return s.seams[i], true
}

// SeamAt returns the seam of orientation o within ε of coord.
func (s *State) SeamAt(o Orientation, coord float64) (Seam, bool) {
	for _, sm := range s.seams {
		if sm.Orientation == o && sm.Coord-s.eps <= coord && coord <= sm.Coord+s.eps {
			return sm, true
		}
	}
	return Seam{}, false
}

// EdgeSeam resolves a tile edge to the seam it lies on.
func (s *State) EdgeSeam(id string, e Edge) (Seam, bool) {
	t, ok := s.Tile(id)
	if !ok {
		return Seam{}, false
	}
	return s.SeamAt(e.Orientation(), t.EdgeCoord(e))
}

// OnSeam reports whether edge e of t lies on sm.
func (s *State) OnSeam(t Tile, e Edge, sm Seam) bool {
	if e.Orientation() != sm.Orientation {
		return false
	}
	c := t.EdgeCoord(e)
	return c >= sm.Coord-s.eps && c <= sm.Coord+s.eps
}

// IsContainerEdge reports whether the seam runs along the container border.
func (s *State) IsContainerEdge(sm Seam) bool {
	return sm.Coord <= s.eps || sm.Coord >= geom.ContainerSize-s.eps
}
