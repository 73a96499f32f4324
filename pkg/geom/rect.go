package geom

import "math"

const (
	// ContainerSize is the side length of the container in percent.
	ContainerSize = 100.0

	// ContainerArea is the area every valid tiling must cover.
	ContainerArea = ContainerSize * ContainerSize

	// DefaultEpsilon is the tolerance used when none is configured.
	DefaultEpsilon = 1e-6
)

// Rect is an axis-aligned rectangle. X and Y are the top-left corner; all
// values are percentages of the container.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Finite reports whether every field is a finite number.
func (r Rect) Finite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Area returns width × height.
func Area(r Rect) float64 { return r.Width * r.Height }

// Eq reports whether a and b differ by at most eps.
func Eq(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

// Span returns the length of the intersection of [a0, a1] and [b0, b1], or a
// negative number when the intervals are disjoint.
func Span(a0, a1, b0, b1 float64) float64 {
	return math.Min(a1, b1) - math.Max(a0, b0)
}

// Overlaps reports whether a and b share an area whose extent on both axes
// exceeds eps.
func Overlaps(a, b Rect, eps float64) bool {
	return Span(a.X, a.Right(), b.X, b.Right()) > eps &&
		Span(a.Y, a.Bottom(), b.Y, b.Bottom()) > eps
}

// Adjacent reports whether a and b share an edge: one's right (bottom) edge
// is within eps of the other's left (top) edge and their extents on the
// orthogonal axis overlap by more than eps.
func Adjacent(a, b Rect, eps float64) bool {
	if Eq(a.Right(), b.X, eps) || Eq(b.Right(), a.X, eps) {
		return Span(a.Y, a.Bottom(), b.Y, b.Bottom()) > eps
	}
	if Eq(a.Bottom(), b.Y, eps) || Eq(b.Bottom(), a.Y, eps) {
		return Span(a.X, a.Right(), b.X, b.Right()) > eps
	}
	return false
}

// WithinBounds reports whether r lies inside the container, allowing eps of
// slack on every side.
func WithinBounds(r Rect, eps float64) bool {
	return r.X >= -eps && r.Y >= -eps &&
		r.Right() <= ContainerSize+eps && r.Bottom() <= ContainerSize+eps
}

// Full returns the rectangle covering the whole container.
func Full() Rect {
	return Rect{Width: ContainerSize, Height: ContainerSize}
}
