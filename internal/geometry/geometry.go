// Package geometry provides the rectangle math shared by the annotation parser and
// the label layout engine.
//
// # Coordinate System
//
// All rectangles use image coordinates: origin at the top-left, X increases
// rightward, Y increases downward. Unlike image.Rectangle, a Rect is inclusive on
// both ends, so a rectangle with X1 == X2 is one pixel wide. Overlaps and IoU both
// follow that convention.
package geometry

// ScaleExtent is the size of the model's coordinate grid. Model-space coordinates
// are integers in [0, ScaleExtent).
const ScaleExtent = 100.0

// Rect is an axis-aligned rectangle in pixel space with inclusive bounds.
type Rect struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Width returns the inclusive pixel width of r.
func (r Rect) Width() int {
	return r.X2 - r.X1 + 1
}

// Height returns the inclusive pixel height of r.
func (r Rect) Height() int {
	return r.Y2 - r.Y1 + 1
}

// Area returns the inclusive pixel count of r.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Canon returns r with its corners ordered so that X1 <= X2 and Y1 <= Y2.
func (r Rect) Canon() Rect {
	return Rect{
		X1: min(r.X1, r.X2),
		Y1: min(r.Y1, r.Y2),
		X2: max(r.X1, r.X2),
		Y2: max(r.Y1, r.Y2),
	}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// Normalize converts a model-space box to pixel space.
//
// Each coordinate is divided by extent and multiplied by the matching image
// dimension. Values are left unrounded; callers truncate when drawing.
//
// Parameters:
//   - x0, y0, x1, y1: model-space corners as emitted by the model.
//   - extent: size of the model grid, normally ScaleExtent.
//   - width, height: dimensions of the display image the box is drawn on.
//
// Returns the pixel-space (left, bottom, right, top). The names follow the
// annotation format: "bottom" is y0 and "top" is y1, so in image coordinates
// bottom is usually the upper edge.
func Normalize(x0, y0, x1, y1 int, extent float64, width, height int) (left, bottom, right, top float64) {
	w := float64(width)
	h := float64(height)
	left = float64(x0) / extent * w
	bottom = float64(y0) / extent * h
	right = float64(x1) / extent * w
	top = float64(y1) / extent * h
	return left, bottom, right, top
}

// Overlaps reports whether a and b share at least one pixel.
//
// Two rectangles overlap unless one lies entirely to the left, right, above, or
// below the other. Rectangles that touch along an edge overlap.
func Overlaps(a, b Rect) bool {
	return !(a.X2 < b.X1 || a.X1 > b.X2 || a.Y2 < b.Y1 || a.Y1 > b.Y2)
}

// IoU returns the intersection-over-union of a and b using inclusive pixel counts.
//
// The result is in [0, 1]; disjoint rectangles give 0 and identical rectangles
// give 1. Both rectangles must be well-formed (X1 <= X2, Y1 <= Y2), which makes
// the union at least one pixel.
func IoU(a, b Rect) float64 {
	ix1 := max(a.X1, b.X1)
	iy1 := max(a.Y1, b.Y1)
	ix2 := min(a.X2, b.X2)
	iy2 := min(a.Y2, b.Y2)

	inter := max(0, ix2-ix1+1) * max(0, iy2-iy1+1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
