package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/groundviz/internal/geometry"
)

// BlendRect blends c over the pixels of dst inside r with the given opacity:
// result = c*alpha + dst*(1-alpha). The rectangle is half-open and clipped to
// dst, so a rectangle partly or entirely outside the image is not an error.
func BlendRect(dst *image.RGBA, r image.Rectangle, c color.RGBA, alpha float64) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dy()

	// bild blends origin-based images, so work on a copy of the region.
	region := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(region, region.Bounds(), dst, r.Min, draw.Src)
	overlay := imaging.New(w, h, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})

	out := blend.Opacity(region, overlay, alpha)
	draw.Draw(dst, r, out, image.Point{}, draw.Src)
}

// StrokeRect draws the outline of the inclusive rectangle r with the given
// line width. Rings are centred on the rectangle edge; for an even width the
// extra ring lies outside. Reversed corners are reordered first. Pixels
// outside dst are skipped.
func StrokeRect(dst *image.RGBA, r geometry.Rect, width int, c color.RGBA) {
	if width < 1 {
		width = 1
	}
	r = r.Canon()
	first := -width / 2
	for d := first; d < first+width; d++ {
		x1, y1, x2, y2 := r.X1+d, r.Y1+d, r.X2-d, r.Y2-d
		if x1 > x2 || y1 > y2 {
			continue
		}
		for x := x1; x <= x2; x++ {
			dst.SetRGBA(x, y1, c)
			dst.SetRGBA(x, y2, c)
		}
		for y := y1; y <= y2; y++ {
			dst.SetRGBA(x1, y, c)
			dst.SetRGBA(x2, y, c)
		}
	}
}
