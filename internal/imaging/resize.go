package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultDisplayWidth is the width images are scaled to before annotation
// coordinates are resolved against them.
const DefaultDisplayWidth = 500

// DisplayResize scales img to the given width keeping its aspect ratio.
//
// The height is int(width/w*h), never less than 1. An image already at the
// target width is copied unchanged. A width <= 0 disables resizing.
func DisplayResize(img image.Image, width int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || b.Dx() == width || b.Dx() == 0 {
		return ToRGBA(img)
	}

	height := int(float64(width) / float64(b.Dx()) * float64(b.Dy()))
	if height < 1 {
		height = 1
	}
	return ToRGBA(imaging.Resize(img, width, height, imaging.Lanczos))
}
