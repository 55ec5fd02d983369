package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/groundviz/internal/geometry"
)

// Crop extracts the inclusive pixel rectangle r from img and encodes it as PNG.
//
// The rectangle is clipped to the image first, since annotation boxes may reach
// past the edge. A scale other than 1 resizes the crop with Lanczos filtering.
func Crop(img image.Image, r geometry.Rect, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()
	r = r.Canon()
	rect := image.Rect(r.X1, r.Y1, r.X2+1, r.Y2+1).Add(bounds.Min).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Dx(), bounds.Dy())
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 && scale > 0 {
		newWidth := max(1, int(float64(cropped.Bounds().Dx())*scale))
		newHeight := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	enc, err := EncodePNG(cropped)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}
	return enc, nil
}
