package imaging

import (
	"image/color"
	"testing"
)

func TestDisplayResize(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		width        int
		wantW, wantH int
	}{
		{"landscape", 1000, 500, 500, 500, 250},
		{"already display width", 500, 321, 500, 500, 321},
		{"upscale", 250, 100, 500, 500, 200},
		{"truncated height", 300, 200, 500, 500, 333},
		{"minimum height", 5000, 1, 500, 500, 1},
		{"disabled", 40, 30, 0, 40, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(tt.srcW, tt.srcH, color.RGBA{10, 20, 30, 255})
			got := DisplayResize(img, tt.width)
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size: got %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDisplayResize_DoesNotAlias(t *testing.T) {
	img := createInMemoryImage(500, 10, color.RGBA{10, 20, 30, 255})
	out := DisplayResize(img, 500)
	out.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	assertPixel(t, img, 0, 0, color.RGBA{10, 20, 30, 255}, 0)
}
