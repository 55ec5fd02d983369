package imaging

import (
	"image"
	"image/color"
	"strconv"
)

// GridLabelAlpha is the opacity of the dark plate behind grid labels.
const GridLabelAlpha = 0.7

// ModelGrid draws the annotation coordinate lattice onto dst in place.
//
// A line is drawn every step model units in both directions, at the pixel
// position the parser would resolve that model value to (value/extent*size).
// When labelled, each vertical line carries its model value along the top edge
// and each horizontal line along the left edge.
func ModelGrid(dst *image.RGBA, extent float64, step int, labelled bool, c color.RGBA) {
	if extent <= 0 || step <= 0 {
		return
	}
	b := dst.Bounds()
	width, height := b.Dx(), b.Dy()

	for v := step; float64(v) < extent; v += step {
		x := b.Min.X + int(float64(v)/extent*float64(width))
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetRGBA(x, y, c)
		}
		if labelled {
			drawLabel(dst, x+2, b.Min.Y+2, strconv.Itoa(v))
		}
	}

	for v := step; float64(v) < extent; v += step {
		y := b.Min.Y + int(float64(v)/extent*float64(height))
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
		if labelled {
			drawLabel(dst, b.Min.X+2, y+2, strconv.Itoa(v))
		}
	}
}

// gridGlyphs is a 3x5 pixel font for the digits of grid labels.
var gridGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'-': {"000", "000", "111", "000", "000"},
}

// drawLabel draws white digits on a dark plate with its top-left at (x, y).
func drawLabel(img *image.RGBA, x, y int, text string) {
	const (
		charWidth   = 4
		labelHeight = 7
	)
	plate := image.Rect(x-1, y-1, x+len(text)*charWidth, y+labelHeight-1)
	BlendRect(img, plate, color.RGBA{A: 255}, GridLabelAlpha)

	fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	cx := x
	for _, ch := range text {
		glyph, ok := gridGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					img.SetRGBA(cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
