package layout

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Font names accepted by LoadFace.
const (
	FontBasic     = "basic"
	FontGoRegular = "goregular"
)

// DefaultFontSize is the point size used for scalable faces when none is given.
const DefaultFontSize = 13.0

// LoadFace returns the label face with the given name.
//
// "basic" (or "") is the fixed 7x13 bitmap face; size is ignored. "goregular"
// is the Go Regular TrueType face rasterized at size points and 72 DPI.
func LoadFace(name string, size float64) (font.Face, error) {
	switch strings.ToLower(name) {
	case "", FontBasic:
		return basicfont.Face7x13, nil
	case FontGoRegular:
		if size <= 0 {
			size = DefaultFontSize
		}
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create font face: %w", err)
		}
		return face, nil
	default:
		return nil, fmt.Errorf("unknown font %q (want %s or %s)", name, FontBasic, FontGoRegular)
	}
}

// Metrics are the label measurements derived from a face.
type Metrics struct {
	CharWidth  int // advance of a capital F
	TextHeight int // ascent above the baseline
	BaseHeight int // int(TextHeight * 0.675)
	Offset     int // TextHeight - BaseHeight
	Spaces     int // vertical padding on each side of the text
}

// MetricsOf measures face.
func MetricsOf(face font.Face) Metrics {
	textHeight := face.Metrics().Ascent.Ceil()
	base := int(float64(textHeight) * 0.675)
	return Metrics{
		CharWidth:  font.MeasureString(face, "F").Round(),
		TextHeight: textHeight,
		BaseHeight: base,
		Offset:     textHeight - base,
		Spaces:     2,
	}
}

// Increment is the height of one label row, the step used to push a colliding
// label downward.
func (m Metrics) Increment() int {
	return m.TextHeight + m.Offset + 2*m.Spaces
}
