package annotation

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// IdentifyTag marks a user message that asks the model to identify a region.
const IdentifyTag = "[identify]"

// maskGrid is the side of the grid a mask is sampled onto.
const maskGrid = 100

// MaskToRegion converts a drawn mask into a coordinate group.
//
// The mask is resampled to a 100x100 grid with nearest-neighbour sampling and any
// pixel with a non-zero red channel counts as marked. The tight extent of the
// marked pixels is returned as "{<xmin><ymin><xmax><ymax>}". A nil or empty mask
// returns "".
func MaskToRegion(mask image.Image) string {
	if mask == nil || mask.Bounds().Empty() {
		return ""
	}
	grid := imaging.Resize(mask, maskGrid, maskGrid, imaging.NearestNeighbor)

	rowMin, rowMax := -1, -1
	colMin, colMax := maskGrid, -1
	for y := 0; y < maskGrid; y++ {
		line := grid.Pix[y*grid.Stride : y*grid.Stride+maskGrid*4]
		for x := 0; x < maskGrid; x++ {
			if line[x*4] == 0 {
				continue
			}
			if rowMin < 0 {
				rowMin = y
			}
			rowMax = y
			colMin = min(colMin, x)
			colMax = max(colMax, x)
		}
	}
	if rowMin < 0 {
		return ""
	}
	return FormatGroup(colMin, rowMin, colMax, rowMax)
}

// FormatGroup writes one coordinate group in the model's format.
func FormatGroup(x0, y0, x1, y1 int) string {
	return fmt.Sprintf("{<%d><%d><%d><%d>}", x0, y0, x1, y1)
}

// AppendRegion adds the mask's coordinate group to an identify request.
//
// Messages without IdentifyTag, and messages that already carry exactly four
// integers, are returned unchanged.
func AppendRegion(message string, mask image.Image) string {
	if !strings.Contains(message, IdentifyTag) {
		return message
	}
	if len(integerPattern.FindAllString(message, -1)) == 4 {
		return message
	}
	return message + MaskToRegion(mask)
}
