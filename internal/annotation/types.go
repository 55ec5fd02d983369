package annotation

import (
	"fmt"

	"github.com/ironsheep/groundviz/internal/geometry"
)

// Mode says how an annotation string was interpreted.
type Mode int

const (
	// ModeNone means no usable annotation was found.
	ModeNone Mode = iota
	// ModeSingle means one unnamed region was found.
	ModeSingle
	// ModeGrounded means one or more named entities with boxes were found.
	ModeGrounded
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSingle:
		return "single"
	case ModeGrounded:
		return "grounded"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Box is one bounding box in pixel space.
//
// The field names follow the annotation format: Left and Bottom come from the
// first corner (x0, y0), Right and Top from the second (x1, y1). Rotation is
// always 0; it is carried so rotated formats can be added without changing the
// type.
type Box struct {
	Left     float64 `json:"left" yaml:"left"`
	Bottom   float64 `json:"bottom" yaml:"bottom"`
	Right    float64 `json:"right" yaml:"right"`
	Top      float64 `json:"top" yaml:"top"`
	Rotation float64 `json:"rotation" yaml:"rotation"`
}

// Rect truncates b to integer pixel corners.
func (b Box) Rect() geometry.Rect {
	return geometry.Rect{
		X1: int(b.Left),
		Y1: int(b.Bottom),
		X2: int(b.Right),
		Y2: int(b.Top),
	}
}

// Entity is a named object and every box reported for it.
// Boxes is never empty.
type Entity struct {
	Name  string `json:"name" yaml:"name"`
	Boxes []Box  `json:"boxes" yaml:"boxes"`
}

// Result is the outcome of parsing one annotation string.
type Result struct {
	Mode     Mode     `json:"mode" yaml:"mode"`
	Entities []Entity `json:"entities" yaml:"entities"`
}

// Empty reports whether there is nothing to draw.
func (r Result) Empty() bool {
	return r.Mode == ModeNone || len(r.Entities) == 0
}

// BoxCount returns the total number of boxes across all entities.
func (r Result) BoxCount() int {
	n := 0
	for _, e := range r.Entities {
		n += len(e.Boxes)
	}
	return n
}
