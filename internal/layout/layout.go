package layout

import (
	"image"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/geometry"
	"github.com/ironsheep/groundviz/internal/palette"
)

// Label padding around the box corner, in pixels.
const (
	innerOffset = 1 // anchor distance above-left of the box corner
	outerOffset = 2 // anchor distance below-right when flipped inside the box
)

// Options tune the layout. The zero value of any field selects its default.
type Options struct {
	BoxStroke    int     // stroke width of box outlines
	Alpha        float64 // opacity of the label background blend
	DuplicateIoU float64 // labels with the same phrase above this IoU are drawn once
	SwatchWidth  float64 // swatch width in multiples of the face's character width
}

// DefaultOptions returns the standard layout settings.
func DefaultOptions() Options {
	return Options{
		BoxStroke:    2,
		Alpha:        0.5,
		DuplicateIoU: 0.95,
		SwatchWidth:  1.35,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BoxStroke <= 0 {
		o.BoxStroke = d.BoxStroke
	}
	if o.Alpha <= 0 {
		o.Alpha = d.Alpha
	}
	if o.DuplicateIoU <= 0 {
		o.DuplicateIoU = d.DuplicateIoU
	}
	if o.SwatchWidth <= 0 {
		o.SwatchWidth = d.SwatchWidth
	}
	return o
}

// CommandKind says what a Command draws.
type CommandKind int

const (
	// StrokeBox outlines a bounding box.
	StrokeBox CommandKind = iota
	// DrawLabel fills a label background and writes its text.
	DrawLabel
)

// Command is one drawing step, in the order it must be executed.
//
// For StrokeBox, Rect is the inclusive box and Width the line width. For
// DrawLabel, Rect is the background, filled over [X1,X2) x [Y1,Y2); columns
// left of SwatchEnd take the entity color, the rest white, both at Alpha, and
// Text is written in black with its baseline origin at Baseline.
type Command struct {
	Kind      CommandKind
	Rect      geometry.Rect
	Color     palette.RGB
	Width     int
	Alpha     float64
	SwatchEnd float64
	Text      string
	Baseline  image.Point
}

// PlacedLabel is a label background already committed during one layout.
type PlacedLabel struct {
	Rect   geometry.Rect `json:"rect" yaml:"rect"`
	Phrase string        `json:"phrase" yaml:"phrase"`
}

// Plan is the output of one layout: the drawing commands and the labels
// placed, in placement order.
type Plan struct {
	Commands []Command
	Labels   []PlacedLabel
}

// Engine places boxes and labels for a parsed annotation. It holds no state
// between calls, so it is safe for concurrent use exactly when its face is:
// basicfont faces are, opentype faces are not.
type Engine struct {
	face    font.Face
	metrics Metrics
	palette *palette.Palette
	opts    Options
}

// New creates an engine measuring labels with face and coloring entities from
// pal. A nil pal uses the default palette.
func New(face font.Face, pal *palette.Palette, opts Options) *Engine {
	if pal == nil {
		pal = palette.Default()
	}
	return &Engine{
		face:    face,
		metrics: MetricsOf(face),
		palette: pal,
		opts:    opts.withDefaults(),
	}
}

// Metrics returns the label metrics of the engine's face.
func (e *Engine) Metrics() Metrics {
	return e.metrics
}

// Layout plans the drawing of res onto a width x height image.
//
// Every box gets a stroke. In grounded mode every box also gets a label,
// unless a label with the same phrase already sits almost exactly there.
// Labels that collide with earlier ones are pushed down one row at a time and
// clamped flush to the bottom edge when they run out of room.
func (e *Engine) Layout(res annotation.Result, width, height int) Plan {
	var plan Plan
	if res.Empty() || width <= 0 || height <= 0 {
		return plan
	}

	for _, entity := range res.Entities {
		color := e.palette.BoxColor(entity.Name)
		phrase := palette.StripArticle(entity.Name)

		for _, box := range entity.Boxes {
			rect := box.Rect()
			plan.Commands = append(plan.Commands, Command{
				Kind:  StrokeBox,
				Rect:  rect,
				Color: color,
				Width: e.opts.BoxStroke,
			})

			if res.Mode != annotation.ModeGrounded {
				continue
			}

			cmd, label, ok := e.placeLabel(rect, phrase, color, plan.Labels, height)
			if !ok {
				log.Debug("skipping duplicate label", "phrase", phrase, "rect", label.Rect)
				continue
			}
			plan.Commands = append(plan.Commands, cmd)
			plan.Labels = append(plan.Labels, label)
		}
	}
	return plan
}

// placeLabel computes the label for one box. It reports false when the label
// duplicates one already placed.
func (e *Engine) placeLabel(box geometry.Rect, phrase string, color palette.RGB, placed []PlacedLabel, height int) (Command, PlacedLabel, bool) {
	m := e.metrics
	inc := m.Increment()
	text := "  " + phrase
	textWidth := font.MeasureString(e.face, text).Ceil()

	x1, y1 := box.X1-innerOffset, box.Y1-innerOffset
	if y1 < inc {
		x1, y1 = box.X1+outerOffset, box.Y1+outerOffset+inc
	}
	bg := geometry.Rect{X1: x1, Y1: y1 - inc, X2: x1 + textWidth, Y2: y1}

	for _, prev := range placed {
		if prev.Phrase == phrase && geometry.IoU(bg, prev.Rect) > e.opts.DuplicateIoU {
			return Command{}, PlacedLabel{Rect: bg, Phrase: phrase}, false
		}
	}

	for inc > 0 && overlapsAny(bg, placed) {
		bg = bg.Translate(0, inc)
		y1 += inc
		if bg.Y2 >= height {
			bg.Y1 = max(0, height-inc)
			bg.Y2 = height
			y1 = height
			break
		}
	}

	cmd := Command{
		Kind:      DrawLabel,
		Rect:      bg,
		Color:     color,
		Alpha:     e.opts.Alpha,
		SwatchEnd: float64(bg.X1) + e.opts.SwatchWidth*float64(m.CharWidth),
		Text:      text,
		Baseline:  image.Pt(x1, y1-m.Offset-m.Spaces),
	}
	return cmd, PlacedLabel{Rect: bg, Phrase: phrase}, true
}

func overlapsAny(r geometry.Rect, placed []PlacedLabel) bool {
	for _, p := range placed {
		if geometry.Overlaps(r, p.Rect) {
			return true
		}
	}
	return false
}
