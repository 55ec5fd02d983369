package render

import (
	"html"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/geometry"
	"github.com/ironsheep/groundviz/internal/imaging"
	"github.com/ironsheep/groundviz/internal/layout"
	"github.com/ironsheep/groundviz/internal/palette"
	"github.com/ironsheep/groundviz/internal/recolor"
)

var (
	labelFill = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gridColor = color.RGBA{R: 255, A: 255}
)

// Options configure a Renderer. Zero values select the defaults.
type Options struct {
	DisplayWidth int     // width images are scaled to; negative keeps the source size
	Extent       float64 // model coordinate grid size
	Face         font.Face
	Palette      *palette.Palette
	Layout       layout.Options
	Cache        *imaging.ImageCache
	GridStep     int // draw the model grid every GridStep units; 0 disables it
}

// Renderer runs the annotation pipeline. It is safe for concurrent use:
// decoding and parsing run in parallel, while layout and drawing, which share
// the label face, are serialized.
type Renderer struct {
	mu sync.Mutex // serializes use of face

	displayWidth int
	parser       annotation.Parser
	face         font.Face
	palette      *palette.Palette
	engine       *layout.Engine
	cache        *imaging.ImageCache
	gridStep     int
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.DisplayWidth == 0 {
		opts.DisplayWidth = imaging.DefaultDisplayWidth
	}
	if opts.Extent <= 0 {
		opts.Extent = geometry.ScaleExtent
	}
	if opts.Face == nil {
		opts.Face = basicfont.Face7x13
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default()
	}
	return &Renderer{
		displayWidth: opts.DisplayWidth,
		parser:       annotation.Parser{Extent: opts.Extent},
		face:         opts.Face,
		palette:      opts.Palette,
		engine:       layout.New(opts.Face, opts.Palette, opts.Layout),
		cache:        opts.Cache,
		gridStep:     opts.GridStep,
	}
}

// Result is the output of one Visualize call.
//
// Image is nil when there was no image or nothing to draw. Text is the
// recolored annotation text, empty unless the annotation was grounded.
type Result struct {
	Image    *image.RGBA
	Text     string
	Mode     annotation.Mode
	Entities []annotation.Entity
	Labels   []layout.PlacedLabel
}

// Visualize renders the annotations in text onto the image in src.
//
// A zero src or text without any recognizable annotation yields an empty
// Result and no error. The only error is a *imaging.SourceError for an image
// that cannot be decoded. The source image is never modified.
func (r *Renderer) Visualize(text string, src imaging.Source) (*Result, error) {
	if src.IsZero() {
		return &Result{}, nil
	}

	img, err := src.Decode(r.cache)
	if err != nil {
		return nil, err
	}
	display := r.Display(img)
	b := display.Bounds()

	text = html.UnescapeString(text)
	res := r.parser.Parse(text, b.Dx(), b.Dy())
	if res.Empty() {
		log.Debug("no annotation found", "chars", len(text))
		return &Result{}, nil
	}

	r.mu.Lock()
	plan := r.engine.Layout(res, b.Dx(), b.Dy())
	r.draw(display, plan)
	r.mu.Unlock()
	if r.gridStep > 0 {
		imaging.ModelGrid(display, r.parser.Extent, r.gridStep, true, gridColor)
	}

	out := &Result{
		Image:    display,
		Mode:     res.Mode,
		Entities: res.Entities,
		Labels:   plan.Labels,
	}
	if res.Mode == annotation.ModeGrounded {
		out.Text = recolor.Recolorize(text, r.palette)
	}
	log.Debug("rendered annotation", "mode", res.Mode, "entities", len(res.Entities),
		"boxes", res.BoxCount(), "labels", len(plan.Labels))
	return out, nil
}

// Display returns the copy of img the annotations are resolved against and
// drawn on.
func (r *Renderer) Display(img image.Image) *image.RGBA {
	if r.displayWidth < 0 {
		return imaging.ToRGBA(img)
	}
	return imaging.DisplayResize(img, r.displayWidth)
}

// Parse parses text for an image of the given size the way Visualize does,
// decoding HTML entities first.
func (r *Renderer) Parse(text string, width, height int) annotation.Result {
	return r.parser.Parse(html.UnescapeString(text), width, height)
}

// Draw executes plan on dst in order.
func (r *Renderer) Draw(dst *image.RGBA, plan layout.Plan) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draw(dst, plan)
}

func (r *Renderer) draw(dst *image.RGBA, plan layout.Plan) {
	for _, cmd := range plan.Commands {
		switch cmd.Kind {
		case layout.StrokeBox:
			imaging.StrokeRect(dst, cmd.Rect, cmd.Width, cmd.Color.RGBA())
		case layout.DrawLabel:
			r.drawLabel(dst, cmd)
		}
	}
}

func (r *Renderer) drawLabel(dst *image.RGBA, cmd layout.Command) {
	bg := cmd.Rect
	split := int(math.Ceil(cmd.SwatchEnd))
	split = min(max(split, bg.X1), bg.X2)

	imaging.BlendRect(dst, image.Rect(bg.X1, bg.Y1, split, bg.Y2), cmd.Color.RGBA(), cmd.Alpha)
	imaging.BlendRect(dst, image.Rect(split, bg.Y1, bg.X2, bg.Y2), labelFill, cmd.Alpha)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: r.face,
		Dot:  fixed.P(cmd.Baseline.X, cmd.Baseline.Y),
	}
	d.DrawString(cmd.Text)
}
