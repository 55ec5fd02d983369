package layout

import (
	"image"
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/groundviz/internal/annotation"
	"github.com/ironsheep/groundviz/internal/geometry"
	"github.com/ironsheep/groundviz/internal/palette"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(basicfont.Face7x13, palette.Default(), DefaultOptions())
}

func labels(plan Plan) []Command {
	var out []Command
	for _, c := range plan.Commands {
		if c.Kind == DrawLabel {
			out = append(out, c)
		}
	}
	return out
}

func TestMetricsOf_BasicFace(t *testing.T) {
	m := MetricsOf(basicfont.Face7x13)
	want := Metrics{CharWidth: 7, TextHeight: 11, BaseHeight: 7, Offset: 4, Spaces: 2}
	if m != want {
		t.Errorf("MetricsOf: got %+v, want %+v", m, want)
	}
	if m.Increment() != 19 {
		t.Errorf("Increment: got %d, want 19", m.Increment())
	}
}

func TestLoadFace(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{"basic", false},
		{"GoRegular", false},
		{"comic", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face, err := LoadFace(tt.name, 0)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadFace(%q): err = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil {
				if m := MetricsOf(face); m.CharWidth <= 0 || m.TextHeight <= 0 {
					t.Errorf("degenerate metrics %+v", m)
				}
			}
		})
	}
}

func TestLayout_SingleLabel(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><10><50><50>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Commands) != 2 {
		t.Fatalf("commands: got %d, want 2", len(plan.Commands))
	}

	stroke := plan.Commands[0]
	if stroke.Kind != StrokeBox || stroke.Width != 2 {
		t.Errorf("stroke: got kind %v width %d", stroke.Kind, stroke.Width)
	}
	if stroke.Rect != (geometry.Rect{X1: 50, Y1: 50, X2: 250, Y2: 250}) {
		t.Errorf("stroke rect: got %+v", stroke.Rect)
	}
	knife := palette.RGB{R: 255, G: 255}
	if stroke.Color != knife {
		t.Errorf("stroke color: got %+v, want %+v", stroke.Color, knife)
	}

	label := plan.Commands[1]
	if label.Kind != DrawLabel {
		t.Fatalf("second command: got kind %v", label.Kind)
	}
	if label.Rect != (geometry.Rect{X1: 49, Y1: 30, X2: 98, Y2: 49}) {
		t.Errorf("label rect: got %+v", label.Rect)
	}
	if label.Text != "  knife" {
		t.Errorf("label text: got %q", label.Text)
	}
	if label.Baseline != image.Pt(49, 43) {
		t.Errorf("baseline: got %v, want (49,43)", label.Baseline)
	}
	if label.SwatchEnd < 58.4 || label.SwatchEnd > 58.5 {
		t.Errorf("SwatchEnd: got %v, want 58.45", label.SwatchEnd)
	}
	if label.Alpha != 0.5 || label.Color != knife {
		t.Errorf("label blend: got alpha %v color %+v", label.Alpha, label.Color)
	}

	if len(plan.Labels) != 1 || plan.Labels[0].Phrase != "knife" {
		t.Errorf("placed labels: got %+v", plan.Labels)
	}
}

func TestLayout_ArticleStrippedFromLabel(t *testing.T) {
	res := annotation.Parse("<p>A Knife</p>{<10><10><50><50>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	got := labels(plan)
	if len(got) != 1 {
		t.Fatalf("labels: got %d, want 1", len(got))
	}
	if got[0].Text != "  Knife" {
		t.Errorf("text: got %q, want %q", got[0].Text, "  Knife")
	}
	if got[0].Color != (palette.RGB{R: 255, G: 255}) {
		t.Errorf("color: got %+v", got[0].Color)
	}
}

func TestLayout_FlipsInsideBoxAtTopEdge(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><1><50><50>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	got := labels(plan)
	if len(got) != 1 {
		t.Fatalf("labels: got %d, want 1", len(got))
	}
	if got[0].Rect != (geometry.Rect{X1: 52, Y1: 7, X2: 101, Y2: 26}) {
		t.Errorf("label rect: got %+v", got[0].Rect)
	}
	if got[0].Baseline != image.Pt(52, 20) {
		t.Errorf("baseline: got %v", got[0].Baseline)
	}
}

func TestLayout_DuplicateLabelSuppressed(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><10><50><50>}<delim>{<10><10><60><60>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Commands) != 3 {
		t.Fatalf("commands: got %d, want 2 strokes and 1 label", len(plan.Commands))
	}
	if len(plan.Labels) != 1 {
		t.Errorf("placed labels: got %d, want 1", len(plan.Labels))
	}
}

func TestLayout_SamePhraseElsewhereKept(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><10><20><20>}<delim>{<60><60><80><80>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Labels) != 2 {
		t.Errorf("placed labels: got %d, want 2", len(plan.Labels))
	}
}

func TestLayout_CollisionShiftsOneRow(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><10><50><50>} <p>gun</p>{<10><12><40><40>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Labels) != 2 {
		t.Fatalf("placed labels: got %d, want 2", len(plan.Labels))
	}
	gun := labels(plan)[1]
	if gun.Rect != (geometry.Rect{X1: 49, Y1: 59, X2: 84, Y2: 78}) {
		t.Errorf("gun label: got %+v, want shifted by one row", gun.Rect)
	}
	if gun.Baseline != image.Pt(49, 72) {
		t.Errorf("gun baseline: got %v", gun.Baseline)
	}
	if geometry.Overlaps(plan.Labels[0].Rect, plan.Labels[1].Rect) {
		t.Error("labels still overlap")
	}
}

func TestLayout_TouchingRowsStillCollide(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><10><50><50>} <p>gun</p>{<10><10><40><40>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	gun := plan.Labels[1]
	if gun.Rect.Y1 != 68 {
		t.Errorf("gun label Y1: got %d, want 68 (two rows down)", gun.Rect.Y1)
	}
}

func TestLayout_ClampsAtBottom(t *testing.T) {
	res := annotation.Parse("<p>knife</p>{<10><98><50><99>} <p>gun</p>{<10><99><40><99>}", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Labels) != 2 {
		t.Fatalf("placed labels: got %d, want 2", len(plan.Labels))
	}
	gun := labels(plan)[1]
	if gun.Rect != (geometry.Rect{X1: 49, Y1: 481, X2: 84, Y2: 500}) {
		t.Errorf("gun label: got %+v, want clamped to the bottom", gun.Rect)
	}
	if gun.Baseline != image.Pt(49, 494) {
		t.Errorf("gun baseline: got %v", gun.Baseline)
	}
}

func TestLayout_SingleModeStrokesOnly(t *testing.T) {
	res := annotation.Parse("box at 10, 10, 50, 50", 500, 500)
	plan := newEngine(t).Layout(res, 500, 500)

	if len(plan.Commands) != 1 || plan.Commands[0].Kind != StrokeBox {
		t.Fatalf("commands: got %+v", plan.Commands)
	}
	if plan.Commands[0].Color != palette.DefaultBoxColor {
		t.Errorf("color: got %+v, want default", plan.Commands[0].Color)
	}
	if len(plan.Labels) != 0 {
		t.Errorf("labels: got %d, want 0", len(plan.Labels))
	}
}

func TestLayout_Empty(t *testing.T) {
	e := newEngine(t)
	tests := []struct {
		name          string
		res           annotation.Result
		width, height int
	}{
		{"none", annotation.Result{}, 500, 500},
		{"zero image", annotation.Parse("<p>knife</p>{<1><1><5><5>}", 500, 500), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := e.Layout(tt.res, tt.width, tt.height)
			if len(plan.Commands) != 0 || len(plan.Labels) != 0 {
				t.Errorf("expected empty plan, got %+v", plan)
			}
		})
	}
}

func TestNew_ZeroOptionsUseDefaults(t *testing.T) {
	e := New(basicfont.Face7x13, nil, Options{})
	if e.opts != DefaultOptions() {
		t.Errorf("options: got %+v, want %+v", e.opts, DefaultOptions())
	}
}
