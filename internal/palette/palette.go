// Package palette maps detected category names to the colors used for their boxes,
// labels, and recolored text spans.
//
// A Palette is built once at startup and never modified afterwards, so it is safe
// to share between concurrent renders. Lookups are case-insensitive and ignore a
// leading indefinite article ("a knife" and "Knife" both resolve to "knife").
package palette

import (
	"fmt"
	"image/color"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit RGB color.
type RGB struct {
	R uint8 `json:"r" yaml:"r"`
	G uint8 `json:"g" yaml:"g"`
	B uint8 `json:"b" yaml:"b"`
}

// RGBA returns c as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// CSS returns c in the CSS functional notation used in recolored text,
// e.g. "rgb(255, 0, 0)".
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns c as "#rrggbb".
func (c RGB) Hex() string {
	cf, _ := colorful.MakeColor(c.RGBA())
	return cf.Hex()
}

// ParseHex parses "#rrggbb" or "#rgb" into an RGB.
func ParseHex(s string) (RGB, error) {
	cf, err := colorful.Hex(normalizeHex(s))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return strings.ToLower(s)
}

// Entry is one category and its color.
type Entry struct {
	Category string `json:"category" yaml:"category"`
	Color    RGB    `json:"color" yaml:"color"`
	Hex      string `json:"hex" yaml:"hex"`
}

var (
	// DefaultBoxColor is used for boxes and labels of unknown categories.
	DefaultBoxColor = RGB{255, 255, 255}

	// DefaultTextColor is used for recolored text of unknown categories.
	DefaultTextColor = RGB{0, 255, 0}
)

// ThreatCategories lists the known categories in display order.
var ThreatCategories = []string{
	"explosive", "gun", "3D printed gun", "knife", "cutter", "shaving Blade",
	"shaving Razor", "lighter", "syringe", "battery", "nail cutter", "other sharp items",
	"powerbank", "scissors", "hammer", "pliers", "wrench", "screwdriver", "handcuffs", "bullets",
}

// threatColors holds one color per entry of ThreatCategories, in the same order.
var threatColors = []RGB{
	{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0}, {255, 0, 255},
	{0, 255, 255}, {255, 165, 0}, {128, 0, 128}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 0}, {210, 180, 140}, {0, 206, 209}, {176, 224, 230},
	{100, 149, 237}, {75, 0, 130}, {220, 20, 60}, {233, 150, 122}, {147, 112, 219},
}

// Palette is an immutable, ordered category-to-color table.
type Palette struct {
	entries []Entry
	index   map[string]int
}

var defaultPalette = mustBuild(ThreatCategories, threatColors)

// Default returns the built-in threat-category palette.
func Default() *Palette {
	return defaultPalette
}

func mustBuild(categories []string, colors []RGB) *Palette {
	if len(categories) != len(colors) {
		panic(fmt.Sprintf("palette: %d categories but %d colors", len(categories), len(colors)))
	}
	p := &Palette{
		entries: make([]Entry, 0, len(categories)),
		index:   make(map[string]int, len(categories)),
	}
	for i, name := range categories {
		p.add(name, colors[i])
	}
	return p
}

func (p *Palette) add(category string, c RGB) {
	key := Key(category)
	if i, ok := p.index[key]; ok {
		p.entries[i].Color = c
		p.entries[i].Hex = c.Hex()
		return
	}
	p.index[key] = len(p.entries)
	p.entries = append(p.entries, Entry{Category: category, Color: c, Hex: c.Hex()})
}

// New builds a palette from the defaults with overrides applied.
//
// Overrides map a category name to a hex color. Known categories are recolored in
// place; unknown ones are appended in sorted-key order so the result is
// deterministic.
func New(overrides map[string]string) (*Palette, error) {
	p := mustBuild(ThreatCategories, threatColors)
	if len(overrides) == 0 {
		return p, nil
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, category := range keys {
		c, err := ParseHex(overrides[category])
		if err != nil {
			return nil, fmt.Errorf("palette override for %q: %w", category, err)
		}
		p.add(category, c)
	}
	return p, nil
}

// Lookup returns the color registered for name, if any.
func (p *Palette) Lookup(name string) (RGB, bool) {
	i, ok := p.index[Key(name)]
	if !ok {
		return RGB{}, false
	}
	return p.entries[i].Color, true
}

// BoxColor returns the color for drawing name's boxes and label swatches.
func (p *Palette) BoxColor(name string) RGB {
	if c, ok := p.Lookup(name); ok {
		return c
	}
	return DefaultBoxColor
}

// TextColor returns the color for name's recolored text span.
func (p *Palette) TextColor(name string) RGB {
	if c, ok := p.Lookup(name); ok {
		return c
	}
	return DefaultTextColor
}

// Entries returns a copy of the palette in display order.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of categories.
func (p *Palette) Len() int {
	return len(p.entries)
}

var articlePattern = regexp.MustCompile(`(?i)^\s*(a|an)\s+`)

// StripArticle removes a leading "a " or "an " (any case), keeping the rest of the
// name as written.
func StripArticle(name string) string {
	return articlePattern.ReplaceAllString(name, "")
}

// Key returns the lookup key for name: article stripped, trimmed, lower-cased.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(StripArticle(name)))
}
