// Package config loads groundviz settings from YAML files and the environment.
//
// Precedence, lowest first: built-in defaults, the YAML file named by --config
// or GROUNDVIZ_CONFIG, then GROUNDVIZ_LOG_LEVEL. Fields missing from the file
// keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	yaml "go.yaml.in/yaml/v3"

	"github.com/ironsheep/groundviz/internal/geometry"
	"github.com/ironsheep/groundviz/internal/imaging"
	"github.com/ironsheep/groundviz/internal/layout"
	"github.com/ironsheep/groundviz/internal/palette"
	"github.com/ironsheep/groundviz/internal/render"
)

// Environment variables read by Resolve.
const (
	EnvConfig   = "GROUNDVIZ_CONFIG"
	EnvLogLevel = "GROUNDVIZ_LOG_LEVEL"
)

// Output formats for rendered images.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// FontConfig selects the label face.
type FontConfig struct {
	Name string  `yaml:"name"`
	Size float64 `yaml:"size"`
}

// OutputConfig controls where rendered images go.
type OutputConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// Config is the complete groundviz configuration.
type Config struct {
	DisplayWidth int               `yaml:"display_width"`
	ScaleExtent  float64           `yaml:"scale_extent"`
	BoxStroke    int               `yaml:"box_stroke"`
	LabelAlpha   float64           `yaml:"label_alpha"`
	DuplicateIoU float64           `yaml:"duplicate_iou"`
	SwatchWidth  float64           `yaml:"swatch_width"`
	GridStep     int               `yaml:"grid_step"`
	Font         FontConfig        `yaml:"font"`
	Palette      map[string]string `yaml:"palette"`
	Output       OutputConfig      `yaml:"output"`
	LogLevel     string            `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	lo := layout.DefaultOptions()
	return &Config{
		DisplayWidth: imaging.DefaultDisplayWidth,
		ScaleExtent:  geometry.ScaleExtent,
		BoxStroke:    lo.BoxStroke,
		LabelAlpha:   lo.Alpha,
		DuplicateIoU: lo.DuplicateIoU,
		SwatchWidth:  lo.SwatchWidth,
		Font:         FontConfig{Name: layout.FontBasic, Size: layout.DefaultFontSize},
		Output:       OutputConfig{Format: FormatJPEG},
		LogLevel:     "info",
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the configuration for a run. An empty path falls back to
// GROUNDVIZ_CONFIG and then to the defaults. GROUNDVIZ_LOG_LEVEL, when set,
// overrides the file's log level.
func Resolve(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DisplayWidth == 0 || c.DisplayWidth < -1 {
		errs = append(errs, fmt.Errorf("display_width must be positive or -1 to keep the source size, got %d", c.DisplayWidth))
	}
	if c.ScaleExtent <= 0 {
		errs = append(errs, fmt.Errorf("scale_extent must be positive, got %v", c.ScaleExtent))
	}
	if c.BoxStroke < 1 {
		errs = append(errs, fmt.Errorf("box_stroke must be at least 1, got %d", c.BoxStroke))
	}
	if c.LabelAlpha <= 0 || c.LabelAlpha > 1 {
		errs = append(errs, fmt.Errorf("label_alpha must be in (0, 1], got %v", c.LabelAlpha))
	}
	if c.DuplicateIoU <= 0 || c.DuplicateIoU > 1 {
		errs = append(errs, fmt.Errorf("duplicate_iou must be in (0, 1], got %v", c.DuplicateIoU))
	}
	if c.SwatchWidth <= 0 {
		errs = append(errs, fmt.Errorf("swatch_width must be positive, got %v", c.SwatchWidth))
	}
	if c.GridStep < 0 {
		errs = append(errs, fmt.Errorf("grid_step must not be negative, got %d", c.GridStep))
	}
	switch strings.ToLower(c.Font.Name) {
	case layout.FontBasic, layout.FontGoRegular:
	default:
		errs = append(errs, fmt.Errorf("font.name must be %q or %q, got %q", layout.FontBasic, layout.FontGoRegular, c.Font.Name))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font.size must be positive, got %v", c.Font.Size))
	}
	if _, err := palette.New(c.Palette); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Output.Format) {
	case FormatPNG, FormatJPEG, "jpg":
	default:
		errs = append(errs, fmt.Errorf("output.format must be %q or %q, got %q", FormatPNG, FormatJPEG, c.Output.Format))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Extension returns the file extension for the output format.
func (c *Config) Extension() string {
	if strings.ToLower(c.Output.Format) == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// NewRenderer builds a renderer from the configuration. A non-nil cache is
// shared for path sources.
func (c *Config) NewRenderer(cache *imaging.ImageCache) (*render.Renderer, error) {
	face, err := layout.LoadFace(c.Font.Name, c.Font.Size)
	if err != nil {
		return nil, err
	}
	pal, err := palette.New(c.Palette)
	if err != nil {
		return nil, err
	}
	return render.New(render.Options{
		DisplayWidth: c.DisplayWidth,
		Extent:       c.ScaleExtent,
		Face:         face,
		Palette:      pal,
		Layout: layout.Options{
			BoxStroke:    c.BoxStroke,
			Alpha:        c.LabelAlpha,
			DuplicateIoU: c.DuplicateIoU,
			SwatchWidth:  c.SwatchWidth,
		},
		Cache:    cache,
		GridStep: c.GridStep,
	}), nil
}
