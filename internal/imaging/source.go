package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// SourceKind identifies which variant a Source holds.
type SourceKind int

const (
	// SourceNone is the zero Source: no image was supplied.
	SourceNone SourceKind = iota
	// SourceBitmap holds a decoded image.Image.
	SourceBitmap
	// SourcePath holds a path to an image file.
	SourcePath
	// SourceTensor holds a normalized CHW tensor.
	SourceTensor
)

// String returns the variant name.
func (k SourceKind) String() string {
	switch k {
	case SourceNone:
		return "none"
	case SourceBitmap:
		return "bitmap"
	case SourcePath:
		return "path"
	case SourceTensor:
		return "tensor"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrUnsupportedSource is wrapped by every *SourceError caused by an input the
// renderer cannot accept at all, as opposed to one that failed to load.
var ErrUnsupportedSource = errors.New("unsupported image source")

// SourceError reports an image input that could not be turned into a bitmap.
type SourceError struct {
	Kind   SourceKind
	Detail string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s image source: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("invalid %s image source: %s", e.Kind, e.Detail)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Source is an image input in one of the accepted representations.
// Construct it with FromBitmap, FromPath, FromTensor, or SourceOf.
type Source struct {
	kind   SourceKind
	bitmap image.Image
	path   string
	tensor *Tensor
}

// FromBitmap wraps a decoded image.
func FromBitmap(img image.Image) Source {
	return Source{kind: SourceBitmap, bitmap: img}
}

// FromPath wraps a path to an image file.
func FromPath(path string) Source {
	return Source{kind: SourcePath, path: path}
}

// FromTensor wraps a normalized CHW tensor.
func FromTensor(t *Tensor) Source {
	return Source{kind: SourceTensor, tensor: t}
}

// SourceOf selects the variant for a dynamically typed value. A nil value gives
// the zero Source. Any type other than image.Image, string, Tensor, or *Tensor
// is rejected with ErrUnsupportedSource.
func SourceOf(v any) (Source, error) {
	switch x := v.(type) {
	case nil:
		return Source{}, nil
	case image.Image:
		return FromBitmap(x), nil
	case string:
		return FromPath(x), nil
	case *Tensor:
		return FromTensor(x), nil
	case Tensor:
		return FromTensor(&x), nil
	default:
		return Source{}, &SourceError{
			Kind:   SourceNone,
			Detail: fmt.Sprintf("%T", v),
			Err:    ErrUnsupportedSource,
		}
	}
}

// Kind returns the variant held by s.
func (s Source) Kind() SourceKind {
	return s.kind
}

// IsZero reports whether s holds no image.
func (s Source) IsZero() bool {
	return s.kind == SourceNone
}

// Decode converts s to a fresh *image.RGBA with bounds starting at (0,0).
//
// Paths are loaded through cache when it is non-nil. The returned bitmap never
// aliases the input, so callers may draw on it freely.
func (s Source) Decode(cache *ImageCache) (*image.RGBA, error) {
	switch s.kind {
	case SourceBitmap:
		if s.bitmap == nil {
			return nil, &SourceError{Kind: s.kind, Detail: "nil bitmap", Err: ErrUnsupportedSource}
		}
		return ToRGBA(s.bitmap), nil

	case SourcePath:
		var (
			img image.Image
			err error
		)
		if cache != nil {
			img, err = cache.Load(s.path)
		} else {
			img, err = Open(s.path)
		}
		if err != nil {
			return nil, &SourceError{Kind: s.kind, Detail: s.path, Err: err}
		}
		return ToRGBA(img), nil

	case SourceTensor:
		if s.tensor == nil {
			return nil, &SourceError{Kind: s.kind, Detail: "nil tensor", Err: ErrUnsupportedSource}
		}
		img, err := s.tensor.Denormalize()
		if err != nil {
			return nil, &SourceError{Kind: s.kind, Detail: "denormalize", Err: err}
		}
		return img, nil

	default:
		return nil, &SourceError{Kind: s.kind, Detail: "no image", Err: ErrUnsupportedSource}
	}
}

// ToRGBA returns an *image.RGBA copy of img whose bounds start at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	return clone.AsRGBA(img)
}

// CLIPMean and CLIPStd are the per-channel normalization constants of the
// vision encoder's preprocessing, in R, G, B order.
var (
	CLIPMean = [3]float32{0.48145466, 0.4578275, 0.40821073}
	CLIPStd  = [3]float32{0.26862954, 0.26130258, 0.27577711}
)

// Tensor is a normalized image in channel-height-width layout.
//
// Each value is (pixel/255 - Mean[c]) / Std[c]. Mean and Std default to the CLIP
// constants when left zero.
type Tensor struct {
	Channels int
	Height   int
	Width    int
	Data     []float32
	Mean     [3]float32
	Std      [3]float32
}

func (t *Tensor) stats() (mean, std [3]float32) {
	mean, std = t.Mean, t.Std
	if std == ([3]float32{}) {
		mean, std = CLIPMean, CLIPStd
	}
	return mean, std
}

// Denormalize inverts the normalization and returns the image as RGBA.
// Values outside [0,1] after inversion are clamped.
func (t *Tensor) Denormalize() (*image.RGBA, error) {
	if t.Channels != 3 {
		return nil, fmt.Errorf("expected 3 channels, got %d", t.Channels)
	}
	if t.Width <= 0 || t.Height <= 0 {
		return nil, fmt.Errorf("invalid tensor size %dx%d", t.Width, t.Height)
	}
	plane := t.Width * t.Height
	if len(t.Data) != 3*plane {
		return nil, fmt.Errorf("tensor has %d values, want %d", len(t.Data), 3*plane)
	}

	mean, std := t.stats()
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			i := y*t.Width + x
			var px [3]uint8
			for c := 0; c < 3; c++ {
				v := t.Data[c*plane+i]*std[c] + mean[c]
				px[c] = unitToByte(v)
			}
			img.SetRGBA(x, y, color.RGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}
	return img, nil
}

// TensorFromImage normalizes img with the CLIP constants, the inverse of
// Denormalize.
func TensorFromImage(img image.Image) *Tensor {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	plane := w * h
	t := &Tensor{Channels: 3, Height: h, Width: w, Data: make([]float32, 3*plane)}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			for c, v := range [3]uint32{r, g, bl} {
				unit := float32(v>>8) / 255
				t.Data[c*plane+i] = (unit - CLIPMean[c]) / CLIPStd[c]
			}
		}
	}
	return t
}

func unitToByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		// Round to nearest so a normalize/denormalize round trip is lossless.
		return uint8(v*255 + 0.5)
	}
}
