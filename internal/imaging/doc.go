// Package imaging turns the image inputs accepted by the renderer into one
// canonical bitmap and provides the raster primitives the renderer draws with.
//
// # Image Sources
//
// A Source is a tagged variant holding exactly one of:
//   - a decoded bitmap (any image.Image)
//   - a filesystem path to a PNG, JPEG, GIF, BMP, TIFF, or WebP file
//   - a normalized CHW float tensor, as produced by the vision model's
//     preprocessing (CLIP mean and standard deviation)
//
// Decode converts every variant to an *image.RGBA whose bounds start at (0,0).
// Anything else is reported as a *SourceError wrapping ErrUnsupportedSource.
// The zero Source means "no image" and is not an error; callers check IsZero.
//
// # Drawing and Output
//
// BlendRect and StrokeRect draw label plates and box outlines. ModelGrid overlays
// the model's coordinate lattice for checking where a box lands. Crop cuts an
// inclusive box out of an image and SaveTemp, Save and EncodePNG write results.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Every other function returns a
// fresh image and never modifies its input, except BlendRect, StrokeRect and
// ModelGrid, which draw into the destination they are given.
//
// # Error Handling
//
// Functions return errors for:
//   - unsupported source variants or malformed tensors
//   - file I/O and decode errors while loading
//   - encoding errors while writing output
package imaging
