// Package render draws parsed annotations onto images.
//
// Visualize is the whole pipeline: it decodes the image source, scales it to
// the display width, parses the annotation text against the scaled size, lays
// out boxes and labels, draws them on a private copy, and recolors the text.
// It returns the annotated image and the recolored text together.
//
// A Renderer carries only read-only configuration (face, palette, options) and
// an optional shared ImageCache, so one Renderer may serve concurrent calls.
package render
