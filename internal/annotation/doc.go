// Package annotation extracts spatial annotations from model output text.
//
// A vision-language model answers with free-form text in which detected objects are
// tagged inline. Each tagged phrase is followed by one or more coordinate groups of
// four integers on a 0-100 grid:
//
//	There is <p>a knife</p>{<10><12><48><50>} next to <p>scissors</p>{<5><5><9><9>}<delim>{<60><60><70><75>}
//
// Groups chained for one phrase are separated by "<delim>" or written back to back.
//
// # Parse Modes
//
// Parsing degrades through three interpretations and never fails:
//
//   - ModeGrounded: at least one tagged phrase with a valid group was found. Each
//     distinct phrase becomes an Entity, in order of first appearance.
//   - ModeSingle: no tagged phrase, but the text holds at least four integers. The
//     first four form one unnamed box.
//   - ModeNone: nothing usable.
//
// Output that was cut off mid-group (for example while streaming) is truncated at
// the last closing brace before scanning. Groups that do not hold exactly four
// integers are dropped with a warning on the default logger.
//
// # Coordinates
//
// Boxes are returned in pixel space, scaled against the width and height passed to
// Parse. Those must be the dimensions of the image the boxes will be drawn on,
// after any display resize.
package annotation
