// Package layout decides where boxes and labels go before anything is drawn.
//
// The Engine turns a parsed annotation into an ordered list of drawing
// commands. Labels sit just above-left of their box, or inside it when the box
// touches the top of the image. A label that would repeat a label with the same
// phrase at practically the same place is dropped. A label that overlaps an
// earlier one moves down a row at a time until it is clear or reaches the
// bottom edge, where it is clamped.
//
// Label geometry comes from the face's metrics: the row height is the ascent
// plus a descender allowance plus two pixels of padding above and below.
package layout
