// Package patch implements the coordinate-map data structure that backs
// each layer of a text buffer's patch stack: an ordered list of Changes,
// each mapping a span of a parent's ("old") coordinates to a span of this
// layer's own ("new") coordinates, carrying the replacement text for that
// span.
//
// A Patch is append-heavy and read-heavy in roughly equal measure, and in
// practice holds few changes at a time (layers coalesce their changes
// back into their parent once no snapshot needs them kept apart), so it
// is implemented as a flat, sorted slice rather than the balanced-tree
// structure a change-heavy, long-lived patch would need.
package patch
