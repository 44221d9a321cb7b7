// Package buffer implements the layered patch-stack text buffer: an
// immutable base text, a stack of Layers each wrapping a Patch, and
// Snapshots that pin a layer and trigger coalescence when released.
//
// A TextBuffer is single-threaded: operations on a buffer and its live
// snapshots must come from one goroutine, and there is no internal
// mutex. Callers needing concurrent access synchronize externally.
//
// Basic usage:
//
//	buf := buffer.NewFromString("hello\nworld")
//	buf.SetTextInRange(unicode16.Range{...}, unicode16.NewTextFromString("HELLO"))
//	snap := buf.CreateSnapshot()
//	defer snap.Release()
package buffer
