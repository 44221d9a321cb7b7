// Package unicode16 provides UTF-16 code-unit text storage and position
// arithmetic for the buffer package's layered patch stack.
//
// Every offset and column in this package counts UTF-16 code units, not
// bytes or runes. Positions are expressed as a Point (row, column); row
// counts LF and CRLF line terminators. ClipPosition snaps a possibly
// invalid Point — past end of line, mid-surrogate-pair, or sitting on the
// LF half of a CRLF pair — to its nearest valid boundary.
package unicode16
