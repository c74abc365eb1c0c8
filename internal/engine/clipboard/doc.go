// Package clipboard provides a single-slot clipboard with copy, cut, and
// paste operations over a document's character content.
//
// Ranges are expressed as character indexes into the document text. Copy
// reads without modifying the document; Cut copies and then removes the
// range; Paste replays the held text into the document one character at a
// time at a cursor position, returning the position after the inserted
// text.
package clipboard
