// Package document provides the in-memory text container at the heart of the
// editing engine, along with the position/offset translation functions used
// by every mutation.
//
// A Document keeps two views of its content in lockstep: the canonical flat
// text and a derived slice of lines. Mutations are performed on the line
// view and the flat text is rebuilt before the call returns, except Append,
// which extends the flat text and re-derives the lines. After any public
// mutation, joining the lines with "\n" reproduces the text exactly.
//
// A Document is owned by a single session and is not safe for concurrent
// use. The engine is driven synchronously by one loop; see the session
// package for ownership rules.
//
// Position Types:
//
//   - Offset: byte position into the flat text, in [0, Len()] inclusive
//   - Position: 0-indexed line and column (column in bytes within the line)
//
// Translation between the two is tolerant: out-of-range positions clamp to
// the nearest valid value rather than failing, because interactive cursors
// routinely go stale by one keystroke relative to the buffer.
package document
