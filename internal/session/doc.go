// Package session manages the ordered collection of open documents.
//
// A Session owns documents and their metadata in parallel slices, tracks
// which document is current, and routes text mutations to it while
// mirroring the dirty flag. A session always holds at least one document:
// closing the last one replaces it in place with a fresh untitled
// document instead of removing it.
package session
