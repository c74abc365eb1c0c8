// Package fileio provides the file service the editor loads and saves
// documents through.
//
// The FileService interface allows swapping the underlying storage,
// enabling testing with an in-memory implementation. The OS-backed
// implementation resolves relative names against a working directory and
// writes a backup copy before overwriting an existing file. Safe wraps
// any FileService with filename validation and a size ceiling in both
// directions.
package fileio
