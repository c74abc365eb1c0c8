// Package display abstracts the terminal the editor draws to.
//
// The Surface interface covers the small rendering vocabulary the editor
// needs: line and status output, cursor placement, and blocking key
// input. The engine itself never imports this package; only the driving
// loop does.
package display
