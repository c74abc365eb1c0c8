package display

// Surface is the terminal the editor renders to and reads keys from.
type Surface interface {
	// Init takes over the terminal. Fini must be called to restore it.
	Init() error

	// Fini restores the terminal to its previous state.
	Fini()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// RenderLine draws text on a row, clearing the remainder of the row.
	RenderLine(row int, text string)

	// RenderStatus draws the status line on the bottom row.
	RenderStatus(text string)

	// MoveCursor places the visible cursor.
	MoveCursor(col, row int)

	// Show flushes pending drawing to the terminal.
	Show()

	// PollKey blocks until a key press arrives.
	PollKey() Key
}
