// Package term defines the terminal backend contract the driver reads
// events from and paints cells through, plus a tcell-backed
// implementation and a recording test double.
package term

import (
	"context"

	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/keymap"
)

// Terminal is the exclusive resource the driver acquires on prompt
// start and releases on exit: a fixed-size grid of cells it can paint,
// plus a stream of input events.
type Terminal interface {
	// Init enters raw mode and allocates the backing screen.
	Init() error
	// Close restores the terminal to its pre-prompt state. Must be
	// safe to call even if Init failed partway through.
	Close() error
	// Size returns the current terminal dimensions in columns, rows.
	Size() (cols, rows int)
	// SetCell paints one grapheme cell at (x, y).
	SetCell(x, y int, ch rune, fg, bg grapheme.Attribute)
	// SetCursor positions the terminal's visible cursor.
	SetCursor(x, y int)
	// Clear blanks the whole screen.
	Clear()
	// Flush pushes any pending cell writes to the real terminal.
	Flush() error
	// PollEvent streams input events until ctx is cancelled or the
	// terminal is closed, at which point the channel is closed.
	PollEvent(ctx context.Context) <-chan keymap.Event
}
