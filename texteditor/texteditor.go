// Package texteditor implements a cursor-bearing line editor over a
// grapheme sequence. The buffer always carries a trailing sentinel
// space grapheme, under which the cursor rests when positioned past
// the last real character.
package texteditor

import (
	"github.com/peco/promptkit/cursor"
	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/history"
)

// Mode selects how Insert-family keystrokes are applied.
type Mode int

const (
	// ModeInsert inserts a grapheme at the cursor, shifting the rest
	// of the buffer right.
	ModeInsert Mode = iota
	// ModeOverwrite replaces the grapheme at the cursor (falling back
	// to insert at the tail, since there is nothing to overwrite).
	ModeOverwrite
)

// Editor is a cursor-bearing text buffer. The zero value is not
// usable; construct with New.
type Editor struct {
	cur     *cursor.Cursor[grapheme.StyledGrapheme]
	mode    Mode
	history *history.History
}

// Option configures an Editor at construction time.
type Option func(*Editor)

// WithMode sets the initial edit mode.
func WithMode(m Mode) Option {
	return func(e *Editor) { e.mode = m }
}

// WithHistory attaches a history buffer; Quit-driven consumers push
// text_without_cursor() into it and keybind actions may cycle through
// it via Replace.
func WithHistory(h *history.History) Option {
	return func(e *Editor) { e.history = h }
}

// New builds an Editor from an initial string, appending the sentinel
// space and positioning the cursor on it.
func New(s string, opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}
	e.reset(s)
	return e
}

func (e *Editor) reset(s string) {
	buf := grapheme.FromString(s + " ")
	e.cur = cursor.New(buf, false)
	e.cur.MoveTo(len(buf) - 1)
}

// Text returns the current buffer contents including the sentinel.
func (e *Editor) Text() grapheme.StyledGraphemes {
	return grapheme.StyledGraphemes(e.cur.Contents()).Clone()
}

// TextWithoutCursor returns the buffer contents with the trailing
// sentinel space removed.
func (e *Editor) TextWithoutCursor() grapheme.StyledGraphemes {
	t := e.Text()
	if len(t) == 0 {
		return t
	}
	return t[:len(t)-1]
}

// Position returns the cursor's current grapheme index.
func (e *Editor) Position() int {
	return e.cur.Position()
}

// History returns the history buffer attached via WithHistory, or nil.
func (e *Editor) History() *history.History {
	return e.history
}

// Masking returns a copy of the buffer with every grapheme except the
// trailing sentinel replaced by mask.
func (e *Editor) Masking(mask rune) grapheme.StyledGraphemes {
	t := e.Text()
	out := make(grapheme.StyledGraphemes, len(t))
	last := len(t) - 1
	for i, g := range t {
		if i == last {
			out[i] = g
			continue
		}
		out[i] = grapheme.NewGrapheme(string(mask), g.Style)
	}
	return out
}

// Replace discards the buffer and rebuilds it as if newly constructed
// from new, positioning the cursor at the tail.
func (e *Editor) Replace(new string) {
	e.reset(new)
}

// Insert inserts ch at the cursor position and advances the cursor.
func (e *Editor) Insert(ch rune) {
	pos := e.Position()
	e.cur.InsertAt(pos, grapheme.NewGrapheme(string(ch), grapheme.Style{}))
	e.Forward()
}

// InsertChars inserts each rune in order via Insert.
func (e *Editor) InsertChars(chs []rune) {
	for _, ch := range chs {
		e.Insert(ch)
	}
}

// Overwrite replaces the grapheme at the cursor with ch and advances
// the cursor. At the tail (on the sentinel) it behaves like Insert.
func (e *Editor) Overwrite(ch rune) {
	if e.cur.IsTail() {
		e.Insert(ch)
		return
	}
	pos := e.Position()
	buf := grapheme.StyledGraphemes(e.cur.Contents())
	buf.ReplaceRange(pos, pos+1, string(ch))
	e.cur.Replace(buf)
	e.Forward()
}

// OverwriteChars overwrites each rune in order via Overwrite.
func (e *Editor) OverwriteChars(chs []rune) {
	for _, ch := range chs {
		e.Overwrite(ch)
	}
}

// Erase removes the grapheme immediately before the cursor. At the
// head it is a no-op.
func (e *Editor) Erase() {
	if e.cur.IsHead() {
		return
	}
	e.Backward()
	pos := e.Position()
	e.cur.RemoveAt(pos)
}

// EraseAll resets the editor to its default empty state (sentinel
// only, cursor at 0).
func (e *Editor) EraseAll() {
	e.reset("")
}

// eraseToPosition drains the buffer between the cursor and pos,
// moving the cursor to the smaller of the two endpoints.
func (e *Editor) eraseToPosition(pos int) {
	current := e.Position()
	if pos > current {
		e.drain(current, pos)
		return
	}
	e.drain(pos, current)
	e.cur.MoveTo(pos)
}

func (e *Editor) drain(start, end int) {
	for i := end - 1; i >= start; i-- {
		e.cur.RemoveAt(i)
	}
}

// findPreviousNearestIndex finds the greatest index i < position-1
// whose grapheme is in wordBreak, returning i+1 (just past the break)
// or 0 if none is found.
func (e *Editor) findPreviousNearestIndex(wordBreak map[rune]struct{}) int {
	current := e.Position()
	text := e.Text()
	limit := current - 1
	for i := limit - 1; i >= 0; i-- {
		if isWordBreak(text[i], wordBreak) {
			return i + 1
		}
	}
	return 0
}

// findNextNearestIndex finds the least index i > position whose
// grapheme is in wordBreak, returning i+1 (clamped to len-1, never
// past the sentinel) or len-1 if none is found.
func (e *Editor) findNextNearestIndex(wordBreak map[rune]struct{}) int {
	current := e.Position()
	text := e.Text()
	n := len(e.cur.Contents())
	for i := current + 1; i < len(text); i++ {
		if isWordBreak(text[i], wordBreak) {
			if i < n-1 {
				return i + 1
			}
			return n - 1
		}
	}
	return n - 1
}

func isWordBreak(g grapheme.StyledGrapheme, set map[rune]struct{}) bool {
	if len([]rune(g.Cluster)) != 1 {
		return false
	}
	r := []rune(g.Cluster)[0]
	_, ok := set[r]
	return ok
}

// EraseToPreviousNearest erases from the cursor back to the nearest
// preceding break character in wordBreak.
func (e *Editor) EraseToPreviousNearest(wordBreak map[rune]struct{}) {
	e.eraseToPosition(e.findPreviousNearestIndex(wordBreak))
}

// MoveToPreviousNearest moves the cursor to the nearest preceding
// break character in wordBreak.
func (e *Editor) MoveToPreviousNearest(wordBreak map[rune]struct{}) {
	e.cur.MoveTo(e.findPreviousNearestIndex(wordBreak))
}

// EraseToNextNearest erases from the cursor forward to the nearest
// following break character in wordBreak.
func (e *Editor) EraseToNextNearest(wordBreak map[rune]struct{}) {
	e.eraseToPosition(e.findNextNearestIndex(wordBreak))
}

// MoveToNextNearest moves the cursor to the nearest following break
// character in wordBreak.
func (e *Editor) MoveToNextNearest(wordBreak map[rune]struct{}) {
	e.cur.MoveTo(e.findNextNearestIndex(wordBreak))
}

// MoveToHead moves the cursor to the beginning of the text.
func (e *Editor) MoveToHead() bool { return e.cur.MoveToHead() }

// MoveToTail moves the cursor to the end of the text (the sentinel).
func (e *Editor) MoveToTail() bool { return e.cur.MoveToTail() }

// Shift moves the cursor backward then forward by the given amounts
// in one step, clamped so it never moves past the sentinel.
func (e *Editor) Shift(backward, forward int) bool { return e.cur.Shift(backward, forward) }

// Backward moves the cursor one position back, if possible.
func (e *Editor) Backward() bool { return e.cur.Backward() }

// Forward moves the cursor one position forward, if possible.
func (e *Editor) Forward() bool { return e.cur.Forward() }

// Mode returns the editor's current edit mode.
func (e *Editor) Mode() Mode { return e.mode }

// SetMode changes the editor's edit mode.
func (e *Editor) SetMode(m Mode) { e.mode = m }

// InsertOrOverwrite inserts or overwrites ch according to the
// editor's current mode.
func (e *Editor) InsertOrOverwrite(ch rune) {
	if e.mode == ModeOverwrite {
		e.Overwrite(ch)
		return
	}
	e.Insert(ch)
}
