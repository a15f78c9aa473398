// Package history tracks previously submitted entries and lets a text
// editor browse them without disturbing the underlying list.
package history

import (
	"sync"

	"github.com/peco/promptkit/cursor"
)

// History is a bounded, non-cyclic browse over prior entries, most
// recent last. Prev/Next move a separate browsing position back and
// forth through the entries; Push commits a new entry and leaves
// browsing reset, so the next Prev starts from the entry just pushed.
type History struct {
	mu       sync.Mutex
	entries  *cursor.Cursor[string]
	browsing bool
}

// New creates an empty History.
func New() *History {
	return &History{entries: cursor.New([]string{}, false)}
}

// Push appends entry to the history and resets browsing.
func (h *History) Push(entry string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries.Replace(append(h.entries.Contents(), entry))
	h.entries.MoveToTail()
	h.browsing = false
}

// Len returns the number of entries recorded.
func (h *History) Len() int {
	return h.entries.Len()
}

// Prev moves the browsing position one entry further into the past,
// entering browsing mode if this is the first Prev since the last
// Push. It returns the entry now current and whether the position
// moved; at the oldest entry it returns that entry with ok=false.
func (h *History) Prev() (entry string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.entries.Len() == 0 {
		return "", false
	}

	if !h.browsing {
		h.browsing = true
		h.entries.MoveToTail()
		return h.entries.At(), true
	}

	if h.entries.IsHead() {
		return h.entries.At(), false
	}
	h.entries.Backward()
	return h.entries.At(), true
}

// Next moves the browsing position one entry toward the present. Past
// the most recent entry it leaves browsing mode entirely, returning
// ("", true) to signal the editor should show a blank line again. It
// is a no-op, returning ("", false), when not currently browsing.
func (h *History) Next() (entry string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.browsing || h.entries.Len() == 0 {
		return "", false
	}

	if h.entries.IsTail() {
		h.browsing = false
		return "", true
	}
	h.entries.Forward()
	return h.entries.At(), true
}

// Get returns the entry currently selected by browsing, or "" when not
// browsing.
func (h *History) Get() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.browsing || h.entries.Len() == 0 {
		return ""
	}
	return h.entries.At()
}
