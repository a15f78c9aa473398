package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrevNextOnEmptyHistory(t *testing.T) {
	h := New()
	_, ok := h.Prev()
	assert.False(t, ok)
	assert.Equal(t, "", h.Get())
}

func TestPushThenPrevReturnsMostRecentFirst(t *testing.T) {
	h := New()
	h.Push("one")
	h.Push("two")
	h.Push("three")

	entry, ok := h.Prev()
	assert.True(t, ok)
	assert.Equal(t, "three", entry)
	assert.Equal(t, "three", h.Get())

	entry, ok = h.Prev()
	assert.True(t, ok)
	assert.Equal(t, "two", entry)

	entry, ok = h.Prev()
	assert.True(t, ok)
	assert.Equal(t, "one", entry)

	entry, ok = h.Prev()
	assert.False(t, ok, "Prev at the oldest entry reports no movement")
	assert.Equal(t, "one", entry)
}

func TestNextPastMostRecentClearsBrowsing(t *testing.T) {
	h := New()
	h.Push("one")
	h.Push("two")

	_, ok := h.Next()
	assert.False(t, ok, "Next before any Prev is a no-op")

	_, _ = h.Prev() // "two"
	_, _ = h.Prev() // "one"

	entry, ok := h.Next()
	assert.True(t, ok)
	assert.Equal(t, "two", entry)

	entry, ok = h.Next()
	assert.True(t, ok)
	assert.Equal(t, "", entry, "Next past the most recent entry clears browsing")
	assert.Equal(t, "", h.Get())

	_, ok = h.Next()
	assert.False(t, ok, "Next once browsing has cleared is a no-op again")
}

func TestPushResetsBrowsing(t *testing.T) {
	h := New()
	h.Push("one")
	h.Prev()
	h.Push("two")
	assert.Equal(t, "", h.Get(), "pushing a new entry resets browsing")

	entry, ok := h.Prev()
	assert.True(t, ok)
	assert.Equal(t, "two", entry)
}
