// Package listbox implements an ordered, cursor-bearing sequence of
// styled rows, and a checkbox widget built atop it that tracks a set
// of picked indices.
package listbox

import (
	"fmt"

	"github.com/google/btree"
	"github.com/peco/promptkit/cursor"
	"github.com/peco/promptkit/grapheme"
)

// Listbox is an ordered sequence of styled rows with a non-cyclic
// cursor over them.
type Listbox struct {
	cur *cursor.Cursor[grapheme.StyledGraphemes]
}

// FromDisplayable builds a Listbox from any slice, rendering each
// element with fmt.Sprint.
func FromDisplayable[T any](items []T) *Listbox {
	rows := make([]grapheme.StyledGraphemes, len(items))
	for i, it := range items {
		rows[i] = grapheme.FromString(fmt.Sprint(it))
	}
	return &Listbox{cur: cursor.New(rows, false)}
}

// FromStyledGraphemes builds a Listbox directly from pre-styled rows.
func FromStyledGraphemes(items []grapheme.StyledGraphemes) *Listbox {
	cp := make([]grapheme.StyledGraphemes, len(items))
	copy(cp, items)
	return &Listbox{cur: cursor.New(cp, false)}
}

// Items returns the full row sequence.
func (l *Listbox) Items() []grapheme.StyledGraphemes {
	return l.cur.Contents()
}

// Position returns the cursor's current row index.
func (l *Listbox) Position() int {
	return l.cur.Position()
}

// Get returns the row at the cursor position. The listbox must be
// non-empty.
func (l *Listbox) Get() grapheme.StyledGraphemes {
	return l.cur.At()
}

// Backward moves the cursor back one row, if possible.
func (l *Listbox) Backward() bool {
	return l.cur.Backward()
}

// Forward moves the cursor forward one row, if possible.
func (l *Listbox) Forward() bool {
	return l.cur.Forward()
}

// MoveToHead moves the cursor to the first row.
func (l *Listbox) MoveToHead() bool {
	return l.cur.MoveToHead()
}

// MoveToTail moves the cursor to the last row.
func (l *Listbox) MoveToTail() bool {
	return l.cur.MoveToTail()
}

// index is the btree.Item wrapper for a picked row index, following
// the same ordered-set idiom as peco's btree-backed Selection.
type index int

func (i index) Less(than btree.Item) bool {
	return i < than.(index)
}

// Checkbox wraps a Listbox with a btree-ordered set of picked row
// indices, so multiple rows may be marked for selection.
type Checkbox struct {
	lb     *Listbox
	picked *btree.BTree
}

const btreeDegree = 32

// CheckboxFromDisplayable builds a Checkbox with no rows picked.
func CheckboxFromDisplayable[T any](items []T) *Checkbox {
	return &Checkbox{lb: FromDisplayable(items), picked: btree.New(btreeDegree)}
}

// CheckboxFromStyledGraphemes builds a Checkbox with no rows picked.
func CheckboxFromStyledGraphemes(items []grapheme.StyledGraphemes) *Checkbox {
	return &Checkbox{lb: FromStyledGraphemes(items), picked: btree.New(btreeDegree)}
}

// Checked pairs a displayable value with its initial picked state,
// for NewWithChecked.
type Checked[T any] struct {
	Value  T
	Picked bool
}

// NewWithChecked builds a Checkbox from items paired with their
// initial picked state.
func NewWithChecked[T any](items []Checked[T]) *Checkbox {
	vals := make([]T, len(items))
	picked := btree.New(btreeDegree)
	for i, it := range items {
		vals[i] = it.Value
		if it.Picked {
			picked.ReplaceOrInsert(index(i))
		}
	}
	return &Checkbox{lb: FromDisplayable(vals), picked: picked}
}

// Items returns the full row sequence.
func (c *Checkbox) Items() []grapheme.StyledGraphemes {
	return c.lb.Items()
}

// Position returns the cursor's current row index.
func (c *Checkbox) Position() int {
	return c.lb.Position()
}

// PickedIndexes returns the picked row indices in ascending order.
func (c *Checkbox) PickedIndexes() []int {
	out := make([]int, 0, c.picked.Len())
	c.picked.Ascend(func(it btree.Item) bool {
		out = append(out, int(it.(index)))
		return true
	})
	return out
}

// Get materializes the rows at the picked indices, in ascending
// index order.
func (c *Checkbox) Get() []grapheme.StyledGraphemes {
	items := c.lb.Items()
	out := make([]grapheme.StyledGraphemes, 0, c.picked.Len())
	c.picked.Ascend(func(it btree.Item) bool {
		out = append(out, items[int(it.(index))])
		return true
	})
	return out
}

// Toggle flips the picked state of the row at the cursor position.
func (c *Checkbox) Toggle() {
	pos := index(c.lb.Position())
	if c.picked.Has(pos) {
		c.picked.Delete(pos)
	} else {
		c.picked.ReplaceOrInsert(pos)
	}
}

// Backward moves the cursor back one row, if possible.
func (c *Checkbox) Backward() bool {
	return c.lb.Backward()
}

// Forward moves the cursor forward one row, if possible.
func (c *Checkbox) Forward() bool {
	return c.lb.Forward()
}

// MoveToHead moves the cursor to the first row.
func (c *Checkbox) MoveToHead() bool {
	return c.lb.MoveToHead()
}

// MoveToTail moves the cursor to the last row.
func (c *Checkbox) MoveToTail() bool {
	return c.lb.MoveToTail()
}
