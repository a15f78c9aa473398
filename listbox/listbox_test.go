package listbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDisplayableRendersEachElement(t *testing.T) {
	l := FromDisplayable([]int{1, 2, 3})
	require.Len(t, l.Items(), 3)
	assert.Equal(t, "1", l.Items()[0].String())
	assert.Equal(t, "2", l.Items()[1].String())
	assert.Equal(t, "3", l.Items()[2].String())
	assert.Equal(t, 0, l.Position())
}

func TestListboxBackwardForwardAreNonCyclic(t *testing.T) {
	l := FromDisplayable([]string{"a", "b", "c"})
	assert.False(t, l.Backward(), "already at head")
	assert.True(t, l.Forward())
	assert.True(t, l.Forward())
	assert.False(t, l.Forward(), "already at tail")
	assert.Equal(t, 2, l.Position())
}

func TestListboxMoveToHeadTail(t *testing.T) {
	l := FromDisplayable([]string{"a", "b", "c"})
	l.Forward()
	assert.True(t, l.MoveToTail())
	assert.Equal(t, 2, l.Position())
	assert.True(t, l.MoveToHead())
	assert.Equal(t, 0, l.Position())
}

func TestNewWithChecked(t *testing.T) {
	cb := NewWithChecked([]Checked[string]{
		{Value: "1", Picked: true},
		{Value: "2", Picked: false},
		{Value: "3", Picked: true},
	})

	require.Len(t, cb.Items(), 3)
	assert.Equal(t, "1", cb.Items()[0].String())
	assert.Equal(t, "2", cb.Items()[1].String())
	assert.Equal(t, "3", cb.Items()[2].String())

	assert.Equal(t, []int{0, 2}, cb.PickedIndexes())
}

func TestCheckboxToggle(t *testing.T) {
	cb := CheckboxFromDisplayable([]string{"a", "b", "c"})
	cb.Toggle()
	assert.Equal(t, []int{0}, cb.PickedIndexes())

	cb.Forward()
	cb.Toggle()
	assert.Equal(t, []int{0, 1}, cb.PickedIndexes())

	cb.Backward()
	cb.Toggle()
	assert.Equal(t, []int{1}, cb.PickedIndexes())
}

func TestCheckboxGetReturnsPickedRowsInAscendingOrder(t *testing.T) {
	cb := CheckboxFromDisplayable([]string{"a", "b", "c"})
	cb.MoveToTail()
	cb.Toggle()
	cb.MoveToHead()
	cb.Toggle()

	got := cb.Get()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].String())
	assert.Equal(t, "c", got[1].String())
}
