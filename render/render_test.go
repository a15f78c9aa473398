package render

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/keymap"
	"github.com/peco/promptkit/pane"
)

type fakeWidget struct {
	rows        int
	finalValue  interface{}
	finalErr    error
	lastWidth   int
	lastHeight  int
}

func (w *fakeWidget) CreatePane(width, height int) *pane.Pane {
	w.lastWidth, w.lastHeight = width, height
	n := w.rows
	if n > height {
		n = height
	}
	if n < 0 {
		n = 0
	}
	rows := make([]grapheme.StyledGraphemes, n)
	for i := range rows {
		rows[i] = grapheme.FromString("x")
	}
	return pane.New(rows)
}

func (w *fakeWidget) Finalize() (interface{}, error) {
	return w.finalValue, w.finalErr
}

func TestCreatePanesBudgetsHeightFirstComeFirstServed(t *testing.T) {
	r := New(keymap.NewSwitcher())
	first := &fakeWidget{rows: 5}
	second := &fakeWidget{rows: 5}
	r.Register(first)
	r.Register(second)

	panes := r.CreatePanes(80, 8)
	require.Len(t, panes, 2)
	assert.Equal(t, 5, panes[0].VisibleRowCount())
	assert.Equal(t, 8, first.lastHeight)
	assert.Equal(t, 3, second.lastHeight, "second widget only sees the residual height")
	assert.Equal(t, 3, panes[1].VisibleRowCount())
}

func TestCreatePanesGivesLaterWidgetsZeroWhenBudgetExhausted(t *testing.T) {
	r := New(keymap.NewSwitcher())
	first := &fakeWidget{rows: 10}
	second := &fakeWidget{rows: 5}
	r.Register(first)
	r.Register(second)

	panes := r.CreatePanes(80, 4)
	assert.Equal(t, 4, panes[0].VisibleRowCount())
	assert.Equal(t, 0, second.lastHeight)
	assert.True(t, panes[1].IsEmpty())
}

func TestEvaluateDispatchesThroughSwitcher(t *testing.T) {
	sw := keymap.NewSwitcher()
	kb := keymap.NewKeybind(nil)
	require.NoError(t, kb.Bind("Enter", func(ctx context.Context, ev keymap.Event) (keymap.Signal, error) {
		return keymap.Quit, nil
	}))
	require.NoError(t, kb.Compile())
	sw.Register("default", kb)

	r := New(sw)
	sig, err := r.Evaluate(context.Background(), keymap.Event{Type: keymap.EventKey})
	require.NoError(t, err)
	assert.Equal(t, keymap.Continue, sig)
}

func TestFinalizeCollectsEachWidgetsResultInOrder(t *testing.T) {
	r := New(keymap.NewSwitcher())
	r.Register(&fakeWidget{finalValue: "first"})
	r.Register(&fakeWidget{finalValue: "second"})

	results, err := r.Finalize()
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"first", "second"}, results)
}

func TestFinalizeStopsAtFirstError(t *testing.T) {
	r := New(keymap.NewSwitcher())
	boom := errors.New("boom")
	r.Register(&fakeWidget{finalValue: "first"})
	r.Register(&fakeWidget{finalErr: boom})

	_, err := r.Finalize()
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotCommitAndRollback(t *testing.T) {
	s := NewSnapshot(10)
	assert.Equal(t, 10, s.Init())
	assert.Equal(t, 10, s.Before())
	assert.Equal(t, 10, s.After())

	s.SetAfter(20)
	assert.True(t, s.Changed(func(a, b int) bool { return a == b }))

	s.Commit()
	assert.Equal(t, 20, s.Before())
	assert.False(t, s.Changed(func(a, b int) bool { return a == b }))

	s.SetAfter(99)
	s.Rollback()
	assert.Equal(t, 10, s.After())
}
