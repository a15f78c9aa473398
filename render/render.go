// Package render composes a fixed set of widgets into a single screen:
// it builds each widget's Pane in registration order, budgeting the
// available terminal height first-come-first-served, and dispatches
// terminal events through a keymap.Switcher.
package render

import (
	"context"

	"github.com/peco/promptkit/keymap"
	"github.com/peco/promptkit/pane"
)

// Widget is the small capability set every pane-producing component
// exposes to the Renderer: it can render itself into a Pane given a
// budget, and it can yield its final result once the prompt exits.
type Widget interface {
	CreatePane(width, height int) *pane.Pane
	Finalize() (interface{}, error)
}

// Renderer is the top-level object held by the prompt driver. It owns
// an ordered list of widgets plus a keymap switcher.
type Renderer struct {
	widgets  []Widget
	switcher *keymap.Switcher
}

// New creates a Renderer dispatching through switcher.
func New(switcher *keymap.Switcher) *Renderer {
	return &Renderer{switcher: switcher}
}

// Register appends w to the stack of rendered widgets, in the order
// panes are built and height is budgeted.
func (r *Renderer) Register(w Widget) {
	r.widgets = append(r.widgets, w)
}

// CreatePanes builds one Pane per registered widget, in registration
// order. Each widget receives the residual height: the total height
// minus the sum of prior panes' VisibleRowCount. A widget offered zero
// or negative residual height still gets asked to render (it is
// expected to return an empty Pane); this is first-come-first-served
// budgeting, not proportional sharing.
func (r *Renderer) CreatePanes(width, height int) []*pane.Pane {
	panes := make([]*pane.Pane, len(r.widgets))
	residual := height
	for i, w := range r.widgets {
		budget := residual
		if budget < 0 {
			budget = 0
		}
		p := w.CreatePane(width, budget)
		panes[i] = p
		residual -= p.VisibleRowCount()
	}
	return panes
}

// Evaluate consults the keymap switcher for the handler bound to ev
// and runs it, returning the Signal it produced.
func (r *Renderer) Evaluate(ctx context.Context, ev keymap.Event) (keymap.Signal, error) {
	return r.switcher.Dispatch(ctx, ev)
}

// Finalize collects each widget's final result, in registration order.
func (r *Renderer) Finalize() ([]interface{}, error) {
	out := make([]interface{}, len(r.widgets))
	for i, w := range r.widgets {
		v, err := w.Finalize()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Snapshot wraps a per-widget state across one event tick: init is the
// state the widget was built with, before is last tick's committed
// state, and after is mutated in place by the event's handler.
type Snapshot[S any] struct {
	init   S
	before S
	after  S
}

// NewSnapshot seeds a Snapshot with init as all three of its slots.
func NewSnapshot[S any](init S) *Snapshot[S] {
	return &Snapshot[S]{init: init, before: init, after: init}
}

// Init returns the state the widget was originally built with.
func (s *Snapshot[S]) Init() S { return s.init }

// Before returns the state as of the end of the previous tick.
func (s *Snapshot[S]) Before() S { return s.before }

// After returns the state as mutated so far this tick.
func (s *Snapshot[S]) After() S { return s.after }

// SetAfter replaces the in-progress state, typically from within a
// keymap.Handler closure.
func (s *Snapshot[S]) SetAfter(v S) { s.after = v }

// Changed reports whether after differs from before under eq, per the
// redraw diff policy: an unchanged widget's pane region isn't
// repainted.
func (s *Snapshot[S]) Changed(eq func(a, b S) bool) bool {
	return !eq(s.before, s.after)
}

// Commit carries this tick's after state into before, ready for the
// next tick.
func (s *Snapshot[S]) Commit() {
	s.before = s.after
}

// Rollback restores after to the widget's original init state, for use
// when an event fails validation.
func (s *Snapshot[S]) Rollback() {
	s.after = s.init
}
