// Package pane holds a widget's already-wrapped screen content: a
// fixed list of rows ready to be painted, with no further layout
// logic of its own.
package pane

import "github.com/peco/promptkit/grapheme"

// Pane is the rendered content of one widget: a sequence of rows, each
// already wrapped to fit the terminal width.
type Pane struct {
	layout []grapheme.StyledGraphemes
}

// New builds a Pane from already-wrapped rows, typically the output of
// grapheme.StyledGraphemes.Matrixify.
func New(layout []grapheme.StyledGraphemes) *Pane {
	return &Pane{layout: layout}
}

// VisibleRowCount is the number of rows this pane currently occupies.
func (p *Pane) VisibleRowCount() int {
	return len(p.layout)
}

// IsEmpty reports whether the pane has no rows at all.
func (p *Pane) IsEmpty() bool {
	return len(p.layout) == 0
}

// Extract returns up to viewportHeight rows from the top of the pane.
func (p *Pane) Extract(viewportHeight int) []grapheme.StyledGraphemes {
	end := len(p.layout)
	if viewportHeight < end {
		end = viewportHeight
	}
	if end < 0 {
		end = 0
	}
	out := make([]grapheme.StyledGraphemes, end)
	copy(out, p.layout[:end])
	return out
}
