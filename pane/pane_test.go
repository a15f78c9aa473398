package pane

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peco/promptkit/grapheme"
)

func row(s string) grapheme.StyledGraphemes {
	return grapheme.FromString(s)
}

func TestVisibleRowCount(t *testing.T) {
	p := New(nil)
	assert.Equal(t, 0, p.VisibleRowCount())
}

func TestIsEmpty(t *testing.T) {
	rows, _ := row("").Matrixify(10, 10, 0)
	p := New(rows)
	assert.True(t, p.IsEmpty())
}

func TestExtractWithLessExtractionSizeThanLayout(t *testing.T) {
	p := New([]grapheme.StyledGraphemes{row("aa"), row("bb"), row("cc"), row("dd"), row("ee")})
	got := p.Extract(3)
	assert.Equal(t, []grapheme.StyledGraphemes{row("aa"), row("bb"), row("cc")}, got)
}

func TestExtractWithMoreExtractionSizeThanLayout(t *testing.T) {
	rows := []grapheme.StyledGraphemes{row("aa"), row("bb"), row("cc"), row("dd"), row("ee")}
	p := New(rows)
	got := p.Extract(10)
	assert.Equal(t, rows, got)
}
