package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStringAppliesUniformStyle(t *testing.T) {
	style := NewStyle(WithFg(ColorGreen))
	g := FromString("abc", WithFg(ColorGreen))
	require.Len(t, g, 3)
	for _, x := range g {
		assert.Equal(t, style, x.Style)
	}
}

func TestClusters(t *testing.T) {
	g := FromString("abc")
	assert.Equal(t, []string{"a", "b", "c"}, g.Clusters())
}

func TestWidths(t *testing.T) {
	g := FromString("a b")
	assert.Equal(t, 3, g.Widths())
}

func TestWidthsWideCharacters(t *testing.T) {
	g := FromString("国")
	assert.Equal(t, 2, g.Widths())
}

func TestReplaceChar(t *testing.T) {
	assert.Equal(t, "bonono", FromString("banana").Replace("a", "o").String())
}

func TestReplaceNonexistentCharacter(t *testing.T) {
	assert.Equal(t, "Hello World", FromString("Hello World").Replace("x", "o").String())
}

func TestReplaceWithEmptyString(t *testing.T) {
	assert.Equal(t, "Hell Wrld", FromString("Hello World").Replace("o", "").String())
}

func TestReplaceWithMultipleCharacters(t *testing.T) {
	assert.Equal(t, "Hellabc Wabcrld", FromString("Hello World").Replace("o", "abc").String())
}

func TestReplaceRange(t *testing.T) {
	g := FromString("Hello")
	g.ReplaceRange(1, 5, "i")
	assert.Equal(t, "Hi", g.String())
}

func TestApplyStyle(t *testing.T) {
	newStyle := NewStyle(WithFg(ColorGreen))
	g := FromString("abc").ApplyStyle(newStyle)
	for _, x := range g {
		assert.Equal(t, newStyle, x.Style)
	}
}

func TestApplyStyleAtSpecificIndex(t *testing.T) {
	newStyle := NewStyle(WithFg(ColorGreen))
	g := FromString("abc").ApplyStyleAt(1, newStyle)
	assert.Equal(t, newStyle, g[1].Style)
	assert.NotEqual(t, newStyle, g[0].Style)
	assert.NotEqual(t, newStyle, g[2].Style)
}

func TestApplyStyleAtOutOfBoundsIndex(t *testing.T) {
	newStyle := NewStyle(WithFg(ColorGreen))
	g := FromString("abc").ApplyStyleAt(5, newStyle)
	assert.Len(t, g, 3)
}

func TestFindAllEmptyQuery(t *testing.T) {
	g := FromString("Hello, world!")
	assert.Empty(t, g.FindAll(""))
}

func TestFindAllRepeatedSubstring(t *testing.T) {
	g := FromString("Hello, world! Hello, universe!")
	assert.Equal(t, []int{0, 14}, g.FindAll("Hello"))
}

func TestFindAllNonexistentSubstring(t *testing.T) {
	g := FromString("Hello, world!")
	assert.Empty(t, g.FindAll("xyz"))
}

func TestFindAllSingleCharacter(t *testing.T) {
	g := FromString("abcabcabc")
	assert.Equal(t, []int{1, 4, 7}, g.FindAll("b"))
}

func TestFindAllFullMatch(t *testing.T) {
	g := FromString("Hello")
	assert.Equal(t, []int{0}, g.FindAll("Hello"))
}

func TestFindAllPartialOverlap(t *testing.T) {
	g := FromString("ababa")
	assert.Equal(t, []int{0, 2}, g.FindAll("aba"))
}

func TestHighlightEmptyQuery(t *testing.T) {
	g := FromString("Hello, world!")
	highlighted, ok := g.Highlight("", Style{})
	require.True(t, ok)
	assert.Equal(t, g, highlighted)
}

func TestHighlightNoMatch(t *testing.T) {
	g := FromString("Hello, world!")
	_, ok := g.Highlight("xyz", Style{})
	assert.False(t, ok)
}

func TestHighlightAppliesStyleToMatches(t *testing.T) {
	style := NewStyle(WithFg(ColorRed))
	g := FromString("Hello, world!")
	highlighted, ok := g.Highlight("world", style)
	require.True(t, ok)
	for i := 7; i < 12; i++ {
		assert.Equal(t, style, highlighted[i].Style)
	}
	assert.NotEqual(t, style, highlighted[0].Style)
}

func TestApplyAttribute(t *testing.T) {
	g := FromString("abc").ApplyAttribute(AttrBold)
	for _, x := range g {
		assert.NotZero(t, x.Style.Attrs&AttrBold)
	}
}

func TestMatrixifyEmptyInput(t *testing.T) {
	matrix, offset := FromString("").Matrixify(10, 2, 0)
	assert.Empty(t, matrix)
	assert.Equal(t, 0, offset)
}

func TestMatrixifyExactWidthFit(t *testing.T) {
	matrix, offset := FromString("1234567890").Matrixify(10, 1, 0)
	require.Len(t, matrix, 1)
	assert.Equal(t, "1234567890", matrix[0].String())
	assert.Equal(t, 0, offset)
}

func TestMatrixifyNarrowWidth(t *testing.T) {
	matrix, offset := FromString("1234567890").Matrixify(5, 2, 0)
	require.Len(t, matrix, 2)
	assert.Equal(t, "12345", matrix[0].String())
	assert.Equal(t, "67890", matrix[1].String())
	assert.Equal(t, 0, offset)
}

func TestMatrixifyWithOffset(t *testing.T) {
	matrix, offset := FromString("1234567890").Matrixify(2, 2, 1)
	require.Len(t, matrix, 2)
	assert.Equal(t, "34", matrix[0].String())
	assert.Equal(t, "56", matrix[1].String())
	assert.Equal(t, 0, offset)
}

func TestMatrixifyWithPadding(t *testing.T) {
	matrix, offset := FromString("1234567890").Matrixify(2, 100, 1)
	require.Len(t, matrix, 5)
	assert.Equal(t, "12", matrix[0].String())
	assert.Equal(t, "90", matrix[4].String())
	assert.Equal(t, 1, offset)
}

func TestMatrixifyWithLargeOffset(t *testing.T) {
	matrix, offset := FromString("1234567890").Matrixify(10, 2, 100)
	require.Len(t, matrix, 1)
	assert.Equal(t, "1234567890", matrix[0].String())
	assert.Equal(t, 0, offset)
}

func TestMatrixifyNeverSplitsAGrapheme(t *testing.T) {
	// A wide grapheme ("国", width 2) must never be split across rows,
	// and a grapheme wider than the available width is dropped.
	matrix, _ := FromString("a国b").Matrixify(1, 10, 0)
	for _, row := range matrix {
		assert.LessOrEqual(t, row.Widths(), 1)
	}
	var joined string
	for _, row := range matrix {
		joined += row.String()
	}
	assert.Equal(t, "ab", joined)
}

func TestFromANSIStringStripsEscapesAndCarriesStyle(t *testing.T) {
	g := FromANSIString("\x1b[31mred\x1b[0m plain")
	assert.Equal(t, "red plain", g.String())
	assert.Equal(t, ColorRed, g[0].Style.Fg)
	assert.Equal(t, ColorDefault, g[4].Style.Fg)
}

func TestFromStringSegmentsGraphemeClusters(t *testing.T) {
	// "e" followed by a combining acute accent (U+0301) is a single
	// grapheme cluster, one position, even though it spans two runes.
	combining := "e\u0301"
	g := FromString("a" + combining + "b")
	require.Len(t, g, 3)
	assert.Equal(t, "a", g[0].Cluster)
	assert.Equal(t, combining, g[1].Cluster)
	assert.Equal(t, "b", g[2].Cluster)
}
