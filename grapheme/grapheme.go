// Package grapheme implements Unicode-width-aware styled text: an
// ordered sequence of grapheme clusters, each carrying its own display
// width and style, with search/replace/highlight/wrap operations that
// never split a cluster.
package grapheme

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"

	"github.com/peco/promptkit/internal/ansi"
)

// Attribute is a palette color or style-bit value, shared with the
// ANSI parser so ANSI-sourced text and programmatically styled text
// compose without translation.
type Attribute = ansi.Attribute

// Style-bit flags, re-exported from internal/ansi for convenience.
const (
	AttrTrueColor = ansi.AttrTrueColor
	AttrBold      = ansi.AttrBold
	AttrUnderline = ansi.AttrUnderline
	AttrReverse   = ansi.AttrReverse
)

// Named palette colors, re-exported from internal/ansi.
const (
	ColorDefault = ansi.ColorDefault
	ColorBlack   = ansi.ColorBlack
	ColorRed     = ansi.ColorRed
	ColorGreen   = ansi.ColorGreen
	ColorYellow  = ansi.ColorYellow
	ColorBlue    = ansi.ColorBlue
	ColorMagenta = ansi.ColorMagenta
	ColorCyan    = ansi.ColorCyan
	ColorWhite   = ansi.ColorWhite
)

// Style is an opaque attribute bundle: foreground, background, and a
// bitset of text attributes (bold, underline, reverse, ...).
type Style struct {
	Fg    Attribute
	Bg    Attribute
	Attrs Attribute
}

// StyleOption configures a Style via NewStyle.
type StyleOption func(*Style)

// WithFg sets the foreground color.
func WithFg(c Attribute) StyleOption { return func(s *Style) { s.Fg = c } }

// WithBg sets the background color.
func WithBg(c Attribute) StyleOption { return func(s *Style) { s.Bg = c } }

// WithAttrs ORs the given attribute bits into the style.
func WithAttrs(a Attribute) StyleOption { return func(s *Style) { s.Attrs |= a } }

// NewStyle builds a Style from functional options, starting from the
// zero value (default foreground/background, no attributes).
func NewStyle(opts ...StyleOption) Style {
	var s Style
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// StyledGrapheme is a single user-perceived character (one Unicode
// grapheme cluster, which may span more than one rune) plus its
// display width and style.
type StyledGrapheme struct {
	Cluster string
	Width   int
	Style   Style
}

// NewGrapheme builds a StyledGrapheme from a cluster string, deriving
// its display width from Unicode width tables.
func NewGrapheme(cluster string, style Style) StyledGrapheme {
	return StyledGrapheme{
		Cluster: cluster,
		Width:   runewidth.StringWidth(cluster),
		Style:   style,
	}
}

// StyledGraphemes is an ordered, indexable sequence of styled
// graphemes. Indices are grapheme positions, never byte offsets.
type StyledGraphemes []StyledGrapheme

// FromString builds a StyledGraphemes sequence from a plain string,
// applying a uniform style to every cluster. Segmentation follows
// Unicode Annex #29 grapheme cluster boundaries, so combining marks
// and multi-rune emoji are treated as a single position.
func FromString(s string, opts ...StyleOption) StyledGraphemes {
	style := NewStyle(opts...)
	clusters := splitGraphemes(s)
	out := make(StyledGraphemes, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, NewGrapheme(c, style))
	}
	return out
}

// FromANSIString builds a StyledGraphemes sequence from a string that
// may contain ANSI SGR color escapes, e.g. pre-colored command output.
// Escapes are stripped and translated into per-cluster Style values.
func FromANSIString(s string) StyledGraphemes {
	res := ansi.Parse(s)
	clusters := splitGraphemes(res.Stripped)
	out := make(StyledGraphemes, 0, len(clusters))

	runePos := 0
	for _, c := range clusters {
		n := len([]rune(c))
		style := Style{}
		if res.Attrs != nil {
			spans := ansi.ExtractSegment(res.Attrs, runePos, runePos+n)
			if len(spans) > 0 {
				style.Fg = spans[0].Fg
				style.Bg = spans[0].Bg
			}
		}
		out = append(out, NewGrapheme(c, style))
		runePos += n
	}
	return out
}

func splitGraphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	seg := graphemes.FromString(s)
	for seg.Next() {
		out = append(out, seg.Value())
	}
	return out
}

// String concatenates every grapheme's cluster text, discarding style.
func (g StyledGraphemes) String() string {
	var b strings.Builder
	for _, x := range g {
		b.WriteString(x.Cluster)
	}
	return b.String()
}

// Clusters returns the cluster text of every grapheme in order.
func (g StyledGraphemes) Clusters() []string {
	out := make([]string, len(g))
	for i, x := range g {
		out[i] = x.Cluster
	}
	return out
}

// Widths returns the sum of per-grapheme display widths.
func (g StyledGraphemes) Widths() int {
	total := 0
	for _, x := range g {
		total += x.Width
	}
	return total
}

// Clone returns an independent copy of the sequence.
func (g StyledGraphemes) Clone() StyledGraphemes {
	out := make(StyledGraphemes, len(g))
	copy(out, g)
	return out
}

// FindAll returns every position p where query's clusters appear
// starting at p, scanning left-to-right and advancing one position at
// a time so overlapping matches are retained. An empty query returns
// nil.
func (g StyledGraphemes) FindAll(query string) []int {
	if query == "" {
		return nil
	}
	qc := splitGraphemes(query)
	n := len(qc)

	var indices []int
	for pos := 0; pos+n <= len(g); pos++ {
		match := true
		for i := 0; i < n; i++ {
			if g[pos+i].Cluster != qc[i] {
				match = false
				break
			}
		}
		if match {
			indices = append(indices, pos)
		}
	}
	return indices
}

// Highlight applies style to every occurrence of query, returning the
// modified copy and true. If query is empty the sequence is returned
// unchanged with true. If query does not occur, returns (nil, false).
func (g StyledGraphemes) Highlight(query string, style Style) (StyledGraphemes, bool) {
	if query == "" {
		return g, true
	}

	indices := g.FindAll(query)
	if len(indices) == 0 {
		return nil, false
	}

	qlen := len(splitGraphemes(query))
	out := g.Clone()
	for _, start := range indices {
		for i := start; i < start+qlen && i < len(out); i++ {
			out[i].Style = style
		}
	}
	return out, true
}

// ApplyStyle returns a copy with style applied to every grapheme.
func (g StyledGraphemes) ApplyStyle(style Style) StyledGraphemes {
	out := g.Clone()
	for i := range out {
		out[i].Style = style
	}
	return out
}

// ApplyStyleAt returns a copy with style applied at idx. Out-of-range
// indices are a no-op.
func (g StyledGraphemes) ApplyStyleAt(idx int, style Style) StyledGraphemes {
	out := g.Clone()
	if idx >= 0 && idx < len(out) {
		out[idx].Style = style
	}
	return out
}

// ApplyAttribute returns a copy with attr OR-ed into every grapheme's
// style attributes.
func (g StyledGraphemes) ApplyAttribute(attr Attribute) StyledGraphemes {
	out := g.Clone()
	for i := range out {
		out[i].Style.Attrs |= attr
	}
	return out
}

// ReplaceRange removes the grapheme positions [start, end) and inserts
// replacement, styled with the default style, starting at start.
func (g *StyledGraphemes) ReplaceRange(start, end int, replacement string) {
	if start < 0 {
		start = 0
	}
	if end > len(*g) {
		end = len(*g)
	}
	if start > end {
		start = end
	}

	repl := FromString(replacement)
	out := make(StyledGraphemes, 0, start+len(repl)+len(*g)-end)
	out = append(out, (*g)[:start]...)
	out = append(out, repl...)
	out = append(out, (*g)[end:]...)
	*g = out
}

// Replace replaces every non-overlapping left-to-right occurrence of
// from with to. Match positions are collected against the original
// sequence first (via FindAll), positions overlapping an earlier kept
// match are skipped, and the rest are rewritten at offsets shifted
// by the cumulative length difference already applied — see the
// replace() resolution in DESIGN.md.
func (g StyledGraphemes) Replace(from, to string) StyledGraphemes {
	fromLen := len(splitGraphemes(from))
	toLen := len(splitGraphemes(to))

	out := g.Clone()
	positions := out.FindAll(from)

	offset := 0
	diff := fromLen - toLen
	if diff < 0 {
		diff = -diff
	}

	next := 0
	for _, p := range positions {
		if p < next {
			continue
		}
		next = p + fromLen

		var adjusted int
		if toLen > fromLen {
			adjusted = p + offset
		} else {
			adjusted = p - offset
			if adjusted < 0 {
				adjusted = 0
			}
		}
		out.ReplaceRange(adjusted, adjusted+fromLen, to)
		offset += diff
	}
	return out
}

// Matrixify wraps the sequence into rows of display width no greater
// than width, never splitting a grapheme (a grapheme wider than width
// is dropped). If the resulting row count exceeds height, rows are
// discarded from the front first — consuming offset each time until it
// reaches zero — then from the back. Returns the surviving rows and
// the remaining offset.
func (g StyledGraphemes) Matrixify(width, height, offset int) ([]StyledGraphemes, int) {
	var all []StyledGraphemes
	var row StyledGraphemes
	rowWidth := 0

	for _, gr := range g {
		if len(row) > 0 && width < rowWidth+gr.Width {
			all = append(all, row)
			row = nil
			rowWidth = 0
		}
		if width >= gr.Width {
			row = append(row, gr)
			rowWidth += gr.Width
		}
	}
	if len(row) > 0 {
		all = append(all, row)
	}

	if len(all) == 0 {
		return []StyledGraphemes{}, 0
	}

	if offset > len(all)-1 {
		offset = len(all) - 1
	}

	for len(all) > height && offset < len(all) {
		if offset > 0 {
			all = all[1:]
			offset--
		} else {
			all = all[:len(all)-1]
		}
	}

	return all, offset
}
