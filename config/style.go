package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peco/promptkit/grapheme"
)

// StyleSet holds the styles applied to each part of a prompt: the
// plain text, the cursor's cell, a listbox's selected row, a
// substring highlight, the prompt symbol itself, and tree/jsontree
// breadcrumb text.
type StyleSet struct {
	Basic    Style `yaml:"Basic"`
	Cursor   Style `yaml:"Cursor"`
	Selected Style `yaml:"Selected"`
	Matched  Style `yaml:"Matched"`
	Prompt   Style `yaml:"Prompt"`
	Context  Style `yaml:"Context"`
}

// NewStyleSet creates a StyleSet populated with the same defaults
// every widget falls back to when no configuration is loaded.
func NewStyleSet() *StyleSet {
	ss := &StyleSet{}
	ss.init()
	return ss
}

func (ss *StyleSet) init() {
	ss.Basic = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorDefault}
	ss.Cursor = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorDefault, Attrs: grapheme.AttrReverse}
	ss.Selected = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorMagenta, Attrs: grapheme.AttrUnderline}
	ss.Matched = Style{Fg: grapheme.ColorCyan, Bg: grapheme.ColorDefault}
	ss.Prompt = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorDefault}
	ss.Context = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorDefault, Attrs: grapheme.AttrBold}
}

// Style is a YAML-decodable grapheme.Style: it unmarshals from an
// array of color and attribute tokens, e.g. ["red", "on_blue", "bold"]
// or ["#ff8800", "on_#002200", "underline"].
type Style grapheme.Style

// Grapheme returns the plain grapheme.Style this decodes to.
func (s Style) Grapheme() grapheme.Style {
	return grapheme.Style(s)
}

var stringToFg = map[string]grapheme.Attribute{
	"default": grapheme.ColorDefault,
	"black":   grapheme.ColorBlack,
	"red":     grapheme.ColorRed,
	"green":   grapheme.ColorGreen,
	"yellow":  grapheme.ColorYellow,
	"blue":    grapheme.ColorBlue,
	"magenta": grapheme.ColorMagenta,
	"cyan":    grapheme.ColorCyan,
	"white":   grapheme.ColorWhite,
}

var stringToBg = map[string]grapheme.Attribute{
	"on_default": grapheme.ColorDefault,
	"on_black":   grapheme.ColorBlack,
	"on_red":     grapheme.ColorRed,
	"on_green":   grapheme.ColorGreen,
	"on_yellow":  grapheme.ColorYellow,
	"on_blue":    grapheme.ColorBlue,
	"on_magenta": grapheme.ColorMagenta,
	"on_cyan":    grapheme.ColorCyan,
	"on_white":   grapheme.ColorWhite,
}

var stringToAttr = map[string]grapheme.Attribute{
	"bold":      grapheme.AttrBold,
	"underline": grapheme.AttrUnderline,
	"reverse":   grapheme.AttrReverse,
}

// UnmarshalYAML decodes a list of color/attribute tokens into a Style.
func (s *Style) UnmarshalYAML(unmarshal func(any) error) error {
	var raw []string
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("config: failed to unmarshal style: %w", err)
	}
	return tokensToStyle(s, raw)
}

// tokensToStyle parses tokens like "red", "on_blue", "bold", "#ff00ff",
// "on_#002200" into a Style's fg/bg colors and attribute bitset.
func tokensToStyle(s *Style, tokens []string) error {
	*s = Style{Fg: grapheme.ColorDefault, Bg: grapheme.ColorDefault}

	for _, tok := range tokens {
		switch {
		case tok == "":
			continue
		case strings.HasPrefix(tok, "on_#") && len(tok) == 10:
			rgb, err := strconv.ParseUint(tok[4:], 16, 32)
			if err != nil {
				return fmt.Errorf("config: invalid background color %q: %w", tok, err)
			}
			s.Bg = grapheme.Attribute(rgb) | grapheme.AttrTrueColor
		case strings.HasPrefix(tok, "#") && len(tok) == 7:
			rgb, err := strconv.ParseUint(tok[1:], 16, 32)
			if err != nil {
				return fmt.Errorf("config: invalid foreground color %q: %w", tok, err)
			}
			s.Fg = grapheme.Attribute(rgb) | grapheme.AttrTrueColor
		default:
			if fg, ok := stringToFg[tok]; ok {
				s.Fg = fg
				continue
			}
			if bg, ok := stringToBg[tok]; ok {
				s.Bg = bg
				continue
			}
			if attr, ok := stringToAttr[tok]; ok {
				s.Attrs |= attr
				continue
			}
			return fmt.Errorf("config: unknown style token %q", tok)
		}
	}
	return nil
}
