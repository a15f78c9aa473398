package term

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/internal/keyseq"
	"github.com/peco/promptkit/keymap"
)

// Tcell implements Terminal on top of github.com/gdamore/tcell/v2.
type Tcell struct {
	mutex  sync.Mutex
	screen tcell.Screen
}

// NewTcell creates an uninitialized tcell-backed Terminal.
func NewTcell() *Tcell {
	return &Tcell{}
}

func (t *Tcell) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize tcell screen: %w", err)
	}

	t.mutex.Lock()
	t.screen = screen
	t.mutex.Unlock()
	return nil
}

func (t *Tcell) Close() error {
	t.mutex.Lock()
	scr := t.screen
	t.screen = nil
	t.mutex.Unlock()

	if scr != nil {
		scr.Fini()
	}
	return nil
}

func (t *Tcell) Size() (int, int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

func (t *Tcell) SetCell(x, y int, ch rune, fg, bg grapheme.Attribute) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.SetContent(x, y, ch, nil, attributeToTcellStyle(fg, bg))
}

func (t *Tcell) SetCursor(x, y int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.ShowCursor(x, y)
}

func (t *Tcell) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return
	}
	t.screen.Clear()
}

func (t *Tcell) Flush() error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.screen == nil {
		return nil
	}
	t.screen.Show()
	return nil
}

// PollEvent translates tcell events into keymap.Events on a goroutine,
// closing the returned channel when ctx is cancelled or the
// underlying screen stops producing events.
func (t *Tcell) PollEvent(ctx context.Context) <-chan keymap.Event {
	evCh := make(chan keymap.Event)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Printf("term: panic in PollEvent goroutine: %v\n%s", r, debug.Stack())
			}
			close(evCh)
		}()

		for {
			t.mutex.Lock()
			scr := t.screen
			t.mutex.Unlock()
			if scr == nil {
				return
			}

			ev := scr.PollEvent()
			if ev == nil {
				return
			}

			mapped := tcellEventToEvent(ev)
			select {
			case <-ctx.Done():
				return
			case evCh <- mapped:
			}
		}
	}()

	return evCh
}

func tcellEventToEvent(ev tcell.Event) keymap.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		var mod keyseq.ModifierKey
		if e.Modifiers()&tcell.ModCtrl != 0 {
			mod |= keyseq.ModCtrl
		}
		if e.Modifiers()&tcell.ModAlt != 0 {
			mod |= keyseq.ModAlt
		}
		if e.Modifiers()&tcell.ModShift != 0 {
			mod |= keyseq.ModShift
		}

		key := e.Key()
		ch := rune(0)
		if key == tcell.KeyRune {
			ch = e.Rune()
			key = 0
		}
		return keymap.Event{Type: keymap.EventKey, Key: key, Ch: ch, Mod: mod}
	case *tcell.EventResize:
		w, h := e.Size()
		return keymap.Event{Type: keymap.EventResize, Width: w, Height: h}
	case *tcell.EventError:
		return keymap.Event{Type: keymap.EventError, Err: fmt.Errorf("%s", e.Error())}
	default:
		return keymap.Event{Type: keymap.EventError, Err: fmt.Errorf("term: unhandled tcell event %T", ev)}
	}
}

// attributeToTcellStyle converts the toolkit's palette-or-truecolor
// Attribute encoding (shared with internal/ansi) into a tcell.Style.
// Bold/Underline/Reverse flags are only ever carried on fg, matching
// internal/ansi's parser.
func attributeToTcellStyle(fg, bg grapheme.Attribute) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(attrToTcellColor(fg)).
		Background(attrToTcellColor(bg))

	if fg&grapheme.AttrBold != 0 {
		style = style.Bold(true)
	}
	if fg&grapheme.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if fg&grapheme.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func attrToTcellColor(a grapheme.Attribute) tcell.Color {
	if a&grapheme.AttrTrueColor != 0 {
		rgb := a &^ (grapheme.AttrTrueColor | grapheme.AttrBold | grapheme.AttrUnderline | grapheme.AttrReverse)
		return tcell.NewRGBColor(int32((rgb>>16)&0xff), int32((rgb>>8)&0xff), int32(rgb&0xff))
	}

	idx := a &^ (grapheme.AttrBold | grapheme.AttrUnderline | grapheme.AttrReverse)
	switch idx {
	case grapheme.ColorDefault:
		return tcell.ColorDefault
	case grapheme.ColorBlack:
		return tcell.ColorBlack
	case grapheme.ColorRed:
		return tcell.ColorRed
	case grapheme.ColorGreen:
		return tcell.ColorGreen
	case grapheme.ColorYellow:
		return tcell.ColorYellow
	case grapheme.ColorBlue:
		return tcell.ColorBlue
	case grapheme.ColorMagenta:
		return tcell.ColorPurple
	case grapheme.ColorCyan:
		return tcell.ColorTeal
	case grapheme.ColorWhite:
		return tcell.ColorWhite
	default:
		// Values above the named palette are 256-color indices,
		// 1-based per internal/ansi's SGR 38;5;N / 48;5;N decoding.
		return tcell.PaletteColor(int(idx) - 1)
	}
}
