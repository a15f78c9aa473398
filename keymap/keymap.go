// Package keymap dispatches terminal events to handler closures through a
// trie-based multi-key matcher, with support for swapping between several
// named keymaps at runtime (e.g. entering a modal "search" mode).
package keymap

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lestrrat-go/pdebug/v2"
	"github.com/peco/promptkit/internal/keyseq"
)

// EventType classifies the kind of terminal event a Handler sees.
type EventType uint8

const (
	EventKey EventType = iota
	EventResize
	EventError
)

// Event is the toolkit's terminal event type, decoupled from any
// particular terminal backend.
type Event struct {
	Type   EventType
	Key    keyseq.KeyType
	Ch     rune
	Mod    keyseq.ModifierKey
	Width  int // set on EventResize
	Height int // set on EventResize
	Err    error
}

// Signal is returned by a Handler to tell the driver what to do next.
type Signal int

const (
	// Continue keeps the prompt running.
	Continue Signal = iota
	// Quit exits the prompt cleanly with whatever result the widgets hold.
	Quit
	// Cancel exits the prompt as cancelled, discarding its result.
	Cancel
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Quit:
		return "Quit"
	case Cancel:
		return "Cancel"
	default:
		return fmt.Sprintf("Signal(%d)", int(s))
	}
}

// Handler reacts to an event. It closes over whatever widget state and
// output sink it needs to mutate; the keymap package itself holds none.
type Handler func(ctx context.Context, ev Event) (Signal, error)

func doNothing(context.Context, Event) (Signal, error) { return Continue, nil }

// inputseq records the key names of an in-progress multi-key sequence,
// purely for surfacing to a status line.
type inputseq []string

func (is *inputseq) add(s string)  { *is = append(*is, s) }
func (is *inputseq) reset()        { *is = (*is)[:0] }
func (is inputseq) names() []string {
	out := make([]string, len(is))
	copy(out, is)
	return out
}

// Keybind is a single named keymap: a trie of key sequences mapped to
// Handlers, plus a fallback run for unbound printable keys.
type Keybind struct {
	seq      *keyseq.Keyseq
	fallback Handler
	mu       sync.Mutex
	pending  inputseq
}

// NewKeybind creates an empty Keybind. fallback runs for events that match
// no bound sequence and carry a plain printable character (no modifier);
// pass nil to swallow such events instead.
func NewKeybind(fallback Handler) *Keybind {
	if fallback == nil {
		fallback = doNothing
	}
	return &Keybind{seq: keyseq.New(), fallback: fallback}
}

// Bind associates a key sequence pattern (e.g. "C-x,C-s") with a Handler.
// Call Compile after all Bind calls and before the first Lookup.
func (kb *Keybind) Bind(pattern string, h Handler) error {
	list, err := keyseq.ToKeyList(pattern)
	if err != nil {
		return fmt.Errorf("keymap: unknown key pattern %q: %w", pattern, err)
	}
	kb.seq.Add(list, h)
	return nil
}

// Compile finalizes the matcher after all bindings have been added.
func (kb *Keybind) Compile() error {
	return kb.seq.Compile()
}

// PendingSequence returns the key names accumulated so far while a
// multi-key sequence is in progress, for display on a status line.
func (kb *Keybind) PendingSequence() []string {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.pending.names()
}

// Lookup resolves ev against the bound sequences, advancing or resetting
// the in-progress multi-key chain as needed, and returns the Handler that
// should run for this event. It never returns nil.
func (kb *Keybind) Lookup(ev Event) (h Handler, err error) {
	if pdebug.Enabled {
		g := pdebug.Marker(context.TODO(), "Keybind.Lookup %v", ev).BindError(&err)
		defer g.End()
	}

	key := keyseq.Key{Modifier: ev.Mod, Key: ev.Key, Ch: ev.Ch}
	action, acceptErr := kb.seq.AcceptKey(key)

	name, nameErr := keyseq.KeyEventToString(ev.Key, ev.Ch, ev.Mod)

	switch acceptErr {
	case nil:
		kb.mu.Lock()
		kb.pending.reset()
		kb.mu.Unlock()

		found, ok := action.(Handler)
		if !ok {
			return doNothing, nil
		}
		return found, nil
	case keyseq.ErrInSequence:
		if nameErr == nil {
			kb.mu.Lock()
			kb.pending.add(name)
			kb.mu.Unlock()
		}
		return doNothing, nil
	default:
		kb.mu.Lock()
		kb.pending.reset()
		kb.mu.Unlock()

		if ev.Type == EventKey && ev.Mod == keyseq.ModNone && ev.Ch != 0 {
			return kb.fallback, nil
		}
		return doNothing, nil
	}
}

// Switcher holds a name→Keybind table and an active name, consulted once
// per event by the prompt driver. Handlers may call Activate to enter a
// modal state such as a "search" keymap.
type Switcher struct {
	mu      sync.Mutex
	keymaps map[string]*Keybind
	active  string
}

// NewSwitcher creates an empty Switcher.
func NewSwitcher() *Switcher {
	return &Switcher{keymaps: map[string]*Keybind{}}
}

// Register adds or replaces the named keymap. The first registered
// keymap becomes active automatically.
func (s *Switcher) Register(name string, kb *Keybind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keymaps[name] = kb
	if s.active == "" {
		s.active = name
	}
}

// Activate switches the active keymap. It errors if name was never
// registered.
func (s *Switcher) Activate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keymaps[name]; !ok {
		return fmt.Errorf("keymap: no such keymap %q", name)
	}
	s.active = name
	return nil
}

// ActiveName returns the currently active keymap's name.
func (s *Switcher) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Get returns the currently active Keybind.
func (s *Switcher) Get() (*Keybind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kb, ok := s.keymaps[s.active]
	if !ok {
		return nil, fmt.Errorf("keymap: no active keymap")
	}
	return kb, nil
}

// Dispatch looks up and runs the handler bound to ev in the active
// keymap, returning the Signal it produced.
func (s *Switcher) Dispatch(ctx context.Context, ev Event) (sig Signal, err error) {
	if pdebug.Enabled {
		g := pdebug.Marker(ctx, "Switcher.Dispatch %v", ev).BindError(&err)
		defer g.End()
	}

	kb, err := s.Get()
	if err != nil {
		return Cancel, err
	}
	h, err := kb.Lookup(ev)
	if err != nil {
		return Cancel, err
	}
	return h(ctx, ev)
}

// StatusLine joins the active keymap's pending multi-key sequence into a
// single display string, or "" when no sequence is in progress.
func (s *Switcher) StatusLine() string {
	kb, err := s.Get()
	if err != nil {
		return ""
	}
	names := kb.PendingSequence()
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, " ")
}
