package driver

import (
	"sync"
	"time"

	"github.com/peco/promptkit/internal/keyseq"
	"github.com/peco/promptkit/keymap"
)

// escAltDelay bounds how long a lone Esc waits for a following key
// before it is delivered as Esc on its own. A real Alt+key press
// arrives as Esc immediately followed by the key, well inside this
// window; a deliberate Esc press does not.
const escAltDelay = 50 * time.Millisecond

// escAltDisambiguator sits between a raw event source and the driver's
// dispatch loop. It holds back a lone Esc (Key == keyseq.KeyEsc, Ch ==
// 0) for escAltDelay: if another key event arrives first, that event
// is treated as Alt-modified and the pending Esc is dropped; if the
// timer fires first, the Esc is delivered as-is.
type escAltDisambiguator struct {
	mu      sync.Mutex
	pending *time.Timer
	out     chan keymap.Event
}

func newEscAltDisambiguator(in <-chan keymap.Event) <-chan keymap.Event {
	d := &escAltDisambiguator{out: make(chan keymap.Event)}
	go d.run(in)
	return d.out
}

func (d *escAltDisambiguator) run(in <-chan keymap.Event) {
	defer close(d.out)
	for ev := range in {
		d.handle(ev)
	}
}

func (d *escAltDisambiguator) handle(ev keymap.Event) {
	if looksLikeEsc(ev) {
		d.mu.Lock()
		if d.pending == nil {
			pendingEv := ev
			d.pending = time.AfterFunc(escAltDelay, func() {
				d.mu.Lock()
				d.pending = nil
				d.mu.Unlock()
				d.out <- pendingEv
			})
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
	}

	d.mu.Lock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
		ev.Mod |= keyseq.ModAlt
	}
	d.mu.Unlock()

	d.out <- ev
}

func looksLikeEsc(ev keymap.Event) bool {
	return ev.Type == keymap.EventKey && ev.Ch == 0 && ev.Key == keyseq.KeyEsc
}
