// Package driver runs the prompt's read-evaluate-redraw loop: it pulls
// events from a term.Terminal, hands them to a render.Renderer for
// dispatch, repaints only the pane rows that changed, and returns each
// widget's finalized value once a handler signals Quit or Cancel. It
// also watches for SIGTERM/SIGINT/SIGHUP so the terminal is restored
// even if the process is killed from outside the event loop.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/peco/promptkit/config"
	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/keymap"
	"github.com/peco/promptkit/pane"
	"github.com/peco/promptkit/render"
	ossig "github.com/peco/promptkit/sig"
	"github.com/peco/promptkit/term"
)

// ErrCancelled is returned by Run when a handler signals keymap.Cancel.
var ErrCancelled = errors.New("driver: prompt cancelled")

// Driver owns the terminal resource for the lifetime of one prompt.
type Driver struct {
	term     term.Terminal
	renderer *render.Renderer
	height   *config.HeightSpec

	prevPanes []*pane.Pane
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithHeight bounds every redraw to spec resolved against the
// terminal's actual row count, instead of the whole terminal.
func WithHeight(spec config.HeightSpec) Option {
	return func(d *Driver) { d.height = &spec }
}

// New creates a Driver that paints through t and dispatches/composes
// through r.
func New(t term.Terminal, r *render.Renderer, opts ...Option) *Driver {
	d := &Driver{term: t, renderer: r}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run acquires the terminal, draws the initial frame, then reads and
// dispatches events until a handler returns a terminating signal. The
// terminal is always released before Run returns. On Quit it returns
// the renderer's finalized widget results; on Cancel it returns
// ErrCancelled; a terminal EventError is returned as-is.
func (d *Driver) Run(ctx context.Context) ([]interface{}, error) {
	if err := d.term.Init(); err != nil {
		return nil, err
	}
	defer d.term.Close()

	d.term.Clear()
	if err := d.redraw(); err != nil {
		return nil, err
	}

	sigCtx, stopSig := context.WithCancel(ctx)
	defer stopSig()
	received := make(chan os.Signal, 1)
	go ossig.New(ossig.ReceivedHandlerFunc(func(s os.Signal) { received <- s })).Loop(sigCtx, stopSig)

	events := newEscAltDisambiguator(d.term.PollEvent(ctx))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case s := <-received:
			return nil, fmt.Errorf("driver: interrupted by %v", s)
		case ev, ok := <-events:
			if !ok {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return nil, errors.New("driver: event source closed unexpectedly")
			}

			if ev.Type == keymap.EventError {
				return nil, ev.Err
			}

			sig, err := d.renderer.Evaluate(ctx, ev)
			if err != nil {
				return nil, err
			}

			if err := d.redraw(); err != nil {
				return nil, err
			}

			switch sig {
			case keymap.Quit:
				return d.renderer.Finalize()
			case keymap.Cancel:
				return nil, ErrCancelled
			}
		}
	}
}

// redraw rebuilds every widget's pane against the terminal's current
// size and repaints only the rows that changed since the last tick.
func (d *Driver) redraw() error {
	cols, rows := d.term.Size()
	if d.height != nil {
		rows = d.height.Resolve(rows)
	}
	panes := d.renderer.CreatePanes(cols, rows)

	y := 0
	for i, p := range panes {
		var prevRows []grapheme.StyledGraphemes
		if i < len(d.prevPanes) && d.prevPanes[i] != nil {
			prevRows = d.prevPanes[i].Extract(rows)
		}
		curRows := p.Extract(rows)

		for r, row := range curRows {
			var prevRow grapheme.StyledGraphemes
			if r < len(prevRows) {
				prevRow = prevRows[r]
			}
			if !reflect.DeepEqual(prevRow, row) {
				d.paintRow(y+r, cols, row)
			}
		}
		for r := len(curRows); r < len(prevRows); r++ {
			d.paintRow(y+r, cols, nil)
		}

		y += len(curRows)
	}

	d.prevPanes = panes
	return d.term.Flush()
}

// paintRow writes row's graphemes starting at column 0, then blanks
// the remainder of the line out to width.
func (d *Driver) paintRow(y, width int, row grapheme.StyledGraphemes) {
	x := 0
	for _, g := range row {
		ch := ' '
		if runes := []rune(g.Cluster); len(runes) > 0 {
			ch = runes[0]
		}
		d.term.SetCell(x, y, ch, g.Style.Fg|g.Style.Attrs, g.Style.Bg)
		w := g.Width
		if w < 1 {
			w = 1
		}
		x += w
	}
	for ; x < width; x++ {
		d.term.SetCell(x, y, ' ', grapheme.ColorDefault, grapheme.ColorDefault)
	}
}
