package term

import (
	"context"
	"sync"

	"github.com/peco/promptkit/grapheme"
	"github.com/peco/promptkit/keymap"
)

// Interceptor records every call made against it under a method name,
// for assertions in tests without a real terminal.
type Interceptor struct {
	mu     sync.Mutex
	Events map[string][]interface{}
}

// NewInterceptor creates an empty Interceptor.
func NewInterceptor() *Interceptor {
	return &Interceptor{Events: make(map[string][]interface{})}
}

// Record appends args under name.
func (i *Interceptor) Record(name string, args []interface{}) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Events[name] = append(i.Events[name], args)
}

// Calls returns the recorded argument lists for name, in call order.
func (i *Interceptor) Calls(name string) []interface{} {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]interface{}(nil), i.Events[name]...)
}

// Reset clears all recorded calls.
func (i *Interceptor) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Events = make(map[string][]interface{})
}

// Mock is a Terminal test double: it records every cell write and
// cursor move, and lets a test feed input events directly through
// SendEvent rather than reading a real terminal.
type Mock struct {
	*Interceptor

	width, height int
	evCh          chan keymap.Event
}

// NewMock creates a Mock with the given fixed size.
func NewMock(width, height int) *Mock {
	return &Mock{
		Interceptor: NewInterceptor(),
		width:       width,
		height:      height,
		evCh:        make(chan keymap.Event),
	}
}

func (m *Mock) Init() error {
	m.Record("Init", nil)
	return nil
}

func (m *Mock) Close() error {
	m.Record("Close", nil)
	return nil
}

func (m *Mock) Size() (int, int) { return m.width, m.height }

func (m *Mock) SetCell(x, y int, ch rune, fg, bg grapheme.Attribute) {
	m.Record("SetCell", []interface{}{x, y, ch, fg, bg})
}

func (m *Mock) SetCursor(x, y int) {
	m.Record("SetCursor", []interface{}{x, y})
}

func (m *Mock) Clear() {
	m.Record("Clear", nil)
}

func (m *Mock) Flush() error {
	m.Record("Flush", nil)
	return nil
}

// PollEvent returns the channel SendEvent feeds; it ignores ctx since
// there is no real source to tear down.
func (m *Mock) PollEvent(ctx context.Context) <-chan keymap.Event {
	return m.evCh
}

// SendEvent pushes an event to whatever is reading PollEvent's channel.
// It blocks until the event is received.
func (m *Mock) SendEvent(ev keymap.Event) {
	m.evCh <- ev
}
