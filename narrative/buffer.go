package narrative

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Buffer is the single-slot text handoff between narrative workers and the
// main loop. Set replaces whatever was there; the last writer wins.
type Buffer struct {
	mu      sync.Mutex
	text    string
	version uint64
}

func (b *Buffer) Set(text string) {
	b.mu.Lock()
	b.text = text
	b.version++
	b.mu.Unlock()
}

// Get returns the current text and a version that increases on every Set.
// Version 0 means nothing has been delivered yet.
func (b *Buffer) Get() (string, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text, b.version
}

// Clear empties the buffer. The version still advances so pollers notice.
func (b *Buffer) Clear() { b.Set("") }

// Dispatcher runs narrative requests off the main loop and delivers their
// text into a Buffer.
//
// Requests are never cancelled, timed out or de-duplicated. Overlapping
// requests race and whichever finishes last owns the buffer.
type Dispatcher struct {
	buf    *Buffer
	logger *log.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(buf *Buffer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{buf: buf, logger: logger}
}

// Dispatch starts fn on its own goroutine and returns immediately.
func (d *Dispatcher) Dispatch(name string, fn func(ctx context.Context) string) {
	d.wg.Add(1)
	d.logger.Debug("dispatch", "request", name)
	go func() {
		defer d.wg.Done()
		text := fn(context.Background())
		d.buf.Set(text)
		d.logger.Debug("delivered", "request", name, "len", len(text))
	}()
}

// Wait blocks until every dispatched request has delivered. The game never
// calls it; tests and shutdown do.
func (d *Dispatcher) Wait() { d.wg.Wait() }
