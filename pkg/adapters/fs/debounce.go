package fs

import (
	"sync"
	"time"

	"github.com/fallow-md/fallow/pkg/core"
)

// debouncer coalesces bursts of filesystem events for the same note.
// Editors commonly emit several writes per save; only the last event
// within the window fires.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window:  window,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

// add schedules fire for the event after the window, replacing any
// pending event for the same note ID.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[e.ID] = e

	if t, ok := d.timers[e.ID]; ok {
		// Stop reports false when the timer already fired; its callback
		// balances the WaitGroup itself in that case.
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[e.ID] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		event, ok := d.pending[e.ID]
		delete(d.pending, e.ID)
		delete(d.timers, e.ID)
		d.mu.Unlock()

		if ok {
			fire(event)
		}
		d.wg.Done()
	})
}

// stopAndWait refuses further events and waits for in-flight timers,
// bounded by timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
