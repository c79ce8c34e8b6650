package tweak

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Handler is a registration returned by Emitter.On. It is the identity used
// to remove the registration again.
type Handler struct {
	event   string
	owner   any
	removed atomic.Bool
	off     func(*Handler)
}

// Event returns the event name the handler was registered for.
func (h *Handler) Event() string {
	return h.event
}

// Off removes the registration. Calling Off more than once is a no-op.
func (h *Handler) Off() {
	if h == nil || h.off == nil {
		return
	}
	h.off(h)
}

type registration[E any] struct {
	handle *Handler
	fn     func(E)
}

// Emitter is a synchronous publish/subscribe hub keyed by event name.
//
// Handlers run on the goroutine that calls Emit, in registration order,
// against a snapshot of the handler list taken when Emit starts. Emit may be
// called re-entrantly from a handler. A handler removed while a dispatch is in
// progress is skipped if it has not run yet.
//
// By default a panicking handler is recovered, reported through the
// HandlerPanicked signal, and the remaining handlers still run. Propagate
// switches to letting the panic escape to the caller of Emit.
type Emitter[E any] struct {
	mu        sync.RWMutex
	handlers  map[string][]registration[E]
	propagate atomic.Bool
}

// NewEmitter creates an Emitter that isolates handler panics.
func NewEmitter[E any]() *Emitter[E] {
	return &Emitter[E]{handlers: make(map[string][]registration[E])}
}

// Propagate makes handler panics abort the dispatch and escape to the caller
// of Emit. It affects dispatches that start after the call.
func (e *Emitter[E]) Propagate() *Emitter[E] {
	e.propagate.Store(true)
	return e
}

// On registers fn for event and returns its registration handle.
func (e *Emitter[E]) On(event string, fn func(E)) *Handler {
	h := &Handler{event: event, owner: e, off: e.Off}
	e.mu.Lock()
	if e.handlers == nil {
		e.handlers = make(map[string][]registration[E])
	}
	e.handlers[event] = append(e.handlers[event], registration[E]{handle: h, fn: fn})
	e.mu.Unlock()
	return h
}

// Off removes the registration identified by h. Handles of other emitters
// and already removed handles are ignored.
func (e *Emitter[E]) Off(h *Handler) {
	if h == nil || h.owner != any(e) || h.removed.Swap(true) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	regs := e.handlers[h.event]
	for i, r := range regs {
		if r.handle != h {
			continue
		}
		next := make([]registration[E], 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(e.handlers, h.event)
		} else {
			e.handlers[h.event] = next
		}
		return
	}
}

// Count returns the number of handlers registered for event.
func (e *Emitter[E]) Count(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[event])
}

// Emit synchronously invokes every handler registered for event.
func (e *Emitter[E]) Emit(event string, payload E) {
	e.mu.RLock()
	// Off never mutates a published slice in place, so holding the header
	// is a stable snapshot.
	snapshot := e.handlers[event]
	e.mu.RUnlock()

	for _, r := range snapshot {
		if r.handle.removed.Load() {
			continue
		}
		if e.propagate.Load() {
			r.fn(payload)
			continue
		}
		e.invoke(event, r.fn, payload)
	}
}

func (e *Emitter[E]) invoke(event string, fn func(E), payload E) {
	defer func() {
		if rec := recover(); rec != nil {
			emit(HandlerPanicked,
				KeyEvent.Field(event),
				KeyError.Field(fmt.Sprint(rec)),
			)
		}
	}()
	fn(payload)
}
