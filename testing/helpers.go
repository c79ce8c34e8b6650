// Package testing provides test helpers for tweak bindings and controllers:
// recording views and documents, event recorders and polling waits.
package testing

import (
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/tweak"
)

// RecordingView is a tweak.View that keeps every rendered state.
type RecordingView struct {
	kind tweak.ViewKind

	mu     sync.Mutex
	states []tweak.State
}

// NewRecordingView creates an empty RecordingView of kind.
func NewRecordingView(kind tweak.ViewKind) *RecordingView {
	return &RecordingView{kind: kind}
}

// Render implements tweak.View.
func (v *RecordingView) Render(state tweak.State) {
	v.mu.Lock()
	v.states = append(v.states, state)
	v.mu.Unlock()
}

// Kind returns the kind the view was created for.
func (v *RecordingView) Kind() tweak.ViewKind {
	return v.kind
}

// States returns a copy of every rendered state, oldest first.
func (v *RecordingView) States() []tweak.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]tweak.State, len(v.states))
	copy(out, v.states)
	return out
}

// Count returns the number of renders.
func (v *RecordingView) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.states)
}

// Last returns the most recent state, or nil before the first render.
func (v *RecordingView) Last() tweak.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.states) == 0 {
		return nil
	}
	return v.states[len(v.states)-1]
}

// Reset forgets recorded states.
func (v *RecordingView) Reset() {
	v.mu.Lock()
	v.states = nil
	v.mu.Unlock()
}

// LastState returns the view's latest state as S, failing the test when
// there is none or it has another type.
func LastState[S tweak.State](t *testing.T, v *RecordingView) S {
	t.Helper()
	var zero S
	last := v.Last()
	if last == nil {
		t.Fatalf("expected %T, view never rendered", zero)
	}
	s, ok := last.(S)
	if !ok {
		t.Fatalf("expected %T, got %T", zero, last)
	}
	return s
}

// RecordingDocument is a tweak.Document handing out RecordingViews.
type RecordingDocument struct {
	mu    sync.Mutex
	views []*RecordingView
}

// NewRecordingDocument creates an empty RecordingDocument.
func NewRecordingDocument() *RecordingDocument {
	return &RecordingDocument{}
}

// CreateView implements tweak.Document.
func (d *RecordingDocument) CreateView(kind tweak.ViewKind) tweak.View {
	v := NewRecordingView(kind)
	d.mu.Lock()
	d.views = append(d.views, v)
	d.mu.Unlock()
	return v
}

// Views returns every view created so far, oldest first.
func (d *RecordingDocument) Views() []*RecordingView {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*RecordingView, len(d.views))
	copy(out, d.views)
	return out
}

// LastView returns the most recently created view, failing the test when
// none exists.
func (d *RecordingDocument) LastView(t *testing.T) *RecordingView {
	t.Helper()
	views := d.Views()
	if len(views) == 0 {
		t.Fatal("expected a view to be created")
	}
	return views[len(views)-1]
}

// EventRecorder collects payloads emitted for one event.
type EventRecorder[E any] struct {
	handle *tweak.Handler

	mu     sync.Mutex
	events []E
}

// Record subscribes to event on em and records every payload until Stop.
func Record[E any](em *tweak.Emitter[E], event string) *EventRecorder[E] {
	r := &EventRecorder[E]{}
	r.handle = em.On(event, func(e E) {
		r.mu.Lock()
		r.events = append(r.events, e)
		r.mu.Unlock()
	})
	return r
}

// Events returns a copy of the recorded payloads, oldest first.
func (r *EventRecorder[E]) Events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]E, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns the number of recorded payloads.
func (r *EventRecorder[E]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Stop unsubscribes the recorder.
func (r *EventRecorder[E]) Stop() {
	r.handle.Off()
}

// NewMapTarget returns a MapTarget over a fresh map holding key = value,
// along with the map for direct host-side edits.
func NewMapTarget(key string, value any) (*tweak.MapTarget, map[string]any) {
	m := map[string]any{key: value}
	return tweak.NewMapTarget(m, key), m
}

// WaitFor polls condition until it returns true or timeout is reached.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return condition()
}
