package controls

import (
	"fmt"
	"sync/atomic"

	"github.com/zoobzio/tweak"
)

// base carries the value subscription, view and lifecycle shared by all
// controllers.
type base[T any] struct {
	value    *tweak.Value[T]
	view     tweak.View
	handle   *tweak.Handler
	state    atomic.Int32
	disposed atomic.Bool
}

func (b *base[T]) bind(render func(T)) {
	b.handle = tweak.BindValue[T](b.value, render)
}

// Value returns the controlled value.
func (b *base[T]) Value() *tweak.Value[T] {
	return b.value
}

// View returns the view the controller renders into.
func (b *base[T]) View() tweak.View {
	return b.view
}

// State returns the interaction state.
func (b *base[T]) State() tweak.ControllerState {
	return tweak.ControllerState(b.state.Load())
}

func (b *base[T]) setState(s tweak.ControllerState) {
	b.state.Store(int32(s))
}

// Disposed reports whether Dispose has been called.
func (b *base[T]) Disposed() bool {
	return b.disposed.Load()
}

// live panics once the controller is disposed. Rendering or feeding input
// to a disposed controller is a host bug.
func (b *base[T]) live(op string) {
	if b.disposed.Load() {
		panic(fmt.Errorf("%s: %w", op, tweak.ErrDisposed))
	}
}

// Dispose stops rendering value changes. Calling it again is a no-op.
func (b *base[T]) Dispose() {
	if !b.disposed.CompareAndSwap(false, true) {
		return
	}
	b.handle.Off()
}

// assign writes raw into the value and re-renders the stored value when the
// assignment produced no change.
func (b *base[T]) assign(raw T, opts tweak.ChangeOptions, render func(T)) {
	if b.disposed.Load() {
		return
	}
	if !b.value.SetRawValueWith(raw, opts) {
		render(b.value.RawValue())
	}
}
