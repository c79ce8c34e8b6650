package tweak

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// BindingEvent is emitted by an InputBinding after a change has been written
// to its target.
type BindingEvent[In, Ex any] struct {
	Sender   *InputBinding[In, Ex]
	RawValue In
	Last     bool
}

// ChangeEvent is the host-facing change notification: the value in its
// external representation.
type ChangeEvent[Ex any] struct {
	Key   string
	Value Ex
	Last  bool
}

// InputBinding synchronizes a target property with a Value. Changes of the
// Value are pushed to the target through writer; Refresh pulls the target
// back through reader.
type InputBinding[In, Ex any] struct {
	id      string
	target  Target
	value   *Value[In]
	reader  func(any) In
	writer  func(In) Ex
	emitter *Emitter[BindingEvent[In, Ex]]
	metrics MetricsProvider

	handle   *Handler
	disposed atomic.Bool
}

// NewInputBinding reads target into value and starts pushing value changes
// back to target.
func NewInputBinding[In, Ex any](target Target, value *Value[In], reader func(any) In, writer func(In) Ex) *InputBinding[In, Ex] {
	b := &InputBinding[In, Ex]{
		id:      uuid.NewString(),
		target:  target,
		value:   value,
		reader:  reader,
		writer:  writer,
		emitter: NewEmitter[BindingEvent[In, Ex]](),
	}
	b.handle = value.Emitter().On(EventChange, b.onValueChange)
	b.value.SetRawValue(b.reader(b.target.Read()))

	emit(BindingCreated,
		KeyBindingID.Field(b.id),
		KeyTarget.Field(target.Key()),
		KeyKind.Field("input"),
	)
	return b
}

// Metrics sets a metrics provider. Must be called before the binding is
// shared with controllers.
func (b *InputBinding[In, Ex]) Metrics(provider MetricsProvider) *InputBinding[In, Ex] {
	b.metrics = provider
	return b
}

// ID returns the unique ID of the binding.
func (b *InputBinding[In, Ex]) ID() string {
	return b.id
}

// Target returns the bound target.
func (b *InputBinding[In, Ex]) Target() Target {
	return b.target
}

// Value returns the internal value.
func (b *InputBinding[In, Ex]) Value() *Value[In] {
	return b.value
}

// Emitter returns the binding's emitter. It emits EventChange after each
// write to the target.
func (b *InputBinding[In, Ex]) Emitter() *Emitter[BindingEvent[In, Ex]] {
	return b.emitter
}

// ValueToWrite converts an internal value to its external representation.
func (b *InputBinding[In, Ex]) ValueToWrite(raw In) Ex {
	return b.writer(raw)
}

// Refresh re-reads the target into the value. The assignment goes through
// the value's constraint and equality like any other.
func (b *InputBinding[In, Ex]) Refresh() error {
	if b.disposed.Load() {
		return fmt.Errorf("refresh %s: %w", b.target.Key(), ErrDisposed)
	}
	b.value.SetRawValue(b.reader(b.target.Read()))
	emit(BindingRefreshed,
		KeyBindingID.Field(b.id),
		KeyTarget.Field(b.target.Key()),
	)
	if b.metrics != nil {
		b.metrics.OnRefresh(b.target.Key())
	}
	return nil
}

// OnChange registers fn to receive every change in external form. It
// panics with ErrDisposed once the binding is disposed.
func (b *InputBinding[In, Ex]) OnChange(fn func(ChangeEvent[Ex])) *Handler {
	if b.disposed.Load() {
		panic(fmt.Errorf("on change %s: %w", b.target.Key(), ErrDisposed))
	}
	return b.emitter.On(EventChange, func(ev BindingEvent[In, Ex]) {
		fn(ChangeEvent[Ex]{
			Key:   ev.Sender.target.Key(),
			Value: ev.Sender.ValueToWrite(ev.RawValue),
			Last:  ev.Last,
		})
	})
}

// Disposed reports whether Dispose has been called.
func (b *InputBinding[In, Ex]) Disposed() bool {
	return b.disposed.Load()
}

// Dispose detaches the binding from its value. No target writes happen
// afterwards. Calling Dispose again is a no-op.
func (b *InputBinding[In, Ex]) Dispose() {
	if !b.disposed.CompareAndSwap(false, true) {
		return
	}
	b.handle.Off()
	emit(BindingDisposed,
		KeyBindingID.Field(b.id),
		KeyTarget.Field(b.target.Key()),
	)
	if b.metrics != nil {
		b.metrics.OnDispose(b.target.Key())
	}
}

func (b *InputBinding[In, Ex]) onValueChange(ev ValueEvent[In]) {
	if b.disposed.Load() {
		return
	}
	b.target.Write(b.writer(ev.RawValue))
	emit(BindingWritten,
		KeyBindingID.Field(b.id),
		KeyTarget.Field(b.target.Key()),
	)
	if b.metrics != nil {
		b.metrics.OnTargetWrite(b.target.Key())
	}
	b.emitter.Emit(EventChange, BindingEvent[In, Ex]{
		Sender:   b,
		RawValue: ev.RawValue,
		Last:     ev.Last,
	})
}
