package tweak

import "sync"

// Value event names.
const (
	EventBeforeChange = "beforechange"
	EventChange       = "change"
)

// ValueEvent is the payload of Value events.
type ValueEvent[T any] struct {
	Sender   Observable[T]
	RawValue T
	// Last is false for intermediate changes of an interaction in progress,
	// such as a slider drag.
	Last bool
}

// Observable is a value whose changes can be observed.
type Observable[T any] interface {
	RawValue() T
	Emitter() *Emitter[ValueEvent[T]]
}

// ChangeOptions tune a single assignment.
type ChangeOptions struct {
	// Last marks the final change of an interaction. Plain SetRawValue
	// always sets it.
	Last bool
	// ForceEmit emits change even when the constrained value is equal to
	// the current one.
	ForceEmit bool
}

// Value is an observable holder of a single datum. Every assignment is
// constrained first and compared with the configured equality; change is
// emitted only when the stored value actually changes.
//
// Reads are safe from any goroutine. Assignments and their events are
// expected on one goroutine, the host's loop: two concurrent assignments
// may interleave their events. Follower.Dispatch brings source refreshes
// onto that loop.
type Value[T any] struct {
	emitter    *Emitter[ValueEvent[T]]
	constraint Constraint[T]
	equals     func(a, b T) bool

	mu  sync.Mutex
	raw T
}

// ValueOption configures a Value.
type ValueOption[T any] func(*Value[T])

// WithConstraint sets the constraint applied on every assignment.
func WithConstraint[T any](c Constraint[T]) ValueOption[T] {
	return func(v *Value[T]) {
		v.constraint = c
	}
}

// WithEquals sets the equality used for change detection. Types that are not
// comparable with == must supply one.
func WithEquals[T any](eq func(a, b T) bool) ValueOption[T] {
	return func(v *Value[T]) {
		v.equals = eq
	}
}

// NewValue creates a Value holding initial. The initial value is assumed to
// be valid and is not constrained.
func NewValue[T any](initial T, opts ...ValueOption[T]) *Value[T] {
	v := &Value[T]{
		emitter: NewEmitter[ValueEvent[T]](),
		equals:  defaultEquals[T],
		raw:     initial,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.equals == nil {
		v.equals = defaultEquals[T]
	}
	return v
}

// defaultEquals compares with ==. Dynamic types that cannot be compared are
// treated as different.
func defaultEquals[T any](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return any(a) == any(b)
}

// Emitter returns the event emitter of the value.
func (v *Value[T]) Emitter() *Emitter[ValueEvent[T]] {
	return v.emitter
}

// Constraint returns the constraint, or nil.
func (v *Value[T]) Constraint() Constraint[T] {
	return v.constraint
}

// RawValue returns the current value.
func (v *Value[T]) RawValue() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw
}

// SetRawValue constrains raw and stores it if it differs from the current
// value. It reports whether a change was emitted.
func (v *Value[T]) SetRawValue(raw T) bool {
	return v.SetRawValueWith(raw, ChangeOptions{Last: true})
}

// SetRawValueWith is SetRawValue with explicit change options.
func (v *Value[T]) SetRawValueWith(raw T, opts ChangeOptions) bool {
	candidate := raw
	if v.constraint != nil {
		candidate = v.constraint.Constrain(raw)
	}

	v.mu.Lock()
	if !opts.ForceEmit && v.equals(v.raw, candidate) {
		v.mu.Unlock()
		return false
	}
	v.mu.Unlock()

	v.emitter.Emit(EventBeforeChange, ValueEvent[T]{Sender: v, RawValue: candidate, Last: opts.Last})

	v.mu.Lock()
	v.raw = candidate
	v.mu.Unlock()

	v.emitter.Emit(EventChange, ValueEvent[T]{Sender: v, RawValue: candidate, Last: opts.Last})
	return true
}

// ReadonlyValue exposes a Value without its setter. Its events carry the
// ReadonlyValue as sender.
type ReadonlyValue[T any] struct {
	emitter *Emitter[ValueEvent[T]]
	value   *Value[T]
	handles []*Handler
}

// NewReadonlyValue wraps value.
func NewReadonlyValue[T any](value *Value[T]) *ReadonlyValue[T] {
	r := &ReadonlyValue[T]{
		emitter: NewEmitter[ValueEvent[T]](),
		value:   value,
	}
	for _, name := range []string{EventBeforeChange, EventChange} {
		event := name
		r.handles = append(r.handles, value.Emitter().On(event, func(ev ValueEvent[T]) {
			ev.Sender = r
			r.emitter.Emit(event, ev)
		}))
	}
	return r
}

// RawValue returns the wrapped value.
func (r *ReadonlyValue[T]) RawValue() T {
	return r.value.RawValue()
}

// Emitter returns the re-emitting emitter.
func (r *ReadonlyValue[T]) Emitter() *Emitter[ValueEvent[T]] {
	return r.emitter
}

// Detach stops forwarding events from the wrapped value.
func (r *ReadonlyValue[T]) Detach() {
	for _, h := range r.handles {
		h.Off()
	}
	r.handles = nil
}

var (
	_ Observable[int] = (*Value[int])(nil)
	_ Observable[int] = (*ReadonlyValue[int])(nil)
)
