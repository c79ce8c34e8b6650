package tweak

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zoobzio/clockz"
)

// Monitor defaults.
const (
	DefaultMonitorInterval   = 200 * time.Millisecond
	DefaultMonitorBufferSize = 1
)

// EventUpdate is emitted by a MonitorBinding after every read.
const EventUpdate = "update"

// MonitorEvent is the payload of EventUpdate.
type MonitorEvent[T comparable] struct {
	Sender  *MonitorBinding[T]
	Reading T
}

// MonitorBinding periodically reads a target into a buffer of recent
// readings. It never writes to the target.
type MonitorBinding[T comparable] struct {
	id         string
	target     Target
	reader     func(any) T
	value      *Value[[]T]
	emitter    *Emitter[MonitorEvent[T]]
	interval   time.Duration
	bufferSize int
	clock      clockz.Clock
	metrics    MetricsProvider

	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	disposed atomic.Bool
}

// NewMonitorBinding creates a monitor for target and takes one reading so
// the buffer is never empty.
func NewMonitorBinding[T comparable](target Target, reader func(any) T) *MonitorBinding[T] {
	m := &MonitorBinding[T]{
		id:         uuid.NewString(),
		target:     target,
		reader:     reader,
		value:      NewValue[[]T](nil, WithEquals[[]T](slices.Equal[[]T, T])),
		emitter:    NewEmitter[MonitorEvent[T]](),
		interval:   DefaultMonitorInterval,
		bufferSize: DefaultMonitorBufferSize,
		clock:      clockz.RealClock,
		stop:       make(chan struct{}),
	}
	m.read()
	emit(BindingCreated,
		KeyBindingID.Field(m.id),
		KeyTarget.Field(target.Key()),
		KeyKind.Field("monitor"),
	)
	return m
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Interval sets the polling interval used by Run. Non-positive intervals
// disable polling; Run then only waits for cancellation.
// Default: 200ms. Must be called before Run().
func (m *MonitorBinding[T]) Interval(d time.Duration) *MonitorBinding[T] {
	m.interval = d
	return m
}

// BufferSize sets the number of readings retained. Values below 1 are
// treated as 1. Default: 1. Must be called before Run().
func (m *MonitorBinding[T]) BufferSize(n int) *MonitorBinding[T] {
	if n < 1 {
		n = 1
	}
	m.bufferSize = n
	if buf := m.value.RawValue(); len(buf) > n {
		m.value.SetRawValue(slices.Clone(buf[len(buf)-n:]))
	}
	return m
}

// Clock sets a custom clock for the polling timer.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Run().
func (m *MonitorBinding[T]) Clock(clock clockz.Clock) *MonitorBinding[T] {
	m.clock = clock
	return m
}

// Metrics sets a metrics provider. Must be called before Run().
func (m *MonitorBinding[T]) Metrics(provider MetricsProvider) *MonitorBinding[T] {
	m.metrics = provider
	return m
}

// ID returns the unique ID of the monitor.
func (m *MonitorBinding[T]) ID() string {
	return m.id
}

// Target returns the monitored target.
func (m *MonitorBinding[T]) Target() Target {
	return m.target
}

// Value returns the buffer of recent readings, oldest first.
func (m *MonitorBinding[T]) Value() *Value[[]T] {
	return m.value
}

// Emitter returns the monitor's emitter.
func (m *MonitorBinding[T]) Emitter() *Emitter[MonitorEvent[T]] {
	return m.emitter
}

// Latest returns the most recent reading.
func (m *MonitorBinding[T]) Latest() T {
	buf := m.value.RawValue()
	if len(buf) == 0 {
		var zero T
		return zero
	}
	return buf[len(buf)-1]
}

// Tick reads the target once.
func (m *MonitorBinding[T]) Tick() error {
	if m.disposed.Load() {
		return fmt.Errorf("tick %s: %w", m.target.Key(), ErrDisposed)
	}
	start := m.clock.Now()
	m.read()
	emit(MonitorTicked,
		KeyBindingID.Field(m.id),
		KeyTarget.Field(m.target.Key()),
	)
	if m.metrics != nil {
		m.metrics.OnMonitorTick(m.target.Key(), m.clock.Since(start))
	}
	return nil
}

// Run polls the target every interval until ctx is done or the monitor is
// disposed. Each tick completes before the next timer is armed.
func (m *MonitorBinding[T]) Run(ctx context.Context) error {
	if m.disposed.Load() {
		return fmt.Errorf("run %s: %w", m.target.Key(), ErrDisposed)
	}
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	m.mu.Unlock()

	emit(MonitorStarted,
		KeyBindingID.Field(m.id),
		KeyTarget.Field(m.target.Key()),
		KeyInterval.Field(m.interval),
		KeyBufferSize.Field(m.bufferSize),
	)
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
		emit(MonitorStopped,
			KeyBindingID.Field(m.id),
			KeyTarget.Field(m.target.Key()),
		)
	}()

	if m.interval <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.stop:
			return nil
		}
	}

	timer := m.clock.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.stop:
			return nil
		case <-timer.C():
			if err := m.Tick(); err != nil {
				return nil
			}
			timer.Reset(m.interval)
		}
	}
}

// Disposed reports whether Dispose has been called.
func (m *MonitorBinding[T]) Disposed() bool {
	return m.disposed.Load()
}

// Dispose stops polling. Calling Dispose again is a no-op.
func (m *MonitorBinding[T]) Dispose() {
	if !m.disposed.CompareAndSwap(false, true) {
		return
	}
	close(m.stop)
	emit(BindingDisposed,
		KeyBindingID.Field(m.id),
		KeyTarget.Field(m.target.Key()),
	)
	if m.metrics != nil {
		m.metrics.OnDispose(m.target.Key())
	}
}

func (m *MonitorBinding[T]) read() {
	reading := m.reader(m.target.Read())

	prev := m.value.RawValue()
	next := make([]T, 0, m.bufferSize)
	if keep := m.bufferSize - 1; len(prev) > keep {
		prev = prev[len(prev)-keep:]
	}
	next = append(next, prev...)
	next = append(next, reading)
	m.value.SetRawValue(next)

	m.emitter.Emit(EventUpdate, MonitorEvent[T]{Sender: m, Reading: reading})
}
