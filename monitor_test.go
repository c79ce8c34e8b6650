package tweak

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/clockz"
)

func counterTarget(n *atomic.Int64) *FuncTarget {
	return NewFuncTarget("fps", func() any { return n.Load() }, nil)
}

func readInt64(v any) int64 {
	n, _ := v.(int64)
	return n
}

func TestMonitorBinding_InitialReading(t *testing.T) {
	var n atomic.Int64
	n.Store(7)

	m := NewMonitorBinding(counterTarget(&n), readInt64)

	if diff := cmp.Diff([]int64{7}, m.Value().RawValue()); diff != "" {
		t.Errorf("initial buffer mismatch (-want +got):\n%s", diff)
	}
	if m.Latest() != 7 {
		t.Errorf("expected latest 7, got %d", m.Latest())
	}
}

func TestMonitorBinding_TickKeepsRing(t *testing.T) {
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64).BufferSize(3)

	var readings []int64
	m.Emitter().On(EventUpdate, func(ev MonitorEvent[int64]) { readings = append(readings, ev.Reading) })

	for i := int64(1); i <= 4; i++ {
		n.Store(i)
		if err := m.Tick(); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}

	if diff := cmp.Diff([]int64{2, 3, 4}, m.Value().RawValue()); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{1, 2, 3, 4}, readings); diff != "" {
		t.Errorf("update events mismatch (-want +got):\n%s", diff)
	}
}

func TestMonitorBinding_BufferSizeTrims(t *testing.T) {
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64).BufferSize(4)
	for i := int64(1); i <= 4; i++ {
		n.Store(i)
		_ = m.Tick()
	}

	m.BufferSize(2)
	if diff := cmp.Diff([]int64{3, 4}, m.Value().RawValue()); diff != "" {
		t.Errorf("trimmed buffer mismatch (-want +got):\n%s", diff)
	}

	m.BufferSize(0)
	if got := len(m.Value().RawValue()); got != 1 {
		t.Errorf("expected minimum buffer of 1, got %d", got)
	}
}

func TestMonitorBinding_NeverWrites(t *testing.T) {
	writes := 0
	target := NewFuncTarget("fps", func() any { return int64(1) }, func(any) { writes++ })
	m := NewMonitorBinding(target, readInt64)
	_ = m.Tick()
	_ = m.Tick()
	if writes != 0 {
		t.Errorf("expected no writes, got %d", writes)
	}
}

func TestMonitorBinding_RunPollsOnInterval(t *testing.T) {
	clock := clockz.NewFakeClock()
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64).
		Interval(100 * time.Millisecond).
		BufferSize(8).
		Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	// Allow Run to arm its timer.
	time.Sleep(10 * time.Millisecond)

	n.Store(1)
	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)

	n.Store(2)
	clock.Advance(100 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)

	if diff := cmp.Diff([]int64{0, 1, 2}, m.Value().RawValue()); diff != "" {
		t.Errorf("polled buffer mismatch (-want +got):\n%s", diff)
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestMonitorBinding_RunRejectsConcurrentRun(t *testing.T) {
	clock := clockz.NewFakeClock()
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64).Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	time.Sleep(10 * time.Millisecond)

	if err := m.Run(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	m.Dispose()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil after dispose, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after dispose")
	}
}

func TestMonitorBinding_Dispose(t *testing.T) {
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64)

	m.Dispose()
	m.Dispose()

	if !m.Disposed() {
		t.Error("expected disposed")
	}
	if err := m.Tick(); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed from Tick, got %v", err)
	}
	if err := m.Run(context.Background()); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed from Run, got %v", err)
	}
}

func TestMonitorBindingController(t *testing.T) {
	var n atomic.Int64
	m := NewMonitorBinding(counterTarget(&n), readInt64)
	ctrl := &stubController{}
	bc := NewMonitorBindingController("Frames", m, ctrl)

	var got []any
	bc.OnUpdate(func(v any) { got = append(got, v) })
	n.Store(3)
	if err := bc.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if diff := cmp.Diff([]any{int64(3)}, got); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	if bc.Label() != "Frames" || bc.Key() != "fps" {
		t.Errorf("unexpected label/key %q/%q", bc.Label(), bc.Key())
	}

	bc.Dispose()
	bc.Dispose()
	if ctrl.disposed != 1 || !m.Disposed() {
		t.Error("expected controller and monitor disposed once")
	}

	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrDisposed) {
			t.Errorf("expected OnUpdate to panic with ErrDisposed, got %v", err)
		}
	}()
	bc.OnUpdate(func(any) {})
}
