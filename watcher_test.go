package tweak

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestChannelWatcher_ForwardsValues(t *testing.T) {
	source := make(chan []byte, 3)
	source <- []byte("one")
	source <- []byte("two")
	source <- []byte("three")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	for i, exp := range []string{"one", "two", "three"} {
		select {
		case v := <-out:
			if string(v) != exp {
				t.Errorf("expected %s, got %s", exp, string(v))
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout waiting for value %d", i)
		}
	}
}

func TestChannelWatcher_ClosesOnSourceClose(t *testing.T) {
	source := make(chan []byte, 1)
	source <- []byte("value")
	close(source)

	out, err := NewChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	<-out

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestChannelWatcher_ClosesOnContextCancel(t *testing.T) {
	source := make(chan []byte)

	ctx, cancel := context.WithCancel(context.Background())
	out, err := NewChannelWatcher(source).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	cancel()

	select {
	case _, ok := <-out:
		if ok {
			t.Error("expected channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timeout waiting for channel close")
	}
}

func TestNewSyncChannelWatcher_ReturnsSourceChannel(t *testing.T) {
	source := make(chan []byte, 1)
	out, err := NewSyncChannelWatcher(source).Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	source <- []byte("x")
	if v := <-out; string(v) != "x" {
		t.Errorf("expected x, got %s", v)
	}
}

type failingWatcher struct{}

func (failingWatcher) Watch(context.Context) (<-chan []byte, error) {
	return nil, errors.New("unreachable source")
}

func TestFollow_RefreshesBindings(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	value := NewValue(0.0)
	b := NewInputBinding(NewMapTarget(m, "speed"), value, asFloat, identityFloat)

	disposed := NewInputBinding(NewMapTarget(map[string]any{"x": 1.0}, "x"), NewValue(0.0), asFloat, identityFloat)
	disposed.Dispose()

	ch := make(chan []byte, 3)
	ch <- []byte("4")
	ch <- []byte("not a number")
	ch <- []byte("6")
	close(ch)

	var seen []float64
	value.Emitter().On(EventChange, func(ev ValueEvent[float64]) { seen = append(seen, ev.RawValue) })

	load := func(data []byte) error {
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		m["speed"] = f
		return nil
	}
	if err := Follow(context.Background(), NewSyncChannelWatcher(ch), load, b, disposed); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}

	if len(seen) != 2 || seen[0] != 4 || seen[1] != 6 {
		t.Errorf("expected refreshes to 4 then 6, got %v", seen)
	}
}

func TestFollower_DispatchRunsOnHostLoop(t *testing.T) {
	m := map[string]any{"speed": 1.0}
	value := NewValue(0.0)
	b := NewInputBinding(NewMapTarget(m, "speed"), value, asFloat, identityFloat)
	defer b.Dispose()

	source := make(chan []byte)
	queue := make(chan func(), 4)
	load := func(data []byte) error {
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		m["speed"] = f
		return nil
	}
	f := NewFollower(NewSyncChannelWatcher(source), load, b).
		Dispatch(func(fn func()) { queue <- fn })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- f.Run(ctx) }()

	source <- []byte("4")
	var job func()
	select {
	case job = <-queue:
	case <-time.After(time.Second):
		t.Fatal("document was not dispatched")
	}
	if value.RawValue() != 1 {
		t.Errorf("expected value untouched before the loop runs the job, got %v", value.RawValue())
	}

	// The host loop runs the job while input arrives on the same goroutine.
	value.SetRawValue(2)
	job()
	if value.RawValue() != 4 {
		t.Errorf("expected 4 after dispatch, got %v", value.RawValue())
	}
	if f.Reloads() != 1 {
		t.Errorf("expected 1 reload, got %d", f.Reloads())
	}

	close(source)
	if err := <-done; err != nil {
		t.Errorf("expected nil after source closed, got %v", err)
	}
}

func TestFollow_WatchError(t *testing.T) {
	err := Follow(context.Background(), failingWatcher{}, func([]byte) error { return nil })
	if err == nil {
		t.Error("expected watch error")
	}
}

func TestFollow_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, NewChannelWatcher(make(chan []byte)), func([]byte) error { return nil })
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Follow did not return")
	}
}

func TestFollower_DebouncesBursts(t *testing.T) {
	clock := clockz.NewFakeClock()
	ch := make(chan []byte, 10)
	ch <- []byte("1")

	var loads atomic.Int32
	var last atomic.Int64
	load := func(data []byte) error {
		n, err := strconv.Atoi(string(data))
		if err != nil {
			return err
		}
		loads.Add(1)
		last.Store(int64(n))
		return nil
	}
	f := NewFollower(NewChannelWatcher(ch), load).
		Debounce(100 * time.Millisecond).
		Clock(clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx) //nolint:errcheck // ends with the context

	time.Sleep(10 * time.Millisecond)
	if loads.Load() != 1 {
		t.Fatalf("expected initial document applied immediately, got %d loads", loads.Load())
	}

	ch <- []byte("2")
	ch <- []byte("3")
	ch <- []byte("4")
	time.Sleep(10 * time.Millisecond)
	if loads.Load() != 1 {
		t.Errorf("expected burst to be pending, got %d loads", loads.Load())
	}

	clock.Advance(150 * time.Millisecond)
	clock.BlockUntilReady()
	time.Sleep(10 * time.Millisecond)

	if loads.Load() != 2 {
		t.Errorf("expected 2 loads after debounce, got %d", loads.Load())
	}
	if last.Load() != 4 {
		t.Errorf("expected last document 4, got %d", last.Load())
	}
}

func TestFollower_ErrorHistory(t *testing.T) {
	ch := make(chan []byte, 4)
	for _, doc := range []string{"1", "x", "y", "2"} {
		ch <- []byte(doc)
	}
	close(ch)

	load := func(data []byte) error {
		_, err := strconv.Atoi(string(data))
		return err
	}
	f := NewFollower(NewSyncChannelWatcher(ch), load).ErrorHistory(4)

	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if f.Reloads() != 2 {
		t.Errorf("expected 2 reloads, got %d", f.Reloads())
	}
	if len(f.Errors()) != 2 {
		t.Errorf("expected 2 recorded errors, got %v", f.Errors())
	}
	if f.LastError() != nil {
		t.Errorf("expected last document to apply cleanly, got %v", f.LastError())
	}

	f.ClearErrors()
	if f.Errors() != nil {
		t.Errorf("expected cleared history, got %v", f.Errors())
	}
}

func TestFollower_LastErrorKeepsFailure(t *testing.T) {
	ch := make(chan []byte, 2)
	ch <- []byte("1")
	ch <- []byte("bad")
	close(ch)

	load := func(data []byte) error {
		_, err := strconv.Atoi(string(data))
		return err
	}
	f := NewFollower(NewSyncChannelWatcher(ch), load)
	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var numErr *strconv.NumError
	if !errors.As(f.LastError(), &numErr) {
		t.Errorf("expected parse error, got %v", f.LastError())
	}
	if f.Errors() != nil {
		t.Error("expected no history without ErrorHistory")
	}
}

func TestFollower_RunTwice(t *testing.T) {
	ch := make(chan []byte)
	close(ch)
	f := NewFollower(NewSyncChannelWatcher(ch), func([]byte) error { return nil })

	if err := f.Run(context.Background()); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	if err := f.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}
