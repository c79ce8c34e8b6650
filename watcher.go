package tweak

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the debounce used by file-backed followers. Editors
// often write a file in several steps; documents arriving within this window
// are coalesced.
const DefaultDebounce = 100 * time.Millisecond

// Watcher observes a document source and emits its raw bytes on a channel.
// Implementations emit the current contents immediately so followers start
// from the source's state.
type Watcher interface {
	// Watch begins observing the source. The returned channel is closed when
	// ctx is canceled or the source fails unrecoverably.
	Watch(ctx context.Context) (<-chan []byte, error)
}

// Refresher re-reads a target. BoundInput and InputBinding satisfy it.
type Refresher interface {
	Refresh() error
}

// Follower applies every document emitted by a Watcher with a load function,
// then refreshes its bindings so controllers pick up the new external
// values. A document that fails to load is reported through SourceFailed and
// skipped; disposed bindings are skipped silently.
//
// Documents are applied on the watcher's goroutine unless Dispatch hands
// them to the host's loop. Bindings are not safe to drive from two
// goroutines at once, so hosts that edit values on their own loop should set
// Dispatch.
//
// The first document is applied as soon as it arrives. Later documents are
// debounced when a debounce is configured: only the last document of a burst
// is applied.
type Follower struct {
	watcher  Watcher
	load     func([]byte) error
	bindings []Refresher
	debounce time.Duration
	clock    clockz.Clock
	history  *errorRing
	dispatch func(func())

	lastError atomic.Pointer[error]
	reloads   atomic.Int64
	started   atomic.Bool
}

// NewFollower creates a Follower that applies documents from w with load
// and refreshes bindings after each one.
func NewFollower(w Watcher, load func([]byte) error, bindings ...Refresher) *Follower {
	return &Follower{
		watcher:  w,
		load:     load,
		bindings: bindings,
		clock:    clockz.RealClock,
	}
}

// Debounce sets the quiet period after which the latest pending document is
// applied. Zero applies every document immediately. Default: 0.
// Must be called before Run().
func (f *Follower) Debounce(d time.Duration) *Follower {
	f.debounce = d
	return f
}

// Clock sets the clock driving the debounce timer.
// Use this with clockz.FakeClock for deterministic tests.
// Must be called before Run().
func (f *Follower) Clock(clock clockz.Clock) *Follower {
	f.clock = clock
	return f
}

// Dispatch sets the function that runs each document application, load and
// refresh together. Hosts pass their event-loop scheduler so refreshes never
// run concurrently with user input. Default: call in place.
// Must be called before Run().
func (f *Follower) Dispatch(fn func(func())) *Follower {
	f.dispatch = fn
	return f
}

// ErrorHistory keeps the last n load and refresh errors, retrievable with
// Errors. Zero disables the history. Must be called before Run().
func (f *Follower) ErrorHistory(n int) *Follower {
	f.history = newErrorRing(n)
	return f
}

// LastError returns the error of the most recent document, or nil when it
// applied cleanly.
func (f *Follower) LastError() error {
	ptr := f.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Errors returns the recorded error history, oldest first.
func (f *Follower) Errors() []error {
	return f.history.all()
}

// ClearErrors forgets the recorded error history.
func (f *Follower) ClearErrors() {
	f.history.clear()
}

// Reloads returns the number of documents loaded successfully.
func (f *Follower) Reloads() int64 {
	return f.reloads.Load()
}

// Run follows the watcher until its channel closes or ctx is done. It
// returns ctx's error when the context ended the watch. Run can only be
// called once.
func (f *Follower) Run(ctx context.Context) error {
	if !f.started.CompareAndSwap(false, true) {
		return fmt.Errorf("follow: %w", ErrAlreadyRunning)
	}
	ch, err := f.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case data, ok := <-ch:
		if !ok {
			return ctx.Err()
		}
		f.apply(data)
	}

	if f.debounce <= 0 {
		for data := range ch {
			f.apply(data)
		}
		return ctx.Err()
	}
	return f.debounced(ctx, ch)
}

func (f *Follower) debounced(ctx context.Context, ch <-chan []byte) error {
	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)
	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case data, ok := <-ch:
			if !ok {
				if hasPending {
					f.apply(pending)
				}
				return ctx.Err()
			}
			pending = data
			hasPending = true

			if timer == nil {
				timer = f.clock.NewTimer(f.debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C():
				default:
				}
			}
			timer.Reset(f.debounce)

		case <-timerC:
			if hasPending {
				f.apply(pending)
				hasPending = false
			}
		}
	}
}

func (f *Follower) apply(data []byte) {
	if f.dispatch != nil {
		f.dispatch(func() { f.applyNow(data) })
		return
	}
	f.applyNow(data)
}

func (f *Follower) applyNow(data []byte) {
	if err := f.load(data); err != nil {
		f.fail(err)
		return
	}
	f.reloads.Add(1)

	refreshed := 0
	var failure error
	for _, b := range f.bindings {
		err := b.Refresh()
		switch {
		case err == nil:
			refreshed++
		case errors.Is(err, ErrDisposed):
		default:
			failure = err
			f.fail(err)
		}
	}
	if failure == nil {
		f.lastError.Store(nil)
	}
	emit(SourceReloaded, KeyRefreshed.Field(refreshed))
}

func (f *Follower) fail(err error) {
	f.lastError.Store(&err)
	f.history.push(err)
	emit(SourceFailed, KeyError.Field(err.Error()))
}

// Follow runs a Follower without debounce. It blocks until the watcher's
// channel closes or ctx is done.
func Follow(ctx context.Context, w Watcher, load func([]byte) error, bindings ...Refresher) error {
	return NewFollower(w, load, bindings...).Run(ctx)
}

var (
	_ Refresher = BoundInput(nil)
	_ Refresher = (*InputBinding[float64, float64])(nil)
)
