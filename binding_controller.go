package tweak

import (
	"context"
	"fmt"
	"sync/atomic"
)

// BoundInput is a type-erased input binding paired with its controller, as
// returned by Registry.CreateInput.
type BoundInput interface {
	Label() string
	Key() string
	PluginID() string
	Controller() Controller
	// Refresh re-reads the target.
	Refresh() error
	// OnChange delivers changes in the target's external representation.
	OnChange(fn func(ChangeEvent[any])) *Handler
	Dispose()
	Disposed() bool
}

// BoundMonitor is a type-erased monitor binding paired with its controller,
// as returned by Registry.CreateMonitor.
type BoundMonitor interface {
	Label() string
	Key() string
	PluginID() string
	Controller() Controller
	Tick() error
	Run(ctx context.Context) error
	// OnUpdate delivers every fresh reading.
	OnUpdate(fn func(any)) *Handler
	Dispose()
	Disposed() bool
}

// InputBindingController pairs an InputBinding with the controller that
// edits its value.
type InputBindingController[In, Ex any] struct {
	label      string
	pluginID   string
	binding    *InputBinding[In, Ex]
	controller Controller
	disposed   atomic.Bool
}

// NewInputBindingController pairs binding and controller. An empty label
// falls back to the target key.
func NewInputBindingController[In, Ex any](label string, binding *InputBinding[In, Ex], controller Controller) *InputBindingController[In, Ex] {
	if label == "" {
		label = binding.Target().Key()
	}
	return &InputBindingController[In, Ex]{
		label:      label,
		binding:    binding,
		controller: controller,
	}
}

// Label returns the display label.
func (c *InputBindingController[In, Ex]) Label() string { return c.label }

// Key returns the target key.
func (c *InputBindingController[In, Ex]) Key() string { return c.binding.Target().Key() }

// PluginID returns the ID of the plugin that created the pair, if any.
func (c *InputBindingController[In, Ex]) PluginID() string { return c.pluginID }

// Binding returns the typed binding.
func (c *InputBindingController[In, Ex]) Binding() *InputBinding[In, Ex] { return c.binding }

// Controller returns the view controller.
func (c *InputBindingController[In, Ex]) Controller() Controller { return c.controller }

// Refresh re-reads the target.
func (c *InputBindingController[In, Ex]) Refresh() error {
	return c.binding.Refresh()
}

// OnChange delivers changes in external form.
func (c *InputBindingController[In, Ex]) OnChange(fn func(ChangeEvent[any])) *Handler {
	return c.binding.OnChange(func(ev ChangeEvent[Ex]) {
		fn(ChangeEvent[any]{Key: ev.Key, Value: ev.Value, Last: ev.Last})
	})
}

// Disposed reports whether Dispose has been called.
func (c *InputBindingController[In, Ex]) Disposed() bool {
	return c.disposed.Load()
}

// Dispose disposes the controller, then the binding.
func (c *InputBindingController[In, Ex]) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}
	c.controller.Dispose()
	c.binding.Dispose()
}

// MonitorBindingController pairs a MonitorBinding with the controller that
// displays its readings.
type MonitorBindingController[T comparable] struct {
	label      string
	pluginID   string
	binding    *MonitorBinding[T]
	controller Controller
	disposed   atomic.Bool
}

// NewMonitorBindingController pairs binding and controller. An empty label
// falls back to the target key.
func NewMonitorBindingController[T comparable](label string, binding *MonitorBinding[T], controller Controller) *MonitorBindingController[T] {
	if label == "" {
		label = binding.Target().Key()
	}
	return &MonitorBindingController[T]{
		label:      label,
		binding:    binding,
		controller: controller,
	}
}

// Label returns the display label.
func (c *MonitorBindingController[T]) Label() string { return c.label }

// Key returns the target key.
func (c *MonitorBindingController[T]) Key() string { return c.binding.Target().Key() }

// PluginID returns the ID of the plugin that created the pair, if any.
func (c *MonitorBindingController[T]) PluginID() string { return c.pluginID }

// Binding returns the typed binding.
func (c *MonitorBindingController[T]) Binding() *MonitorBinding[T] { return c.binding }

// Controller returns the view controller.
func (c *MonitorBindingController[T]) Controller() Controller { return c.controller }

// Tick reads the target once.
func (c *MonitorBindingController[T]) Tick() error {
	return c.binding.Tick()
}

// Run polls the target until ctx is done or the pair is disposed.
func (c *MonitorBindingController[T]) Run(ctx context.Context) error {
	return c.binding.Run(ctx)
}

// OnUpdate delivers every fresh reading. It panics with ErrDisposed once
// the pair is disposed.
func (c *MonitorBindingController[T]) OnUpdate(fn func(any)) *Handler {
	if c.disposed.Load() {
		panic(fmt.Errorf("on update %s: %w", c.Key(), ErrDisposed))
	}
	return c.binding.Emitter().On(EventUpdate, func(ev MonitorEvent[T]) {
		fn(ev.Reading)
	})
}

// Disposed reports whether Dispose has been called.
func (c *MonitorBindingController[T]) Disposed() bool {
	return c.disposed.Load()
}

// Dispose disposes the controller, then the binding.
func (c *MonitorBindingController[T]) Dispose() {
	if !c.disposed.CompareAndSwap(false, true) {
		return
	}
	c.controller.Dispose()
	c.binding.Dispose()
}

var (
	_ BoundInput   = (*InputBindingController[float64, float64])(nil)
	_ BoundMonitor = (*MonitorBindingController[float64])(nil)
)
