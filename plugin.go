package tweak

import (
	"fmt"
	"sync"
)

// Accepted is the result of a plugin's Accept: the target's initial value
// narrowed to the plugin's external type, and the params narrowed to the
// plugin's own parameter type.
type Accepted[Ex, P any] struct {
	Initial Ex
	Params  P
}

// BindingArgs are passed to the functions of a binding descriptor.
type BindingArgs[Ex, P any] struct {
	Target  Target
	Initial Ex
	Params  P
}

// InputBindingSpec describes how an accepted target is bound.
type InputBindingSpec[In, Ex, P any] struct {
	// Reader converts the external value to the internal model. Required.
	Reader func(args BindingArgs[Ex, P]) func(any) In
	// Writer converts the internal model back to the external form. Required.
	Writer func(args BindingArgs[Ex, P]) func(In) Ex
	// Equals compares internal values. Optional; defaults to ==.
	Equals func(a, b In) bool
	// Constraint builds the value's constraint. Optional.
	Constraint func(args BindingArgs[Ex, P]) Constraint[In]
}

// ControllerArgs are passed to a plugin's controller factory.
type ControllerArgs[In, P any] struct {
	Document Document
	Value    *Value[In]
	Params   P
	Config   Config
}

// InputBindingPlugin binds targets whose external values are of type Ex to
// an internal Value[In], edited by a controller configured by params P.
type InputBindingPlugin[In, Ex, P any] struct {
	ID string
	// Accept decides whether the plugin handles value with params. It must be
	// pure and report false on any mismatch.
	Accept     func(value any, params Params) (Accepted[Ex, P], bool)
	Binding    InputBindingSpec[In, Ex, P]
	Controller func(args ControllerArgs[In, P]) Controller
}

// MonitorBindingSpec describes how an accepted target is read.
type MonitorBindingSpec[T comparable, P any] struct {
	// Reader converts each reading to the monitored type. Required.
	Reader func(args BindingArgs[T, P]) func(any) T
}

// MonitorControllerArgs are passed to a monitor plugin's controller factory.
type MonitorControllerArgs[T comparable, P any] struct {
	Document   Document
	Value      *Value[[]T]
	Params     P
	Config     Config
	BufferSize int
}

// MonitorBindingPlugin displays periodic readings of targets whose values are
// of type T.
type MonitorBindingPlugin[T comparable, P any] struct {
	ID         string
	Accept     func(value any, params Params) (Accepted[T, P], bool)
	Binding    MonitorBindingSpec[T, P]
	Controller func(args MonitorControllerArgs[T, P]) Controller
	// BufferSize picks the default buffer size when params do not set one.
	// Optional; defaults to Config.LogBufferSize.
	BufferSize func(cfg Config) int
}

type inputPlugin interface {
	pluginID() string
	create(doc Document, target Target, params Params, cfg Config) (BoundInput, bool)
}

type monitorPlugin interface {
	pluginID() string
	create(doc Document, target Target, params Params, cfg Config) (BoundMonitor, bool)
}

func (p InputBindingPlugin[In, Ex, P]) pluginID() string { return p.ID }

func (p InputBindingPlugin[In, Ex, P]) validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidPlugin)
	case p.Accept == nil:
		return fmt.Errorf("%w: %s: nil Accept", ErrInvalidPlugin, p.ID)
	case p.Binding.Reader == nil || p.Binding.Writer == nil:
		return fmt.Errorf("%w: %s: binding needs Reader and Writer", ErrInvalidPlugin, p.ID)
	case p.Controller == nil:
		return fmt.Errorf("%w: %s: nil Controller", ErrInvalidPlugin, p.ID)
	}
	return nil
}

func (p InputBindingPlugin[In, Ex, P]) create(doc Document, target Target, params Params, cfg Config) (BoundInput, bool) {
	acc, ok := safeAccept(p.Accept, target.Read(), params)
	if !ok {
		return nil, false
	}
	args := BindingArgs[Ex, P]{Target: target, Initial: acc.Initial, Params: acc.Params}

	var opts []ValueOption[In]
	if p.Binding.Constraint != nil {
		if c := p.Binding.Constraint(args); c != nil {
			opts = append(opts, WithConstraint(c))
		}
	}
	if p.Binding.Equals != nil {
		opts = append(opts, WithEquals(p.Binding.Equals))
	}
	var zero In
	value := NewValue(zero, opts...)
	if cfg.PropagatePanics {
		value.Emitter().Propagate()
	}

	binding := NewInputBinding(target, value, p.Binding.Reader(args), p.Binding.Writer(args))
	controller := p.Controller(ControllerArgs[In, P]{
		Document: doc,
		Value:    value,
		Params:   acc.Params,
		Config:   cfg,
	})
	bc := NewInputBindingController(params.Label, binding, controller)
	bc.pluginID = p.ID
	return bc, true
}

func (p MonitorBindingPlugin[T, P]) pluginID() string { return p.ID }

func (p MonitorBindingPlugin[T, P]) validate() error {
	switch {
	case p.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidPlugin)
	case p.Accept == nil:
		return fmt.Errorf("%w: %s: nil Accept", ErrInvalidPlugin, p.ID)
	case p.Binding.Reader == nil:
		return fmt.Errorf("%w: %s: binding needs Reader", ErrInvalidPlugin, p.ID)
	case p.Controller == nil:
		return fmt.Errorf("%w: %s: nil Controller", ErrInvalidPlugin, p.ID)
	}
	return nil
}

func (p MonitorBindingPlugin[T, P]) create(doc Document, target Target, params Params, cfg Config) (BoundMonitor, bool) {
	acc, ok := safeAccept(p.Accept, target.Read(), params)
	if !ok {
		return nil, false
	}
	args := BindingArgs[T, P]{Target: target, Initial: acc.Initial, Params: acc.Params}

	size := params.BufferSize
	if size <= 0 {
		size = cfg.LogBufferSize
		if p.BufferSize != nil {
			size = p.BufferSize(cfg)
		}
	}
	interval := params.Interval
	if interval <= 0 {
		interval = cfg.MonitorInterval
	}

	binding := NewMonitorBinding(target, p.Binding.Reader(args)).
		BufferSize(size).
		Interval(interval)
	if cfg.PropagatePanics {
		binding.Value().Emitter().Propagate()
	}
	controller := p.Controller(MonitorControllerArgs[T, P]{
		Document:   doc,
		Value:      binding.Value(),
		Params:     acc.Params,
		Config:     cfg,
		BufferSize: size,
	})
	bc := NewMonitorBindingController(params.Label, binding, controller)
	bc.pluginID = p.ID
	return bc, true
}

// safeAccept treats a panicking Accept as a mismatch.
func safeAccept[Ex, P any](accept func(any, Params) (Accepted[Ex, P], bool), value any, params Params) (acc Accepted[Ex, P], ok bool) {
	defer func() {
		if recover() != nil {
			acc, ok = Accepted[Ex, P]{}, false
		}
	}()
	return accept(value, params)
}

// Registry holds plugins in registration order and selects the first one
// that accepts a target.
type Registry struct {
	cfg Config

	mu       sync.RWMutex
	inputs   []inputPlugin
	monitors []monitorPlugin
	ids      map[string]struct{}
}

// NewRegistry creates an empty Registry using cfg for defaults.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg, ids: make(map[string]struct{})}
}

// Config returns the registry configuration.
func (r *Registry) Config() Config {
	return r.cfg
}

// RegisterInput appends an input plugin. Plugins registered earlier are
// tried first, so register the most specific plugins first.
func RegisterInput[In, Ex, P any](r *Registry, p InputBindingPlugin[In, Ex, P]) error {
	if err := p.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(p.ID); err != nil {
		return err
	}
	r.inputs = append(r.inputs, p)
	return nil
}

// RegisterMonitor appends a monitor plugin.
func RegisterMonitor[T comparable, P any](r *Registry, p MonitorBindingPlugin[T, P]) error {
	if err := p.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(p.ID); err != nil {
		return err
	}
	r.monitors = append(r.monitors, p)
	return nil
}

func (r *Registry) claim(id string) error {
	if _, ok := r.ids[id]; ok {
		return fmt.Errorf("%w: duplicate id %q", ErrInvalidPlugin, id)
	}
	r.ids[id] = struct{}{}
	return nil
}

// InputPlugins returns the IDs of the input plugins in selection order.
func (r *Registry) InputPlugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.inputs))
	for i, p := range r.inputs {
		ids[i] = p.pluginID()
	}
	return ids
}

// MonitorPlugins returns the IDs of the monitor plugins in selection order.
func (r *Registry) MonitorPlugins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.monitors))
	for i, p := range r.monitors {
		ids[i] = p.pluginID()
	}
	return ids
}

// CreateInput binds target with the first input plugin that accepts it.
func (r *Registry) CreateInput(doc Document, target Target, params Params) (BoundInput, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	plugins := r.inputs
	r.mu.RUnlock()

	for _, p := range plugins {
		if bc, ok := p.create(doc, target, params, r.cfg); ok {
			emit(PluginSelected,
				KeyPlugin.Field(p.pluginID()),
				KeyTarget.Field(target.Key()),
				KeyKind.Field("input"),
			)
			return bc, nil
		}
	}
	emit(PluginUnmatched,
		KeyTarget.Field(target.Key()),
		KeyKind.Field("input"),
	)
	return nil, fmt.Errorf("input %q: %w", target.Key(), ErrNoPlugin)
}

// CreateMonitor binds target with the first monitor plugin that accepts it.
func (r *Registry) CreateMonitor(doc Document, target Target, params Params) (BoundMonitor, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	plugins := r.monitors
	r.mu.RUnlock()

	for _, p := range plugins {
		if bc, ok := p.create(doc, target, params, r.cfg); ok {
			emit(PluginSelected,
				KeyPlugin.Field(p.pluginID()),
				KeyTarget.Field(target.Key()),
				KeyKind.Field("monitor"),
			)
			return bc, nil
		}
	}
	emit(PluginUnmatched,
		KeyTarget.Field(target.Key()),
		KeyKind.Field("monitor"),
	)
	return nil, fmt.Errorf("monitor %q: %w", target.Key(), ErrNoPlugin)
}
