/*
Package tweak binds mutable properties of host objects to live-editable
controls.

A property is exposed through a Target, wrapped in a constrained Value and
kept in sync by an InputBinding. Controllers render the Value into a View
the host creates through a Document, and turn user input back into value
assignments. Every assignment passes the Value's gate: the constraint runs
first, an equal result is dropped, and only then is the change emitted,
written to the target and rendered.

# Values and Constraints

	speed := tweak.NewValue(0.0, tweak.WithConstraint[float64](
	    tweak.NewComposite[float64](
	        tweak.NewStep(0.5),
	        tweak.NewRange(0.0, 10.0),
	    ),
	))
	speed.SetRawValue(12.3) // stored as 10, one change event

Constraints compose left to right. FindConstraint digs a specific kind out
of a composite tree, which is how the built-in plugins pick a slider over a
text field.

# Bindings

	obj := map[string]any{"speed": 5.0}
	binding := tweak.NewInputBinding(tweak.NewMapTarget(obj, "speed"), speed,
	    func(v any) float64 { f, _ := v.(float64); return f },
	    func(v float64) float64 { return v },
	)
	defer binding.Dispose()

The binding reads the target once when it is created and writes it on every
change of the Value. Refresh re-reads a target that was changed from
outside. MonitorBinding polls read-only targets on an interval and keeps a
buffer of recent readings.

# Plugins

A Registry holds input and monitor plugins and binds a target with the
first plugin that accepts its value and Params. The plugins package
registers the built-in set:

	reg, err := plugins.NewRegistry(tweak.DefaultConfig())
	input, err := reg.CreateInput(doc, target, tweak.Params{
	    Min: tweak.Float(0), Max: tweak.Float(10),
	})

# Stores and Followers

A Store keeps a document of named values behind a Codec and a Sink, and
hands out a Target per key. A Follower applies every document a Watcher
emits to the store and refreshes the bindings, so edits made outside the
process reach the controls. pkg/file follows a JSON or YAML file; the other
pkg/ providers follow Redis, NATS, etcd, Consul, ZooKeeper and PostgreSQL.

# Observability

tweak emits capitan signals for binding, monitor, plugin, source and store
events. Hook them to log or audit:

	capitan.Hook(tweak.SourceFailed, func(_ context.Context, e *capitan.Event) {
	    msg, _ := tweak.KeyError.From(e)
	    log.Printf("reload rejected: %s", msg)
	})
*/
package tweak
