package tweak

import "github.com/zoobzio/capitan"

// Field keys for tweak events.
var (
	// KeyBindingID identifies a binding or monitor instance.
	KeyBindingID = capitan.NewStringKey("binding_id")

	// KeyTarget is the key of the bound target property.
	KeyTarget = capitan.NewStringKey("target")

	// KeyPlugin is the ID of the selected plugin.
	KeyPlugin = capitan.NewStringKey("plugin")

	// KeyKind distinguishes input and monitor bindings.
	KeyKind = capitan.NewStringKey("kind")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyEvent is the emitter event name.
	KeyEvent = capitan.NewStringKey("event")

	// KeyInterval is the monitor polling interval.
	KeyInterval = capitan.NewDurationKey("interval")

	// KeyBufferSize is the monitor buffer size.
	KeyBufferSize = capitan.NewIntKey("buffer_size")

	// KeyStore is the name of a parameter store.
	KeyStore = capitan.NewStringKey("store")

	// KeyRefreshed counts the bindings refreshed after a source reload.
	KeyRefreshed = capitan.NewIntKey("refreshed")
)
