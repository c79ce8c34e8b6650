package tweak

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Binding lifecycle signals.
var (
	// BindingCreated is emitted when an input binding is attached to a target.
	BindingCreated = capitan.NewSignal(
		"tweak.binding.created",
		"Input binding attached to target",
	)

	// BindingWritten is emitted when a value change is pushed to the target.
	BindingWritten = capitan.NewSignal(
		"tweak.binding.written",
		"Value written to target",
	)

	// BindingRefreshed is emitted when the target is re-read into the value.
	BindingRefreshed = capitan.NewSignal(
		"tweak.binding.refreshed",
		"Target re-read into value",
	)

	// BindingDisposed is emitted when a binding detaches from its value.
	BindingDisposed = capitan.NewSignal(
		"tweak.binding.disposed",
		"Binding disposed",
	)
)

// Monitor signals.
var (
	// MonitorStarted is emitted when a monitor begins polling its target.
	MonitorStarted = capitan.NewSignal(
		"tweak.monitor.started",
		"Monitor polling started",
	)

	// MonitorTicked is emitted after each monitor read.
	MonitorTicked = capitan.NewSignal(
		"tweak.monitor.ticked",
		"Monitor read target",
	)

	// MonitorStopped is emitted when a monitor stops polling.
	MonitorStopped = capitan.NewSignal(
		"tweak.monitor.stopped",
		"Monitor polling stopped",
	)
)

// Plugin selection signals.
var (
	// PluginSelected is emitted when a plugin accepts a target.
	PluginSelected = capitan.NewSignal(
		"tweak.plugin.selected",
		"Plugin accepted target",
	)

	// PluginUnmatched is emitted when no plugin accepts a target.
	PluginUnmatched = capitan.NewSignal(
		"tweak.plugin.unmatched",
		"No plugin accepted target",
	)
)

// Emitter signals.
var (
	// HandlerPanicked is emitted when an isolated emitter handler panics.
	HandlerPanicked = capitan.NewSignal(
		"tweak.emitter.handler.panicked",
		"Emitter handler panicked",
	)
)

// Source signals.
var (
	// SourceReloaded is emitted after a followed document is applied and its
	// bindings refreshed.
	SourceReloaded = capitan.NewSignal(
		"tweak.source.reloaded",
		"Source document applied",
	)

	// SourceFailed is emitted when a followed document cannot be applied or a
	// binding fails to refresh.
	SourceFailed = capitan.NewSignal(
		"tweak.source.failed",
		"Source document rejected",
	)

	// WatchSkipped is emitted by remote watchers when a change event is
	// dropped because the document could not be read.
	WatchSkipped = capitan.NewSignal(
		"tweak.watch.skipped",
		"Source change event skipped",
	)

	// WatchStopped is emitted by remote watchers when the source connection
	// fails and the watch ends before its context.
	WatchStopped = capitan.NewSignal(
		"tweak.watch.stopped",
		"Source watch ended on error",
	)
)

// Store signals.
var (
	// StoreSaved is emitted after a store saves its document to its sink.
	StoreSaved = capitan.NewSignal(
		"tweak.store.saved",
		"Parameter document saved",
	)

	// StoreFailed is emitted when a target write cannot be saved.
	StoreFailed = capitan.NewSignal(
		"tweak.store.failed",
		"Parameter document save failed",
	)
)

// emit reports a signal. Engine operations are synchronous and carry no
// request context of their own.
func emit(sig capitan.Signal, fields ...capitan.Field) {
	capitan.Emit(context.Background(), sig, fields...)
}
