package tweak

import (
	"testing"

	"github.com/zoobzio/capitan"
)

func TestSignalNames(t *testing.T) {
	tests := []struct {
		signal capitan.Signal
		want   string
	}{
		{BindingCreated, "tweak.binding.created"},
		{BindingWritten, "tweak.binding.written"},
		{BindingRefreshed, "tweak.binding.refreshed"},
		{BindingDisposed, "tweak.binding.disposed"},
		{MonitorStarted, "tweak.monitor.started"},
		{MonitorTicked, "tweak.monitor.ticked"},
		{MonitorStopped, "tweak.monitor.stopped"},
		{PluginSelected, "tweak.plugin.selected"},
		{PluginUnmatched, "tweak.plugin.unmatched"},
		{HandlerPanicked, "tweak.emitter.handler.panicked"},
		{SourceReloaded, "tweak.source.reloaded"},
		{SourceFailed, "tweak.source.failed"},
		{WatchSkipped, "tweak.watch.skipped"},
		{WatchStopped, "tweak.watch.stopped"},
		{StoreSaved, "tweak.store.saved"},
		{StoreFailed, "tweak.store.failed"},
	}
	for _, tt := range tests {
		if tt.signal.Name() != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, tt.signal.Name())
		}
	}
}
