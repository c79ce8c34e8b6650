package tweak

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key binding events.
type MetricsProvider interface {
	// OnTargetWrite is called after a value change is written to a target.
	OnTargetWrite(key string)

	// OnRefresh is called after a target is re-read into its value.
	OnRefresh(key string)

	// OnMonitorTick is called after each monitor read.
	// Duration is the time taken to read and store the sample.
	OnMonitorTick(key string, duration time.Duration)

	// OnDispose is called once when a binding is disposed.
	OnDispose(key string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnTargetWrite(_ string)                  {}
func (NoOpMetricsProvider) OnRefresh(_ string)                      {}
func (NoOpMetricsProvider) OnMonitorTick(_ string, _ time.Duration) {}
func (NoOpMetricsProvider) OnDispose(_ string)                      {}
