package controls

import (
	"math"

	"github.com/zoobzio/tweak"
)

// MonitorLog displays a monitor's buffered readings as text lines.
type MonitorLog[T any] struct {
	base[[]T]
	format func(T) string
}

// NewMonitorLog creates a MonitorLog and renders the current buffer.
func NewMonitorLog[T any](value *tweak.Value[[]T], view tweak.View, format func(T) string) *MonitorLog[T] {
	c := &MonitorLog[T]{format: format}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Render pushes the current buffer into the view.
func (c *MonitorLog[T]) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *MonitorLog[T]) render(buf []T) {
	lines := make([]string, len(buf))
	for i, v := range buf {
		lines[i] = c.format(v)
	}
	c.view.Render(tweak.LogState{Lines: lines})
}

// HandleInput ignores input; monitors are read-only.
func (c *MonitorLog[T]) HandleInput(tweak.Input) {
	c.live("handle input")
}

// MonitorGraph displays numeric readings as points scaled to [lo, hi].
type MonitorGraph struct {
	base[[]float64]
	min, max float64
	format   func(float64) string
}

// NewMonitorGraph creates a MonitorGraph and renders the current buffer.
func NewMonitorGraph(value *tweak.Value[[]float64], view tweak.View, lo, hi float64, format func(float64) string) *MonitorGraph {
	if hi < lo {
		lo, hi = hi, lo
	}
	c := &MonitorGraph{min: lo, max: hi, format: format}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Render pushes the current buffer into the view.
func (c *MonitorGraph) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *MonitorGraph) render(buf []float64) {
	points := make([]float64, len(buf))
	for i, v := range buf {
		points[i] = c.scale(v)
	}
	var text string
	if len(buf) > 0 {
		text = c.format(buf[len(buf)-1])
	}
	c.view.Render(tweak.GraphState{Points: points, Text: text})
}

func (c *MonitorGraph) scale(v float64) float64 {
	if c.max == c.min || math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, (v-c.min)/(c.max-c.min)))
}

// HandleInput ignores input; monitors are read-only.
func (c *MonitorGraph) HandleInput(tweak.Input) {
	c.live("handle input")
}

var (
	_ tweak.Controller = (*MonitorLog[float64])(nil)
	_ tweak.Controller = (*MonitorGraph)(nil)
)
