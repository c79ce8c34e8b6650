// Package plugins provides the built-in input and monitor plugins.
package plugins

import (
	"fmt"

	"github.com/zoobzio/tweak"
)

// Register installs the built-in plugins into r, most specific first: color
// inputs ahead of plain number and string inputs, graphs ahead of logs.
func Register(r *tweak.Registry) error {
	steps := []func() error{
		func() error { return tweak.RegisterInput(r, ColorNumberInput) },
		func() error { return tweak.RegisterInput(r, ColorStringInput) },
		func() error { return tweak.RegisterInput(r, ColorObjectInput) },
		func() error { return tweak.RegisterInput(r, NumberInput) },
		func() error { return tweak.RegisterInput(r, StringInput) },
		func() error { return tweak.RegisterInput(r, BooleanInput) },
		func() error { return tweak.RegisterMonitor(r, NumberGraphMonitor) },
		func() error { return tweak.RegisterMonitor(r, NumberMonitor) },
		func() error { return tweak.RegisterMonitor(r, StringMonitor) },
		func() error { return tweak.RegisterMonitor(r, BooleanMonitor) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("register built-in plugins: %w", err)
		}
	}
	return nil
}

// NewRegistry creates a Registry with the built-in plugins installed.
func NewRegistry(cfg tweak.Config) (*tweak.Registry, error) {
	r := tweak.NewRegistry(cfg)
	if err := Register(r); err != nil {
		return nil, err
	}
	return r, nil
}

// toFloat narrows the numeric kinds hosts commonly store.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func readFloat(v any) float64 {
	f, _ := toFloat(v)
	return f
}

func readBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func readString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// viewIn reports whether view is empty or one of allowed.
func viewIn(view string, allowed ...string) bool {
	if view == tweak.ViewDefault {
		return true
	}
	for _, a := range allowed {
		if view == a {
			return true
		}
	}
	return false
}

// listItems converts param options with conv. It fails if any option value
// does not convert.
func listItems[T any](opts []tweak.Option, conv func(any) (T, bool)) ([]tweak.ListItem[T], bool) {
	items := make([]tweak.ListItem[T], 0, len(opts))
	for _, o := range opts {
		v, ok := conv(o.Value)
		if !ok {
			return nil, false
		}
		items = append(items, tweak.ListItem[T]{Text: o.Text, Value: v})
	}
	return items, true
}

func identity[T any](v T) T { return v }
