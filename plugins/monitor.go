package plugins

import (
	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/controls"
)

// Default graph scale when params give no bounds.
const (
	DefaultGraphMin = 0.0
	DefaultGraphMax = 100.0
)

// GraphParams are the params understood by NumberGraphMonitor.
type GraphParams struct {
	Min, Max float64
	Digits   int
}

// LogParams are the params understood by the log monitors.
type LogParams struct {
	Digits int
}

func digits(p tweak.Params) int {
	if p.Digits != nil {
		return *p.Digits
	}
	return 2
}

// NumberGraphMonitor plots numbers when the view is "graph".
var NumberGraphMonitor = tweak.MonitorBindingPlugin[float64, GraphParams]{
	ID: "monitor-number-graph",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[float64, GraphParams], bool) {
		f, ok := toFloat(value)
		if !ok || params.View != tweak.ViewGraph {
			return tweak.Accepted[float64, GraphParams]{}, false
		}
		p := GraphParams{Min: DefaultGraphMin, Max: DefaultGraphMax, Digits: digits(params)}
		if params.Min != nil {
			p.Min = *params.Min
		}
		if params.Max != nil {
			p.Max = *params.Max
		}
		return tweak.Accepted[float64, GraphParams]{Initial: f, Params: p}, true
	},
	Binding: tweak.MonitorBindingSpec[float64, GraphParams]{
		Reader: func(tweak.BindingArgs[float64, GraphParams]) func(any) float64 {
			return readFloat
		},
	},
	Controller: func(args tweak.MonitorControllerArgs[float64, GraphParams]) tweak.Controller {
		return controls.NewMonitorGraph(
			args.Value,
			args.Document.CreateView(tweak.KindGraph),
			args.Params.Min,
			args.Params.Max,
			controls.NumberFormatter(args.Params.Digits),
		)
	},
	BufferSize: func(cfg tweak.Config) int {
		return cfg.GraphBufferSize
	},
}

// NumberMonitor logs numbers.
var NumberMonitor = tweak.MonitorBindingPlugin[float64, LogParams]{
	ID: "monitor-number",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[float64, LogParams], bool) {
		f, ok := toFloat(value)
		if !ok || !viewIn(params.View, tweak.ViewLog, tweak.ViewText) {
			return tweak.Accepted[float64, LogParams]{}, false
		}
		return tweak.Accepted[float64, LogParams]{Initial: f, Params: LogParams{Digits: digits(params)}}, true
	},
	Binding: tweak.MonitorBindingSpec[float64, LogParams]{
		Reader: func(tweak.BindingArgs[float64, LogParams]) func(any) float64 {
			return readFloat
		},
	},
	Controller: func(args tweak.MonitorControllerArgs[float64, LogParams]) tweak.Controller {
		return controls.NewMonitorLog(
			args.Value,
			args.Document.CreateView(tweak.KindLog),
			controls.NumberFormatter(args.Params.Digits),
		)
	},
}

// StringMonitor logs strings.
var StringMonitor = tweak.MonitorBindingPlugin[string, LogParams]{
	ID: "monitor-string",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[string, LogParams], bool) {
		s, ok := value.(string)
		if !ok || !viewIn(params.View, tweak.ViewLog, tweak.ViewText) {
			return tweak.Accepted[string, LogParams]{}, false
		}
		return tweak.Accepted[string, LogParams]{Initial: s}, true
	},
	Binding: tweak.MonitorBindingSpec[string, LogParams]{
		Reader: func(tweak.BindingArgs[string, LogParams]) func(any) string {
			return readString
		},
	},
	Controller: func(args tweak.MonitorControllerArgs[string, LogParams]) tweak.Controller {
		return controls.NewMonitorLog(args.Value, args.Document.CreateView(tweak.KindLog), identity[string])
	},
}

// BooleanMonitor logs booleans.
var BooleanMonitor = tweak.MonitorBindingPlugin[bool, LogParams]{
	ID: "monitor-bool",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[bool, LogParams], bool) {
		b, ok := value.(bool)
		if !ok || !viewIn(params.View, tweak.ViewLog, tweak.ViewText) {
			return tweak.Accepted[bool, LogParams]{}, false
		}
		return tweak.Accepted[bool, LogParams]{Initial: b}, true
	},
	Binding: tweak.MonitorBindingSpec[bool, LogParams]{
		Reader: func(tweak.BindingArgs[bool, LogParams]) func(any) bool {
			return readBool
		},
	},
	Controller: func(args tweak.MonitorControllerArgs[bool, LogParams]) tweak.Controller {
		return controls.NewMonitorLog(args.Value, args.Document.CreateView(tweak.KindLog), controls.BoolToString)
	},
}
