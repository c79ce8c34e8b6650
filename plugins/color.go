package plugins

import (
	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/color"
	"github.com/zoobzio/tweak/controls"
)

// ColorParams are the params understood by the color inputs.
type ColorParams struct {
	// Alpha reports whether the external form carries an alpha component.
	Alpha bool
	// Notation is the string notation of a string color.
	Notation color.Notation
}

func (p ColorParams) format() func(color.Color) string {
	if p.Notation != 0 {
		return color.Stringifier(p.Notation)
	}
	if p.Alpha {
		return color.Stringifier(color.NotationHexRGBA)
	}
	return color.Stringifier(color.NotationHexRGB)
}

func colorConstraint[Ex any](args tweak.BindingArgs[Ex, ColorParams]) tweak.Constraint[color.Color] {
	return color.Components{Alpha: args.Params.Alpha}
}

func colorController(args tweak.ControllerArgs[color.Color, ColorParams]) tweak.Controller {
	return controls.NewColorSwatchText(
		args.Value,
		args.Document.CreateView(tweak.KindColor),
		args.Params.format(),
		args.Params.Alpha,
	)
}

// ColorNumberInput binds packed 0xRRGGBB numbers, or 0xRRGGBBAA with
// Params.Alpha, when the view is "color".
var ColorNumberInput = tweak.InputBindingPlugin[color.Color, float64, ColorParams]{
	ID: "input-color-number",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[float64, ColorParams], bool) {
		f, ok := toFloat(value)
		if !ok || params.View != tweak.ViewColor {
			return tweak.Accepted[float64, ColorParams]{}, false
		}
		return tweak.Accepted[float64, ColorParams]{Initial: f, Params: ColorParams{Alpha: params.Alpha}}, true
	},
	Binding: tweak.InputBindingSpec[color.Color, float64, ColorParams]{
		Reader: func(args tweak.BindingArgs[float64, ColorParams]) func(any) color.Color {
			if args.Params.Alpha {
				return func(v any) color.Color { return color.FromRGBANumber(readFloat(v)) }
			}
			return func(v any) color.Color { return color.FromRGBNumber(readFloat(v)) }
		},
		Writer: func(args tweak.BindingArgs[float64, ColorParams]) func(color.Color) float64 {
			if args.Params.Alpha {
				return color.Color.RGBANumber
			}
			return color.Color.RGBNumber
		},
		Equals:     color.Equals,
		Constraint: colorConstraint[float64],
	},
	Controller: colorController,
}

// ColorStringInput binds strings written in a recognized color notation. The
// notation of the initial value is kept when writing back.
var ColorStringInput = tweak.InputBindingPlugin[color.Color, string, ColorParams]{
	ID: "input-color-string",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[string, ColorParams], bool) {
		var none tweak.Accepted[string, ColorParams]
		s, ok := value.(string)
		if !ok || !viewIn(params.View, tweak.ViewColor) {
			return none, false
		}
		n, ok := color.DetectNotation(s)
		if !ok {
			return none, false
		}
		return tweak.Accepted[string, ColorParams]{
			Initial: s,
			Params:  ColorParams{Alpha: n.HasAlpha(), Notation: n},
		}, true
	},
	Binding: tweak.InputBindingSpec[color.Color, string, ColorParams]{
		Reader: func(tweak.BindingArgs[string, ColorParams]) func(any) color.Color {
			return func(v any) color.Color {
				c, ok := color.Parse(readString(v))
				if !ok {
					return color.New(0, 0, 0)
				}
				return c
			}
		},
		Writer: func(args tweak.BindingArgs[string, ColorParams]) func(color.Color) string {
			return color.Stringifier(args.Params.Notation)
		},
		Equals:     color.Equals,
		Constraint: colorConstraint[string],
	},
	Controller: colorController,
}

// ColorObjectInput binds {r, g, b} and {r, g, b, a} objects.
var ColorObjectInput = tweak.InputBindingPlugin[color.Color, map[string]any, ColorParams]{
	ID: "input-color-object",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[map[string]any, ColorParams], bool) {
		var none tweak.Accepted[map[string]any, ColorParams]
		if !color.IsObject(value) || !viewIn(params.View, tweak.ViewColor) {
			return none, false
		}
		return tweak.Accepted[map[string]any, ColorParams]{
			Initial: value.(map[string]any),
			Params:  ColorParams{Alpha: color.IsRGBAObject(value)},
		}, true
	},
	Binding: tweak.InputBindingSpec[color.Color, map[string]any, ColorParams]{
		Reader: func(tweak.BindingArgs[map[string]any, ColorParams]) func(any) color.Color {
			return func(v any) color.Color {
				c, ok := color.FromObject(v)
				if !ok {
					return color.New(0, 0, 0)
				}
				return c
			}
		},
		Writer: func(args tweak.BindingArgs[map[string]any, ColorParams]) func(color.Color) map[string]any {
			alpha := args.Params.Alpha
			return func(c color.Color) map[string]any { return c.Object(alpha) }
		},
		Equals:     color.Equals,
		Constraint: colorConstraint[map[string]any],
	},
	Controller: colorController,
}
