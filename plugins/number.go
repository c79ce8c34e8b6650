package plugins

import (
	"math"

	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/controls"
)

// NumberParams are the params understood by NumberInput.
type NumberParams struct {
	View    string
	Min     *float64
	Max     *float64
	Step    *float64
	Digits  *int
	Options []tweak.ListItem[float64]
	// Integer is set when the initial value has an integer kind. It implies
	// a step of 1 when no step is given.
	Integer bool
}

// NumberInput binds numbers. It renders a selector when options are given,
// a slider when both bounds are, and a text field otherwise.
var NumberInput = tweak.InputBindingPlugin[float64, float64, NumberParams]{
	ID: "input-number",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[float64, NumberParams], bool) {
		var none tweak.Accepted[float64, NumberParams]
		f, ok := toFloat(value)
		if !ok {
			return none, false
		}
		if !viewIn(params.View, tweak.ViewText, tweak.ViewSlider, tweak.ViewList) {
			return none, false
		}
		items, ok := listItems(params.Options, toFloat)
		if !ok {
			return none, false
		}
		return tweak.Accepted[float64, NumberParams]{
			Initial: f,
			Params: NumberParams{
				View:    params.View,
				Min:     params.Min,
				Max:     params.Max,
				Step:    params.Step,
				Digits:  params.Digits,
				Options: items,
				Integer: isInteger(value),
			},
		}, true
	},
	Binding: tweak.InputBindingSpec[float64, float64, NumberParams]{
		Reader: func(tweak.BindingArgs[float64, NumberParams]) func(any) float64 {
			return readFloat
		},
		Writer: func(tweak.BindingArgs[float64, NumberParams]) func(float64) float64 {
			return identity[float64]
		},
		Constraint: func(args tweak.BindingArgs[float64, NumberParams]) tweak.Constraint[float64] {
			return NumberConstraint(args.Params)
		},
	},
	Controller: func(args tweak.ControllerArgs[float64, NumberParams]) tweak.Controller {
		return numberController(args)
	},
}

// NumberConstraint builds the constraint chain for p: step, then range,
// then options. Range bounds are pulled inward onto the step grid so the
// chain settles on a grid value.
func NumberConstraint(p NumberParams) tweak.Constraint[float64] {
	var cs []tweak.Constraint[float64]
	step := 0.0
	switch {
	case p.Step != nil:
		step = *p.Step
	case p.Integer:
		step = 1
	}
	if step != 0 {
		cs = append(cs, tweak.NewStep(step))
	}
	lo, hi := p.Min, p.Max
	if step > 0 {
		lo, hi = snapBounds(lo, hi, step)
	}
	switch {
	case lo != nil && hi != nil:
		cs = append(cs, tweak.NewDefiniteRange(*lo, *hi))
	case lo != nil:
		cs = append(cs, tweak.NewMinRange(*lo))
	case hi != nil:
		cs = append(cs, tweak.NewMaxRange(*hi))
	}
	if len(p.Options) > 0 {
		cs = append(cs, tweak.NewList(p.Options...))
	}
	return tweak.NewComposite(cs...)
}

// gridTolerance absorbs float error when testing a bound against the grid.
const gridTolerance = 1e-9

// snapBounds rounds min up and max down onto multiples of step. Bounds that
// would cross keep their given values.
func snapBounds(lo, hi *float64, step float64) (*float64, *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		lo, hi = hi, lo
	}
	snap := func(v float64, round func(float64) float64) float64 {
		q := v / step
		if math.Abs(q-math.Round(q)) < gridTolerance {
			return v
		}
		return round(q) * step
	}
	var sl, sh *float64
	if lo != nil {
		v := snap(*lo, math.Ceil)
		sl = &v
	}
	if hi != nil {
		v := snap(*hi, math.Floor)
		sh = &v
	}
	if sl != nil && sh != nil && *sl > *sh {
		return lo, hi
	}
	return sl, sh
}

func isInteger(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

func numberController(args tweak.ControllerArgs[float64, NumberParams]) tweak.Controller {
	c := args.Value.Constraint()

	if list, ok := tweak.FindConstraint[*tweak.List[float64]](c); ok {
		return controls.NewList(args.Value, args.Document.CreateView(tweak.KindList), list)
	}

	var cfg controls.NumberTextConfig
	if args.Params.Digits != nil {
		cfg.Formatter = controls.NumberFormatter(*args.Params.Digits)
	}
	if lo, hi, ok := controls.SliderBounds(c); ok && args.Params.View != tweak.ViewText {
		return controls.NewSliderText(args.Value, args.Document.CreateView(tweak.KindSlider), lo, hi, cfg)
	}
	return controls.NewNumberText(args.Value, args.Document.CreateView(tweak.KindText), cfg)
}
