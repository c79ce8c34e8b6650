package plugins

import (
	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/controls"
)

// BooleanParams are the params understood by BooleanInput.
type BooleanParams struct {
	Options []tweak.ListItem[bool]
}

// BooleanInput binds booleans to a checkbox, or to a selector when options
// are given.
var BooleanInput = tweak.InputBindingPlugin[bool, bool, BooleanParams]{
	ID: "input-bool",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[bool, BooleanParams], bool) {
		var none tweak.Accepted[bool, BooleanParams]
		b, ok := value.(bool)
		if !ok || !viewIn(params.View, tweak.ViewCheckbox, tweak.ViewList) {
			return none, false
		}
		items, ok := listItems(params.Options, func(v any) (bool, bool) {
			b, ok := v.(bool)
			return b, ok
		})
		if !ok {
			return none, false
		}
		return tweak.Accepted[bool, BooleanParams]{Initial: b, Params: BooleanParams{Options: items}}, true
	},
	Binding: tweak.InputBindingSpec[bool, bool, BooleanParams]{
		Reader: func(tweak.BindingArgs[bool, BooleanParams]) func(any) bool {
			return readBool
		},
		Writer: func(tweak.BindingArgs[bool, BooleanParams]) func(bool) bool {
			return identity[bool]
		},
		Constraint: func(args tweak.BindingArgs[bool, BooleanParams]) tweak.Constraint[bool] {
			if len(args.Params.Options) == 0 {
				return nil
			}
			return tweak.NewComposite[bool](tweak.NewList(args.Params.Options...))
		},
	},
	Controller: func(args tweak.ControllerArgs[bool, BooleanParams]) tweak.Controller {
		if list, ok := tweak.FindConstraint[*tweak.List[bool]](args.Value.Constraint()); ok {
			return controls.NewList(args.Value, args.Document.CreateView(tweak.KindList), list)
		}
		return controls.NewCheckbox(args.Value, args.Document.CreateView(tweak.KindCheckbox))
	},
}
