package plugins

import (
	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/controls"
)

// StringParams are the params understood by StringInput.
type StringParams struct {
	Options []tweak.ListItem[string]
}

// StringInput binds strings to a text field, or to a selector when options
// are given.
var StringInput = tweak.InputBindingPlugin[string, string, StringParams]{
	ID: "input-string",
	Accept: func(value any, params tweak.Params) (tweak.Accepted[string, StringParams], bool) {
		var none tweak.Accepted[string, StringParams]
		s, ok := value.(string)
		if !ok || !viewIn(params.View, tweak.ViewText, tweak.ViewList) {
			return none, false
		}
		items, ok := listItems(params.Options, func(v any) (string, bool) {
			s, ok := v.(string)
			return s, ok
		})
		if !ok {
			return none, false
		}
		return tweak.Accepted[string, StringParams]{Initial: s, Params: StringParams{Options: items}}, true
	},
	Binding: tweak.InputBindingSpec[string, string, StringParams]{
		Reader: func(tweak.BindingArgs[string, StringParams]) func(any) string {
			return readString
		},
		Writer: func(tweak.BindingArgs[string, StringParams]) func(string) string {
			return identity[string]
		},
		Constraint: func(args tweak.BindingArgs[string, StringParams]) tweak.Constraint[string] {
			if len(args.Params.Options) == 0 {
				return nil
			}
			return tweak.NewComposite[string](tweak.NewList(args.Params.Options...))
		},
	},
	Controller: func(args tweak.ControllerArgs[string, StringParams]) tweak.Controller {
		if list, ok := tweak.FindConstraint[*tweak.List[string]](args.Value.Constraint()); ok {
			return controls.NewList(args.Value, args.Document.CreateView(tweak.KindList), list)
		}
		return controls.NewStringText(args.Value, args.Document.CreateView(tweak.KindText))
	},
}
