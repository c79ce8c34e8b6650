package controls

import "github.com/zoobzio/tweak"

// Checkbox edits a boolean.
type Checkbox struct {
	base[bool]
}

// NewCheckbox creates a Checkbox and renders the current value.
func NewCheckbox(value *tweak.Value[bool], view tweak.View) *Checkbox {
	c := &Checkbox{}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Render pushes the current value into the view.
func (c *Checkbox) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *Checkbox) render(v bool) {
	c.view.Render(tweak.CheckboxState{Checked: v})
}

// HandleInput applies ToggleInput.
func (c *Checkbox) HandleInput(in tweak.Input) {
	c.live("handle input")
	if t, ok := in.(tweak.ToggleInput); ok {
		c.assign(t.Checked, tweak.ChangeOptions{Last: true}, c.render)
	}
}

var _ tweak.Controller = (*Checkbox)(nil)
