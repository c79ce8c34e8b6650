package controls

import (
	"github.com/zoobzio/tweak"
	"github.com/zoobzio/tweak/color"
)

// ColorSwatchText edits a color through text in any supported notation and
// renders a swatch next to the formatted value.
type ColorSwatchText struct {
	base[color.Color]
	format func(color.Color) string
	alpha  bool
}

// NewColorSwatchText creates a ColorSwatchText and renders the current
// value. Without alpha support, parsed colors are made opaque.
func NewColorSwatchText(value *tweak.Value[color.Color], view tweak.View, format func(color.Color) string, alpha bool) *ColorSwatchText {
	c := &ColorSwatchText{format: format, alpha: alpha}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Render pushes the current value into the view.
func (c *ColorSwatchText) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *ColorSwatchText) render(v color.Color) {
	c.view.Render(tweak.ColorState{Color: v, Text: c.format(v), Alpha: c.alpha})
}

// HandleInput applies TextInput.
func (c *ColorSwatchText) HandleInput(in tweak.Input) {
	c.live("handle input")
	t, ok := in.(tweak.TextInput)
	if !ok {
		return
	}
	v, ok := color.Parse(t.Text)
	if !ok {
		c.Render()
		return
	}
	if !c.alpha {
		v = v.Opaque()
	}
	c.assign(v, tweak.ChangeOptions{Last: true}, c.render)
}

var _ tweak.Controller = (*ColorSwatchText)(nil)
