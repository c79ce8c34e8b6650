package controls

import "github.com/zoobzio/tweak"

// Text edits a value through free text. Parse failures keep the stored
// value.
type Text[T any] struct {
	base[T]
	format func(T) string
	parse  func(string) (T, bool)
}

// NewText creates a Text and renders the current value.
func NewText[T any](value *tweak.Value[T], view tweak.View, format func(T) string, parse func(string) (T, bool)) *Text[T] {
	c := &Text[T]{format: format, parse: parse}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// NewStringText creates a Text over a string value.
func NewStringText(value *tweak.Value[string], view tweak.View) *Text[string] {
	return NewText(value, view,
		func(s string) string { return s },
		func(s string) (string, bool) { return s, true },
	)
}

// Render pushes the current value into the view.
func (c *Text[T]) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *Text[T]) render(v T) {
	c.view.Render(tweak.TextState{Text: c.format(v)})
}

// HandleInput applies TextInput.
func (c *Text[T]) HandleInput(in tweak.Input) {
	c.live("handle input")
	t, ok := in.(tweak.TextInput)
	if !ok {
		return
	}
	v, ok := c.parse(t.Text)
	if !ok {
		c.Render()
		return
	}
	c.assign(v, tweak.ChangeOptions{Last: true}, c.render)
}

var _ tweak.Controller = (*Text[string])(nil)
