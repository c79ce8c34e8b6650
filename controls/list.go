package controls

import "github.com/zoobzio/tweak"

// List selects a value among the options of a List constraint.
type List[T comparable] struct {
	base[T]
	list *tweak.List[T]
}

// NewList creates a List and renders the current value.
func NewList[T comparable](value *tweak.Value[T], view tweak.View, list *tweak.List[T]) *List[T] {
	c := &List[T]{list: list}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Options returns the selectable options.
func (c *List[T]) Options() []tweak.ListItem[T] {
	return c.list.Options
}

// Render pushes the current value into the view.
func (c *List[T]) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *List[T]) render(v T) {
	texts := make([]string, len(c.list.Options))
	for i, o := range c.list.Options {
		texts[i] = o.Text
	}
	c.view.Render(tweak.ListState{Options: texts, Selected: c.list.Index(v)})
}

// HandleInput applies SelectInput. Indices outside the options are ignored.
func (c *List[T]) HandleInput(in tweak.Input) {
	c.live("handle input")
	sel, ok := in.(tweak.SelectInput)
	if !ok {
		return
	}
	if sel.Index < 0 || sel.Index >= len(c.list.Options) {
		c.Render()
		return
	}
	c.assign(c.list.Options[sel.Index].Value, tweak.ChangeOptions{Last: true}, c.render)
}

var _ tweak.Controller = (*List[int])(nil)
