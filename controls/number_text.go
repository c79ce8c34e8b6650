package controls

import "github.com/zoobzio/tweak"

// NumberTextConfig configures a NumberText.
type NumberTextConfig struct {
	// Formatter renders the value. Default: NumberFormatter with
	// SuitableDigits.
	Formatter func(float64) string
	// Parser reads typed text. Default: ParseNumber.
	Parser func(string) (float64, bool)
	// BaseStep is the arrow-key step. Default: BaseStep of the constraint.
	BaseStep float64
}

func (c NumberTextConfig) withDefaults(value *tweak.Value[float64]) NumberTextConfig {
	if c.Formatter == nil {
		c.Formatter = NumberFormatter(SuitableDigits(value.Constraint(), value.RawValue()))
	}
	if c.Parser == nil {
		c.Parser = ParseNumber
	}
	if c.BaseStep <= 0 {
		c.BaseStep = BaseStep(value.Constraint())
	}
	return c
}

// NumberText edits a number through a text field and arrow keys.
type NumberText struct {
	base[float64]
	cfg NumberTextConfig
}

// NewNumberText creates a NumberText and renders the current value.
func NewNumberText(value *tweak.Value[float64], view tweak.View, cfg NumberTextConfig) *NumberText {
	c := &NumberText{cfg: cfg.withDefaults(value)}
	c.value = value
	c.view = view
	c.bind(c.render)
	return c
}

// Render pushes the current value into the view.
func (c *NumberText) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *NumberText) render(v float64) {
	c.view.Render(tweak.TextState{Text: c.cfg.Formatter(v)})
}

// HandleInput applies TextInput and KeyInput.
func (c *NumberText) HandleInput(in tweak.Input) {
	c.live("handle input")
	switch in := in.(type) {
	case tweak.TextInput:
		v, ok := c.cfg.Parser(in.Text)
		if !ok {
			c.Render()
			return
		}
		c.assign(v, tweak.ChangeOptions{Last: true}, c.render)
	case tweak.KeyInput:
		c.assign(stepped(c.value.RawValue(), c.cfg.BaseStep, in), tweak.ChangeOptions{Last: true}, c.render)
	}
}

func stepped(v, step float64, in tweak.KeyInput) float64 {
	if in.Shift {
		step *= 10
	}
	return v + float64(in.Steps)*step
}

var _ tweak.Controller = (*NumberText)(nil)
