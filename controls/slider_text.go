package controls

import "github.com/zoobzio/tweak"

// Slider property keys.
const (
	PropMin = "min"
	PropMax = "max"
)

// SliderText edits a bounded number with a slider and a text field.
// Dragging puts the controller in the editing state; changes emitted while
// dragging are not marked Last.
type SliderText struct {
	base[float64]
	props   *tweak.ValueMap
	handles []*tweak.Handler
	cfg     NumberTextConfig
}

// NewSliderText creates a SliderText spanning [lo, hi] and renders the
// current value.
func NewSliderText(value *tweak.Value[float64], view tweak.View, lo, hi float64, cfg NumberTextConfig) *SliderText {
	if hi < lo {
		lo, hi = hi, lo
	}
	c := &SliderText{props: tweak.NewValueMap(), cfg: cfg.withDefaults(value)}
	c.value = value
	c.view = view
	tweak.Define(c.props, PropMin, tweak.NewValue(lo))
	tweak.Define(c.props, PropMax, tweak.NewValue(hi))
	for _, key := range []string{PropMin, PropMax} {
		h, err := tweak.BindValueMap(c.props, key, c.onBoundsChange)
		if err == nil {
			c.handles = append(c.handles, h)
		}
	}
	c.bind(c.render)
	return c
}

// Props returns the slider's view properties: PropMin and PropMax as
// float64 values. Assigning them moves the slider bounds.
func (c *SliderText) Props() *tweak.ValueMap {
	return c.props
}

// Bounds returns the slider range.
func (c *SliderText) Bounds() (lo, hi float64) {
	return c.prop(PropMin), c.prop(PropMax)
}

func (c *SliderText) prop(key string) float64 {
	v, err := tweak.MapValue[float64](c.props, key)
	if err != nil {
		return 0
	}
	return v.RawValue()
}

func (c *SliderText) onBoundsChange(float64) {
	if c.handle != nil && !c.disposed.Load() {
		c.Render()
	}
}

// Dispose stops rendering value and bounds changes.
func (c *SliderText) Dispose() {
	c.base.Dispose()
	for _, h := range c.handles {
		h.Off()
	}
}

// Render pushes the current value into the view.
func (c *SliderText) Render() {
	c.live("render")
	c.render(c.value.RawValue())
}

func (c *SliderText) render(v float64) {
	c.view.Render(tweak.SliderState{
		Position: c.position(v),
		Text:     c.cfg.Formatter(v),
	})
}

func (c *SliderText) position(v float64) float64 {
	lo, hi := c.Bounds()
	if hi == lo {
		return 0
	}
	return max(0, min(1, (v-lo)/(hi-lo)))
}

// HandleInput applies PointerInput, TextInput and KeyInput.
func (c *SliderText) HandleInput(in tweak.Input) {
	c.live("handle input")
	switch in := in.(type) {
	case tweak.PointerInput:
		c.handlePointer(in)
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

func (c *SliderText) handlePointer(in tweak.PointerInput) {
	lo, hi := c.Bounds()
	ratio := max(0, min(1, in.Ratio))
	v := lo + ratio*(hi-lo)

	switch in.Phase {
	case tweak.PointerDown, tweak.PointerMove:
		c.setState(tweak.StateEditing)
		c.assign(v, tweak.ChangeOptions{}, c.render)
	case tweak.PointerUp:
		c.setState(tweak.StateIdle)
		c.assign(v, tweak.ChangeOptions{Last: true, ForceEmit: true}, c.render)
	}
}

var _ tweak.Controller = (*SliderText)(nil)
