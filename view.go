package tweak

import "github.com/zoobzio/tweak/color"

// View renders controller state. Views are provided by the host through a
// Document and are otherwise opaque to the engine.
type View interface {
	Render(state State)
}

// Document creates views. It is the host's bridge to its presentation layer
// and is passed explicitly to every controller factory.
type Document interface {
	CreateView(kind ViewKind) View
}

// ViewKind names the kind of view a controller asks for.
type ViewKind string

// View kinds requested by the built-in controllers.
const (
	KindText     ViewKind = "text"
	KindSlider   ViewKind = "slider"
	KindList     ViewKind = "list"
	KindCheckbox ViewKind = "checkbox"
	KindColor    ViewKind = "color"
	KindLog      ViewKind = "log"
	KindGraph    ViewKind = "graph"
)

// State is the rendered state of a control. It is one of TextState,
// SliderState, ListState, CheckboxState, ColorState, LogState or GraphState.
type State interface {
	isState()
}

// TextState renders a text field.
type TextState struct {
	Text string
}

// SliderState renders a slider knob at Position in [0, 1] next to its text.
type SliderState struct {
	Position float64
	Text     string
}

// ListState renders a selector. Selected is -1 when the value matches no
// option.
type ListState struct {
	Options  []string
	Selected int
}

// CheckboxState renders a checkbox.
type CheckboxState struct {
	Checked bool
}

// ColorState renders a color swatch and its text.
type ColorState struct {
	Color color.Color
	Text  string
	Alpha bool
}

// LogState renders the formatted readings of a monitor, oldest first.
type LogState struct {
	Lines []string
}

// GraphState renders monitor readings as points in [0, 1], oldest first.
type GraphState struct {
	Points []float64
	Text   string
}

func (TextState) isState()     {}
func (SliderState) isState()   {}
func (ListState) isState()     {}
func (CheckboxState) isState() {}
func (ColorState) isState()    {}
func (LogState) isState()      {}
func (GraphState) isState()    {}

// Input is a user input event delivered to a controller. It is one of
// TextInput, PointerInput, SelectInput, ToggleInput or KeyInput.
type Input interface {
	isInput()
}

// TextInput carries committed text.
type TextInput struct {
	Text string
}

// PointerPhase is the stage of a pointer interaction.
type PointerPhase int

// Pointer phases.
const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// PointerInput carries a pointer position along a slider, as a ratio in
// [0, 1].
type PointerInput struct {
	Ratio float64
	Phase PointerPhase
}

// SelectInput carries the index of a chosen option.
type SelectInput struct {
	Index int
}

// ToggleInput carries a checkbox state.
type ToggleInput struct {
	Checked bool
}

// KeyInput carries arrow-key stepping: Steps is +1 or -1 per key press and
// Shift multiplies the step by ten.
type KeyInput struct {
	Steps int
	Shift bool
}

func (TextInput) isInput()    {}
func (PointerInput) isInput() {}
func (SelectInput) isInput()  {}
func (ToggleInput) isInput()  {}
func (KeyInput) isInput()     {}
