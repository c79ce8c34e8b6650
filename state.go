package tweak

// ControllerState is the interaction state of an input controller.
type ControllerState int32

const (
	// StateIdle indicates no interaction is in progress; the controller
	// mirrors its value.
	StateIdle ControllerState = iota

	// StateEditing indicates an interaction such as a slider drag is in
	// progress. Changes made while editing are emitted with Last unset.
	StateEditing
)

// String returns the string representation of the state.
func (s ControllerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Controller owns the interaction logic of one control: it renders its
// value into a View and turns user input into value assignments.
type Controller interface {
	// Render pushes the current value into the view.
	Render()
	// HandleInput applies a user input event. Inputs a controller does not
	// understand are ignored.
	HandleInput(in Input)
	// Dispose detaches the controller from its value. It is idempotent.
	// Render and HandleInput panic with ErrDisposed afterwards.
	Dispose()
}
