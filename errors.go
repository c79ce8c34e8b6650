package tweak

import "errors"

var (
	// ErrDisposed is returned when a binding, monitor or controller is used
	// after Dispose.
	ErrDisposed = errors.New("tweak: already disposed")

	// ErrNoPlugin is returned when no registered plugin accepts a target.
	ErrNoPlugin = errors.New("tweak: no suitable plugin")

	// ErrInvalidParams is returned when binding parameters fail validation.
	ErrInvalidParams = errors.New("tweak: invalid params")

	// ErrInvalidPlugin is returned when a malformed plugin is registered.
	ErrInvalidPlugin = errors.New("tweak: invalid plugin")

	// ErrUnknownKey is returned when a ValueMap key is missing or holds a
	// value of another type.
	ErrUnknownKey = errors.New("tweak: unknown value key")

	// ErrAlreadyRunning is returned when Run is called on a monitor or
	// follower that is already running.
	ErrAlreadyRunning = errors.New("tweak: already running")
)
