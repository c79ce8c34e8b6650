// Package controls implements the built-in controllers: number text, slider,
// list, checkbox, text and color inputs, plus log and graph monitors.
//
// Every controller renders only what its Value holds. User input is turned
// into an assignment on the Value; the resulting change event, not the raw
// input, drives the next render. Input that the Value's constraint and
// equality gate absorb causes a re-render of the stored value so the view
// never keeps showing rejected input.
package controls
