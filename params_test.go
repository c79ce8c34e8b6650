package tweak

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"empty", Params{}, false},
		{"slider", Params{View: ViewSlider, Min: Float(0), Max: Float(1), Step: Float(0.1)}, false},
		{"min only", Params{Min: Float(3)}, false},
		{"max only", Params{Max: Float(3)}, false},
		{"unknown view", Params{View: "knob"}, true},
		{"zero step", Params{Step: Float(0)}, true},
		{"max below min", Params{Min: Float(5), Max: Float(1)}, true},
		{"option without text", Params{Options: []Option{{Value: 1}}}, true},
		{"digits out of range", Params{Digits: Int(21)}, true},
		{"negative interval", Params{Interval: -time.Second}, true},
		{"negative buffer", Params{BufferSize: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestParseParams_YAML(t *testing.T) {
	data := []byte(`
view: slider
label: Speed
min: 0
max: 10
step: 0.5
options:
  - text: slow
    value: 1
`)
	p, err := ParseParams(YAMLCodec{}, data)
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}

	want := Params{
		View:    ViewSlider,
		Label:   "Speed",
		Min:     Float(0),
		Max:     Float(10),
		Step:    Float(0.5),
		Options: []Option{{Text: "slow", Value: 1}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestParseParams_JSON(t *testing.T) {
	p, err := ParseParams(JSONCodec{}, []byte(`{"view": "color", "alpha": true}`))
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	if p.View != ViewColor || !p.Alpha {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestParseParams_Invalid(t *testing.T) {
	if _, err := ParseParams(JSONCodec{}, []byte(`{"view": "knob"}`)); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
	if _, err := ParseParams(JSONCodec{}, []byte(`{`)); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for bad document, got %v", err)
	}
}
