package tweak

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// View discriminants understood by the built-in plugins.
const (
	ViewDefault  = ""
	ViewText     = "text"
	ViewSlider   = "slider"
	ViewList     = "list"
	ViewCheckbox = "checkbox"
	ViewColor    = "color"
	ViewLog      = "log"
	ViewGraph    = "graph"
)

// Option is one entry of Params.Options.
type Option struct {
	Text  string `json:"text" yaml:"text" validate:"required"`
	Value any    `json:"value" yaml:"value"`
}

// Params are the host-supplied parameters of a binding. View selects the
// kind of control; the remaining fields are optional and interpreted by the
// plugin that accepts the target.
type Params struct {
	View  string `json:"view,omitempty" yaml:"view,omitempty" validate:"omitempty,oneof=text slider list checkbox color log graph"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	Step *float64 `json:"step,omitempty" yaml:"step,omitempty" validate:"omitnil,gt=0"`

	Options []Option `json:"options,omitempty" yaml:"options,omitempty" validate:"omitempty,dive"`

	// Alpha enables the alpha component for number colors.
	Alpha bool `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	// Digits overrides the number of decimals shown by number text.
	Digits *int `json:"digits,omitempty" yaml:"digits,omitempty" validate:"omitnil,min=0,max=20"`

	Interval   time.Duration `json:"interval,omitempty" yaml:"interval,omitempty" validate:"gte=0"`
	BufferSize int           `json:"bufferSize,omitempty" yaml:"bufferSize,omitempty" validate:"gte=0"`
}

// Float returns a pointer to f, for filling optional Params fields.
func Float(f float64) *float64 {
	return &f
}

// Int returns a pointer to i, for filling optional Params fields.
func Int(i int) *int {
	return &i
}

// validate is the shared validator instance.
var validate = validator.New()

// Validate checks the params' field constraints.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if p.Min != nil && p.Max != nil && *p.Max < *p.Min {
		return fmt.Errorf("%w: max %v is below min %v", ErrInvalidParams, *p.Max, *p.Min)
	}
	return nil
}

// ParseParams decodes and validates a params document.
func ParseParams(codec Codec, data []byte) (Params, error) {
	var p Params
	if err := codec.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
