package tweak

import (
	"cmp"
	"math"
)

// Constraint normalizes a value before it is accepted into a Value.
// Implementations must be pure and deterministic.
type Constraint[T any] interface {
	Constrain(value T) T
}

// Func adapts a plain function to the Constraint interface.
type Func[T any] func(T) T

// Constrain calls f.
func (f Func[T]) Constrain(value T) T {
	return f(value)
}

// Range clamps values into [Min, Max]. A nil bound leaves that side open.
type Range[T cmp.Ordered] struct {
	Min *T
	Max *T
}

// NewRange creates a Range bounded on both sides.
func NewRange[T cmp.Ordered](lo, hi T) *Range[T] {
	return &Range[T]{Min: &lo, Max: &hi}
}

// NewMinRange creates a Range bounded only from below.
func NewMinRange[T cmp.Ordered](lo T) *Range[T] {
	return &Range[T]{Min: &lo}
}

// NewMaxRange creates a Range bounded only from above.
func NewMaxRange[T cmp.Ordered](hi T) *Range[T] {
	return &Range[T]{Max: &hi}
}

// Constrain clamps value. NaN maps to Min, or to Max when only Max is set.
func (r *Range[T]) Constrain(value T) T {
	if value != value { // NaN
		switch {
		case r.Min != nil:
			return *r.Min
		case r.Max != nil:
			return *r.Max
		}
		return value
	}
	if r.Min != nil && value < *r.Min {
		value = *r.Min
	}
	if r.Max != nil && value > *r.Max {
		value = *r.Max
	}
	return value
}

// Bounds returns both bounds and whether the range is closed on both sides.
func (r *Range[T]) Bounds() (lo, hi T, ok bool) {
	if r.Min == nil || r.Max == nil {
		return lo, hi, false
	}
	return *r.Min, *r.Max, true
}

// DefiniteRange is a Range whose bounds are both required. Sliders need it
// to map a pointer position to a value.
type DefiniteRange[T cmp.Ordered] struct {
	Range[T]
}

// NewDefiniteRange creates a DefiniteRange. Swapped bounds are reordered.
func NewDefiniteRange[T cmp.Ordered](lo, hi T) *DefiniteRange[T] {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &DefiniteRange[T]{Range: Range[T]{Min: &lo, Max: &hi}}
}

// Min returns the lower bound.
func (r *DefiniteRange[T]) Min() T { return *r.Range.Min }

// Max returns the upper bound.
func (r *DefiniteRange[T]) Max() T { return *r.Range.Max }

// Step snaps numbers to the nearest multiple of Step measured from Origin.
// Halfway values round up. A non-positive step passes values through.
type Step struct {
	Step   float64
	Origin float64
}

// NewStep creates a Step with origin 0.
func NewStep(step float64) *Step {
	return &Step{Step: step}
}

// Constrain snaps value.
func (s *Step) Constrain(value float64) float64 {
	if s.Step <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	n := math.Floor((value-s.Origin)/s.Step + 0.5)
	return s.Origin + n*s.Step
}

// ListItem is one selectable option of a List constraint.
type ListItem[T any] struct {
	Text  string `json:"text" yaml:"text"`
	Value T      `json:"value" yaml:"value"`
}

// List restricts a value to a set of options. It drives selector rendering;
// a value that matches no option is passed through unchanged.
type List[T comparable] struct {
	Options []ListItem[T]
}

// NewList creates a List over options.
func NewList[T comparable](options ...ListItem[T]) *List[T] {
	return &List[T]{Options: options}
}

// Constrain returns value unchanged whether or not it matches an option.
func (l *List[T]) Constrain(value T) T {
	return value
}

// Index returns the position of the option holding value, or -1.
func (l *List[T]) Index(value T) int {
	for i, o := range l.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Composite applies its sub-constraints left to right, feeding each output
// into the next.
type Composite[T any] struct {
	constraints []Constraint[T]
}

// NewComposite creates a Composite. Nil entries are dropped.
func NewComposite[T any](constraints ...Constraint[T]) *Composite[T] {
	cs := make([]Constraint[T], 0, len(constraints))
	for _, c := range constraints {
		if c != nil {
			cs = append(cs, c)
		}
	}
	return &Composite[T]{constraints: cs}
}

// Constraints returns the ordered sub-constraints.
func (c *Composite[T]) Constraints() []Constraint[T] {
	out := make([]Constraint[T], len(c.constraints))
	copy(out, c.constraints)
	return out
}

// compositePasses bounds the number of chain passes Constrain makes while
// looking for a fixpoint.
const compositePasses = 8

// Constrain applies every sub-constraint in order, repeating the chain until
// a pass leaves the value unchanged.
func (c *Composite[T]) Constrain(value T) T {
	for range compositePasses {
		next := c.pass(value)
		if defaultEquals(next, value) {
			return next
		}
		value = next
	}
	return value
}

func (c *Composite[T]) pass(value T) T {
	for _, sub := range c.constraints {
		value = sub.Constrain(value)
	}
	return value
}

// FindConstraint searches c, descending into Composites depth-first, for the
// first constraint of type C.
func FindConstraint[C Constraint[T], T any](c Constraint[T]) (C, bool) {
	var zero C
	if c == nil {
		return zero, false
	}
	if found, ok := c.(C); ok {
		return found, true
	}
	comp, ok := c.(*Composite[T])
	if !ok {
		return zero, false
	}
	for _, sub := range comp.constraints {
		if found, ok := FindConstraint[C](sub); ok {
			return found, true
		}
	}
	return zero, false
}

// Compile-time interface checks.
var (
	_ Constraint[float64] = (*Range[float64])(nil)
	_ Constraint[float64] = (*DefiniteRange[float64])(nil)
	_ Constraint[float64] = (*Step)(nil)
	_ Constraint[float64] = (*List[float64])(nil)
	_ Constraint[float64] = (*Composite[float64])(nil)
	_ Constraint[float64] = Func[float64](nil)
)
