package tweak

import (
	"fmt"
	"math"
	"reflect"
	"sync"
)

// Target is read/write access to one named property of a host object.
type Target interface {
	Read() any
	Write(value any)
	Key() string
}

// MapTarget binds a key of a map.
type MapTarget struct {
	mu  *sync.RWMutex
	m   map[string]any
	key string
}

// NewMapTarget creates a Target for m[key].
func NewMapTarget(m map[string]any, key string) *MapTarget {
	return &MapTarget{mu: &sync.RWMutex{}, m: m, key: key}
}

// Read returns m[key].
func (t *MapTarget) Read() any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.m[t.key]
}

// Write sets m[key].
func (t *MapTarget) Write(value any) {
	t.mu.Lock()
	t.m[t.key] = value
	t.mu.Unlock()
}

// Key returns the map key.
func (t *MapTarget) Key() string {
	return t.key
}

// FieldTarget binds an exported field of a struct through a pointer.
type FieldTarget struct {
	field reflect.Value
	key   string
}

// NewFieldTarget creates a Target for the named field of *ptr. It fails when
// ptr is not a pointer to a struct or the field is missing or unexported.
func NewFieldTarget(ptr any, field string) (*FieldTarget, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("field target requires a non-nil struct pointer, got %T", ptr)
	}
	f := rv.Elem().FieldByName(field)
	if !f.IsValid() {
		return nil, fmt.Errorf("field %q not found on %T", field, ptr)
	}
	if !f.CanSet() {
		return nil, fmt.Errorf("field %q on %T is not settable", field, ptr)
	}
	return &FieldTarget{field: f, key: field}, nil
}

// Read returns the field value.
func (t *FieldTarget) Read() any {
	return t.field.Interface()
}

// Write assigns value to the field, converting between convertible types.
// Floats written to integer fields are rounded to the nearest integer.
// Values of an incompatible type are dropped.
func (t *FieldTarget) Write(value any) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		t.field.Set(reflect.Zero(t.field.Type()))
		return
	}
	if rv.CanFloat() && isIntegerKind(t.field.Kind()) {
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return
		}
		rv = reflect.ValueOf(math.Round(f))
	}
	switch {
	case rv.Type().AssignableTo(t.field.Type()):
		t.field.Set(rv)
	case rv.Type().ConvertibleTo(t.field.Type()):
		t.field.Set(rv.Convert(t.field.Type()))
	}
}

// Key returns the field name.
func (t *FieldTarget) Key() string {
	return t.key
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// FuncTarget binds a property through accessor functions.
type FuncTarget struct {
	key   string
	read  func() any
	write func(any)
}

// NewFuncTarget creates a Target from a getter and a setter. A nil setter
// makes the target read-only; writes are dropped.
func NewFuncTarget(key string, read func() any, write func(any)) *FuncTarget {
	return &FuncTarget{key: key, read: read, write: write}
}

// Read calls the getter.
func (t *FuncTarget) Read() any {
	return t.read()
}

// Write calls the setter.
func (t *FuncTarget) Write(value any) {
	if t.write != nil {
		t.write(value)
	}
}

// Key returns the property name.
func (t *FuncTarget) Key() string {
	return t.key
}

var (
	_ Target = (*MapTarget)(nil)
	_ Target = (*FieldTarget)(nil)
	_ Target = (*FuncTarget)(nil)
)
