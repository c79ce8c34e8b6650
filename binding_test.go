package tweak

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func identityFloat(v float64) float64 { return v }

func TestInputBinding_ReadsTargetOnCreate(t *testing.T) {
	m := map[string]any{"foo": 5.0}
	value := NewValue(0.0)

	b := NewInputBinding(NewMapTarget(m, "foo"), value, asFloat, identityFloat)

	if value.RawValue() != 5 {
		t.Errorf("expected value 5, got %v", value.RawValue())
	}
	if b.ID() == "" {
		t.Error("expected binding id")
	}
}

func TestInputBinding_RoundTrip(t *testing.T) {
	m := map[string]any{"foo": 5.0}
	value := NewValue(0.0)
	b := NewInputBinding(NewMapTarget(m, "foo"), value, asFloat, identityFloat)

	value.SetRawValue(9)
	if m["foo"] != 9.0 {
		t.Errorf("expected target 9, got %v", m["foo"])
	}

	changes := 0
	value.Emitter().On(EventChange, func(ValueEvent[float64]) { changes++ })

	m["foo"] = 42.0
	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if value.RawValue() != 42 {
		t.Errorf("expected value 42, got %v", value.RawValue())
	}
	if changes != 1 {
		t.Errorf("expected 1 change, got %d", changes)
	}

	if err := b.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if changes != 1 {
		t.Errorf("expected unchanged refresh to stay silent, got %d changes", changes)
	}
}

func TestInputBinding_ConstrainedInitialIsWrittenBack(t *testing.T) {
	m := map[string]any{"foo": 15.0}
	value := NewValue(0.0, WithConstraint[float64](NewRange(0.0, 10.0)))

	NewInputBinding(NewMapTarget(m, "foo"), value, asFloat, identityFloat)

	if value.RawValue() != 10 {
		t.Errorf("expected clamped 10, got %v", value.RawValue())
	}
	if m["foo"] != 10.0 {
		t.Errorf("expected clamped value written back, got %v", m["foo"])
	}
}

func TestInputBinding_WriterConvertsOutward(t *testing.T) {
	m := map[string]any{"label": "3"}
	value := NewValue(0)
	b := NewInputBinding(NewMapTarget(m, "label"), value,
		func(v any) int {
			s, _ := v.(string)
			n := 0
			for _, r := range s {
				n = n*10 + int(r-'0')
			}
			return n
		},
		func(n int) string { return string(rune('0' + n)) },
	)

	if value.RawValue() != 3 {
		t.Fatalf("expected 3, got %d", value.RawValue())
	}
	value.SetRawValue(7)
	if m["label"] != "7" {
		t.Errorf("expected '7', got %v", m["label"])
	}
	if got := b.ValueToWrite(5); got != "5" {
		t.Errorf("expected '5', got %q", got)
	}
}

func TestInputBinding_OnChange(t *testing.T) {
	m := map[string]any{"foo": 1.0}
	value := NewValue(0.0)
	b := NewInputBinding(NewMapTarget(m, "foo"), value, asFloat, identityFloat)

	var got []ChangeEvent[float64]
	b.OnChange(func(ev ChangeEvent[float64]) { got = append(got, ev) })

	value.SetRawValueWith(2, ChangeOptions{})
	value.SetRawValue(3)

	want := []ChangeEvent[float64]{
		{Key: "foo", Value: 2, Last: false},
		{Key: "foo", Value: 3, Last: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("change events mismatch (-want +got):\n%s", diff)
	}
}

func TestInputBinding_DisposeIsIdempotentAndSilent(t *testing.T) {
	m := map[string]any{"foo": 1.0}
	value := NewValue(0.0)
	b := NewInputBinding(NewMapTarget(m, "foo"), value, asFloat, identityFloat)

	host := 0
	b.OnChange(func(ChangeEvent[float64]) { host++ })

	b.Dispose()
	b.Dispose()

	if !b.Disposed() {
		t.Error("expected binding to report disposed")
	}
	value.SetRawValue(8)
	if m["foo"] != 1.0 {
		t.Errorf("expected no write after dispose, got %v", m["foo"])
	}
	if host != 0 {
		t.Errorf("expected no host events after dispose, got %d", host)
	}
	if value.Emitter().Count(EventChange) != 0 {
		t.Errorf("expected value listener removed, got %d", value.Emitter().Count(EventChange))
	}
	if err := b.Refresh(); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}

func TestInputBinding_OnChangeAfterDisposePanics(t *testing.T) {
	b := NewInputBinding(NewMapTarget(map[string]any{"foo": 1.0}, "foo"), NewValue(0.0), asFloat, identityFloat)
	bc := NewInputBindingController("", b, &stubController{})
	bc.Dispose()

	for name, register := range map[string]func(){
		"binding": func() { b.OnChange(func(ChangeEvent[float64]) {}) },
		"pair":    func() { bc.OnChange(func(ChangeEvent[any]) {}) },
	} {
		func() {
			defer func() {
				err, _ := recover().(error)
				if !errors.Is(err, ErrDisposed) {
					t.Errorf("%s: expected panic with ErrDisposed, got %v", name, err)
				}
			}()
			register()
		}()
	}
	if n := b.Emitter().Count(EventChange); n != 0 {
		t.Errorf("expected no listeners registered, got %d", n)
	}
}

type stubController struct {
	renders  int
	inputs   []Input
	disposed int
}

func (c *stubController) Render()              { c.renders++ }
func (c *stubController) HandleInput(in Input) { c.inputs = append(c.inputs, in) }
func (c *stubController) Dispose()             { c.disposed++ }

func TestInputBindingController(t *testing.T) {
	m := map[string]any{"foo": 1.0}
	b := NewInputBinding(NewMapTarget(m, "foo"), NewValue(0.0), asFloat, identityFloat)
	ctrl := &stubController{}

	bc := NewInputBindingController("", b, ctrl)
	if bc.Label() != "foo" {
		t.Errorf("expected label to fall back to key, got %q", bc.Label())
	}
	if bc.Controller() != Controller(ctrl) || bc.Binding() != b {
		t.Error("expected accessors to return the paired parts")
	}

	var got []any
	bc.OnChange(func(ev ChangeEvent[any]) { got = append(got, ev.Value) })
	b.Value().SetRawValue(4)
	if diff := cmp.Diff([]any{4.0}, got); diff != "" {
		t.Errorf("type-erased change mismatch (-want +got):\n%s", diff)
	}

	bc.Dispose()
	bc.Dispose()
	if ctrl.disposed != 1 {
		t.Errorf("expected controller disposed once, got %d", ctrl.disposed)
	}
	if !b.Disposed() || !bc.Disposed() {
		t.Error("expected binding and pair disposed")
	}
}

func TestInputBindingController_Label(t *testing.T) {
	m := map[string]any{"foo": 1.0}
	b := NewInputBinding(NewMapTarget(m, "foo"), NewValue(0.0), asFloat, identityFloat)
	if l := NewInputBindingController("Foo speed", b, &stubController{}).Label(); l != "Foo speed" {
		t.Errorf("expected explicit label, got %q", l)
	}
}
