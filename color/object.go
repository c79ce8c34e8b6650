package color

// IsObject reports whether v is a plain object with numeric r, g and b
// entries.
func IsObject(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for _, k := range []string{"r", "g", "b"} {
		if _, ok := number(m[k]); !ok {
			return false
		}
	}
	return true
}

// IsRGBAObject reports whether v is a color object that also carries a
// numeric a entry.
func IsRGBAObject(v any) bool {
	if !IsObject(v) {
		return false
	}
	_, ok := number(v.(map[string]any)["a"])
	return ok
}

// FromObject reads a color object. A missing alpha is opaque.
func FromObject(v any) (Color, bool) {
	if !IsObject(v) {
		return Color{}, false
	}
	m := v.(map[string]any)
	r, _ := number(m["r"])
	g, _ := number(m["g"])
	b, _ := number(m["b"])
	a, ok := number(m["a"])
	if !ok {
		a = 1
	}
	return NewRGBA(r, g, b, a), true
}

// Object returns c as a plain object, with an a entry when alpha is set.
func (c Color) Object(alpha bool) map[string]any {
	m := map[string]any{"r": c.R, "g": c.G, "b": c.B}
	if alpha {
		m["a"] = c.A
	}
	return m
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}
