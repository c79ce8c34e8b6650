package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Notation identifies a string color format.
type Notation int

const (
	// NotationHexRGB is #rrggbb (also accepts #rgb when parsing).
	NotationHexRGB Notation = iota + 1
	// NotationHexRGBA is #rrggbbaa (also accepts #rgba when parsing).
	NotationHexRGBA
	// NotationFuncRGB is rgb(r, g, b).
	NotationFuncRGB
	// NotationFuncRGBA is rgba(r, g, b, a).
	NotationFuncRGBA
	// NotationHex0x is 0xrrggbb.
	NotationHex0x
)

// String returns the notation name.
func (n Notation) String() string {
	switch n {
	case NotationHexRGB:
		return "hex.rgb"
	case NotationHexRGBA:
		return "hex.rgba"
	case NotationFuncRGB:
		return "func.rgb"
	case NotationFuncRGBA:
		return "func.rgba"
	case NotationHex0x:
		return "hex.0x"
	default:
		return "unknown"
	}
}

// HasAlpha reports whether the notation carries an alpha component.
func (n Notation) HasAlpha() bool {
	return n == NotationHexRGBA || n == NotationFuncRGBA
}

// DetectNotation reports the notation s is written in.
func DetectNotation(s string) (Notation, bool) {
	for _, p := range parsers {
		if _, ok := p.parse(s); ok {
			return p.notation, true
		}
	}
	return 0, false
}

// Parse parses s in any supported notation.
func Parse(s string) (Color, bool) {
	for _, p := range parsers {
		if c, ok := p.parse(s); ok {
			return c, true
		}
	}
	return Color{}, false
}

// Format writes c in notation n.
func Format(c Color, n Notation) string {
	c = c.Clamped()
	switch n {
	case NotationHexRGBA:
		return fmt.Sprintf("#%02x%02x%02x%02x", byte8(c.R), byte8(c.G), byte8(c.B), byte8(c.A*255))
	case NotationFuncRGB:
		return fmt.Sprintf("rgb(%s, %s, %s)", num(c.R), num(c.G), num(c.B))
	case NotationFuncRGBA:
		return fmt.Sprintf("rgba(%s, %s, %s, %s)", num(c.R), num(c.G), num(c.B), num(c.A))
	case NotationHex0x:
		return fmt.Sprintf("0x%02x%02x%02x", byte8(c.R), byte8(c.G), byte8(c.B))
	default:
		return fmt.Sprintf("#%02x%02x%02x", byte8(c.R), byte8(c.G), byte8(c.B))
	}
}

// Stringifier returns a formatter bound to n.
func Stringifier(n Notation) func(Color) string {
	return func(c Color) string {
		return Format(c, n)
	}
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

type parser struct {
	notation Notation
	parse    func(string) (Color, bool)
}

var parsers = []parser{
	{NotationHexRGB, parseHexRGB},
	{NotationHexRGBA, parseHexRGBA},
	{NotationFuncRGB, parseFuncRGB},
	{NotationFuncRGBA, parseFuncRGBA},
	{NotationHex0x, parseHex0x},
}

func parseHexRGB(s string) (Color, bool) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return Color{}, false
	}
	switch len(h) {
	case 3:
		h = expand(h)
	case 6:
	default:
		return Color{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return FromRGBNumber(float64(v)), true
}

func parseHexRGBA(s string) (Color, bool) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return Color{}, false
	}
	switch len(h) {
	case 4:
		h = expand(h)
	case 8:
	default:
		return Color{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return FromRGBANumber(float64(v)), true
}

func parseHex0x(s string) (Color, bool) {
	h, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	if !ok || len(h) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return FromRGBNumber(float64(v)), true
}

func parseFuncRGB(s string) (Color, bool) {
	comps, ok := funcArgs(s, "rgb", 3)
	if !ok {
		return Color{}, false
	}
	return New(comps[0], comps[1], comps[2]), true
}

func parseFuncRGBA(s string) (Color, bool) {
	comps, ok := funcArgs(s, "rgba", 4)
	if !ok {
		return Color{}, false
	}
	return NewRGBA(comps[0], comps[1], comps[2], comps[3]), true
}

// funcArgs parses name(a, b, ...) with exactly n numeric arguments.
func funcArgs(s, name string, n int) ([]float64, bool) {
	s = strings.TrimSpace(s)
	body, ok := strings.CutPrefix(s, name+"(")
	if !ok {
		return nil, false
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return nil, false
	}
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func expand(h string) string {
	var b strings.Builder
	for _, r := range h {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}
