// Package color provides the RGBA color model used by color bindings and its
// conversions to and from the external representations hosts store colors
// in: packed numbers, CSS-like strings and plain objects.
package color

import "math"

// Color is an RGBA color. R, G and B range over [0, 255], A over [0, 1].
type Color struct {
	R, G, B float64
	A       float64
}

// New creates an opaque color.
func New(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewRGBA creates a color with alpha.
func NewRGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Equals reports whether a and b have identical components.
func Equals(a, b Color) bool {
	return a.R == b.R && a.G == b.G && a.B == b.B && a.A == b.A
}

// Clamped returns c with every component clamped to its range.
func (c Color) Clamped() Color {
	return Color{
		R: clamp(c.R, 0, 255),
		G: clamp(c.G, 0, 255),
		B: clamp(c.B, 0, 255),
		A: clamp(c.A, 0, 1),
	}
}

// Opaque returns c with alpha set to 1.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// Components constrains colors to valid component ranges.
type Components struct {
	// Alpha keeps the alpha component; when false alpha is forced to 1.
	Alpha bool
}

// Constrain clamps c.
func (k Components) Constrain(c Color) Color {
	c = c.Clamped()
	if !k.Alpha {
		c.A = 1
	}
	return c
}

// FromRGBNumber unpacks 0xRRGGBB.
func FromRGBNumber(n float64) Color {
	v := uint32(clamp(math.Floor(n), 0, 0xffffff))
	return New(
		float64(v>>16&0xff),
		float64(v>>8&0xff),
		float64(v&0xff),
	)
}

// FromRGBANumber unpacks 0xRRGGBBAA.
func FromRGBANumber(n float64) Color {
	v := uint32(clamp(math.Floor(n), 0, 0xffffffff))
	return NewRGBA(
		float64(v>>24&0xff),
		float64(v>>16&0xff),
		float64(v>>8&0xff),
		float64(v&0xff)/255,
	)
}

// RGBNumber packs c as 0xRRGGBB.
func (c Color) RGBNumber() float64 {
	c = c.Clamped()
	return float64(byte8(c.R)<<16 | byte8(c.G)<<8 | byte8(c.B))
}

// RGBANumber packs c as 0xRRGGBBAA.
func (c Color) RGBANumber() float64 {
	c = c.Clamped()
	return float64(byte8(c.R)<<24 | byte8(c.G)<<16 | byte8(c.B)<<8 | byte8(c.A*255))
}

func byte8(f float64) uint32 {
	return uint32(math.Round(f)) & 0xff
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
