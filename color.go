package goview

import (
	"image/color"
	"strconv"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{}
)

// HexColor parses 3, 4, 6 or 8 digit hex color strings, with or without
// a leading '#'. Unparseable input yields an opaque mid gray.
func HexColor(s string) Color {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	var r, g, b, a uint64 = 0x77, 0x77, 0x77, 0xff
	switch len(s) {
	case 3:
		r = hexNibble(s[0:1])
		g = hexNibble(s[1:2])
		b = hexNibble(s[2:3])
	case 4:
		r = hexNibble(s[0:1])
		g = hexNibble(s[1:2])
		b = hexNibble(s[2:3])
		a = hexNibble(s[3:4])
	case 6:
		r = hexByte(s[0:2])
		g = hexByte(s[2:4])
		b = hexByte(s[4:6])
	case 8:
		r = hexByte(s[0:2])
		g = hexByte(s[2:4])
		b = hexByte(s[4:6])
		a = hexByte(s[6:8])
	}
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

func hexNibble(s string) uint64 {
	n, _ := strconv.ParseUint(s, 16, 8)
	return n | n<<4
}

func hexByte(s string) uint64 {
	n, _ := strconv.ParseUint(s, 16, 8)
	return n
}

// NRGBA converts to 8-bit non-premultiplied RGBA, clamping each
// component to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

// Mul multiplies componentwise.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func (c Color) MulScalar(f float32) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

// Min clamps each component against o.
func (c Color) Min(o Color) Color {
	return Color{min(c.R, o.R), min(c.G, o.G), min(c.B, o.B), min(c.A, o.A)}
}

// Alpha returns the color with its alpha replaced.
func (c Color) Alpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

func clamp01(f float32) float32 {
	return min(max(f, 0), 1)
}
