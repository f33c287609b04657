package letterbox

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// DefaultBackground is the surface clear color used when New is given no
// background: a dark neutral gray with zero alpha.
var DefaultBackground = Color{R: 43.0 / 255.0, G: 44.0 / 255.0, B: 47.0 / 255.0, A: 0}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. In display space the origin is the
// top-left corner with Y growing downward; in camera space X, Y is the
// bottom-left corner with Y growing upward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// RenderMode tracks where drawing is currently directed.
type RenderMode uint8

const (
	ScreenActive RenderMode = iota // drawing targets the display; Present is legal
	CameraActive                   // drawing targets the logical surface
)

// String returns the mode name.
func (m RenderMode) String() string {
	switch m {
	case ScreenActive:
		return "ScreenActive"
	case CameraActive:
		return "CameraActive"
	default:
		return "RenderMode(?)"
	}
}

// rawRGBA converts c to a color.RGBA carrying the components exactly as
// given, without premultiplying. Surfaces and letterbox bars are always
// shown opaque, so a zero alpha background still shows its RGB.
func (c Color) rawRGBA() color.RGBA {
	return color.RGBA{
		R: unitToByte(c.R),
		G: unitToByte(c.G),
		B: unitToByte(c.B),
		A: unitToByte(c.A),
	}
}

// opaque returns c with alpha forced to 1.
func (c Color) opaque() Color {
	c.A = 1
	return c
}

func unitToByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
