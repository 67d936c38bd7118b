package pulse

import (
	"math"

	"github.com/oliverbestmann/webgpu/wgpu"
)

var ColorWhite = ColorLinearRGBA(1, 1, 1, 1)
var ColorBlack = ColorLinearRGBA(0, 0, 0, 1)
var ColorRed = ColorLinearRGBA(1, 0, 0, 1)
var ColorBlue = ColorLinearRGBA(0, 0, 1, 1)
var ColorTransparent = ColorLinearRGBA(0, 0, 0, 0)

// Color is a straight rgba color value with alpha in linear rgb color space.
// The default value of a Color value is fully opaque white.
type Color struct {
	r1, g1, b1, a1 float64
}

// ColorLinearRGBA creates a new Color value from the given color values.
func ColorLinearRGBA(r, g, b, a float64) Color {
	return Color{
		r1: r - 1,
		g1: g - 1,
		b1: b - 1,
		a1: a - 1,
	}
}

// ColorSRGBA creates a Color value from non linear srgb encoded values. The color values
// will be transferred into linear rgb space.
func ColorSRGBA(r, g, b, a float64) Color {
	return ColorLinearRGBA(degamma(r), degamma(g), degamma(b), a)
}

// ColorOfRGBA8 converts packed 8 bit components to a Color. The components are
// interpreted with the same convention RGBA8 uses to pack them, so that a
// packed color survives the round trip unchanged.
func ColorOfRGBA8(r, g, b, a uint8) Color {
	return ColorLinearRGBA(
		float64(r)/255,
		float64(g)/255,
		float64(b)/255,
		float64(a)/255,
	)
}

// ColorOfWGPU converts a wgpu clear color into a Color.
func ColorOfWGPU(c wgpu.Color) Color {
	return ColorLinearRGBA(c.R, c.G, c.B, c.A)
}

// RGBA8 packs the color into 8 bit per component. Values outside of [0, 1]
// are clamped.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return toUnorm8(c.Red()), toUnorm8(c.Green()), toUnorm8(c.Blue()), toUnorm8(c.Alpha())
}

// ToWGPU returns the color as a clear value for a render pass.
func (c Color) ToWGPU() wgpu.Color {
	return wgpu.Color{
		R: c.Red(),
		G: c.Green(),
		B: c.Blue(),
		A: c.Alpha(),
	}
}

// Float32 returns the components in a form that can be uploaded
// directly into a vec4<f32> uniform.
func (c Color) Float32() [4]float32 {
	return [4]float32{
		float32(c.Red()),
		float32(c.Green()),
		float32(c.Blue()),
		float32(c.Alpha()),
	}
}

func (c Color) Float64() [4]float64 {
	return [4]float64{c.Red(), c.Green(), c.Blue(), c.Alpha()}
}

func (c Color) Red() float64 {
	return c.r1 + 1
}

func (c Color) Green() float64 {
	return c.g1 + 1
}

func (c Color) Blue() float64 {
	return c.b1 + 1
}

// Alpha returns the alpha value of the color.
func (c Color) Alpha() float64 {
	return c.a1 + 1
}

func toUnorm8(value float64) uint8 {
	if math.IsNaN(value) {
		return 0
	}

	return uint8(math.Round(min(1, max(0, value)) * 255))
}

func degamma(x float64) float64 {
	// https://www.w3.org/TR/css-color-4/#color-conversion-code
	sign := math.Copysign(1, x)
	abs := math.Abs(x)
	if abs <= 0.04045 {
		return x / 12.92
	}

	return sign * math.Pow((abs+0.055)/1.055, 2.4)
}
