package glm

import (
	"math"

	"golang.org/x/mobile/exp/f32"
)

// Rad is an angle in radians
type Rad float32

const Tau Rad = 2 * math.Pi

func Sincos(r Rad) (float32, float32) {
	return f32.Sin(float32(r)), f32.Cos(float32(r))
}
