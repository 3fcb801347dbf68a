package noise

import (
	"math"

	"worldgen/pkg/core"
)

// Falloff evaluates the S-curve v^a / (v^a + (b - b*v)^a). Inputs for which
// the expression is undefined (0/0 when v = 0 and a <= 0, or b = 0) fall
// back to the identity ramp Clamp01(v).
func Falloff(v, a, b float64) float64 {
	num := math.Pow(v, a)
	den := num + math.Pow(b-b*v, a)
	if !core.IsFinite(num) || !core.IsFinite(den) || math.Abs(den) < core.Epsilon {
		return core.Clamp01(v)
	}
	r := num / den
	if !core.IsFinite(r) {
		return core.Clamp01(v)
	}
	return r
}

// FalloffMap returns a square vignette: each cell's Chebyshev distance from
// the grid centre, mapped to [-1, 1] per axis, passed through Falloff.
func FalloffMap(width, height int, a, b float64) *core.Grid[float64] {
	out := core.NewGrid[float64](width, height)
	for y := 0; y < height; y++ {
		fy := float64(y)/float64(height)*2 - 1
		for x := 0; x < width; x++ {
			fx := float64(x)/float64(width)*2 - 1
			d := math.Max(math.Abs(fx), math.Abs(fy))
			out.Set(x, y, Falloff(d, a, b))
		}
	}
	return out
}
