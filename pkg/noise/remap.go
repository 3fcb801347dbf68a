package noise

import (
	"math"

	"worldgen/pkg/core"
)

// MinMax returns the smallest and largest values of m. An empty grid
// reports (0, 0).
func MinMax(m *core.Grid[float64]) (float64, float64) {
	if m.Len() == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			v := m.At(x, y)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// Remap maps every value linearly from [lo, hi] onto [0, 1], clamping
// values outside the range. A degenerate range maps everything to 0.
func Remap(m *core.Grid[float64], lo, hi float64) *core.Grid[float64] {
	return core.Map(m, func(_, _ int, v float64) float64 {
		return core.InverseLerp(lo, hi, v)
	})
}

// Normalize remaps m from its own [min, max] onto [0, 1].
func Normalize(m *core.Grid[float64]) *core.Grid[float64] {
	lo, hi := MinMax(m)
	return Remap(m, lo, hi)
}
