package noise

import "worldgen/pkg/core"

// BorderMode selects how Blur treats the outermost rows and columns.
type BorderMode int

const (
	// BorderZero leaves border cells at zero after every pass.
	BorderZero BorderMode = iota
	// BorderClamp averages border cells over their in-bounds neighbours.
	BorderClamp
)

// Blur applies iterations passes of a 3x3 box average. Border cells are
// zero in the output; use BlurMode with BorderClamp to keep them populated.
func Blur(m *core.Grid[float64], iterations int) *core.Grid[float64] {
	return BlurMode(m, iterations, BorderZero)
}

// BlurMode is Blur with an explicit border policy. Fewer than one
// iteration is treated as one.
func BlurMode(m *core.Grid[float64], iterations int, mode BorderMode) *core.Grid[float64] {
	if iterations < 1 {
		iterations = 1
	}
	cur := m
	for i := 0; i < iterations; i++ {
		if mode == BorderClamp {
			cur = blurClamped(cur)
		} else {
			cur = blurInterior(cur)
		}
	}
	return cur
}

func blurInterior(m *core.Grid[float64]) *core.Grid[float64] {
	w, h := m.Width(), m.Height()
	out := core.NewGrid[float64](w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sum := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sum += m.At(x+dx, y+dy)
				}
			}
			out.Set(x, y, sum/9)
		}
	}
	return out
}

func blurClamped(m *core.Grid[float64]) *core.Grid[float64] {
	w, h := m.Width(), m.Height()
	out := core.NewGrid[float64](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			n := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					sum += m.At(nx, ny)
					n++
				}
			}
			out.Set(x, y, sum/float64(n))
		}
	}
	return out
}
