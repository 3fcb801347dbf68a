package world

import (
	"fmt"
	"math"

	"worldgen/pkg/core"
	"worldgen/pkg/noise"
)

// ApplyFalloff subtracts falloff*multiplier from every height and clamps the
// result to [0, 1].
func ApplyFalloff(height, falloff *core.Grid[float64], multiplier float64) (*core.Grid[float64], error) {
	if !core.SameSize(height, falloff) {
		return nil, fmt.Errorf("%w: falloff map %v does not match height map %v", core.ErrConfiguration, falloff.Size(), height.Size())
	}
	return core.Map(height, func(x, y int, h float64) float64 {
		return core.Clamp01(h - falloff.At(x, y)*multiplier)
	}), nil
}

// DeriveSlope computes a downhill vector per interior land cell from central
// differences: (-dx, -dy) / sqrt(dx² + dy² + 1). Border cells and cells below
// seaLevel stay at the zero vector.
func DeriveSlope(height *core.Grid[float64], seaLevel float64) *core.Grid[core.Vec2] {
	w, h := height.Width(), height.Height()
	out := core.NewGrid[core.Vec2](w, h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if height.At(x, y) < seaLevel {
				continue
			}
			xs := height.At(x+1, y) - height.At(x-1, y)
			ys := height.At(x, y+1) - height.At(x, y-1)
			norm := math.Sqrt(xs*xs + ys*ys + 1)
			out.Set(x, y, core.Vec2{X: -xs / norm, Y: -ys / norm})
		}
	}
	return out
}

// DeriveTemperature builds a latitude gradient (y / height) shaped by
// Falloff and cools it towards zero with elevation above sea level.
func DeriveTemperature(height *core.Grid[float64], cfg TemperatureConfig, seaLevel float64) *core.Grid[float64] {
	rows := float64(height.Height())
	return core.Map(height, func(_, y int, h float64) float64 {
		base := noise.Falloff(float64(y)/rows, cfg.A, cfg.B)
		return core.Lerp(base, 0, cfg.HeightRatio*(h-seaLevel))
	})
}

// DeriveRain produces a smooth rainfall field in [0, 1] from an independent
// noise layer seeded with seed. With RainModelWind the layer is blended with
// orographic lift, the component of the wind blowing uphill, then blurred
// and renormalized. A nil wind map contributes no lift.
func DeriveRain(height *core.Grid[float64], wind *core.Grid[core.Vec2], seed int64, cfg RainConfig, gen *noise.Generator) (*core.Grid[float64], error) {
	base, err := gen.NoiseMap(height.Width(), height.Height(), seed, cfg.Noise, true)
	if err != nil {
		return nil, fmt.Errorf("rain noise: %w", err)
	}
	if cfg.Model != RainModelWind {
		return base, nil
	}
	if wind != nil && !core.SameSize(height, wind) {
		return nil, fmt.Errorf("%w: wind map %v does not match height map %v", core.ErrConfiguration, wind.Size(), height.Size())
	}

	lift := orographicLift(height, wind)
	blended := core.Map(base, func(x, y int, v float64) float64 {
		return v*(1-cfg.WindCoupling) + lift.At(x, y)*cfg.WindCoupling
	})
	if cfg.BlurIterations > 0 {
		blended = noise.BlurMode(blended, cfg.BlurIterations, noise.BorderClamp)
	}
	return noise.Normalize(blended), nil
}

// orographicLift returns, per cell, how strongly the local wind climbs the
// height gradient, scaled to [0, 1].
func orographicLift(height *core.Grid[float64], wind *core.Grid[core.Vec2]) *core.Grid[float64] {
	w, h := height.Width(), height.Height()
	lift := core.NewGrid[float64](w, h)
	if wind == nil {
		return lift
	}
	peak := 0.0
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			dir := wind.At(x, y).Normalized()
			if dir.IsZero() {
				continue
			}
			grad := core.Vec2{
				X: height.At(x+1, y) - height.At(x-1, y),
				Y: height.At(x, y+1) - height.At(x, y-1),
			}
			v := dir.Dot(grad)
			if v <= 0 {
				continue
			}
			lift.Set(x, y, v)
			peak = math.Max(peak, v)
		}
	}
	if peak < core.Epsilon {
		return lift
	}
	return core.Map(lift, func(_, _ int, v float64) float64 { return v / peak })
}
