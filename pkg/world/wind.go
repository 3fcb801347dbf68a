package world

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"worldgen/pkg/core"
)

// windContribution is one addition a particle makes to the wind field.
type windContribution struct {
	idx int
	v   core.Vec2
}

// DeriveWind traces one wind particle per lane across the map and
// accumulates the particle directions into a per-cell wind field.
//
// Lanes are rows when the prevailing wind is mostly horizontal and columns
// otherwise; each particle starts on the upwind edge of its lane. At every
// step the direction is deflected by SlopeFollow*height*slope, blended back
// towards the prevailing wind by DirectionRestore while keeping its
// magnitude, clamped to length 1, added to the current cell and used to
// advance the particle. A particle that stays on the same cell adds the
// negated direction as well so lingering does not inflate the cell. Particles
// stop when they leave the grid or slow below MinSpeed.
//
// Lanes are traced concurrently and merged in lane order, so the result is
// identical to a serial trace for any worker count.
func DeriveWind(height *core.Grid[float64], slope *core.Grid[core.Vec2], cfg WindConfig, workers int) (*core.Grid[core.Vec2], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !core.SameSize(height, slope) {
		return nil, fmt.Errorf("%w: slope map %v does not match height map %v", core.ErrConfiguration, slope.Size(), height.Size())
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	starts := laneStarts(height.Width(), height.Height(), cfg.Direction)
	traces := make([][]windContribution, len(starts))

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i, start := range starts {
		eg.Go(func() error {
			traces[i] = traceParticle(start, height, slope, cfg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := core.NewGrid[core.Vec2](height.Width(), height.Height())
	w := out.Width()
	for _, trace := range traces {
		for _, c := range trace {
			x, y := c.idx%w, c.idx/w
			out.Set(x, y, out.At(x, y).Add(c.v))
		}
	}
	return out, nil
}

// laneStarts returns the particle start positions on the upwind edge.
func laneStarts(w, h int, dir core.Vec2) []core.Vec2 {
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		x := 0.5
		if dir.X < 0 {
			x = float64(w) - 0.5
		}
		starts := make([]core.Vec2, h)
		for y := range starts {
			starts[y] = core.Vec2{X: x, Y: float64(y) + 0.5}
		}
		return starts
	}
	y := 0.5
	if dir.Y < 0 {
		y = float64(h) - 0.5
	}
	starts := make([]core.Vec2, w)
	for x := range starts {
		starts[x] = core.Vec2{X: float64(x) + 0.5, Y: y}
	}
	return starts
}

// maxParticleSteps bounds a particle that circles without leaving the grid.
func maxParticleSteps(w, h int, minSpeed float64) int {
	return int(math.Ceil(2 * float64(w+h) / minSpeed))
}

func traceParticle(start core.Vec2, height *core.Grid[float64], slope *core.Grid[core.Vec2], cfg WindConfig) []windContribution {
	w, h := height.Width(), height.Height()
	prevailing := cfg.Direction
	dir := prevailing
	pos := start
	px, py := -1, -1

	var out []windContribution
	limit := maxParticleSteps(w, h, cfg.MinSpeed)
	for step := 0; step < limit; step++ {
		cx, cy := int(math.Floor(pos.X)), int(math.Floor(pos.Y))
		if cx < 0 || cy < 0 || cx >= w || cy >= h {
			break
		}

		dir = dir.Add(slope.At(cx, cy).Scale(cfg.SlopeFollow * height.At(cx, cy)))
		speed := dir.Magnitude()
		dir = dir.Lerp(prevailing, cfg.DirectionRestore).Normalized().Scale(speed).ClampMagnitude(1)
		if dir.Magnitude() < cfg.MinSpeed {
			break
		}

		idx := cy*w + cx
		out = append(out, windContribution{idx: idx, v: dir})
		if cx == px && cy == py {
			out = append(out, windContribution{idx: idx, v: dir.Neg()})
		}
		px, py = cx, cy
		pos = pos.Add(dir)
	}
	return out
}
