package app

import (
	"fmt"
	"io"
	"sort"
	"time"

	icore "worldgen/internal/core"
	"worldgen/pkg/core"
	"worldgen/pkg/mesh"
	"worldgen/pkg/noise"
	"worldgen/pkg/world"
)

// Report gathers what worldgen prints after a run. Terrain is nil when no
// mesh was requested.
type Report struct {
	World   *world.World
	Terrain *mesh.Terrain
	Timings []icore.StageTiming
}

// WriteReport prints a human readable summary of r.
func WriteReport(out io.Writer, r Report) error {
	w := r.World
	size := w.Size()
	p := &printer{w: out}

	p.printf("World %s\n", w.ID())
	p.printf("  seed=%d size=%dx%d noise=%s rain=%s\n", w.Seed, size.W, size.H, w.Config.NoiseKind, w.Config.Rain.Model)
	p.printf("  digest=%s\n", w.Digest())
	p.printf("  land=%.1f%% (sea level %.2f)\n", w.LandFraction()*100, w.Config.SeaLevel)

	p.printf("\nFields:\n")
	writeRange(p, "height", w.Height)
	writeRange(p, "rain", w.Rain)
	writeRange(p, "temperature", w.Temperature)
	if w.Wind != nil {
		peak := 0.0
		for _, v := range w.Wind.Values() {
			peak = max(peak, v.Magnitude())
		}
		p.printf("  %-12s peak=%.3f\n", "wind", peak)
	} else {
		p.printf("  %-12s disabled\n", "wind")
	}

	p.printf("\nClimates:\n")
	hist := w.ClimateHistogram()
	names := make([]string, 0, len(hist))
	for n := range hist {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if hist[names[i]] != hist[names[j]] {
			return hist[names[i]] > hist[names[j]]
		}
		return names[i] < names[j]
	})
	total := float64(size.W * size.H)
	for _, n := range names {
		p.printf("  %-22s %8d %5.1f%%\n", n, hist[n], float64(hist[n])/total*100)
	}

	if t := r.Terrain; t != nil {
		lo, hi := 0.0, 0.0
		for i, c := range t.Chunks {
			clo, chi := c.HeightRange()
			if i == 0 || clo < lo {
				lo = clo
			}
			if i == 0 || chi > hi {
				hi = chi
			}
		}
		p.printf("\nMesh:\n")
		p.printf("  grid=%dx%d stride=%d chunks=%dx%d\n", t.Width, t.Height, t.Stride, t.ChunksX, t.ChunksY)
		p.printf("  vertices=%d triangles=%d elevation=[%.2f, %.2f]\n", t.VertexCount(), t.TriangleCount(), lo, hi)
	}

	if len(r.Timings) > 0 {
		var sum time.Duration
		p.printf("\nTimings:\n")
		for _, st := range r.Timings {
			sum += st.Duration
			p.printf("  %-12s %s\n", st.Stage, st.Duration.Round(time.Microsecond))
		}
		p.printf("  %-12s %s\n", "total", sum.Round(time.Microsecond))
	}
	return p.err
}

func writeRange(p *printer, name string, g *core.Grid[float64]) {
	lo, hi := noise.MinMax(g)
	p.printf("  %-12s [%.3f, %.3f]\n", name, lo, hi)
}

// WriteParameters prints a parameter snapshot grouped as key=value lines.
func WriteParameters(out io.Writer, snap core.ParameterSnapshot) error {
	p := &printer{w: out}
	p.printf("Parameters:\n")
	for _, g := range snap.Groups {
		p.printf("  %s\n", g.Name)
		for _, prm := range g.Params {
			p.printf("    %s=%s\n", prm.Key, prm.Value)
		}
	}
	return p.err
}

// printer keeps the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
