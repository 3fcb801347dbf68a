// Package noise builds seeded fractal noise maps and the post-processing
// passes applied to them: falloff masks, box blur and linear remapping.
package noise

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"worldgen/pkg/core"
)

// Config describes one fractal noise layer.
type Config struct {
	Octaves     int     `yaml:"octaves" json:"octaves"`
	Persistence float64 `yaml:"persistence" json:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity" json:"lacunarity"`
	Scale       int     `yaml:"scale" json:"scale"`
}

// Documented parameter ranges.
const (
	MinOctaves    = 1
	MaxOctaves    = 8
	MinLacunarity = 1.0
	MaxLacunarity = 5.0
	MinScale      = 10
	MaxScale      = 200
)

// offsetRange bounds the per-octave sample offsets drawn from the stream.
const offsetRange = 99999

// bandRows is the number of rows evaluated per worker task. The partition
// is fixed so the result never depends on the worker count.
const bandRows = 16

// DefaultConfig returns a mid-frequency four octave layer.
func DefaultConfig() Config {
	return Config{Octaves: 4, Persistence: 0.5, Lacunarity: 2, Scale: 50}
}

// Validate reports parameters outside their documented ranges.
func (c Config) Validate() error {
	if c.Octaves < MinOctaves || c.Octaves > MaxOctaves {
		return fmt.Errorf("%w: octaves %d outside [%d,%d]", core.ErrConfiguration, c.Octaves, MinOctaves, MaxOctaves)
	}
	if !(c.Persistence >= 0 && c.Persistence <= 1) {
		return fmt.Errorf("%w: persistence %v outside [0,1]", core.ErrConfiguration, c.Persistence)
	}
	if !(c.Lacunarity >= MinLacunarity && c.Lacunarity <= MaxLacunarity) {
		return fmt.Errorf("%w: lacunarity %v outside [%v,%v]", core.ErrConfiguration, c.Lacunarity, MinLacunarity, MaxLacunarity)
	}
	if c.Scale < MinScale || c.Scale > MaxScale {
		return fmt.Errorf("%w: scale %d outside [%d,%d]", core.ErrConfiguration, c.Scale, MinScale, MaxScale)
	}
	return nil
}

// StreamFactory constructs the integer stream used for octave offsets.
type StreamFactory func(seed int64) core.IntStream

// Generator evaluates noise maps with a configurable sampler and offset
// stream.
type Generator struct {
	NewSampler SamplerFactory
	NewStream  StreamFactory
	// Workers bounds concurrent row bands; zero uses GOMAXPROCS.
	Workers int
}

// NewGenerator returns a Generator for a registered sampler kind using the
// PCG-backed offset stream.
func NewGenerator(kind string) (*Generator, error) {
	f, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown noise kind %q", core.ErrConfiguration, kind)
	}
	return &Generator{NewSampler: f, NewStream: newRNGStream}, nil
}

func newRNGStream(seed int64) core.IntStream { return core.NewRNG(seed) }

func (g *Generator) workers() int {
	if g.Workers > 0 {
		return g.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// GenerateNoiseMap evaluates a noise map with the default Perlin generator.
func GenerateNoiseMap(width, height int, seed int64, cfg Config, normalize bool) (*core.Grid[float64], error) {
	g, err := NewGenerator(KindPerlin)
	if err != nil {
		return nil, err
	}
	return g.NoiseMap(width, height, seed, cfg, normalize)
}

// NoiseMap sums cfg.Octaves layers of the sampler over a width x height
// grid. Each octave is shifted by an offset drawn from the seeded stream so
// that octaves sampled at the same frequency stay decorrelated. With
// normalize set the result is remapped linearly from its observed
// [min, max] to [0, 1]; otherwise raw sums are returned.
func (g *Generator) NoiseMap(width, height int, seed int64, cfg Config, normalize bool) (*core.Grid[float64], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: noise map size %dx%d", core.ErrConfiguration, width, height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stream := g.NewStream(seed)
	offsets := make([]core.Vec2, cfg.Octaves)
	for i := range offsets {
		ox := stream.IntRange(-offsetRange, offsetRange)
		oy := stream.IntRange(-offsetRange, offsetRange)
		offsets[i] = core.Vec2{X: float64(ox), Y: float64(oy)}
	}
	sampler := g.NewSampler(seed)

	out := core.NewGrid[float64](width, height)
	halfW := float64(width) / 2
	halfH := float64(height) / 2
	scale := float64(cfg.Scale)

	bands := (height + bandRows - 1) / bandRows
	mins := make([]float64, bands)
	maxs := make([]float64, bands)

	var eg errgroup.Group
	eg.SetLimit(g.workers())
	for b := 0; b < bands; b++ {
		eg.Go(func() error {
			lo, hi := math.Inf(1), math.Inf(-1)
			end := min((b+1)*bandRows, height)
			for y := b * bandRows; y < end; y++ {
				for x := 0; x < width; x++ {
					amplitude, frequency := 1.0, 1.0
					sum := 0.0
					for _, off := range offsets {
						sx := (float64(x) - halfW + off.X) / scale * frequency
						sy := (float64(y) - halfH + off.Y) / scale * frequency
						// explicit conversions keep the compiler from fusing
						// into FMA, which would change results per platform
						signed := float64(sampler.Sample(sx, sy)*2) - 1
						sum += float64(signed * amplitude)
						amplitude *= cfg.Persistence
						frequency *= cfg.Lacunarity
					}
					out.Set(x, y, sum)
					lo = math.Min(lo, sum)
					hi = math.Max(hi, sum)
				}
			}
			mins[b], maxs[b] = lo, hi
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if !normalize {
		return out, nil
	}
	lo, hi := mins[0], maxs[0]
	for b := 1; b < bands; b++ {
		lo = math.Min(lo, mins[b])
		hi = math.Max(hi, maxs[b])
	}
	return Remap(out, lo, hi), nil
}
