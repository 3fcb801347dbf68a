package noise

import (
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler evaluates a continuous 2D gradient noise function. Results lie in
// [0, 1] and must depend only on the coordinates and the construction seed.
type Sampler interface {
	Sample(x, y float64) float64
}

// SamplerFactory constructs a Sampler for a seed.
type SamplerFactory func(seed int64) Sampler

// Sampler kinds registered by this package.
const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
)

var samplers = map[string]SamplerFactory{}

// Register adds a sampler factory under the provided kind.
func Register(kind string, f SamplerFactory) {
	if kind == "" || f == nil {
		return
	}
	samplers[kind] = f
}

// Samplers lists the registered sampler kinds in sorted order.
func Samplers() []string {
	kinds := make([]string, 0, len(samplers))
	for k := range samplers {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Lookup returns the factory registered for kind.
func Lookup(kind string) (SamplerFactory, bool) {
	f, ok := samplers[kind]
	return f, ok
}

// perlinSampler wraps a single-octave go-perlin generator; octaves are
// summed by the noise map itself.
type perlinSampler struct {
	p *perlin.Perlin
}

func newPerlinSampler(seed int64) Sampler {
	return perlinSampler{p: perlin.NewPerlin(2, 2, 1, seed)}
}

func (s perlinSampler) Sample(x, y float64) float64 {
	v := s.p.Noise2D(x, y)
	if v < -1 {
		v = -1
	} else if v > 1 {
		v = 1
	}
	return (v + 1) / 2
}

type simplexSampler struct {
	n opensimplex.Noise
}

func newSimplexSampler(seed int64) Sampler {
	return simplexSampler{n: opensimplex.NewNormalized(seed)}
}

func (s simplexSampler) Sample(x, y float64) float64 {
	return s.n.Eval2(x, y)
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc func(x, y float64) float64

// Sample implements Sampler.
func (f SamplerFunc) Sample(x, y float64) float64 { return f(x, y) }

func init() {
	Register(KindPerlin, newPerlinSampler)
	Register(KindSimplex, newSimplexSampler)
}
