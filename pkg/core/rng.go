package core

import "math/rand/v2"

// IntStream is a source of uniformly distributed integers. Noise generation
// draws its octave offsets from one so tests can swap in fixed sequences.
type IntStream interface {
	// IntRange returns a value in [lo, hi).
	IntRange(lo, hi int) int
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// IntRange returns a uniformly distributed value in [lo, hi). When hi <= lo
// it returns lo.
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// SequenceStream replays a fixed list of values, cycling when exhausted.
// Values are clamped into the requested range.
type SequenceStream struct {
	values []int
	next   int
}

// NewSequenceStream returns a stream that yields values in order.
func NewSequenceStream(values ...int) *SequenceStream {
	return &SequenceStream{values: values}
}

// IntRange implements IntStream.
func (s *SequenceStream) IntRange(lo, hi int) int {
	if len(s.values) == 0 || hi <= lo {
		return lo
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < lo {
		return lo
	}
	if v >= hi {
		return hi - 1
	}
	return v
}
