package mesh

import (
	"fmt"
	"slices"
	"sort"

	"worldgen/pkg/core"
)

// HeightCurve remaps a normalized elevation in [0, 1] before it is scaled by
// the height multiplier.
type HeightCurve interface {
	Evaluate(t float64) float64
}

// CurveFunc adapts a plain function to HeightCurve.
type CurveFunc func(t float64) float64

// Evaluate implements HeightCurve.
func (f CurveFunc) Evaluate(t float64) float64 { return f(t) }

// Linear is the identity curve.
var Linear HeightCurve = CurveFunc(func(t float64) float64 { return t })

// Keyframe is one control point of a Keyframes curve.
type Keyframe struct {
	Time  float64 `yaml:"time" json:"time"`
	Value float64 `yaml:"value" json:"value"`
}

// Keyframes is a piecewise-linear curve through its keys, held flat before
// the first and after the last key.
type Keyframes []Keyframe

// NewKeyframes sorts keys by time and rejects empty, non-finite or
// duplicate-time input.
func NewKeyframes(keys ...Keyframe) (Keyframes, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: curve needs at least one keyframe", core.ErrConfiguration)
	}
	out := slices.Clone(keys)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	for i, k := range out {
		if !core.IsFinite(k.Time) || !core.IsFinite(k.Value) {
			return nil, fmt.Errorf("%w: keyframe %d is not finite", core.ErrConfiguration, i)
		}
		if i > 0 && k.Time == out[i-1].Time {
			return nil, fmt.Errorf("%w: duplicate keyframe time %v", core.ErrConfiguration, k.Time)
		}
	}
	return Keyframes(out), nil
}

// DefaultCurve keeps lowlands flat and steepens towards the peaks.
func DefaultCurve() Keyframes {
	return Keyframes{
		{Time: 0, Value: 0},
		{Time: 0.3, Value: 0.05},
		{Time: 0.7, Value: 0.4},
		{Time: 1, Value: 1},
	}
}

// Evaluate implements HeightCurve. Keys must be sorted by time.
func (k Keyframes) Evaluate(t float64) float64 {
	switch {
	case len(k) == 0:
		return t
	case t <= k[0].Time:
		return k[0].Value
	case t >= k[len(k)-1].Time:
		return k[len(k)-1].Value
	}
	i := sort.Search(len(k), func(i int) bool { return k[i].Time > t })
	a, b := k[i-1], k[i]
	return core.Lerp(a.Value, b.Value, (t-a.Time)/(b.Time-a.Time))
}
