package mesh

import (
	"errors"
	"math"
	"testing"

	"worldgen/pkg/core"
)

func TestKeyframesEvaluate(t *testing.T) {
	k, err := NewKeyframes(
		Keyframe{Time: 1, Value: 1},
		Keyframe{Time: 0, Value: 0},
		Keyframe{Time: 0.5, Value: 0.1},
	)
	if err != nil {
		t.Fatalf("NewKeyframes: %v", err)
	}
	cases := []struct{ t, want float64 }{
		{-1, 0},
		{0, 0},
		{0.25, 0.05},
		{0.5, 0.1},
		{0.75, 0.55},
		{1, 1},
		{2, 1},
	}
	for _, tc := range cases {
		if got := k.Evaluate(tc.t); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Evaluate(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestKeyframesRejectsBadInput(t *testing.T) {
	bad := [][]Keyframe{
		nil,
		{{Time: 0, Value: 0}, {Time: 0, Value: 1}},
		{{Time: math.NaN(), Value: 0}},
		{{Time: 0, Value: math.Inf(1)}},
	}
	for i, keys := range bad {
		if _, err := NewKeyframes(keys...); !errors.Is(err, core.ErrConfiguration) {
			t.Fatalf("case %d: err = %v, want ErrConfiguration", i, err)
		}
	}
}

func TestDefaultCurveMonotonic(t *testing.T) {
	c := DefaultCurve()
	prev := c.Evaluate(0)
	if prev != 0 || c.Evaluate(1) != 1 {
		t.Fatalf("default curve endpoints = %v, %v", prev, c.Evaluate(1))
	}
	for i := 1; i <= 100; i++ {
		v := c.Evaluate(float64(i) / 100)
		if v < prev {
			t.Fatalf("default curve decreases at %v", float64(i)/100)
		}
		prev = v
	}
	if Linear.Evaluate(0.3) != 0.3 {
		t.Fatal("Linear should be the identity")
	}
}
