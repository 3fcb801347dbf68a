package core

import (
	"math"
	"slices"
	"testing"
)

func TestGridBasics(t *testing.T) {
	g := NewGrid[int](3, 2)
	if g.Width() != 3 || g.Height() != 2 || g.Len() != 6 {
		t.Fatalf("grid dims = %dx%d len %d", g.Width(), g.Height(), g.Len())
	}
	g.Set(2, 1, 7)
	if g.At(2, 1) != 7 || g.Index(2, 1) != 5 {
		t.Fatalf("At/Index mismatch: %d at index %d", g.At(2, 1), g.Index(2, 1))
	}
	if !g.InBounds(0, 0) || g.InBounds(3, 0) || g.InBounds(0, -1) {
		t.Fatal("InBounds reported wrong result")
	}

	vals := g.Values()
	vals[0] = 99
	row := g.Row(1)
	row[0] = 99
	if g.At(0, 0) != 0 || g.At(0, 1) != 0 {
		t.Fatal("Values and Row must return copies")
	}
	if !slices.Equal(g.Row(1), []int{0, 0, 7}) {
		t.Fatalf("Row(1) = %v", g.Row(1))
	}

	c := g.Clone()
	c.Set(0, 0, 1)
	if g.At(0, 0) != 0 {
		t.Fatal("Clone must not share storage")
	}

	empty := NewGrid[float64](0, 5)
	if empty.Len() != 0 || empty.Width() != 0 {
		t.Fatalf("non-positive dimensions should give an empty grid, got %v", empty.Size())
	}
}

func TestMapAndSameSize(t *testing.T) {
	src := NewGrid[int](4, 3)
	out := Map(src, func(x, y int, _ int) float64 { return float64(x + 10*y) })
	if !SameSize(src, out) {
		t.Fatal("Map must preserve dimensions")
	}
	if out.At(3, 2) != 23 {
		t.Fatalf("Map(3,2) = %v", out.At(3, 2))
	}
	if SameSize(src, NewGrid[int](3, 4)) {
		t.Fatal("transposed grids are not the same size")
	}
}

func TestMathHelpers(t *testing.T) {
	if Lerp(2, 4, 0.5) != 3 || Lerp(2, 4, -1) != 2 || Lerp(2, 4, 3) != 4 {
		t.Fatal("Lerp must clamp t to [0,1]")
	}
	if InverseLerp(2, 4, 3) != 0.5 || InverseLerp(2, 4, 10) != 1 || InverseLerp(2, 4, 0) != 0 {
		t.Fatal("InverseLerp must clamp to [0,1]")
	}
	if InverseLerp(1, 1, 5) != 0 {
		t.Fatal("degenerate InverseLerp must return 0")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) || !IsFinite(0) {
		t.Fatal("IsFinite misclassified a value")
	}
	if Clamp01(-0.5) != 0 || Clamp01(1.5) != 1 || Clamp(5, 0, 3) != 3 {
		t.Fatal("Clamp out of range")
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if v.Magnitude() != 5 {
		t.Fatalf("Magnitude = %v", v.Magnitude())
	}
	if n := v.Normalized(); math.Abs(n.Magnitude()-1) > 1e-12 {
		t.Fatalf("Normalized magnitude = %v", n.Magnitude())
	}
	if n := (Vec2{X: 1e-12}).Normalized(); n != (Vec2{}) {
		t.Fatalf("near-zero Normalized = %+v, want zero", n)
	}
	if c := v.ClampMagnitude(1); math.Abs(c.Magnitude()-1) > 1e-12 || c.X <= 0 {
		t.Fatalf("ClampMagnitude = %+v", c)
	}
	if c := v.ClampMagnitude(10); c != v {
		t.Fatalf("short vector should be unchanged, got %+v", c)
	}
	if l := v.Lerp(Vec2{}, 0.5); l != (Vec2{X: 1.5, Y: 2}) {
		t.Fatalf("Lerp = %+v", l)
	}
	if v.Add(v.Neg()) != (Vec2{}) || v.Sub(v) != (Vec2{}) || v.Dot(Vec2{X: 1}) != 3 {
		t.Fatal("vector arithmetic mismatch")
	}
	if !(Vec2{}).IsZero() || v.IsZero() {
		t.Fatal("IsZero mismatch")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	for i := 0; i < 100; i++ {
		x, y := a.IntRange(-99999, 99999), b.IntRange(-99999, 99999)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < -99999 || x >= 99999 {
			t.Fatalf("draw %d = %d outside range", i, x)
		}
	}
	if NewRNG(1).IntRange(5, 5) != 5 {
		t.Fatal("empty range should return lo")
	}
	if f := NewRNG(3).Float64(); f < 0 || f >= 1 {
		t.Fatalf("Float64 = %v", f)
	}
}

func TestSequenceStream(t *testing.T) {
	s := NewSequenceStream(1, -50, 50)
	got := []int{
		s.IntRange(-10, 10),
		s.IntRange(-10, 10),
		s.IntRange(-10, 10),
		s.IntRange(-10, 10),
	}
	if !slices.Equal(got, []int{1, -10, 9, 1}) {
		t.Fatalf("draws = %v", got)
	}
	if NewSequenceStream().IntRange(3, 9) != 3 {
		t.Fatal("empty stream should return lo")
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}},
		{Name: "B", Params: []Parameter{{Key: "c", Value: "3"}}},
	}}
	if !slices.Equal(snap.Keys(), []string{"a", "b", "c"}) {
		t.Fatalf("Keys() = %v", snap.Keys())
	}
	if p, ok := snap.Find("c"); !ok || p.Value != "3" {
		t.Fatalf("Find(c) = %+v, %v", p, ok)
	}
	if _, ok := snap.Find("z"); ok {
		t.Fatal("Find should miss unknown keys")
	}
}
