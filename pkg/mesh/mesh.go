// Package mesh triangulates height grids into level-of-detail terrain
// meshes.
package mesh

import (
	"fmt"
	"math"

	"worldgen/pkg/core"
)

// lodThreshold is the map dimension handled at full resolution.
const lodThreshold = 256

// Vec3 is a mesh-space position or direction. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length.
func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Up is the normal of a flat surface.
var Up = Vec3{Y: 1}

// Mesh is an indexed triangle mesh laid out as a Width x Height vertex grid
// in row-major order.
type Mesh struct {
	Width, Height int
	// OffsetX and OffsetY locate the first vertex in the full mesh grid
	// when the mesh is a chunk.
	OffsetX, OffsetY int

	Vertices  []Vec3
	UVs       []core.Vec2
	Normals   []Vec3
	Triangles []int
}

// VertexCount reports the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount reports the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// HeightRange returns the lowest and highest vertex elevation.
func (m *Mesh) HeightRange() (lo, hi float64) {
	if len(m.Vertices) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.Vertices {
		lo = math.Min(lo, v.Y)
		hi = math.Max(hi, v.Y)
	}
	return lo, hi
}

// Stride returns the vertex sampling step for a width x height map: 1 up to
// 255 cells per side, then 2*(max/256).
func Stride(width, height int) int {
	lod := max(width, height) / lodThreshold
	if lod == 0 {
		return 1
	}
	return lod * 2
}

// Dimensions returns the mesh vertex grid size for a map and stride.
func Dimensions(width, height, stride int) (int, int) {
	return (width-1)/stride + 1, (height-1)/stride + 1
}

// Generate triangulates heightMap on a plane centred at the origin. Heights
// at or below seaLevel are flattened to y = 0; higher cells are remapped
// through curve over [seaLevel, 1] and scaled by heightMultiplier. A nil
// curve is Linear.
func Generate(heightMap *core.Grid[float64], curve HeightCurve, seaLevel, heightMultiplier float64) (*Mesh, error) {
	if heightMap == nil || heightMap.Len() == 0 {
		return nil, fmt.Errorf("%w: empty height map", core.ErrConfiguration)
	}
	if !core.IsFinite(seaLevel) || !core.IsFinite(heightMultiplier) {
		return nil, fmt.Errorf("%w: sea level %v and height multiplier %v must be finite", core.ErrConfiguration, seaLevel, heightMultiplier)
	}
	if curve == nil {
		curve = Linear
	}

	w, h := heightMap.Width(), heightMap.Height()
	stride := Stride(w, h)
	mw, mh := Dimensions(w, h, stride)
	m := &Mesh{
		Width:     mw,
		Height:    mh,
		Vertices:  make([]Vec3, 0, mw*mh),
		UVs:       make([]core.Vec2, 0, mw*mh),
		Triangles: make([]int, 0, max(mw-1, 0)*max(mh-1, 0)*6),
	}

	left := float64(w-1) / 2
	top := float64(h-1) / 2
	for my := 0; my < mh; my++ {
		y := my * stride
		for mx := 0; mx < mw; mx++ {
			x := mx * stride
			elevation := 0.0
			if v := heightMap.At(x, y); v > seaLevel {
				elevation = curve.Evaluate(core.InverseLerp(seaLevel, 1, v)) * heightMultiplier
			}
			m.Vertices = append(m.Vertices, Vec3{X: float64(x) - left, Y: elevation, Z: top - float64(y)})
			m.UVs = append(m.UVs, core.Vec2{X: float64(x) / float64(w), Y: float64(y) / float64(h)})
		}
	}
	m.Triangles = appendQuads(m.Triangles, mw, mh)
	m.Normals = computeNormals(m.Vertices, m.Triangles)
	return m, nil
}

// appendQuads emits two triangles for every vertex that has a right and a
// lower neighbour.
func appendQuads(tris []int, w, h int) []int {
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			i := y*w + x
			tris = append(tris,
				i, i+w+1, i+w,
				i+w+1, i, i+1,
			)
		}
	}
	return tris
}

// computeNormals accumulates area-weighted face normals per vertex.
// Vertices without a non-degenerate face get Up.
func computeNormals(verts []Vec3, tris []int) []Vec3 {
	acc := make([]Vec3, len(verts))
	for t := 0; t+2 < len(tris); t += 3 {
		a, b, c := tris[t], tris[t+1], tris[t+2]
		n := verts[b].Sub(verts[a]).Cross(verts[c].Sub(verts[a]))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		l := n.Length()
		if l < core.Epsilon {
			acc[i] = Up
			continue
		}
		acc[i] = Vec3{n.X / l, n.Y / l, n.Z / l}
	}
	return acc
}
