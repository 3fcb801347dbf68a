package mesh

import (
	"fmt"
	"math"

	"worldgen/pkg/core"
)

// DefaultMaxVertices is the vertex limit of a 16-bit index buffer.
const DefaultMaxVertices = 65535

// Terrain is a mesh split into a row-major grid of chunks. Neighbouring
// chunks share their seam vertices, including normals.
type Terrain struct {
	// Width and Height are the dimensions of the full vertex grid.
	Width, Height int
	Stride        int

	ChunksX, ChunksY int
	Chunks           []*Mesh
}

// Chunk returns the chunk at column cx and row cy.
func (t *Terrain) Chunk(cx, cy int) *Mesh { return t.Chunks[cy*t.ChunksX+cx] }

// VertexCount sums the vertices of every chunk; seam vertices count once per
// chunk.
func (t *Terrain) VertexCount() int {
	n := 0
	for _, c := range t.Chunks {
		n += c.VertexCount()
	}
	return n
}

// TriangleCount sums the triangles of every chunk.
func (t *Terrain) TriangleCount() int {
	n := 0
	for _, c := range t.Chunks {
		n += c.TriangleCount()
	}
	return n
}

// GenerateChunks builds the same surface as Generate and splits it so that
// no chunk exceeds maxVertices. Zero or negative maxVertices uses
// DefaultMaxVertices.
func GenerateChunks(heightMap *core.Grid[float64], curve HeightCurve, seaLevel, heightMultiplier float64, maxVertices int) (*Terrain, error) {
	if maxVertices <= 0 {
		maxVertices = DefaultMaxVertices
	}
	if maxVertices < 4 {
		return nil, fmt.Errorf("%w: chunk vertex limit %d below 4", core.ErrConfiguration, maxVertices)
	}
	full, err := Generate(heightMap, curve, seaLevel, heightMultiplier)
	if err != nil {
		return nil, err
	}

	t := &Terrain{
		Width:  full.Width,
		Height: full.Height,
		Stride: Stride(heightMap.Width(), heightMap.Height()),
	}
	if full.VertexCount() <= maxVertices {
		t.ChunksX, t.ChunksY = 1, 1
		t.Chunks = []*Mesh{full}
		return t, nil
	}

	// quads per chunk side, so a chunk holds (span+1)² vertices at most
	span := int(math.Sqrt(float64(maxVertices))) - 1
	t.ChunksX = chunkCount(full.Width, span)
	t.ChunksY = chunkCount(full.Height, span)
	t.Chunks = make([]*Mesh, 0, t.ChunksX*t.ChunksY)
	for cy := 0; cy < t.ChunksY; cy++ {
		y0 := cy * span
		y1 := min(y0+span, full.Height-1)
		for cx := 0; cx < t.ChunksX; cx++ {
			x0 := cx * span
			x1 := min(x0+span, full.Width-1)
			t.Chunks = append(t.Chunks, sliceMesh(full, x0, y0, x1, y1))
		}
	}
	return t, nil
}

// chunkCount returns how many chunks of span quads cover n vertices.
func chunkCount(n, span int) int {
	if n <= 1 {
		return 1
	}
	return (n - 1 + span - 1) / span
}

// sliceMesh copies the inclusive vertex rectangle [x0,x1]x[y0,y1] of full
// and re-triangulates it.
func sliceMesh(full *Mesh, x0, y0, x1, y1 int) *Mesh {
	w, h := x1-x0+1, y1-y0+1
	m := &Mesh{
		Width:     w,
		Height:    h,
		OffsetX:   x0,
		OffsetY:   y0,
		Vertices:  make([]Vec3, 0, w*h),
		UVs:       make([]core.Vec2, 0, w*h),
		Normals:   make([]Vec3, 0, w*h),
		Triangles: make([]int, 0, (w-1)*(h-1)*6),
	}
	for y := y0; y <= y1; y++ {
		row := y * full.Width
		m.Vertices = append(m.Vertices, full.Vertices[row+x0:row+x1+1]...)
		m.UVs = append(m.UVs, full.UVs[row+x0:row+x1+1]...)
		m.Normals = append(m.Normals, full.Normals[row+x0:row+x1+1]...)
	}
	m.Triangles = appendQuads(m.Triangles, w, h)
	return m
}
