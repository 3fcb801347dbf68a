package core

// Grid stores a 2D field of values in row-major order.
//
// Grids handed out by the generators are owned by the caller and must be
// treated as read-only; Set exists for the producing stage only.
type Grid[T any] struct {
	w, h int
	data []T
}

// NewGrid allocates a zero-valued grid with the given dimensions. Non-positive
// dimensions yield an empty grid.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 {
		return &Grid[T]{}
	}
	return &Grid[T]{w: w, h: h, data: make([]T, w*h)}
}

// Width reports the number of columns.
func (g *Grid[T]) Width() int { return g.w }

// Height reports the number of rows.
func (g *Grid[T]) Height() int { return g.h }

// Size reports both dimensions.
func (g *Grid[T]) Size() Size { return Size{W: g.w, H: g.h} }

// Len returns the number of cells.
func (g *Grid[T]) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.w && y < g.h
}

// At returns the value stored at (x, y).
func (g *Grid[T]) At(x, y int) T { return g.data[y*g.w+x] }

// Set stores v at (x, y).
func (g *Grid[T]) Set(x, y int, v T) { g.data[y*g.w+x] = v }

// Values returns a copy of the backing slice.
func (g *Grid[T]) Values() []T {
	out := make([]T, len(g.data))
	copy(out, g.data)
	return out
}

// Row returns a copy of row y.
func (g *Grid[T]) Row(y int) []T {
	out := make([]T, g.w)
	copy(out, g.data[y*g.w:(y+1)*g.w])
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{w: g.w, h: g.h, data: g.Values()}
}

// SameSize reports whether both grids share dimensions.
func SameSize[A, B any](a *Grid[A], b *Grid[B]) bool {
	return a.w == b.w && a.h == b.h
}

// Map builds a new grid by applying fn to every cell of src.
func Map[A, B any](src *Grid[A], fn func(x, y int, v A) B) *Grid[B] {
	out := NewGrid[B](src.w, src.h)
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			idx := y*src.w + x
			out.data[idx] = fn(x, y, src.data[idx])
		}
	}
	return out
}
