package core

import "errors"

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// ErrConfiguration marks invalid input detected before generation starts:
// bad dimensions, noise settings outside their documented ranges, or a
// degenerate prevailing wind.
var ErrConfiguration = errors.New("invalid configuration")
