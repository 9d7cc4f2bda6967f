package gridgraph

import (
	"errors"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrSizeMismatch indicates a flat cell slice whose length is not width×height.
	ErrSizeMismatch = errors.New("gridgraph: cell count does not match width×height")
)

// orthogonal lists the 4-neighbourhood offsets: N, E, S, W.
// An agent only ever moves along these, so components use the same set.
var orthogonal = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Grid is a rectangular occupancy field. It is immutable once built.
// Width and Height define dimensions; blocked[x*Height+y] is true for obstacles.
type Grid struct {
	Width, Height int
	blocked       []bool
}
