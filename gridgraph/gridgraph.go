package gridgraph

// From2D constructs a Grid from a non-empty, rectangular 2D slice indexed as
// values[x][y], so len(values) is the width and len(values[0]) the height.
// A cell is free iff its value is 0; any other value is an obstacle.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Algorithmic complexity: O(W×H) time and memory.
func From2D(values [][]int) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w, h := len(values), len(values[0])
	for _, col := range values {
		if len(col) != h {
			return nil, ErrNonRectangular
		}
	}
	blocked := make([]bool, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			blocked[x*h+y] = values[x][y] != 0
		}
	}

	return newGrid(w, h, blocked), nil
}

// FromBlocked constructs a Grid from a flat x-major slice of obstacle flags.
// The slice is copied. Returns ErrEmptyGrid for a zero dimension and
// ErrSizeMismatch if len(blocked) != width*height.
// Complexity: O(W×H).
func FromBlocked(width, height int, blocked []bool) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	if len(blocked) != width*height {
		return nil, ErrSizeMismatch
	}
	cells := make([]bool, len(blocked))
	copy(cells, blocked)

	return newGrid(width, height, cells), nil
}

// Empty returns an obstacle-free width×height grid.
func Empty(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	return newGrid(width, height, make([]bool, width*height)), nil
}

// newGrid takes ownership of blocked.
func newGrid(w, h int, blocked []bool) *Grid {
	return &Grid{Width: w, Height: h, blocked: blocked}
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Free reports whether (x,y) is in bounds and not an obstacle.
// Complexity: O(1).
func (g *Grid) Free(x, y int) bool {
	return g.InBounds(x, y) && !g.blocked[g.index(x, y)]
}

// Blocked reports whether (x,y) is an in-bounds obstacle.
func (g *Grid) Blocked(x, y int) bool {
	return g.InBounds(x, y) && g.blocked[g.index(x, y)]
}

// NumCells returns Width*Height.
func (g *Grid) NumCells() int {
	return g.Width * g.Height
}

// FreeCells returns the x-major indices of all free cells in ascending order.
// Complexity: O(W×H).
func (g *Grid) FreeCells() []int {
	free := make([]int, 0, len(g.blocked))
	for i, b := range g.blocked {
		if !b {
			free = append(free, i)
		}
	}
	return free
}

// NumFree counts free cells.
func (g *Grid) NumFree() int {
	n := 0
	for _, b := range g.blocked {
		if !b {
			n++
		}
	}
	return n
}

// Cells returns a copy of the flat x-major obstacle flags.
func (g *Grid) Cells() []bool {
	out := make([]bool, len(g.blocked))
	copy(out, g.blocked)
	return out
}

// Index maps (x,y) to the x-major index x*Height + y.
// The caller must ensure (x,y) is in bounds.
func (g *Grid) Index(x, y int) int {
	return g.index(x, y)
}

func (g *Grid) index(x, y int) int {
	return x*g.Height + y
}

// Coordinate converts an x-major index back to (x,y).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx / g.Height, idx % g.Height
}
