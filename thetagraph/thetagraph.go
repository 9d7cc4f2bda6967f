package thetagraph

import (
	"fmt"

	"github.com/katalvlaran/thetafocal/gridgraph"
)

// Graph is the implicit transition graph over a grid. Arcs are generated on
// demand; nothing per-state is stored.
type Graph struct {
	grid  *gridgraph.Grid
	costs Costs
	plane int // Width*Height, the stride of the orientation axis
}

// New builds the state graph over grid with unit costs unless overridden.
// Returns ErrNilGrid for a nil grid and ErrNegativeWeight if the resolved
// costs are negative (possible only when Costs is assembled by hand).
// Complexity: O(len(opts)).
func New(grid *gridgraph.Grid, opts ...Option) (*Graph, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	costs := DefaultCosts()
	for _, opt := range opts {
		opt(&costs)
	}
	if costs.Rotate < 0 || costs.Move < 0 {
		return nil, fmt.Errorf("%w: rotate=%v move=%v", ErrNegativeWeight, costs.Rotate, costs.Move)
	}
	return &Graph{
		grid:  grid,
		costs: costs,
		plane: grid.Width * grid.Height,
	}, nil
}

// Grid returns the underlying occupancy grid.
func (g *Graph) Grid() *gridgraph.Grid { return g.grid }

// Costs returns the transition weights in use.
func (g *Graph) Costs() Costs { return g.costs }

// NumStates returns 4·W·H.
func (g *Graph) NumStates() int { return NumOrientations * g.plane }

// Contains reports whether s has a valid heading and an in-bounds cell.
// Blocked cells are still states of the graph; they simply have no incoming
// move arcs.
func (g *Graph) Contains(s State) bool {
	return s.Theta.Valid() && g.grid.InBounds(s.X, s.Y)
}

// Index maps s to its linear index θ·W·H + x·H + y.
// The caller must ensure Contains(s).
func (g *Graph) Index(s State) int {
	return int(s.Theta)*g.plane + g.grid.Index(s.X, s.Y)
}

// StateAt is the inverse of Index.
func (g *Graph) StateAt(i int) State {
	x, y := g.grid.Coordinate(i % g.plane)
	return State{Theta: Orientation(i / g.plane), X: x, Y: y}
}

// Arcs appends the outgoing arcs of state index i to buf and returns it.
// Order is fixed: rotate -1, rotate +1, then the move arc when present.
// Complexity: O(1).
func (g *Graph) Arcs(i int, buf []Arc) []Arc {
	theta := Orientation(i / g.plane)
	cell := i % g.plane

	// Rotations keep the cell and change only the orientation block.
	buf = append(buf,
		Arc{To: int(theta.Rotate(-1))*g.plane + cell, Weight: g.costs.Rotate},
		Arc{To: int(theta.Rotate(1))*g.plane + cell, Weight: g.costs.Rotate},
	)

	x, y := g.grid.Coordinate(cell)
	dx, dy := theta.Delta()
	nx, ny := x+dx, y+dy
	if g.grid.Free(nx, ny) {
		buf = append(buf, Arc{To: int(theta)*g.plane + g.grid.Index(nx, ny), Weight: g.costs.Move})
	}
	return buf
}

// Successors appends the outgoing edges of s in State form.
// The caller must ensure Contains(s).
func (g *Graph) Successors(s State, buf []Edge) []Edge {
	var arcs [3]Arc
	for _, a := range g.Arcs(g.Index(s), arcs[:0]) {
		buf = append(buf, Edge{To: g.StateAt(a.To), Weight: a.Weight})
	}
	return buf
}

// NewField allocates a Field shaped for this graph, filled with v.
func (g *Graph) NewField(v float64) *Field {
	return NewField(g.grid.Width, g.grid.Height, v)
}
