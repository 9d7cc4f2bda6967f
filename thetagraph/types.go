package thetagraph

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the thetagraph package.
var (
	// ErrNilGrid indicates that New was called with a nil grid.
	ErrNilGrid = errors.New("thetagraph: grid is nil")

	// ErrNegativeWeight indicates a negative rotation or move cost.
	ErrNegativeWeight = errors.New("thetagraph: negative transition cost")

	// ErrFieldShape indicates two fields with different dimensions were combined.
	ErrFieldShape = errors.New("thetagraph: field dimensions differ")
)

// NumOrientations is the size of the orientation axis.
const NumOrientations = 4

// Orientation is a discrete heading; arithmetic is modulo NumOrientations.
type Orientation uint8

// The four headings in cyclic order, named by their unit vector.
const (
	PosY Orientation = iota // (0, 1)
	PosX                    // (1, 0)
	NegY                    // (0,-1)
	NegX                    // (-1,0)
)

// deltas holds the unit movement vector of every orientation.
var deltas = [NumOrientations][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Valid reports whether o is one of the four headings.
func (o Orientation) Valid() bool { return o < NumOrientations }

// Delta returns the unit movement vector (dx, dy) of o.
func (o Orientation) Delta() (dx, dy int) {
	d := deltas[o%NumOrientations]
	return d[0], d[1]
}

// Rotate returns o turned by k steps (negative k turns the other way).
func (o Orientation) Rotate(k int) Orientation {
	r := (int(o) + k) % NumOrientations
	if r < 0 {
		r += NumOrientations
	}
	return Orientation(r)
}

// Opposite returns the heading rotated by 180°.
func (o Orientation) Opposite() Orientation { return o.Rotate(2) }

// State is one node of the search graph.
type State struct {
	Theta Orientation
	X, Y  int
}

// String renders the state as "(θ,x,y)".
func (s State) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.Theta, s.X, s.Y)
}

// SameCell reports whether s and o occupy the same cell, ignoring heading.
func (s State) SameCell(o State) bool { return s.X == o.X && s.Y == o.Y }

// Arc is an outgoing transition in index space.
type Arc struct {
	To     int     // linear state index of the destination
	Weight float64 // non-negative transition cost
}

// Edge is an outgoing transition in State space.
type Edge struct {
	To     State
	Weight float64
}

// Costs holds the per-transition weights.
type Costs struct {
	Rotate float64 // cost of one 90° in-place rotation
	Move   float64 // cost of one forward step
}

// DefaultCosts returns the unit-cost configuration.
func DefaultCosts() Costs {
	return Costs{Rotate: 1, Move: 1}
}

// Option configures a Graph.
type Option func(*Costs)

// WithRotationCost sets the weight of each rotation arc.
// Panics on negative values to surface programmer error early.
func WithRotationCost(c float64) Option {
	if c < 0 {
		panic(fmt.Sprintf("thetagraph: WithRotationCost(%v): cost must be non-negative", c))
	}
	return func(o *Costs) { o.Rotate = c }
}

// WithMoveCost sets the weight of each forward move arc.
// Panics on negative values.
func WithMoveCost(c float64) Option {
	if c < 0 {
		panic(fmt.Sprintf("thetagraph: WithMoveCost(%v): cost must be non-negative", c))
	}
	return func(o *Costs) { o.Move = c }
}

// WithCosts replaces both weights at once.
// Panics if either is negative.
func WithCosts(c Costs) Option {
	if c.Rotate < 0 || c.Move < 0 {
		panic(fmt.Sprintf("thetagraph: WithCosts(%+v): costs must be non-negative", c))
	}
	return func(o *Costs) { *o = c }
}
