package dijkstra

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *thetagraph.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrBadOrientation indicates a source heading outside {0,1,2,3}.
	ErrBadOrientation = errors.New("dijkstra: source orientation out of range")

	// ErrSourceOutOfBounds indicates that the source cell is not on the grid.
	ErrSourceOutOfBounds = errors.New("dijkstra: source cell out of bounds")

	// ErrSourceBlocked indicates that the source cell is an obstacle.
	ErrSourceBlocked = errors.New("dijkstra: source cell is blocked")

	// ErrBadMaxCost indicates that MaxCost was set to a negative or NaN value.
	ErrBadMaxCost = errors.New("dijkstra: MaxCost must be non-negative")
)

// Options configures the behavior of the search.
//
// MaxCost – optional cap on costs to explore (states beyond are left at +Inf).
//
//	Must be ≥ 0. Default is +Inf (no cap).
type Options struct {
	MaxCost float64
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithMaxCost sets a maximum cost threshold.
// States whose shortest cost would exceed this value are not explored.
// Must pass a non-negative value; negative or NaN values panic with ErrBadMaxCost.
func WithMaxCost(max float64) Option {
	if max < 0 || math.IsNaN(max) {
		panic(fmt.Sprintf("%s (got %v)", ErrBadMaxCost.Error(), max))
	}
	return func(o *Options) {
		o.MaxCost = max
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
//   - MaxCost: +Inf (explore everything reachable).
func DefaultOptions() Options {
	return Options{
		MaxCost: math.Inf(1),
	}
}

// Result is the outcome of one search.
//
// Costs   – cost of every state from the source; +Inf if never reached.
// Settled – number of states whose cost was finalized.
// Pushed  – number of frontier insertions, including the source.
// Stale   – number of popped entries discarded because their state was
// already settled (lazy deletion).
type Result struct {
	Source  thetagraph.State
	Costs   *thetagraph.Field
	Settled int
	Pushed  int
	Stale   int
}

// Reached reports whether s has a finite cost.
func (r *Result) Reached(s thetagraph.State) bool {
	return !math.IsInf(r.Costs.At(s), 1)
}
