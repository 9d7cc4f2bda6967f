package focal

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Sentinel errors returned by the composer.
var (
	// ErrNilGraph indicates a nil state graph.
	ErrNilGraph = errors.New("focal: graph is nil")

	// ErrInvalidEndpoint indicates a start or goal off the grid, on a blocked
	// cell, or start and goal being the same state.
	ErrInvalidEndpoint = errors.New("focal: invalid endpoint")

	// ErrUnreachableGoal indicates the goal state cannot be reached from the start.
	ErrUnreachableGoal = errors.New("focal: goal unreachable from start")

	// ErrDegenerateRatio indicates a not-a-number focal value.
	ErrDegenerateRatio = errors.New("focal: degenerate ratio")
)

// defaultMaxResample bounds the goal-resampling guard.
const defaultMaxResample = 64

// Options configures a Composer.
type Options struct {
	// Concurrent runs the forward and reverse searches on two goroutines.
	Concurrent bool
	// MaxResample bounds how many times ComposeResampling asks for a new goal.
	MaxResample int
	// Horizon caps the cost explored by each search. States past it from
	// either endpoint get focal value 0. +Inf disables the cap.
	Horizon float64
}

// Option is a functional option for NewComposer.
type Option func(*Options)

// WithConcurrentSearch runs the two searches of a sample in parallel.
// Results are identical to the sequential mode.
func WithConcurrentSearch() Option {
	return func(o *Options) { o.Concurrent = true }
}

// WithMaxResample sets the goal-resampling bound. Panics if n < 1.
func WithMaxResample(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("focal: WithMaxResample(%d): must be ≥ 1", n))
	}
	return func(o *Options) { o.MaxResample = n }
}

// WithHorizon caps both searches at cost h. A goal beyond h from the start
// is reported as ErrUnreachableGoal. Panics if h is negative or NaN.
func WithHorizon(h float64) Option {
	if h < 0 || math.IsNaN(h) {
		panic(fmt.Sprintf("focal: WithHorizon(%v): must be ≥ 0", h))
	}
	return func(o *Options) { o.Horizon = h }
}

// DefaultOptions returns sequential, unbounded searches and a resample bound of 64.
func DefaultOptions() Options {
	return Options{Concurrent: false, MaxResample: defaultMaxResample, Horizon: math.Inf(1)}
}

// SearchStats are the frontier counters of one search.
type SearchStats struct {
	Settled int
	Pushed  int
	Stale   int
}

// Sample is one accepted label.
type Sample struct {
	Start     thetagraph.State
	Goal      thetagraph.State
	Optimal   float64           // optimal start→goal cost
	Focal     *thetagraph.Field // optimal / total per state
	OnPath    int               // states with focal == 1
	Resampled int               // goals redrawn by ComposeResampling

	Forward SearchStats
	Reverse SearchStats
}
