package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartStateInvalid is returned when the start state is not on the graph.
	ErrStartStateInvalid = errors.New("bfs: start state not in graph")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNoPath is returned by PathTo for an unreached destination.
	ErrNoPath = errors.New("bfs: destination not reached")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when BFS is invoked.
type Option func(*BFSOptions)

// BFSOptions holds parameters and callbacks to customize BFS execution.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a state. If it returns an error,
	// BFS aborts and propagates that error.
	OnVisit func(s thetagraph.State, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with sane defaults:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no-op OnVisit hook
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:      context.Background(),
		OnVisit:  func(thetagraph.State, int) error { return nil },
		MaxDepth: 0,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the BFS.
func WithOnVisit(fn func(s thetagraph.State, depth int) error) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// BFSResult holds the outcome of a BFS traversal in state-index space:
//   - Order:  state indices in visit sequence.
//   - Depth:  steps from the start per state index, -1 if unreached.
//   - Parent: predecessor index per state, -1 for the start and unreached states.
type BFSResult struct {
	Start  thetagraph.State
	Order  []int
	Depth  []int
	Parent []int

	graph *thetagraph.Graph
}

// DepthOf returns the step count to s, or -1 if unreached.
func (r *BFSResult) DepthOf(s thetagraph.State) int {
	return r.Depth[r.graph.Index(s)]
}

// PathTo reconstructs one shortest step sequence from the start to dest,
// both included. Returns ErrNoPath if dest was not reached.
func (r *BFSResult) PathTo(dest thetagraph.State) ([]thetagraph.State, error) {
	if !r.graph.Contains(dest) || r.DepthOf(dest) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPath, dest)
	}
	// build reversed path
	path := []thetagraph.State{}
	for cur := r.graph.Index(dest); cur >= 0; cur = r.Parent[cur] {
		path = append(path, r.graph.StateAt(cur))
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
