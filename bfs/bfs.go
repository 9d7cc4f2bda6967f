package bfs

import (
	"fmt"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// walker encapsulates mutable BFS state.
type walker struct {
	graph *thetagraph.Graph
	opts  BFSOptions
	queue []int
	arcs  [3]thetagraph.Arc
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from start, applying any
// number of functional Options.
// Returns ErrGraphNil or ErrStartStateInvalid for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any user-supplied hook error.
//
// Unlike dijkstra.Dijkstra, the start cell may be blocked: BFS only
// explores the transition structure.
func BFS(g *thetagraph.Graph, start thetagraph.State, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Contains(start) {
		return nil, fmt.Errorf("%w: %s", ErrStartStateInvalid, start)
	}

	n := g.NumStates()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]int, 0, n),
		res: &BFSResult{
			Start:  start,
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
			graph:  g,
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
		w.res.Parent[i] = -1
	}

	w.enqueue(g.Index(start), 0, -1)
	return w.res, w.loop()
}

// enqueue marks idx reached at depth d with the given parent.
func (w *walker) enqueue(idx, d, parent int) {
	w.res.Depth[idx] = d
	w.res.Parent[idx] = parent
	w.queue = append(w.queue, idx)
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for head := 0; head < len(w.queue); head++ {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		u := w.queue[head]
		d := w.res.Depth[u]
		w.res.Order = append(w.res.Order, u)
		if err := w.opts.OnVisit(w.graph.StateAt(u), d); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %s: %w", w.graph.StateAt(u), err)
		}
		if w.opts.MaxDepth > 0 && d >= w.opts.MaxDepth {
			continue
		}
		for _, a := range w.graph.Arcs(u, w.arcs[:0]) {
			if w.res.Depth[a.To] < 0 {
				w.enqueue(a.To, d+1, u)
			}
		}
	}
	return nil
}
