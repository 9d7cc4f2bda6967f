package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Dijkstra computes the cost of reaching every state of g from source.
//
// Returns:
//
//   - res.Costs: dense field; 0 at the source, +Inf for unreachable states.
//   - err: one of the sentinel errors on invalid input.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGraph).
//  2. source heading must be valid (ErrBadOrientation).
//  3. source cell must be in bounds (ErrSourceOutOfBounds).
//  4. source cell must be free (ErrSourceBlocked).
//
// Complexity:
//
//   - Time:  O(E log V)
//   - Space: O(V + E)
func Dijkstra(g *thetagraph.Graph, source thetagraph.State, opts ...Option) (*Result, error) {
	// 1) Build Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if g == nil {
		return nil, ErrNilGraph
	}
	if !source.Theta.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrBadOrientation, source)
	}
	grid := g.Grid()
	if !grid.InBounds(source.X, source.Y) {
		return nil, fmt.Errorf("%w: %s on %dx%d grid", ErrSourceOutOfBounds, source, grid.Width, grid.Height)
	}
	if !grid.Free(source.X, source.Y) {
		return nil, fmt.Errorf("%w: %s", ErrSourceBlocked, source)
	}

	// 3) Prepare data structures sized once for the whole state space.
	n := g.NumStates()
	r := &runner{
		g:       g,
		options: cfg,
		cost:    g.NewField(math.Inf(1)),
		settled: make([]bool, n),
		pq:      make(statePQ, 0, 64),
		res:     &Result{Source: source},
	}

	// 4) Seed and run.
	r.init(g.Index(source))
	r.process()

	r.res.Costs = r.cost
	return r.res, nil
}

// runner holds the mutable state for a single search.
type runner struct {
	g       *thetagraph.Graph // read-only input graph
	options Options
	cost    *thetagraph.Field // best known cost per state
	settled []bool            // true once a state's cost is final
	pq      statePQ           // lazy min-heap
	arcs    [3]thetagraph.Arc // scratch buffer for outgoing arcs
	res     *Result
}

// init sets the source cost to zero and pushes it onto the heap.
func (r *runner) init(src int) {
	r.cost.Values[src] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, stateItem{cost: 0, idx: src})
	r.res.Pushed++
}

// process repeatedly settles the cheapest unsettled state until the heap is
// empty or the frontier minimum exceeds MaxCost.
func (r *runner) process() {
	for r.pq.Len() > 0 {
		// 1) Pop the smallest (cost, index) entry.
		item := heap.Pop(&r.pq).(stateItem)

		// 2) Skip stale entries of already settled states.
		if r.settled[item.idx] {
			r.res.Stale++
			continue
		}

		// 3) Past the cap nothing cheaper remains; stop.
		if item.cost > r.options.MaxCost {
			break
		}

		// 4) Non-negative weights make the first pop final.
		r.settled[item.idx] = true
		r.res.Settled++

		r.relax(item)
	}
}

// relax pushes every strictly improved, unsettled neighbour of u.
func (r *runner) relax(u stateItem) {
	for _, a := range r.g.Arcs(u.idx, r.arcs[:0]) {
		if r.settled[a.To] {
			continue
		}
		nc := u.cost + a.Weight
		if nc > r.options.MaxCost {
			continue
		}
		// Strict "<" so equal-cost rediscoveries do not add duplicates.
		if nc >= r.cost.Values[a.To] {
			continue
		}
		r.cost.Values[a.To] = nc
		heap.Push(&r.pq, stateItem{cost: nc, idx: a.To})
		r.res.Pushed++
	}
}

// stateItem is a frontier entry: a state index and its tentative cost.
type stateItem struct {
	cost float64
	idx  int
}

// statePQ is a min-heap of stateItem ordered by (cost, idx) ascending.
// Entries are values, not pointers; a state may appear several times and
// outdated copies are dropped when popped.
type statePQ []stateItem

// Len returns the number of items in the heap.
func (pq statePQ) Len() int { return len(pq) }

// Less orders by cost, then by state index for a deterministic tie-break.
func (pq statePQ) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].idx < pq[j].idx
}

// Swap swaps two elements in the heap.
func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(stateItem)) }

// Pop removes and returns the last element after heap reordering.
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
