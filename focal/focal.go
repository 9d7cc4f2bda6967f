package focal

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/thetafocal/dijkstra"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Composer produces focal labels on one state graph. It holds no per-sample
// state and may be shared by concurrent callers.
type Composer struct {
	graph *thetagraph.Graph
	opts  Options
}

// NewComposer binds a composer to g.
func NewComposer(g *thetagraph.Graph, opts ...Option) (*Composer, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Composer{graph: g, opts: o}, nil
}

// Compose is a one-shot helper around NewComposer(g).Compose.
func Compose(g *thetagraph.Graph, start, goal thetagraph.State, opts ...Option) (*Sample, error) {
	c, err := NewComposer(g, opts...)
	if err != nil {
		return nil, err
	}
	return c.Compose(start, goal)
}

// Compose computes the focal field for start → goal.
// Identical start and goal states are rejected with ErrInvalidEndpoint; use
// ComposeResampling to redraw the goal instead.
//
// Complexity: two searches, O(E log V) each, plus O(V) to combine.
func (c *Composer) Compose(start, goal thetagraph.State) (*Sample, error) {
	if err := c.validate("start", start); err != nil {
		return nil, err
	}
	if err := c.validate("goal", goal); err != nil {
		return nil, err
	}
	if start == goal {
		return nil, fmt.Errorf("%w: start and goal are both %s", ErrInvalidEndpoint, start)
	}

	// The reverse field is a forward search from the goal cell facing away
	// from the goal heading. Reversing a rotate/move path swaps every move
	// for one in the opposite direction, which is exactly a 180° flip of the
	// heading; so "cost from the flipped goal to (θ,x,y)" equals "cost from
	// (θ+2,x,y) to the goal". The roll by 2 in combine re-aligns the axis.
	reverseSrc := thetagraph.State{Theta: goal.Theta.Opposite(), X: goal.X, Y: goal.Y}

	fwd, rev, err := c.searchPair(start, reverseSrc)
	if err != nil {
		return nil, err
	}

	if !fwd.Reached(goal) {
		return nil, fmt.Errorf("%w: %s → %s", ErrUnreachableGoal, start, goal)
	}
	optimal := fwd.Costs.At(goal)

	field, onPath, err := combine(fwd.Costs, rev.Costs, optimal)
	if err != nil {
		return nil, fmt.Errorf("%s → %s: %w", start, goal, err)
	}

	return &Sample{
		Start:   start,
		Goal:    goal,
		Optimal: optimal,
		Focal:   field,
		OnPath:  onPath,
		Forward: SearchStats{Settled: fwd.Settled, Pushed: fwd.Pushed, Stale: fwd.Stale},
		Reverse: SearchStats{Settled: rev.Settled, Pushed: rev.Pushed, Stale: rev.Stale},
	}, nil
}

// ComposeResampling is Compose with the goal guard: while goal equals start
// it calls next for a fresh goal, at most MaxResample times. Errors from next
// are returned unchanged. Other failures are not retried.
func (c *Composer) ComposeResampling(start, goal thetagraph.State, next func() (thetagraph.State, error)) (*Sample, error) {
	redrawn := 0
	for goal == start {
		if redrawn >= c.opts.MaxResample {
			return nil, fmt.Errorf("%w: goal equals start %s after %d redraws", ErrInvalidEndpoint, start, redrawn)
		}
		var err error
		if goal, err = next(); err != nil {
			return nil, err
		}
		redrawn++
	}
	s, err := c.Compose(start, goal)
	if err != nil {
		return nil, err
	}
	s.Resampled = redrawn
	return s, nil
}

// validate checks that s is a free, in-bounds state.
func (c *Composer) validate(role string, s thetagraph.State) error {
	if !c.graph.Contains(s) {
		return fmt.Errorf("%w: %s %s is off the grid", ErrInvalidEndpoint, role, s)
	}
	if !c.graph.Grid().Free(s.X, s.Y) {
		return fmt.Errorf("%w: %s %s is on an obstacle", ErrInvalidEndpoint, role, s)
	}
	return nil
}

// searchPair runs both searches, concurrently if configured. The searches
// share only the read-only graph.
func (c *Composer) searchPair(a, b thetagraph.State) (*dijkstra.Result, *dijkstra.Result, error) {
	var opts []dijkstra.Option
	if !math.IsInf(c.opts.Horizon, 1) {
		opts = append(opts, dijkstra.WithMaxCost(c.opts.Horizon))
	}
	if !c.opts.Concurrent {
		ra, err := dijkstra.Dijkstra(c.graph, a, opts...)
		if err != nil {
			return nil, nil, err
		}
		rb, err := dijkstra.Dijkstra(c.graph, b, opts...)
		if err != nil {
			return nil, nil, err
		}
		return ra, rb, nil
	}

	var (
		wg         sync.WaitGroup
		ra, rb     *dijkstra.Result
		errA, errB error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ra, errA = dijkstra.Dijkstra(c.graph, a, opts...)
	}()
	go func() {
		defer wg.Done()
		rb, errB = dijkstra.Dijkstra(c.graph, b, opts...)
	}()
	wg.Wait()
	if errA != nil {
		return nil, nil, errA
	}
	if errB != nil {
		return nil, nil, errB
	}
	return ra, rb, nil
}

// combine sums the forward field with the reverse field rolled by two and
// divides optimal by the total. It returns the focal field and the number of
// states whose value is exactly 1.
func combine(fwd, rev *thetagraph.Field, optimal float64) (*thetagraph.Field, int, error) {
	if !fwd.SameShape(rev) {
		return nil, 0, thetagraph.ErrFieldShape
	}
	aligned := rev.RollOrientation(2)

	out := &thetagraph.Field{Width: fwd.Width, Height: fwd.Height, Values: make([]float64, fwd.Len())}
	floats.AddTo(out.Values, fwd.Values, aligned.Values)

	onPath := 0
	for i, total := range out.Values {
		out.Values[i] = optimal / total
		if out.Values[i] == 1 {
			onPath++
		}
	}
	if floats.HasNaN(out.Values) {
		for i, v := range out.Values {
			if math.IsNaN(v) {
				return nil, 0, fmt.Errorf("%w: optimal=%v total=%v at %s",
					ErrDegenerateRatio, optimal, fwd.Values[i]+aligned.Values[i], out.StateAt(i))
			}
		}
	}
	return out, onPath, nil
}
