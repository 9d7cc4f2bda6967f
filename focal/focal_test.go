// Package focal_test contains unit tests for the focal label composer.
// These tests cover endpoint validation, the corridor and rotation-only
// reference cases, unreachable and degenerate failures, the triangle bound
// on random grids, brute-force agreement of the reverse field and the
// equivalence of sequential and concurrent searches.
package focal_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thetafocal/dijkstra"
	"github.com/katalvlaran/thetafocal/focal"
	"github.com/katalvlaran/thetafocal/gridgraph"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

// st is shorthand for a State literal.
func st(theta thetagraph.Orientation, x, y int) thetagraph.State {
	return thetagraph.State{Theta: theta, X: x, Y: y}
}

// randomScene builds a w×h grid with obstacle probability p and picks two
// distinct free states, retrying until both exist.
func randomScene(t testing.TB, rng *rand.Rand, w, h int, p float64, opts ...thetagraph.Option) (*thetagraph.Graph, thetagraph.State, thetagraph.State) {
	t.Helper()
	for {
		blocked := make([]bool, w*h)
		for i := range blocked {
			blocked[i] = rng.Float64() < p
		}
		g, err := gridgraph.FromBlocked(w, h, blocked)
		require.NoError(t, err)
		free := g.FreeCells()
		if len(free) < 2 {
			continue
		}
		pick := func() thetagraph.State {
			x, y := g.Coordinate(free[rng.Intn(len(free))])
			return st(thetagraph.Orientation(rng.Intn(4)), x, y)
		}
		a, b := pick(), pick()
		if a == b {
			continue
		}
		tg, err := thetagraph.New(g, opts...)
		require.NoError(t, err)
		return tg, a, b
	}
}

// ------------------------------------------------------------------------
// 1. Validation
// ------------------------------------------------------------------------

func TestCompose_Validation(t *testing.T) {
	_, err := focal.NewComposer(nil)
	require.ErrorIs(t, err, focal.ErrNilGraph)

	g, _ := gridgraph.From2D([][]int{{0, 1, 0}})
	tg, _ := thetagraph.New(g)

	cases := []struct {
		name        string
		start, goal thetagraph.State
	}{
		{"start off grid", st(0, 1, 0), st(0, 0, 2)},
		{"goal off grid", st(0, 0, 0), st(0, 0, 3)},
		{"start blocked", st(0, 0, 1), st(0, 0, 2)},
		{"goal blocked", st(0, 0, 0), st(2, 0, 1)},
		{"bad heading", st(9, 0, 0), st(0, 0, 2)},
		{"start equals goal", st(1, 0, 2), st(1, 0, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := focal.Compose(tg, tc.start, tc.goal)
			require.ErrorIs(t, err, focal.ErrInvalidEndpoint)
		})
	}

	require.Panics(t, func() { focal.WithMaxResample(0) })
}

// ------------------------------------------------------------------------
// 2. Reference scenarios
// ------------------------------------------------------------------------

// TestCompose_Corridor is the 1×3 empty corridor from (0,0,0) to (0,0,2).
// The straight path scores 1, sideways headings 4 and backwards headings 6.
func TestCompose_Corridor(t *testing.T) {
	g, _ := gridgraph.Empty(1, 3)
	tg, _ := thetagraph.New(g)

	s, err := focal.Compose(tg, st(thetagraph.PosY, 0, 0), st(thetagraph.PosY, 0, 2))
	require.NoError(t, err)
	require.Equal(t, 2.0, s.Optimal)
	require.Equal(t, 3, s.OnPath)
	require.Equal(t, 0, s.Resampled)

	for y := 0; y < 3; y++ {
		require.Equal(t, 1.0, s.Focal.At(st(thetagraph.PosY, 0, y)), "y=%d", y)
		require.Equal(t, 0.5, s.Focal.At(st(thetagraph.PosX, 0, y)), "y=%d", y)
		require.Equal(t, 0.5, s.Focal.At(st(thetagraph.NegX, 0, y)), "y=%d", y)
		require.InDelta(t, 1.0/3, s.Focal.At(st(thetagraph.NegY, 0, y)), 1e-12, "y=%d", y)
	}
	require.Equal(t, s.Forward.Pushed, s.Forward.Settled+s.Forward.Stale)
	require.Equal(t, 12, s.Forward.Settled)
	require.Equal(t, 12, s.Reverse.Settled)
}

// TestCompose_Horizon caps the corridor searches at cost 2. The straight
// path survives, the sideways headings of the middle cell (2 from either
// end) keep 0.5, everything else falls past the cap and reads 0.
func TestCompose_Horizon(t *testing.T) {
	g, _ := gridgraph.Empty(1, 3)
	tg, _ := thetagraph.New(g)
	start, goal := st(thetagraph.PosY, 0, 0), st(thetagraph.PosY, 0, 2)

	s, err := focal.Compose(tg, start, goal, focal.WithHorizon(2))
	require.NoError(t, err)
	require.Equal(t, 2.0, s.Optimal)
	require.Equal(t, 3, s.OnPath)
	require.Equal(t, 8, s.Forward.Settled)

	want := map[thetagraph.Orientation][3]float64{
		thetagraph.PosY: {1, 1, 1},
		thetagraph.PosX: {0, 0.5, 0},
		thetagraph.NegX: {0, 0.5, 0},
		thetagraph.NegY: {0, 0, 0},
	}
	for theta, row := range want {
		for y, v := range row {
			require.Equal(t, v, s.Focal.At(st(theta, 0, y)), "θ=%d y=%d", theta, y)
		}
	}

	_, err = focal.Compose(tg, start, goal, focal.WithHorizon(1))
	require.ErrorIs(t, err, focal.ErrUnreachableGoal)

	require.Panics(t, func() { focal.WithHorizon(-1) })
}

// TestCompose_RotationOnly uses a 1×1 free grid; the goal differs only in
// heading, so every state of the single cell lies on some optimal path.
func TestCompose_RotationOnly(t *testing.T) {
	g, _ := gridgraph.Empty(1, 1)
	tg, _ := thetagraph.New(g)

	s, err := focal.Compose(tg, st(thetagraph.PosY, 0, 0), st(thetagraph.NegY, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 2.0, s.Optimal)
	require.Equal(t, []float64{1, 1, 1, 1}, s.Focal.Values)
	require.Equal(t, 4, s.OnPath)

	// Weighted rotations scale the optimum but not the ratio.
	tg, _ = thetagraph.New(g, thetagraph.WithRotationCost(1.5))
	s, err = focal.Compose(tg, st(thetagraph.PosY, 0, 0), st(thetagraph.PosX, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 1.5, s.Optimal)
	// The opposite pair (NegY, NegX) costs 1.5+3 on the best detour.
	require.Equal(t, []float64{1, 1, 1.5 / 4.5, 1.5 / 4.5}, s.Focal.Values)
}

// TestCompose_Unreachable walls off the goal.
func TestCompose_Unreachable(t *testing.T) {
	g, _ := gridgraph.From2D([][]int{{0, 1, 0}})
	tg, _ := thetagraph.New(g)

	_, err := focal.Compose(tg, st(0, 0, 0), st(0, 0, 2))
	require.ErrorIs(t, err, focal.ErrUnreachableGoal)
}

// TestCompose_Degenerate makes rotations free so that a rotation-only goal
// has zero optimal cost and zero total at every state.
func TestCompose_Degenerate(t *testing.T) {
	g, _ := gridgraph.Empty(1, 1)
	tg, _ := thetagraph.New(g, thetagraph.WithRotationCost(0))

	_, err := focal.Compose(tg, st(0, 0, 0), st(2, 0, 0))
	require.ErrorIs(t, err, focal.ErrDegenerateRatio)
}

// TestCompose_UnreachableStatesAreZero checks that states cut off from both
// endpoints get 0 rather than NaN.
func TestCompose_UnreachableStatesAreZero(t *testing.T) {
	// Column x=0 is a 3-cell corridor; column x=2 is cut off by x=1.
	g, _ := gridgraph.From2D([][]int{{0, 0, 0}, {1, 1, 1}, {0, 0, 0}})
	tg, _ := thetagraph.New(g)

	s, err := focal.Compose(tg, st(0, 0, 0), st(0, 0, 2))
	require.NoError(t, err)
	for theta := thetagraph.Orientation(0); theta < thetagraph.NumOrientations; theta++ {
		for y := 0; y < 3; y++ {
			require.Equal(t, 0.0, s.Focal.At(st(theta, 2, y)))
		}
	}
}

// ------------------------------------------------------------------------
// 3. Properties on random grids
// ------------------------------------------------------------------------

// TestCompose_Bounds checks 0 ≤ focal ≤ 1 everywhere, exactly 1 at both
// endpoints, and that finite-total states satisfy the triangle bound.
func TestCompose_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	accepted := 0
	for trial := 0; trial < 60; trial++ {
		tg, start, goal := randomScene(t, rng, 8, 8, 0.25)
		s, err := focal.Compose(tg, start, goal)
		if errors.Is(err, focal.ErrUnreachableGoal) {
			continue
		}
		require.NoError(t, err)
		accepted++

		require.Greater(t, s.Optimal, 0.0)
		require.Equal(t, 1.0, s.Focal.At(start))
		require.Equal(t, 1.0, s.Focal.At(goal))
		require.GreaterOrEqual(t, s.OnPath, 2)
		for i, v := range s.Focal.Values {
			require.False(t, math.IsNaN(v))
			require.GreaterOrEqual(t, v, 0.0, "state %s", s.Focal.StateAt(i))
			require.LessOrEqual(t, v, 1.0, "state %s", s.Focal.StateAt(i))
		}
	}
	require.Greater(t, accepted, 10)
}

// TestCompose_ReverseFieldBruteForce recomputes every label from one
// forward search per state: focal(s) = optimal / (d(start,s) + d(s,goal)).
func TestCompose_ReverseFieldBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tg, start, goal := randomScene(t, rng, 4, 4, 0.2, thetagraph.WithRotationCost(0.5))

	s, err := focal.Compose(tg, start, goal)
	if errors.Is(err, focal.ErrUnreachableGoal) {
		t.Skip("random scene has no path")
	}
	require.NoError(t, err)

	fwd, err := dijkstra.Dijkstra(tg, start)
	require.NoError(t, err)
	for i := 0; i < tg.NumStates(); i++ {
		state := tg.StateAt(i)
		want := 0.0
		if tg.Grid().Free(state.X, state.Y) {
			res, err := dijkstra.Dijkstra(tg, state)
			require.NoError(t, err)
			total := fwd.Costs.At(state) + res.Costs.At(goal)
			if !math.IsInf(total, 1) {
				want = s.Optimal / total
			}
		} else if v := s.Focal.Values[i]; v != 0 {
			// Blocked cells are never reached by either search.
			t.Fatalf("blocked state %s has focal %v", state, v)
		}
		require.InDelta(t, want, s.Focal.Values[i], 1e-12, "state %s", state)
	}
}

// TestCompose_OnPathOracle builds the tight-arc DAG of the forward search
// and walks it back from the goal. The states reached are exactly those on
// some optimal path, and must be exactly the states with focal value 1.
func TestCompose_OnPathOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	checked := 0
	for trial := 0; trial < 30; trial++ {
		tg, start, goal := randomScene(t, rng, 7, 6, 0.25)
		s, err := focal.Compose(tg, start, goal)
		if errors.Is(err, focal.ErrUnreachableGoal) {
			continue
		}
		require.NoError(t, err)
		checked++

		fwd, err := dijkstra.Dijkstra(tg, start)
		require.NoError(t, err)
		cost := fwd.Costs.Values
		preds := make([][]int, tg.NumStates())
		var buf []thetagraph.Arc
		for u := range cost {
			if math.IsInf(cost[u], 1) {
				continue
			}
			for _, a := range tg.Arcs(u, buf[:0]) {
				if cost[u]+a.Weight == cost[a.To] {
					preds[a.To] = append(preds[a.To], u)
				}
			}
		}

		onPath := make([]bool, tg.NumStates())
		queue := []int{tg.Index(goal)}
		onPath[queue[0]] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, u := range preds[v] {
				if !onPath[u] {
					onPath[u] = true
					queue = append(queue, u)
				}
			}
		}

		count := 0
		for i, v := range s.Focal.Values {
			require.Equal(t, onPath[i], v == 1, "state %s focal %v", tg.StateAt(i), v)
			if onPath[i] {
				count++
			}
		}
		require.Equal(t, count, s.OnPath)
	}
	require.Greater(t, checked, 5)
}

// TestCompose_ConcurrentMatchesSequential runs both modes on the same inputs.
func TestCompose_ConcurrentMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		tg, start, goal := randomScene(t, rng, 12, 9, 0.3)
		seq, errSeq := focal.Compose(tg, start, goal)
		par, errPar := focal.Compose(tg, start, goal, focal.WithConcurrentSearch())
		if errSeq != nil {
			require.ErrorIs(t, errPar, focal.ErrUnreachableGoal)
			require.ErrorIs(t, errSeq, focal.ErrUnreachableGoal)
			continue
		}
		require.NoError(t, errPar)
		require.Equal(t, seq.Optimal, par.Optimal)
		require.Equal(t, seq.Focal.Values, par.Focal.Values)
		require.Equal(t, seq.Forward, par.Forward)
		require.Equal(t, seq.Reverse, par.Reverse)
	}
}

// ------------------------------------------------------------------------
// 4. Goal resampling
// ------------------------------------------------------------------------

func TestComposeResampling(t *testing.T) {
	g, _ := gridgraph.Empty(1, 3)
	tg, _ := thetagraph.New(g)
	c, err := focal.NewComposer(tg, focal.WithMaxResample(3))
	require.NoError(t, err)

	start := st(0, 0, 0)

	t.Run("distinct goal is not redrawn", func(t *testing.T) {
		s, err := c.ComposeResampling(start, st(0, 0, 2), func() (thetagraph.State, error) {
			t.Fatal("next must not be called")
			return thetagraph.State{}, nil
		})
		require.NoError(t, err)
		require.Equal(t, 0, s.Resampled)
	})

	t.Run("redraws until distinct", func(t *testing.T) {
		draws := []thetagraph.State{start, start, st(0, 0, 2)}
		s, err := c.ComposeResampling(start, start, func() (thetagraph.State, error) {
			next := draws[0]
			draws = draws[1:]
			return next, nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, s.Resampled)
		require.Equal(t, st(0, 0, 2), s.Goal)
	})

	t.Run("bound exhausted", func(t *testing.T) {
		calls := 0
		_, err := c.ComposeResampling(start, start, func() (thetagraph.State, error) {
			calls++
			return start, nil
		})
		require.ErrorIs(t, err, focal.ErrInvalidEndpoint)
		require.Equal(t, 3, calls)
	})

	t.Run("sampler error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := c.ComposeResampling(start, start, func() (thetagraph.State, error) {
			return thetagraph.State{}, boom
		})
		require.ErrorIs(t, err, boom)
	})
}
