package bfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thetafocal/bfs"
	"github.com/katalvlaran/thetafocal/gridgraph"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

func corridor(t *testing.T, h int) *thetagraph.Graph {
	t.Helper()
	g, err := gridgraph.Empty(1, h)
	require.NoError(t, err)
	tg, err := thetagraph.New(g)
	require.NoError(t, err)
	return tg
}

func TestBFS_Validation(t *testing.T) {
	_, err := bfs.BFS(nil, thetagraph.State{})
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	tg := corridor(t, 3)
	_, err = bfs.BFS(tg, thetagraph.State{X: 5})
	require.ErrorIs(t, err, bfs.ErrStartStateInvalid)

	_, err = bfs.BFS(tg, thetagraph.State{}, bfs.WithMaxDepth(-1))
	require.ErrorIs(t, err, bfs.ErrOptionViolation)
}

// TestBFS_Corridor checks depths on a 1×3 corridor from (0,0,0) facing +y.
func TestBFS_Corridor(t *testing.T) {
	tg := corridor(t, 3)
	res, err := bfs.BFS(tg, thetagraph.State{Theta: thetagraph.PosY})
	require.NoError(t, err)

	cases := []struct {
		s    thetagraph.State
		want int
	}{
		{thetagraph.State{Theta: thetagraph.PosY, Y: 0}, 0},
		{thetagraph.State{Theta: thetagraph.PosY, Y: 2}, 2},
		{thetagraph.State{Theta: thetagraph.PosX, Y: 0}, 1},
		{thetagraph.State{Theta: thetagraph.NegY, Y: 0}, 2},
		{thetagraph.State{Theta: thetagraph.NegY, Y: 2}, 4},
		{thetagraph.State{Theta: thetagraph.NegX, Y: 1}, 2},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, res.DepthOf(tc.s), "depth of %s", tc.s)
	}
	require.Len(t, res.Order, tg.NumStates(), "every state reachable on an empty corridor")

	path, err := res.PathTo(thetagraph.State{Theta: thetagraph.PosY, Y: 2})
	require.NoError(t, err)
	require.Equal(t, []thetagraph.State{
		{Theta: thetagraph.PosY, Y: 0},
		{Theta: thetagraph.PosY, Y: 1},
		{Theta: thetagraph.PosY, Y: 2},
	}, path)
}

// TestBFS_Unreachable verifies walls cut the state space and PathTo reports it.
func TestBFS_Unreachable(t *testing.T) {
	g, _ := gridgraph.From2D([][]int{{0, 1, 0}})
	tg, _ := thetagraph.New(g)
	res, err := bfs.BFS(tg, thetagraph.State{})
	require.NoError(t, err)
	require.Equal(t, -1, res.DepthOf(thetagraph.State{Y: 2}))
	_, err = res.PathTo(thetagraph.State{Y: 2})
	require.ErrorIs(t, err, bfs.ErrNoPath)
	require.Len(t, res.Order, 4, "only the four headings of the start cell")
}

func TestBFS_MaxDepthAndHooks(t *testing.T) {
	tg := corridor(t, 5)
	var visited int
	res, err := bfs.BFS(tg, thetagraph.State{Theta: thetagraph.PosY},
		bfs.WithMaxDepth(1),
		bfs.WithOnVisit(func(thetagraph.State, int) error { visited++; return nil }),
	)
	require.NoError(t, err)
	// depth 0: start; depth 1: two rotations and one move.
	require.Equal(t, 4, visited)
	require.Equal(t, -1, res.DepthOf(thetagraph.State{Theta: thetagraph.PosY, Y: 2}))

	stop := errors.New("stop")
	_, err = bfs.BFS(tg, thetagraph.State{}, bfs.WithOnVisit(func(thetagraph.State, int) error { return stop }))
	require.ErrorIs(t, err, stop)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bfs.BFS(tg, thetagraph.State{}, bfs.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
