package gridgraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thetafocal/gridgraph"
)

//----------------------------------------------------------------------------//
// Construction and InBounds Tests
//----------------------------------------------------------------------------//

// TestFrom2D_Errors verifies that From2D rejects empty or ragged inputs.
func TestFrom2D_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]int
		err  error
	}{
		{"EmptyRows", [][]int{}, gridgraph.ErrEmptyGrid},
		{"EmptyCols", [][]int{{}}, gridgraph.ErrEmptyGrid},
		{"NonRectangular", [][]int{{1, 0}, {0}}, gridgraph.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gridgraph.From2D(tc.grid)
			if !errors.Is(err, tc.err) {
				t.Errorf("From2D(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
		})
	}
}

// TestFromBlocked_Errors checks dimension validation of the flat constructor.
func TestFromBlocked_Errors(t *testing.T) {
	_, err := gridgraph.FromBlocked(0, 3, nil)
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)

	_, err = gridgraph.FromBlocked(2, 2, make([]bool, 3))
	require.ErrorIs(t, err, gridgraph.ErrSizeMismatch)

	_, err = gridgraph.Empty(1, 0)
	require.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
}

// TestFrom2D_XMajor checks that values[x][y] maps to cell (x,y).
//
//	x=0: 0 1 0
//	x=1: 0 0 1
func TestFrom2D_XMajor(t *testing.T) {
	g, err := gridgraph.From2D([][]int{
		{0, 1, 0},
		{0, 0, 1},
	})
	require.NoError(t, err)
	require.Equal(t, 2, g.Width)
	require.Equal(t, 3, g.Height)

	require.True(t, g.Blocked(0, 1))
	require.True(t, g.Blocked(1, 2))
	require.True(t, g.Free(0, 0))
	require.True(t, g.Free(1, 1))
	require.Equal(t, 4, g.NumFree())
	require.Equal(t, []int{0, 2, 3, 4}, g.FreeCells())
	require.Equal(t, []bool{false, true, false, false, false, true}, g.Cells())
}

// TestFrom2D_NonZeroIsBlocked verifies that only 0 marks a free cell;
// negative and large values are obstacles.
func TestFrom2D_NonZeroIsBlocked(t *testing.T) {
	g, err := gridgraph.From2D([][]int{{0, -1, 1, 7}})
	require.NoError(t, err)
	require.True(t, g.Free(0, 0))
	require.True(t, g.Blocked(0, 1))
	require.True(t, g.Blocked(0, 2))
	require.True(t, g.Blocked(0, 3))
	require.Equal(t, 1, g.NumFree())
}

// TestFrom2D_DeepCopy ensures later mutation of the input does not leak in.
func TestFrom2D_DeepCopy(t *testing.T) {
	values := [][]int{{0, 0}}
	g, err := gridgraph.From2D(values)
	require.NoError(t, err)
	values[0][0] = 1
	require.True(t, g.Free(0, 0))

	flat := []bool{false, true}
	g2, err := gridgraph.FromBlocked(1, 2, flat)
	require.NoError(t, err)
	flat[1] = false
	require.True(t, g2.Blocked(0, 1))

	cells := g2.Cells()
	cells[0] = true
	require.True(t, g2.Free(0, 0))
}

// TestInBounds checks InBounds and Free on a 3×2 grid.
func TestInBounds(t *testing.T) {
	g, err := gridgraph.Empty(3, 2)
	if err != nil {
		t.Fatalf("Empty error: %v", err)
	}

	valid := [][2]int{{0, 0}, {2, 1}, {1, 1}}
	for _, xy := range valid {
		if !g.InBounds(xy[0], xy[1]) || !g.Free(xy[0], xy[1]) {
			t.Errorf("InBounds/Free(%d,%d)=false; want true", xy[0], xy[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {3, 0}, {1, 2}, {2, -1}}
	for _, xy := range invalid {
		if g.InBounds(xy[0], xy[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", xy[0], xy[1])
		}
		if g.Free(xy[0], xy[1]) || g.Blocked(xy[0], xy[1]) {
			t.Errorf("out-of-bounds (%d,%d) reported as a cell", xy[0], xy[1])
		}
	}
}

// TestIndexCoordinate round-trips every cell of a 4×3 grid.
func TestIndexCoordinate(t *testing.T) {
	g, err := gridgraph.Empty(4, 3)
	require.NoError(t, err)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			i := g.Index(x, y)
			require.Equal(t, x*3+y, i)
			gx, gy := g.Coordinate(i)
			require.Equal(t, [2]int{x, y}, [2]int{gx, gy})
		}
	}
}
