package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/thetafocal/bfs"
	"github.com/katalvlaran/thetafocal/gridgraph"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

// ExampleBFS shows the step count and one shortest action sequence for
// turning around and walking back down a 1×3 corridor.
func ExampleBFS() {
	g, _ := gridgraph.Empty(1, 3)
	tg, _ := thetagraph.New(g)

	res, _ := bfs.BFS(tg, thetagraph.State{Theta: thetagraph.PosY, X: 0, Y: 2})
	goal := thetagraph.State{Theta: thetagraph.NegY, X: 0, Y: 0}
	path, _ := res.PathTo(goal)

	fmt.Println("steps:", res.DepthOf(goal))
	fmt.Println("path:", path)
	// Output:
	// steps: 4
	// path: [(0,0,2) (3,0,2) (2,0,2) (2,0,1) (2,0,0)]
}
