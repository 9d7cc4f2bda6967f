// Package dijkstra provides uniform-cost search over the orientation-aware
// state graph of package thetagraph, producing a dense cost field over every
// (θ, x, y) state.
//
// Overview:
//
//   - Dijkstra computes the minimum cost from a single source state to all
//     reachable states in O(E log V) time, where V = 4·W·H and E ≤ 3V.
//   - It relies on a min-heap keyed by (cost, state index) to always expand the
//     next-cheapest state; ties are broken by the lower index, which makes
//     the frontier order, and therefore the output, fully deterministic.
//   - Stale frontier entries are left in the heap and skipped when popped
//     (lazy decrease-key), guarded by a per-state settled array.
//
// When to use:
//
//   - Computing the forward cost field from a start state.
//   - Computing the reverse cost field to a goal state by searching forward
//     from the goal cell with the heading flipped by 180° (see package focal).
//
// Options:
//
//   - WithMaxCost(c): stop once the frontier minimum exceeds c; states past
//     the cap keep +Inf. Package focal uses it for its search horizon.
//
// Memory:
//
//   - Cost and settled arrays are flat slices sized 4·W·H once per call.
//   - No recursion; the heap holds at most one entry per successful relaxation.
//
// Thread safety:
//
//   - Each call owns its arrays. Concurrent calls on the same *thetagraph.Graph
//     are safe because the graph and its grid are read-only.
//
// Example usage:
//
//	res, err := dijkstra.Dijkstra(g, thetagraph.State{Theta: 0, X: 0, Y: 0})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Costs.At(thetagraph.State{Theta: 0, X: 0, Y: 2}))
package dijkstra
