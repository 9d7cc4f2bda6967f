// Package thetagraph defines the discrete orientation × cell state space of
// an agent that either moves one cell forward or rotates in place, and the
// dense per-state Field arrays the searches fill.
//
// What:
//
//   - Orientation: one of 4 headings in cyclic order 0:(0,1) 1:(1,0) 2:(0,-1) 3:(-1,0).
//   - State:       (θ, x, y); there are exactly 4·W·H states.
//   - Graph:       transition function over a *gridgraph.Grid:
//     two rotation arcs ((θ-1) mod 4 and (θ+1) mod 4) and one forward
//     move arc that exists only if the destination cell is in bounds and free.
//   - Field:       flat []float64 indexed θ·W·H + x·H + y, the same layout as a
//     (4, width, height) array.
//
// Weights:
//
//   - Rotation and move costs default to 1 and may be any non-negative value.
//     Option constructors panic on negative values; New also rejects them
//     with ErrNegativeWeight.
//
// Complexity:
//
//   - Arcs / Successors: O(1) per state (≤ 3 arcs).
//   - NewField / Clone / RollOrientation: O(4·W·H).
//
// Thread safety:
//
//   - Graph is read-only after New and safe for concurrent searches.
//   - Field is a plain value container; callers own synchronization.
package thetagraph
