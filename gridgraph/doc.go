// Package gridgraph holds the immutable occupancy grid every search runs on.
//
// What:
//
//   - Grid wraps a rectangular width×height field of blocked/free cells.
//   - Cells are addressed as (x,y) with 0 ≤ x < Width and 0 ≤ y < Height.
//   - Storage is one flat slice in x-major order (index = x*Height + y), the
//     same layout as a (width, height) array.
//   - Input value 0 is free; every other value is an obstacle.
//   - Identifies 4-connected components of free cells, matching the moves
//     an agent can make.
//
// Why:
//
//   - The theta state graph, both cost searches and the endpoint sampler all
//     read the same Grid; it is never mutated after construction, so it can be
//     shared across goroutines without locking.
//
// Complexity:
//
//   - InBounds / Free:         O(1).
//   - From2D / FromBlocked:    O(W×H) time and memory (deep copy).
//   - ConnectedComponents:     O(W×H), Memory: O(W×H).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrSizeMismatch: flat input length differs from width×height.
package gridgraph
