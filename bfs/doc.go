// Package bfs provides breadth-first search over the theta state graph,
// counting transitions (steps) rather than summing weights.
//
// With unit rotation and move costs, BFS depths are exactly the uniform-cost
// search costs, so this package serves as the exhaustive reference the cost
// search is cross-checked against. It also reconstructs one shortest
// step sequence through the parent links.
//
// Features:
//
//   - Depth, parent and visit order over all 4·W·H states.
//   - Optional hooks (OnVisit), depth limiting and context cancellation.
//
// Complexity: O(V + E) time and O(V) memory, V = 4·W·H.
package bfs
