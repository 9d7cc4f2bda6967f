// Package focal turns two cost searches into the normalized "focal" label of
// one (start, goal) pair on one grid.
//
// Steps (all fields are dense 4×W×H arrays):
//
//  1. Gs = cost field searched from the start state.
//  2. Gg = cost field searched from the goal cell facing the opposite heading.
//  3. optimal = Gs at the goal state.
//  4. total[θ] = Gs[θ] + Gg[(θ+2) mod 4].
//  5. focal = optimal / total.
//
// By the triangle inequality total ≥ optimal everywhere, with equality on the
// states some optimal start→goal path passes through, so focal values lie in
// (0,1] and equal 1 exactly on optimal paths. States that cannot be on any
// start→goal path have total = +Inf and carry 0.
//
// Errors:
//
//   - ErrInvalidEndpoint: an endpoint is off the grid, on an obstacle, or both
//     endpoints are the same state.
//   - ErrUnreachableGoal: optimal is +Inf; the sample must be discarded.
//   - ErrDegenerateRatio: some state would be NaN (0/0, possible only with
//     zero transition costs); the sample must be discarded.
//
// The composer never retries except for the goal-resampling guard of
// ComposeResampling; regenerating maps is the caller's job.
package focal
