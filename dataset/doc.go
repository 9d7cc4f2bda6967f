// Package dataset synthesizes labelled samples in parallel.
//
// A Generator draws a random map and two endpoints per sample, computes the
// focal field and redraws everything when the draw is unusable (goal
// unreachable, degenerate ratio, no free cell). Every sample has its own
// random stream derived from the run seed, the split number and the sample
// index, so a batch is bit-identical for any worker count.
//
// Batch.Tensors stacks a batch into the (N, 4, W, H) arrays written by the
// output package.
package dataset
