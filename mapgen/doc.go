// SPDX-License-Identifier: MIT
// Package: thetafocal/mapgen
//
// Package mapgen draws the random inputs of a labelling run: occupancy maps
// and start/goal states.
//
// What:
//   - RandomGrid blocks each cell independently with probability p.
//   - SampleEndpoint picks a uniform free cell and a uniform heading,
//     optionally restricted to the free component of an anchor cell.
//   - RNGFromSeed, DeriveSeed and StreamID build reproducible streams, one
//     per sample, so results do not depend on worker scheduling.
//
// Contract:
//   - Stochastic functions take an explicit *rand.Rand; nothing reads a
//     global or time-based source.
//   - Trial order is fixed (x ascending, then y ascending), so a seed fully
//     determines a map.
//   - Functions return sentinel errors (errors.go); options panic on
//     meaningless inputs.
//
// Concurrency:
//   - *rand.Rand is not goroutine-safe. Give every worker its own stream.
package mapgen
