// SPDX-License-Identifier: MIT
// Package: thetafocal/mapgen
//
// random.go - Bernoulli occupancy maps.
//
// Contract:
//   - width, height ≥ 1 (else ErrBadSize).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - rng must be non-nil when 0 < p < 1 (else ErrNeedRandSource).
//
// Determinism: one Float64 draw per cell, x ascending then y ascending.

package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/thetafocal/gridgraph"
)

const (
	methodRandomGrid = "RandomGrid"
	probMin          = 0.0
	probMax          = 1.0
)

// RandomGrid returns a width×height 4-connected grid where each cell is an
// obstacle with probability p.
//
// Complexity: O(W·H) time and memory.
func RandomGrid(width, height int, p float64, rng *rand.Rand) (*gridgraph.Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%s: %dx%d: %w", methodRandomGrid, width, height, ErrBadSize)
	}
	if !(p >= probMin && p <= probMax) {
		return nil, fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			methodRandomGrid, p, probMin, probMax, ErrInvalidProbability)
	}
	if rng == nil && p > probMin && p < probMax {
		return nil, fmt.Errorf("%s: %w", methodRandomGrid, ErrNeedRandSource)
	}

	blocked := make([]bool, width*height)
	switch {
	case p == probMax:
		for i := range blocked {
			blocked[i] = true
		}
	case p > probMin:
		for i := range blocked {
			blocked[i] = rng.Float64() < p
		}
	}

	return gridgraph.FromBlocked(width, height, blocked)
}
