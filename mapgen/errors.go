// SPDX-License-Identifier: MIT
// Package: thetafocal/mapgen
//
// errors.go - sentinel errors for the mapgen package.
//
// Callers branch with errors.Is; context is attached at the return site as
// "<Method>: <detail>: %w".

package mapgen

import "errors"

// ErrBadSize indicates a non-positive grid width or height.
var ErrBadSize = errors.New("mapgen: invalid grid size")

// ErrInvalidProbability indicates a blocking probability outside [0,1].
var ErrInvalidProbability = errors.New("mapgen: probability out of range")

// ErrNeedRandSource indicates a nil *rand.Rand where a draw is required.
var ErrNeedRandSource = errors.New("mapgen: rng is required")

// ErrNoFreeCell indicates there is no free cell to sample from, either on the
// whole grid or within the requested component.
var ErrNoFreeCell = errors.New("mapgen: no free cell")

// ErrInvalidAnchor indicates a WithinComponent anchor that is off the grid or
// on an obstacle.
var ErrInvalidAnchor = errors.New("mapgen: component anchor is not a free cell")
