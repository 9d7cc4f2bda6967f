// SPDX-License-Identifier: MIT
// Package: thetafocal/mapgen
//
// sampler.go - start/goal sampling.

package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/thetafocal/gridgraph"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

const methodSampleEndpoint = "SampleEndpoint"

// samplerConfig is the resolved option set of SampleEndpoint.
type samplerConfig struct {
	anchored bool
	ax, ay   int
}

// SamplerOption customizes SampleEndpoint.
type SamplerOption func(*samplerConfig)

// WithinComponent restricts sampling to the 4-connected free component that
// contains cell (x,y). Panics on negative coordinates.
func WithinComponent(x, y int) SamplerOption {
	if x < 0 || y < 0 {
		panic(fmt.Sprintf("mapgen: WithinComponent(%d,%d): negative coordinate", x, y))
	}
	return func(c *samplerConfig) {
		c.anchored = true
		c.ax, c.ay = x, y
	}
}

// SampleEndpoint draws a uniformly random free cell, then a uniformly random
// heading. Candidates are taken in x-major order, so for a fixed rng state the
// result is fixed.
//
// Errors: ErrNeedRandSource, ErrNoFreeCell, ErrInvalidAnchor.
//
// Complexity: O(W·H) time and memory.
func SampleEndpoint(g *gridgraph.Grid, rng *rand.Rand, opts ...SamplerOption) (thetagraph.State, error) {
	var cfg samplerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if rng == nil {
		return thetagraph.State{}, fmt.Errorf("%s: %w", methodSampleEndpoint, ErrNeedRandSource)
	}

	cells, err := candidates(g, cfg)
	if err != nil {
		return thetagraph.State{}, err
	}
	if len(cells) == 0 {
		return thetagraph.State{}, fmt.Errorf("%s: %dx%d grid: %w", methodSampleEndpoint, g.Width, g.Height, ErrNoFreeCell)
	}

	x, y := g.Coordinate(cells[rng.Intn(len(cells))])
	theta := thetagraph.Orientation(rng.Intn(thetagraph.NumOrientations))

	return thetagraph.State{Theta: theta, X: x, Y: y}, nil
}

// candidates lists the cell indices SampleEndpoint may return.
func candidates(g *gridgraph.Grid, cfg samplerConfig) ([]int, error) {
	if !cfg.anchored {
		return g.FreeCells(), nil
	}
	if !g.Free(cfg.ax, cfg.ay) {
		return nil, fmt.Errorf("%s: anchor (%d,%d): %w", methodSampleEndpoint, cfg.ax, cfg.ay, ErrInvalidAnchor)
	}
	labels, _ := g.ComponentLabels()
	want := labels[g.Index(cfg.ax, cfg.ay)]
	out := make([]int, 0, len(labels))
	for i, l := range labels {
		if l == want {
			out = append(out, i)
		}
	}
	return out, nil
}
