// SPDX-License-Identifier: MIT
// Package: thetafocal/mapgen
//
// rng.go - deterministic random streams.
//
// A run has one root seed. Every sample gets its own stream derived from the
// root seed and a stream id, so the output is identical for any worker count.

package mapgen

import "math/rand"

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

// SplitMix64 constants (Vigna 2014).
const (
	golden  uint64 = 0x9e3779b97f4a7c15
	mixMul1 uint64 = 0xbf58476d1ce4e5b9
	mixMul2 uint64 = 0x94d049bb133111eb
)

// RNGFromSeed returns a deterministic *rand.Rand.
// seed==0 maps to defaultRNGSeed; any other seed is used verbatim.
func RNGFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream id into a new seed with a
// SplitMix64 finalizer. Neighbouring stream ids give uncorrelated seeds.
//
// Complexity: O(1).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + golden)
	x += golden
	x = (x ^ (x >> 30)) * mixMul1
	x = (x ^ (x >> 27)) * mixMul2
	x ^= x >> 31
	return int64(x)
}

// StreamID packs a split number and a sample index into one stream id.
func StreamID(split, index int) uint64 {
	return uint64(uint32(split))<<32 | uint64(uint32(index))
}
