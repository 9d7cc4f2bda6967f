// Package thetafocal generates supervision data for learned heuristics on
// orientation-aware grid planning.
//
// A robot on an occupancy grid has a heading θ ∈ {0,1,2,3} and may turn in
// place by ±90° or step one cell forward. For a start and a goal state the
// generator computes, for every state s,
//
//	focal(s) = optimal / (cost(start→s) + cost(s→goal))
//
// which is 1 exactly on optimal routes and decays with the detour through s.
//
// Packages:
//
//	gridgraph/  - occupancy grid, free-cell queries, connected components
//	thetagraph/ - implicit (θ,x,y) transition graph and dense per-state fields
//	dijkstra/   - single-source cost search over the state graph
//	bfs/        - breadth-first reference search, used as a cross-check
//	focal/      - forward + reverse search and the focal combination rule
//	mapgen/     - random maps, endpoint sampling, reproducible RNG streams
//	dataset/    - parallel batch generation with rejection and resampling
//	output/     - .npy arrays, manifest.csv and previews per split
//	preview/    - PNG heat maps of a sample
//	metrics/    - Prometheus counters and histograms
//	config/     - YAML configuration with embedded defaults
//
// Quick example (1×3 corridor, start facing +y at the bottom):
//
//	y=2  G      focal facing +y: 1, 1, 1
//	y=1  .      focal facing ±x: ½, ½, ½
//	y=0  S      focal facing −y: ⅓, ⅓, ⅓
//
// The command cmd/thetagen writes train/val/test splits in the
// TransPath_data_theta layout.
//
//	go run ./cmd/thetagen --config config.yaml
package thetafocal
