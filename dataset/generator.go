package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/thetafocal/bfs"
	"github.com/katalvlaran/thetafocal/config"
	"github.com/katalvlaran/thetafocal/focal"
	"github.com/katalvlaran/thetafocal/mapgen"
	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Generator produces batches of samples according to a config.
type Generator struct {
	cfg       *config.Config
	costs     thetagraph.Costs
	focalOpts []focal.Option
	log       *slog.Logger
	obs       Observer
}

// NewGenerator validates cfg and returns a generator bound to it.
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		cfg:   cfg,
		costs: thetagraph.Costs{Rotate: cfg.Costs.Rotate, Move: cfg.Costs.Move},
		log:   slog.Default(),
		obs:   nopObserver{},
	}
	if cfg.Search.Concurrent {
		g.focalOpts = append(g.focalOpts, focal.WithConcurrentSearch())
	}
	if cfg.Search.Horizon > 0 {
		g.focalOpts = append(g.focalOpts, focal.WithHorizon(cfg.Search.Horizon))
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// result carries one worker outcome through the fan-in.
type result struct {
	rec *Record
	err error
}

// Generate produces the split at position splitIndex of the config. Samples
// are spread over cfg.Derived.Workers goroutines and merged back by index.
// The first failing sample cancels the rest and its error is returned.
func (g *Generator) Generate(ctx context.Context, splitIndex int) (*Batch, error) {
	if splitIndex < 0 || splitIndex >= len(g.cfg.Splits) {
		return nil, fmt.Errorf("dataset: split index %d out of range [0,%d)", splitIndex, len(g.cfg.Splits))
	}
	split := g.cfg.Splits[splitIndex]
	started := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for i := 0; i < split.Count; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	nworkers := g.cfg.Derived.Workers
	if nworkers > split.Count {
		nworkers = split.Count
	}
	workers := make([]<-chan result, 0, nworkers)
	for w := 0; w < nworkers; w++ {
		workers = append(workers, g.worker(ctx, splitIndex, split.Name, jobs))
	}

	batch := &Batch{
		Split:   split.Name,
		Width:   g.cfg.Grid.Width,
		Height:  g.cfg.Grid.Height,
		Records: make([]*Record, split.Count),
	}
	done := 0
	for r := range channerics.Merge(ctx.Done(), workers...) {
		if r.err != nil {
			return nil, r.err
		}
		batch.Records[r.rec.Index] = r.rec
		done++
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if done != split.Count {
		return nil, fmt.Errorf("dataset: split %q: %d of %d samples produced", split.Name, done, split.Count)
	}

	batch.Elapsed = time.Since(started)
	g.log.Info("split generated",
		"split", split.Name,
		"workers", nworkers,
		"elapsed", batch.Elapsed,
		"summary", batch.Summarize(),
	)
	return batch, nil
}

// worker labels sample indices from jobs until jobs closes or ctx ends.
func (g *Generator) worker(ctx context.Context, splitIndex int, split string, jobs <-chan int) <-chan result {
	out := make(chan result)
	go func() {
		defer close(out)
		for i := range channerics.OrDone(ctx.Done(), jobs) {
			rec, err := g.Sample(ctx, splitIndex, split, i)
			select {
			case out <- result{rec: rec, err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Sample produces sample index of a split on its own random stream. It is
// exported so a single sample can be reproduced without the rest of the split.
// ctx only bounds the optional BFS cross-check.
func (g *Generator) Sample(ctx context.Context, splitIndex int, split string, index int) (*Record, error) {
	seed := mapgen.DeriveSeed(g.cfg.Seed, mapgen.StreamID(splitIndex, index))
	rng := mapgen.RNGFromSeed(seed)

	rec := &Record{
		ID:    RecordID(g.cfg.Seed, split, index),
		Split: split,
		Index: index,
		Seed:  seed,
	}
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		rec.Attempts = attempt
		reason, err := g.draw(ctx, rng, rec)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s[%d] attempt %d: %w", split, index, attempt, err)
		}
		if reason == "" {
			g.obs.SampleAccepted(split, rec.Sample, rec.Elapsed)
			return rec, nil
		}
		rec.Rejected.count(reason)
		g.obs.SampleRejected(split, reason)
		g.log.Debug("sample rejected",
			"split", split,
			"index", index,
			"attempt", attempt,
			"reason", reason,
		)
	}
	return nil, fmt.Errorf("%w: %s[%d] after %d attempts (%+v)",
		ErrTooManyAttempts, split, index, g.cfg.MaxAttempts, rec.Rejected)
}

// draw makes one attempt. It fills rec and returns "" on success, a
// rejection reason for a draw worth repeating, or an error that ends the run.
func (g *Generator) draw(ctx context.Context, rng *rand.Rand, rec *Record) (string, error) {
	grid, err := mapgen.RandomGrid(g.cfg.Grid.Width, g.cfg.Grid.Height, g.cfg.Grid.BlockedProbability, rng)
	if err != nil {
		return "", err
	}
	start, err := mapgen.SampleEndpoint(grid, rng)
	if errors.Is(err, mapgen.ErrNoFreeCell) {
		return ReasonNoFreeCell, nil
	} else if err != nil {
		return "", err
	}

	var goalOpts []mapgen.SamplerOption
	if g.cfg.Sampler.SameComponent {
		goalOpts = append(goalOpts, mapgen.WithinComponent(start.X, start.Y))
	}
	nextGoal := func() (thetagraph.State, error) {
		return mapgen.SampleEndpoint(grid, rng, goalOpts...)
	}
	goal, err := nextGoal()
	if err != nil {
		return "", err
	}

	tg, err := thetagraph.New(grid, thetagraph.WithCosts(g.costs))
	if err != nil {
		return "", err
	}
	composer, err := focal.NewComposer(tg, g.focalOpts...)
	if err != nil {
		return "", err
	}

	t0 := time.Now()
	s, err := composer.ComposeResampling(start, goal, nextGoal)
	elapsed := time.Since(t0)
	switch {
	case errors.Is(err, focal.ErrUnreachableGoal):
		return ReasonUnreachable, nil
	case errors.Is(err, focal.ErrDegenerateRatio):
		return ReasonDegenerate, nil
	case errors.Is(err, focal.ErrInvalidEndpoint):
		return ReasonEndpoint, nil
	case err != nil:
		return "", err
	}

	if g.cfg.CrossCheck {
		if err := crossCheck(ctx, tg, s); err != nil {
			return "", err
		}
	}

	rec.Map = grid
	rec.Sample = s
	rec.Elapsed = elapsed
	return "", nil
}

// crossCheckTol absorbs rounding of repeated non-dyadic costs such as 0.1.
const crossCheckTol = 1e-9

// errGoalVisited stops the cross-check BFS once the goal is dequeued.
var errGoalVisited = errors.New("goal visited")

// crossCheck replays a sample with breadth-first search. It applies only when
// rotations and moves cost the same positive amount, so that cost is a
// multiple of the step count. The BFS is cut at the expected goal depth and
// stops as soon as the goal is visited. The optimum must match and every
// state of the BFS shortest path must carry focal value 1, both up to
// crossCheckTol.
func crossCheck(ctx context.Context, tg *thetagraph.Graph, s *focal.Sample) error {
	c := tg.Costs()
	if c.Rotate != c.Move || c.Rotate <= 0 {
		return nil
	}
	depth := int(math.Round(s.Optimal / c.Rotate))
	res, err := bfs.BFS(tg, s.Start,
		bfs.WithContext(ctx),
		bfs.WithMaxDepth(depth),
		bfs.WithOnVisit(func(st thetagraph.State, _ int) error {
			if st == s.Goal {
				return errGoalVisited
			}
			return nil
		}),
	)
	if err != nil && !errors.Is(err, errGoalVisited) {
		return err
	}
	if got := float64(res.DepthOf(s.Goal)) * c.Rotate; !scalar.EqualWithinAbsOrRel(got, s.Optimal, crossCheckTol, crossCheckTol) {
		return fmt.Errorf("%w: %s → %s: bfs %v, dijkstra %v", ErrCrossCheck, s.Start, s.Goal, got, s.Optimal)
	}
	path, err := res.PathTo(s.Goal)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCrossCheck, err)
	}
	for _, st := range path {
		if v := s.Focal.At(st); !scalar.EqualWithinAbsOrRel(v, 1, crossCheckTol, crossCheckTol) {
			return fmt.Errorf("%w: %s on a shortest path has focal %v", ErrCrossCheck, st, v)
		}
	}
	return nil
}
