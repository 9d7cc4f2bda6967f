package dataset

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gorgonia.org/tensor"

	"github.com/katalvlaran/thetafocal/thetagraph"
)

// Batch is one generated split, records ordered by sample index.
type Batch struct {
	Split         string
	Width, Height int
	Records       []*Record
	Elapsed       time.Duration
}

// Tensors stacks the batch into four (N, 4, W, H) arrays:
//   - maps:   int64 occupancy (1 = obstacle), repeated on every orientation
//   - starts: float64 one-hot of the start state
//   - goals:  float64 one-hot of the goal state
//   - focal:  float64 focal values
//
// Axis order is sample, orientation, x, y.
func (b *Batch) Tensors() (maps, starts, goals, focal *tensor.Dense) {
	n := len(b.Records)
	plane := b.Width * b.Height
	per := thetagraph.NumOrientations * plane

	mapData := make([]int64, n*per)
	startData := make([]float64, n*per)
	goalData := make([]float64, n*per)
	focalData := make([]float64, n*per)

	for i, rec := range b.Records {
		off := i * per
		cells := rec.Map.Cells()
		for t := 0; t < thetagraph.NumOrientations; t++ {
			row := mapData[off+t*plane : off+(t+1)*plane]
			for c, blocked := range cells {
				if blocked {
					row[c] = 1
				}
			}
		}
		f := rec.Sample.Focal
		startData[off+f.Index(rec.Sample.Start)] = 1
		goalData[off+f.Index(rec.Sample.Goal)] = 1
		copy(focalData[off:off+per], f.Values)
	}

	shape := []int{n, thetagraph.NumOrientations, b.Width, b.Height}
	maps = tensor.New(tensor.WithShape(shape...), tensor.WithBacking(mapData))
	starts = tensor.New(tensor.WithShape(shape...), tensor.WithBacking(startData))
	goals = tensor.New(tensor.WithShape(shape...), tensor.WithBacking(goalData))
	focal = tensor.New(tensor.WithShape(shape...), tensor.WithBacking(focalData))
	return maps, starts, goals, focal
}

// Summary aggregates a batch for logging.
type Summary struct {
	Split     string
	Count     int
	Attempts  int // draws, accepted and rejected
	Rejected  Rejections
	Resampled int // goals redrawn because they equalled the start

	OptimalMean   float64
	OptimalStd    float64
	OptimalMedian float64
	OptimalMax    float64
	OnPathMean    float64 // mean fraction of states with focal value 1
	FocalMean     float64
	SettledMean   float64 // forward plus reverse settled states per sample
}

// Summarize computes the batch statistics. An empty batch yields zeros.
func (b *Batch) Summarize() Summary {
	s := Summary{Split: b.Split, Count: len(b.Records)}
	if s.Count == 0 {
		return s
	}

	optimal := make([]float64, s.Count)
	onPath := make([]float64, s.Count)
	focalMeans := make([]float64, s.Count)
	settled := make([]float64, s.Count)
	for i, rec := range b.Records {
		s.Attempts += rec.Attempts
		s.Rejected.add(rec.Rejected)
		s.Resampled += rec.Sample.Resampled

		optimal[i] = rec.Sample.Optimal
		onPath[i] = float64(rec.Sample.OnPath) / float64(rec.Sample.Focal.Len())
		focalMeans[i] = stat.Mean(rec.Sample.Focal.Values, nil)
		settled[i] = float64(rec.Sample.Forward.Settled + rec.Sample.Reverse.Settled)
	}

	s.OptimalMean, s.OptimalStd = stat.MeanStdDev(optimal, nil)
	if s.Count < 2 {
		s.OptimalStd = 0
	}
	s.OptimalMax = floats.Max(optimal)
	sort.Float64s(optimal)
	s.OptimalMedian = stat.Quantile(0.5, stat.Empirical, optimal, nil)
	s.OnPathMean = stat.Mean(onPath, nil)
	s.FocalMean = stat.Mean(focalMeans, nil)
	s.SettledMean = stat.Mean(settled, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("split", s.Split),
		slog.Int("count", s.Count),
		slog.Int("attempts", s.Attempts),
		slog.Int("rejected_unreachable", s.Rejected.Unreachable),
		slog.Int("rejected_degenerate", s.Rejected.Degenerate),
		slog.Int("rejected_no_free_cell", s.Rejected.NoFreeCell),
		slog.Int("rejected_endpoint", s.Rejected.Endpoint),
		slog.Int("resampled", s.Resampled),
		slog.Float64("optimal_mean", s.OptimalMean),
		slog.Float64("optimal_std", s.OptimalStd),
		slog.Float64("optimal_median", s.OptimalMedian),
		slog.Float64("optimal_max", s.OptimalMax),
		slog.Float64("on_path_mean", s.OnPathMean),
		slog.Float64("focal_mean", s.FocalMean),
		slog.Float64("settled_mean", s.SettledMean),
	)
}
