package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/thetafocal/focal"
	"github.com/katalvlaran/thetafocal/gridgraph"
)

// Sentinel errors returned by the generator.
var (
	// ErrNilConfig indicates NewGenerator was called without a config.
	ErrNilConfig = errors.New("dataset: config is nil")

	// ErrTooManyAttempts indicates a sample was rejected max_attempts times.
	ErrTooManyAttempts = errors.New("dataset: too many rejected attempts")

	// ErrCrossCheck indicates the weighted search disagreed with breadth-first search.
	ErrCrossCheck = errors.New("dataset: search cross-check failed")
)

// Rejection reasons, used as log values and metric labels.
const (
	ReasonUnreachable = "unreachable"
	ReasonDegenerate  = "degenerate"
	ReasonNoFreeCell  = "no_free_cell"
	ReasonEndpoint    = "endpoint"
)

// idNamespace scopes record IDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("thetafocal/dataset"))

// RecordID returns the deterministic ID of sample index of a split.
func RecordID(seed int64, split string, index int) uuid.UUID {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d/%s/%d", seed, split, index)))
}

// Rejections counts discarded draws by reason.
type Rejections struct {
	Unreachable int
	Degenerate  int
	NoFreeCell  int
	Endpoint    int
}

// Total returns the number of discarded draws.
func (r Rejections) Total() int {
	return r.Unreachable + r.Degenerate + r.NoFreeCell + r.Endpoint
}

func (r *Rejections) add(o Rejections) {
	r.Unreachable += o.Unreachable
	r.Degenerate += o.Degenerate
	r.NoFreeCell += o.NoFreeCell
	r.Endpoint += o.Endpoint
}

func (r *Rejections) count(reason string) {
	switch reason {
	case ReasonUnreachable:
		r.Unreachable++
	case ReasonDegenerate:
		r.Degenerate++
	case ReasonNoFreeCell:
		r.NoFreeCell++
	case ReasonEndpoint:
		r.Endpoint++
	}
}

// Record is one accepted sample.
type Record struct {
	ID       uuid.UUID
	Split    string
	Index    int
	Seed     int64 // seed of the sample's random stream
	Attempts int   // draws including the accepted one
	Rejected Rejections
	Elapsed  time.Duration // time spent in the accepted Compose call

	Map    *gridgraph.Grid
	Sample *focal.Sample
}

// Observer receives per-draw outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	SampleAccepted(split string, s *focal.Sample, elapsed time.Duration)
	SampleRejected(split, reason string)
}

type nopObserver struct{}

func (nopObserver) SampleAccepted(string, *focal.Sample, time.Duration) {}
func (nopObserver) SampleRejected(string, string)                      {}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("dataset: WithLogger(nil)")
	}
	return func(g *Generator) { g.log = l }
}

// WithObserver attaches an Observer, typically the metrics recorder. Panics on nil.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("dataset: WithObserver(nil)")
	}
	return func(g *Generator) { g.obs = o }
}
