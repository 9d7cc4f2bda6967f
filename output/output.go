// Package output writes generated batches to disk in the TransPath layout:
//
//	<dir>/config.yaml
//	<dir>/<split>/maps.npy     int64   (N, 4, W, H)
//	<dir>/<split>/starts.npy   float64 (N, 4, W, H)
//	<dir>/<split>/goals.npy    float64 (N, 4, W, H)
//	<dir>/<split>/focal.npy    float64 (N, 4, W, H)
//	<dir>/<split>/manifest.csv one row per sample
//	<dir>/<split>/previews/    optional PNG previews
package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"gorgonia.org/tensor"

	"github.com/katalvlaran/thetafocal/config"
	"github.com/katalvlaran/thetafocal/dataset"
	"github.com/katalvlaran/thetafocal/preview"
)

// Array file names inside a split directory.
const (
	MapsFile     = "maps.npy"
	StartsFile   = "starts.npy"
	GoalsFile    = "goals.npy"
	FocalFile    = "focal.npy"
	ManifestFile = "manifest.csv"
	ConfigFile   = "config.yaml"
	PreviewDir   = "previews"
)

// Writer handles dataset output under one root directory.
// A nil *Writer discards everything.
type Writer struct {
	dir string
}

// NewWriter creates the output directory.
// Returns nil if dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the root directory.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// SplitDir returns the directory of a split.
func (w *Writer) SplitDir(split string) string {
	return filepath.Join(w.Dir(), split)
}

// WriteConfig saves the run configuration as YAML.
func (w *Writer) WriteConfig(cfg *config.Config) error {
	if w == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(w.dir, ConfigFile))
}

// WriteBatch writes the four arrays of a batch.
func (w *Writer) WriteBatch(b *dataset.Batch) error {
	if w == nil {
		return nil
	}
	dir := w.SplitDir(b.Split)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating split directory: %w", err)
	}

	maps, starts, goals, focal := b.Tensors()
	arrays := []struct {
		name string
		t    *tensor.Dense
	}{
		{MapsFile, maps},
		{StartsFile, starts},
		{GoalsFile, goals},
		{FocalFile, focal},
	}
	for _, a := range arrays {
		if err := writeNpy(filepath.Join(dir, a.name), a.t); err != nil {
			return fmt.Errorf("writing %s/%s: %w", b.Split, a.name, err)
		}
	}
	return nil
}

func writeNpy(path string, t *tensor.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteNpy(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadArray loads one .npy file written by WriteBatch. Little-endian int64
// payloads are decoded here; everything else goes through Dense.ReadNpy,
// which maps '<i8' to Go int and cannot read it back.
func ReadArray(path string) (*tensor.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	h, err := parseNpyHeader(raw)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if h.descr == "<i8" {
		t, err := readInt64(raw[h.dataOffset:], h.shape)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return t, nil
	}

	t := new(tensor.Dense)
	if err := t.ReadNpy(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// ErrNotNpy indicates a file without the .npy magic string.
var ErrNotNpy = errors.New("output: not a .npy file")

var (
	npyMagic   = []byte("\x93NUMPY")
	npyDescr   = regexp.MustCompile(`'descr':\s*'([^']*)'`)
	npyFortran = regexp.MustCompile(`'fortran_order':\s*(True|False)`)
	npyShape   = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
)

// npyHeader is the part of a .npy header ReadArray needs.
type npyHeader struct {
	descr      string
	shape      []int
	dataOffset int
}

// parseNpyHeader reads format versions 1.x (uint16 header length) and
// 2.x/3.x (uint32 header length).
func parseNpyHeader(raw []byte) (npyHeader, error) {
	var h npyHeader
	if len(raw) < 10 || !bytes.HasPrefix(raw, npyMagic) {
		return h, ErrNotNpy
	}
	var hlen, start int
	switch raw[6] {
	case 1:
		hlen, start = int(binary.LittleEndian.Uint16(raw[8:10])), 10
	case 2, 3:
		if len(raw) < 12 {
			return h, io.ErrUnexpectedEOF
		}
		hlen, start = int(binary.LittleEndian.Uint32(raw[8:12])), 12
	default:
		return h, fmt.Errorf("unsupported .npy version %d", raw[6])
	}
	if start+hlen > len(raw) {
		return h, io.ErrUnexpectedEOF
	}
	header := string(raw[start : start+hlen])

	m := npyDescr.FindStringSubmatch(header)
	if m == nil {
		return h, fmt.Errorf("npy header without descr: %q", header)
	}
	h.descr = m[1]
	if m := npyFortran.FindStringSubmatch(header); m != nil && m[1] == "True" {
		return h, errors.New("fortran-ordered arrays are not supported")
	}
	m = npyShape.FindStringSubmatch(header)
	if m == nil {
		return h, fmt.Errorf("npy header without shape: %q", header)
	}
	for _, f := range strings.Split(m[1], ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		d, err := strconv.Atoi(f)
		if err != nil {
			return h, fmt.Errorf("npy shape %q: %w", m[1], err)
		}
		h.shape = append(h.shape, d)
	}
	h.dataOffset = start + hlen
	return h, nil
}

// readInt64 decodes a little-endian int64 payload into a dense tensor.
func readInt64(payload []byte, shape []int) (*tensor.Dense, error) {
	n := 1
	for _, d := range shape {
		n *= d
	}
	data := make([]int64, n)
	if err := binary.Read(bytes.NewReader(payload), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("int64 payload: %w", err)
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}

// ManifestRow is one manifest.csv line.
type ManifestRow struct {
	ID         string  `csv:"id"`
	Index      int     `csv:"index"`
	Seed       int64   `csv:"seed"`
	Attempts   int     `csv:"attempts"`
	Resampled  int     `csv:"resampled"`
	StartTheta int     `csv:"start_theta"`
	StartX     int     `csv:"start_x"`
	StartY     int     `csv:"start_y"`
	GoalTheta  int     `csv:"goal_theta"`
	GoalX      int     `csv:"goal_x"`
	GoalY      int     `csv:"goal_y"`
	Optimal    float64 `csv:"optimal"`
	OnPath     int     `csv:"on_path"`
	FreeCells  int     `csv:"free_cells"`
	Settled    int     `csv:"settled"`
	ComposeMS  float64 `csv:"compose_ms"`
}

// ManifestRows converts a batch to manifest rows.
func ManifestRows(b *dataset.Batch) []ManifestRow {
	rows := make([]ManifestRow, len(b.Records))
	for i, rec := range b.Records {
		s := rec.Sample
		rows[i] = ManifestRow{
			ID:         rec.ID.String(),
			Index:      rec.Index,
			Seed:       rec.Seed,
			Attempts:   rec.Attempts,
			Resampled:  s.Resampled,
			StartTheta: int(s.Start.Theta),
			StartX:     s.Start.X,
			StartY:     s.Start.Y,
			GoalTheta:  int(s.Goal.Theta),
			GoalX:      s.Goal.X,
			GoalY:      s.Goal.Y,
			Optimal:    s.Optimal,
			OnPath:     s.OnPath,
			FreeCells:  rec.Map.NumFree(),
			Settled:    s.Forward.Settled + s.Reverse.Settled,
			ComposeMS:  float64(rec.Elapsed.Microseconds()) / 1000,
		}
	}
	return rows
}

// WriteManifest writes manifest.csv for a batch.
func (w *Writer) WriteManifest(b *dataset.Batch) error {
	if w == nil {
		return nil
	}
	dir := w.SplitDir(b.Split)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating split directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, ManifestFile))
	if err != nil {
		return fmt.Errorf("creating manifest: %w", err)
	}
	rows := ManifestRows(b)
	if err := gocsv.Marshal(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	return f.Close()
}

// ReadManifest parses a manifest.csv.
func ReadManifest(path string) ([]ManifestRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []ManifestRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return rows, nil
}

// WritePreviews renders the first n samples of a batch as PNG files named
// <index>.png. n larger than the batch is clamped.
func (w *Writer) WritePreviews(b *dataset.Batch, n int, opts preview.Options) error {
	if w == nil || n <= 0 {
		return nil
	}
	dir := filepath.Join(w.SplitDir(b.Split), PreviewDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating preview directory: %w", err)
	}
	if n > len(b.Records) {
		n = len(b.Records)
	}
	for _, rec := range b.Records[:n] {
		path := filepath.Join(dir, fmt.Sprintf("%05d.png", rec.Index))
		if err := preview.RenderFile(path, rec.Map, rec.Sample, opts); err != nil {
			return fmt.Errorf("preview %s[%d]: %w", b.Split, rec.Index, err)
		}
	}
	return nil
}
