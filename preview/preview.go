// Package preview renders a labelled sample as a PNG heat map.
//
// Each cell is coloured by the largest focal value over its four headings:
// obstacles are black, free cells go from dark blue (0) to yellow (1). The
// start cell is green and the goal cell red. The image is drawn at one pixel
// per cell with +y pointing up, then upscaled with nearest-neighbour sampling
// so cells stay sharp.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/katalvlaran/thetafocal/focal"
	"github.com/katalvlaran/thetafocal/gridgraph"
)

// ErrShape indicates a sample whose field does not match the grid.
var ErrShape = errors.New("preview: sample does not match grid")

// Palette.
var (
	ObstacleColor = color.RGBA{0, 0, 0, 255}
	StartColor    = color.RGBA{0, 200, 0, 255}
	GoalColor     = color.RGBA{220, 0, 0, 255}
)

// Options controls rendering.
type Options struct {
	Scale int // output pixels per cell, ≥ 1
}

// DefaultOptions returns 8 pixels per cell.
func DefaultOptions() Options {
	return Options{Scale: 8}
}

// heat maps v ∈ [0,1] to a blue→yellow ramp.
func heat(v float64) color.RGBA {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return color.RGBA{
		R: uint8(30 + 225*v),
		G: uint8(30 + 190*v),
		B: uint8(110 * (1 - v)),
		A: 255,
	}
}

// Image draws the sample at scale opts.Scale.
func Image(g *gridgraph.Grid, s *focal.Sample, opts Options) (*image.RGBA, error) {
	if opts.Scale < 1 {
		return nil, fmt.Errorf("preview: scale %d < 1", opts.Scale)
	}
	if s.Focal.Width != g.Width || s.Focal.Height != g.Height {
		return nil, fmt.Errorf("%w: field %dx%d, grid %dx%d", ErrShape, s.Focal.Width, s.Focal.Height, g.Width, g.Height)
	}

	small := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	cellMax := s.Focal.CellMax()
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			px, py := x, g.Height-1-y
			switch {
			case g.Blocked(x, y):
				small.SetRGBA(px, py, ObstacleColor)
			default:
				small.SetRGBA(px, py, heat(cellMax[g.Index(x, y)]))
			}
		}
	}
	small.SetRGBA(s.Start.X, g.Height-1-s.Start.Y, StartColor)
	small.SetRGBA(s.Goal.X, g.Height-1-s.Goal.Y, GoalColor)

	if opts.Scale == 1 {
		return small, nil
	}
	big := image.NewRGBA(image.Rect(0, 0, g.Width*opts.Scale, g.Height*opts.Scale))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big, nil
}

// Render encodes the sample preview as PNG to w.
func Render(w io.Writer, g *gridgraph.Grid, s *focal.Sample, opts Options) error {
	img, err := Image(g, s, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// RenderFile writes the preview to path.
func RenderFile(path string, g *gridgraph.Grid, s *focal.Sample, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview: %w", err)
	}
	if err := Render(f, g, s, opts); err != nil {
		f.Close()
		return fmt.Errorf("encoding preview: %w", err)
	}
	return f.Close()
}
