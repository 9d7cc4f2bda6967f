package thetagraph

import "fmt"

// Field is a dense per-state array of float64 values. Values is laid out
// θ-major then x then y, so Values[θ·W·H + x·H + y] belongs to (θ, x, y).
// It is allocated once per grid; no per-state heap allocation happens.
type Field struct {
	Width, Height int
	Values        []float64
}

// NewField allocates a 4×width×height field with every entry set to v.
func NewField(width, height int, v float64) *Field {
	vals := make([]float64, NumOrientations*width*height)
	if v != 0 {
		for i := range vals {
			vals[i] = v
		}
	}
	return &Field{Width: width, Height: height, Values: vals}
}

// Len returns the number of states covered.
func (f *Field) Len() int { return len(f.Values) }

// Index maps s to its position in Values. The caller must ensure s is in range.
func (f *Field) Index(s State) int {
	return (int(s.Theta)*f.Width+s.X)*f.Height + s.Y
}

// StateAt is the inverse of Index.
func (f *Field) StateAt(i int) State {
	plane := f.Width * f.Height
	cell := i % plane
	return State{Theta: Orientation(i / plane), X: cell / f.Height, Y: cell % f.Height}
}

// At returns the value stored for s.
func (f *Field) At(s State) float64 { return f.Values[f.Index(s)] }

// Set stores v for s.
func (f *Field) Set(s State, v float64) { f.Values[f.Index(s)] = v }

// Plane returns the sub-slice holding orientation θ, aliasing Values.
func (f *Field) Plane(theta Orientation) []float64 {
	plane := f.Width * f.Height
	return f.Values[int(theta)*plane : (int(theta)+1)*plane]
}

// SameShape reports whether f and o have identical dimensions.
func (f *Field) SameShape(o *Field) bool {
	return f.Width == o.Width && f.Height == o.Height && len(f.Values) == len(o.Values)
}

// Clone returns a deep copy of f.
func (f *Field) Clone() *Field {
	vals := make([]float64, len(f.Values))
	copy(vals, f.Values)
	return &Field{Width: f.Width, Height: f.Height, Values: vals}
}

// RollOrientation returns a new field whose orientation axis is cyclically
// shifted by k: out[θ] = f[(θ-k) mod 4]. For k=2 this equals
// out[θ] = f[(θ+2) mod 4], i.e. every plane swaps with its opposite heading.
// Complexity: O(4·W·H).
func (f *Field) RollOrientation(k int) *Field {
	out := &Field{Width: f.Width, Height: f.Height, Values: make([]float64, len(f.Values))}
	for t := 0; t < NumOrientations; t++ {
		src := Orientation(t).Rotate(-k)
		copy(out.Plane(Orientation(t)), f.Plane(src))
	}
	return out
}

// CellMax collapses the orientation axis, returning per-cell maxima in
// x-major order (length W·H).
func (f *Field) CellMax() []float64 {
	plane := f.Width * f.Height
	out := make([]float64, plane)
	copy(out, f.Values[:plane])
	for t := 1; t < NumOrientations; t++ {
		for i, v := range f.Values[t*plane : (t+1)*plane] {
			if v > out[i] {
				out[i] = v
			}
		}
	}
	return out
}

// String summarizes the field dimensions.
func (f *Field) String() string {
	return fmt.Sprintf("Field[%d×%d×%d]", NumOrientations, f.Width, f.Height)
}
