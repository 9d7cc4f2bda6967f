package gridgraph

// ConnectedComponents finds all 4-connected regions of free cells.
// Returns a slice of components; each component is a slice of cell indices
// (x-major) in BFS discovery order. Components are ordered by their first
// cell in x-major order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H).
// Memory: O(W·H) for visited flags and output.
func (g *Grid) ConnectedComponents() [][]int {
	total := g.NumCells()
	seen := make([]bool, total)
	var comps [][]int

	for i0 := 0; i0 < total; i0++ {
		if g.blocked[i0] || seen[i0] {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			ux, uy := g.Coordinate(queue[qi])
			for _, d := range orthogonal {
				vx, vy := ux+d[0], uy+d[1]
				if !g.Free(vx, vy) {
					continue
				}
				vi := g.index(vx, vy)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, queue)
	}
	return comps
}

// ComponentLabels assigns each free cell the index of its component in
// ConnectedComponents and each blocked cell -1.
// It returns the labels and the number of components.
//
// Time:   O(W·H).
// Memory: O(W·H).
func (g *Grid) ComponentLabels() ([]int, int) {
	labels := make([]int, g.NumCells())
	for i := range labels {
		labels[i] = -1
	}
	comps := g.ConnectedComponents()
	for c, comp := range comps {
		for _, i := range comp {
			labels[i] = c
		}
	}
	return labels, len(comps)
}
