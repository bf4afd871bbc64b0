package connectivity

import "gonum.org/v1/gonum/mat"

// Ring builds weight and tract-length matrices for a ring of n regions
// where each region projects to both neighbours.
func Ring(n int, weight, tractLength float64) (*mat.Dense, *mat.Dense) {
	w := mat.NewDense(n, n, nil)
	tl := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		w.Set(i, prev, weight)
		w.Set(i, next, weight)
		tl.Set(i, prev, tractLength)
		tl.Set(i, next, tractLength)
	}
	return w, tl
}

// AllToAll builds dense weight and tract-length matrices without
// self-connections.
func AllToAll(n int, weight, tractLength float64) (*mat.Dense, *mat.Dense) {
	w := mat.NewDense(n, n, nil)
	tl := mat.NewDense(n, n, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			w.Set(i, j, weight)
			tl.Set(i, j, tractLength)
		}
	}
	return w, tl
}
