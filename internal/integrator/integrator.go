package integrator

// RHS evaluates the network right-hand side for the full state
// ([region][variable]), with the long-range coupling of the current step
// already baked in by the caller.
type RHS func(x [][]float64) [][]float64

// Integrator advances the full network state by one step of size dt.
type Integrator interface {
	Name() string
	Step(x [][]float64, dt float64, f RHS) [][]float64
}

// Bounds clamps selected state variables to a closed range after each
// integration stage, mirroring bounded state variables in mass models
// whose variables are fractions or probabilities.
type Bounds struct {
	Indices    []int
	Boundaries [][2]float64
}

func (b *Bounds) Clamp(x [][]float64) {
	if b == nil {
		return
	}
	for k, idx := range b.Indices {
		lo, hi := b.Boundaries[k][0], b.Boundaries[k][1]
		for _, xi := range x {
			if xi[idx] < lo {
				xi[idx] = lo
			} else if xi[idx] > hi {
				xi[idx] = hi
			}
		}
	}
}

func clone(x [][]float64) [][]float64 {
	c := make([][]float64, len(x))
	for i := range x {
		c[i] = make([]float64, len(x[i]))
		copy(c[i], x[i])
	}
	return c
}
