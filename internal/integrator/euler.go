package integrator

// Euler is the forward Euler scheme with bounded state variables.
type Euler struct {
	Bounds *Bounds
}

func NewEuler(bounds *Bounds) *Euler {
	return &Euler{Bounds: bounds}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(x [][]float64, dt float64, f RHS) [][]float64 {
	dx := f(x)

	next := clone(x)
	for i := range next {
		for v := range next[i] {
			next[i][v] += dt * dx[i][v]
		}
	}
	e.Bounds.Clamp(next)

	return next
}
