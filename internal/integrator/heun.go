package integrator

// Heun is the deterministic Heun scheme (explicit trapezoidal rule):
// an Euler predictor followed by an averaged corrector. State bounds are
// enforced on both the predictor and the corrected state.
type Heun struct {
	Bounds *Bounds
}

func NewHeun(bounds *Bounds) *Heun {
	return &Heun{Bounds: bounds}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) Step(x [][]float64, dt float64, f RHS) [][]float64 {
	k1 := f(x)

	pred := clone(x)
	for i := range pred {
		for v := range pred[i] {
			pred[i][v] += dt * k1[i][v]
		}
	}
	h.Bounds.Clamp(pred)

	k2 := f(pred)

	next := clone(x)
	for i := range next {
		for v := range next[i] {
			next[i][v] += dt * 0.5 * (k1[i][v] + k2[i][v])
		}
	}
	h.Bounds.Clamp(next)

	return next
}
