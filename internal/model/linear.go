package model

// Linear is a one-variable linear model, dx = (gamma*x + c)/tau.
// With gamma < 0 every region decays exponentially toward the coupled
// input, which makes it handy for closed-form checks.
type Linear struct {
	Gamma float64
	Tau   float64
}

func NewLinear() *Linear {
	return &Linear{Gamma: -1.0, Tau: 1.0}
}

func (m *Linear) Name() string               { return "linear" }
func (m *Linear) NVar() int                  { return 1 }
func (m *Linear) CVar() int                  { return 0 }
func (m *Linear) VariablesOfInterest() []int { return []int{0} }
func (m *Linear) InitBounds() [][2]float64   { return [][2]float64{{-1.0, 1.0}} }

func (m *Linear) Dfun(dx, x []float64, c float64) {
	dx[0] = (m.Gamma*x[0] + c) / m.Tau
}
