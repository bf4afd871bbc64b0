package model

// Generic2D is a generic plane oscillator with cubic nonlinearity
// (FitzHugh-Nagumo family). Two state variables per region; coupling
// enters the fast variable.
//
//	dV = d * tau * (alpha*W - f*V^3 + e*V^2 + g*V + gamma*(I + c))
//	dW = d * (a + b*V + cc*V^2 - beta*W) / tau
type Generic2D struct {
	Tau   float64
	I     float64
	A     float64
	B     float64
	C     float64
	D     float64
	E     float64
	F     float64
	G     float64
	Alpha float64
	Beta  float64
	Gamma float64
}

func NewGeneric2D() *Generic2D {
	return &Generic2D{
		Tau:   1.0,
		I:     0.0,
		A:     -2.0,
		B:     -10.0,
		C:     0.0,
		D:     0.02,
		E:     3.0,
		F:     1.0,
		G:     0.0,
		Alpha: 1.0,
		Beta:  1.0,
		Gamma: 1.0,
	}
}

func (m *Generic2D) Name() string               { return "generic_2d" }
func (m *Generic2D) NVar() int                  { return 2 }
func (m *Generic2D) CVar() int                  { return 0 }
func (m *Generic2D) VariablesOfInterest() []int { return []int{0} }

func (m *Generic2D) InitBounds() [][2]float64 {
	return [][2]float64{{-2.0, 1.0}, {-6.0, 6.0}}
}

func (m *Generic2D) Dfun(dx, x []float64, c float64) {
	v, w := x[0], x[1]
	v2 := v * v
	dx[0] = m.D * m.Tau * (m.Alpha*w - m.F*v2*v + m.E*v2 + m.G*v + m.Gamma*(m.I+c))
	dx[1] = m.D * (m.A + m.B*v + m.C*v2 - m.Beta*w) / m.Tau
}
