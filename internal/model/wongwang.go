package model

import "math"

// ReducedWongWang is the single-population reduced Wong-Wang model
// (Deco et al. 2013). One state variable per region: the average synaptic
// gating S, bounded to [0, 1].
//
//	x  = w*J_N*S + I_o + J_N*c
//	H  = (a*x - b) / (1 - exp(-d*(a*x - b)))
//	dS = -S/tau_s + (1 - S)*H*gamma
type ReducedWongWang struct {
	A     float64 // input gain, 1/nC
	B     float64 // input shift, kHz
	D     float64 // input scaling, ms
	Gamma float64 // kinetic parameter
	TauS  float64 // synaptic time constant, ms
	W     float64 // local excitatory recurrence
	JN    float64 // synaptic coupling, nA
	IO    float64 // external input current, nA
}

func NewReducedWongWang() *ReducedWongWang {
	return &ReducedWongWang{
		A:     0.270,
		B:     0.108,
		D:     154.0,
		Gamma: 0.641,
		TauS:  100.0,
		W:     0.6,
		JN:    0.2609,
		IO:    0.33,
	}
}

func (m *ReducedWongWang) Name() string                { return "reduced_wong_wang" }
func (m *ReducedWongWang) NVar() int                   { return 1 }
func (m *ReducedWongWang) CVar() int                   { return 0 }
func (m *ReducedWongWang) VariablesOfInterest() []int  { return []int{0} }
func (m *ReducedWongWang) InitBounds() [][2]float64    { return [][2]float64{{0.0, 1.0}} }

// H is the firing-rate transfer function, in kHz.
func (m *ReducedWongWang) H(x float64) float64 {
	y := m.A*x - m.B
	den := 1.0 - math.Exp(-m.D*y)
	if den == 0 {
		// removable singularity at y == 0, limit is 1/d
		return 1.0 / m.D
	}
	return y / den
}

func (m *ReducedWongWang) Dfun(dx, x []float64, c float64) {
	s := x[0]
	in := m.W*m.JN*s + m.IO + m.JN*c
	dx[0] = -s/m.TauS + (1.0-s)*m.H(in)*m.Gamma
}
