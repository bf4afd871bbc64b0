package model

import (
	"math"
	"testing"
)

func TestWongWangDimensions(t *testing.T) {
	m := NewReducedWongWang()

	if m.NVar() != 1 {
		t.Errorf("expected 1 state variable, got %d", m.NVar())
	}
	if m.CVar() != 0 {
		t.Errorf("expected coupled variable 0, got %d", m.CVar())
	}
	if len(m.VariablesOfInterest()) != 1 {
		t.Errorf("expected 1 variable of interest, got %d", len(m.VariablesOfInterest()))
	}
}

func TestWongWangFlowIntoBounds(t *testing.T) {
	m := NewReducedWongWang()
	dx := make([]float64, 1)

	// at S=0 gating can only grow, at S=1 it can only decay: the flow
	// points into [0,1] at both edges
	m.Dfun(dx, []float64{0}, 0)
	if dx[0] <= 0 {
		t.Errorf("expected positive dS at S=0, got %f", dx[0])
	}

	m.Dfun(dx, []float64{1}, 0)
	if dx[0] >= 0 {
		t.Errorf("expected negative dS at S=1, got %f", dx[0])
	}
}

func TestWongWangTransferFunction(t *testing.T) {
	m := NewReducedWongWang()

	// H is positive and increasing over the operating range
	prev := m.H(0)
	for x := 0.1; x < 1.0; x += 0.1 {
		h := m.H(x)
		if h <= 0 {
			t.Fatalf("H(%f) = %f, expected positive", x, h)
		}
		if h < prev {
			t.Fatalf("H not increasing at x=%f: %f < %f", x, h, prev)
		}
		prev = h
	}

	// removable singularity at a*x == b
	xc := m.B / m.A
	if math.IsNaN(m.H(xc)) || math.IsInf(m.H(xc), 0) {
		t.Errorf("H at singularity not finite: %f", m.H(xc))
	}
	want := 1.0 / m.D
	if math.Abs(m.H(xc)-want) > 1e-9 {
		t.Errorf("H at singularity: expected %f, got %f", want, m.H(xc))
	}
}

func TestWongWangCouplingIncreasesDrive(t *testing.T) {
	m := NewReducedWongWang()
	dx0 := make([]float64, 1)
	dx1 := make([]float64, 1)

	m.Dfun(dx0, []float64{0.5}, 0.0)
	m.Dfun(dx1, []float64{0.5}, 1.0)

	if dx1[0] <= dx0[0] {
		t.Errorf("expected larger dS with afferent coupling: %f vs %f", dx1[0], dx0[0])
	}
}

func TestLinearDecay(t *testing.T) {
	m := NewLinear()
	dx := make([]float64, 1)

	m.Dfun(dx, []float64{2.0}, 0)
	if math.Abs(dx[0]-(-2.0)) > 1e-12 {
		t.Errorf("expected dx=-2 for x=2, got %f", dx[0])
	}

	m.Dfun(dx, []float64{0}, 0.5)
	if math.Abs(dx[0]-0.5) > 1e-12 {
		t.Errorf("expected dx=0.5 for coupled input, got %f", dx[0])
	}
}

func TestGeneric2DFinite(t *testing.T) {
	m := NewGeneric2D()
	dx := make([]float64, 2)

	for _, v := range []float64{-2, -0.5, 0, 0.5, 2} {
		m.Dfun(dx, []float64{v, 0.1}, 0.2)
		for i, d := range dx {
			if math.IsNaN(d) || math.IsInf(d, 0) {
				t.Fatalf("dx[%d] not finite at v=%f", i, v)
			}
		}
	}
}
