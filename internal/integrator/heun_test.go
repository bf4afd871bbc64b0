package integrator

import (
	"math"
	"testing"
)

// dx = -x for every region and variable
func decay(x [][]float64) [][]float64 {
	dx := make([][]float64, len(x))
	for i := range x {
		dx[i] = make([]float64, len(x[i]))
		for v := range x[i] {
			dx[i][v] = -x[i][v]
		}
	}
	return dx
}

func TestHeunAccuracy(t *testing.T) {
	h := NewHeun(nil)
	e := NewEuler(nil)

	dt := 0.1
	steps := 10

	xh := [][]float64{{1.0}}
	xe := [][]float64{{1.0}}
	for i := 0; i < steps; i++ {
		xh = h.Step(xh, dt, decay)
		xe = e.Step(xe, dt, decay)
	}

	exact := math.Exp(-1.0)
	errHeun := math.Abs(xh[0][0] - exact)
	errEuler := math.Abs(xe[0][0] - exact)

	if errHeun > 1e-3 {
		t.Errorf("heun error too large: %e", errHeun)
	}
	if errHeun >= errEuler {
		t.Errorf("heun (%e) should beat euler (%e) on exponential decay", errHeun, errEuler)
	}
}

func TestHeunDoesNotMutateInput(t *testing.T) {
	h := NewHeun(nil)
	x := [][]float64{{0.5, -0.5}, {0.25, 0.0}}
	h.Step(x, 0.1, decay)

	if x[0][0] != 0.5 || x[0][1] != -0.5 || x[1][0] != 0.25 || x[1][1] != 0.0 {
		t.Errorf("input state mutated: %v", x)
	}
}

func TestBoundsClamp(t *testing.T) {
	b := &Bounds{Indices: []int{0}, Boundaries: [][2]float64{{0.0, 1.0}}}
	h := NewHeun(b)

	// strong positive drive pushes past the upper bound without clamping
	grow := func(x [][]float64) [][]float64 {
		dx := make([][]float64, len(x))
		for i := range x {
			dx[i] = []float64{100.0}
		}
		return dx
	}

	x := [][]float64{{0.9}, {0.1}}
	next := h.Step(x, 1.0, grow)
	for i := range next {
		if next[i][0] < 0 || next[i][0] > 1 {
			t.Errorf("region %d escaped bounds: %f", i, next[i][0])
		}
	}
}

func TestBoundsOnlyTouchListedVariables(t *testing.T) {
	b := &Bounds{Indices: []int{0}, Boundaries: [][2]float64{{0.0, 1.0}}}
	x := [][]float64{{2.0, 5.0}}
	b.Clamp(x)

	if x[0][0] != 1.0 {
		t.Errorf("bounded variable not clamped: %f", x[0][0])
	}
	if x[0][1] != 5.0 {
		t.Errorf("unbounded variable was clamped: %f", x[0][1])
	}
}
