package rates

import (
	"math"
	"testing"
)

func TestConstantFill(t *testing.T) {
	s := NewConstant(0.4)
	out := make([]float64, 3)
	s.Fill(12.5, out)
	for i, v := range out {
		if v != 0.4 {
			t.Errorf("proxy %d: expected 0.4, got %f", i, v)
		}
	}
}

func TestSinusoidStaysInRange(t *testing.T) {
	s := NewSinusoid(0.3, 0.2, 10.0)
	out := make([]float64, 2)
	for tm := 0.0; tm < 200; tm += 0.7 {
		s.Fill(tm, out)
		for _, v := range out {
			if v < 0.3-0.2-1e-9 || v > 0.3+0.2+1e-9 {
				t.Fatalf("sinusoid escaped level±amplitude: %f at t=%f", v, tm)
			}
		}
	}
}

func TestSinusoidPeriod(t *testing.T) {
	s := NewSinusoid(0.0, 1.0, 10.0) // 10 Hz -> 100 ms period
	out := make([]float64, 1)

	s.Fill(0, out)
	v0 := out[0]
	s.Fill(100, out)
	if math.Abs(out[0]-v0) > 1e-9 {
		t.Errorf("expected 100 ms period at 10 Hz: %f vs %f", v0, out[0])
	}
}

func TestPoissonSeededAndNonNegative(t *testing.T) {
	a := NewPoisson(0.1, 0.5, 7)
	b := NewPoisson(0.1, 0.5, 7)
	outA := make([]float64, 4)
	outB := make([]float64, 4)

	for i := 0; i < 10; i++ {
		a.Fill(float64(i), outA)
		b.Fill(float64(i), outB)
		for k := range outA {
			if outA[k] != outB[k] {
				t.Fatal("same seed should give same rates")
			}
			if outA[k] < 0 {
				t.Fatalf("negative rate: %f", outA[k])
			}
		}
	}
}

func TestWindow(t *testing.T) {
	src := NewConstant(0.2)
	times, values := Window(src, 10.0, 0.1, 20, 2)

	if len(times) != 20 || len(values) != 20 {
		t.Fatalf("expected 20 samples, got %d/%d", len(times), len(values))
	}
	if math.Abs(times[0]-10.1) > 1e-9 {
		t.Errorf("first sample should be one step past window start, got %f", times[0])
	}
	if math.Abs(times[19]-12.0) > 1e-9 {
		t.Errorf("last sample should close the window, got %f", times[19])
	}
	for _, row := range values {
		if len(row) != 2 {
			t.Fatalf("expected 2 proxies per sample, got %d", len(row))
		}
	}
}
