package metrics

import (
	"math"
	"testing"
)

func TestMeanField(t *testing.T) {
	m := NewMeanField()
	m.Observe(0, []float64{0.2, 0.4})
	m.Observe(1, []float64{0.6, 0.8})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected mean field 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestDispersionZeroForSynchronizedRegions(t *testing.T) {
	m := NewDispersion()
	for i := 0; i < 5; i++ {
		m.Observe(float64(i), []float64{0.3, 0.3, 0.3})
	}
	if m.Value() != 0 {
		t.Errorf("expected zero dispersion, got %f", m.Value())
	}

	m.Reset()
	m.Observe(0, []float64{0.0, 1.0})
	if m.Value() <= 0 {
		t.Errorf("expected positive dispersion for spread regions, got %f", m.Value())
	}
}

func TestBoundViolations(t *testing.T) {
	m := NewBoundViolations(0, 1)
	m.Observe(0, []float64{0.5, 0.5})
	m.Observe(1, []float64{0.5, 1.5})
	m.Observe(2, []float64{math.NaN(), 0.5})
	m.Observe(3, []float64{0.0, 1.0})

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected violation fraction 0.5, got %f", m.Value())
	}
}
