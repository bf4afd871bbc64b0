package metrics

import "math"

// BoundViolations is the fraction of samples with any region outside
// [Lo, Hi] or non-finite. Injected proxy rates are not clamped by the
// integrator, so this flags ill-scaled external input.
type BoundViolations struct {
	Lo, Hi float64

	violations int
	samples    int
}

func NewBoundViolations(lo, hi float64) *BoundViolations {
	return &BoundViolations{Lo: lo, Hi: hi}
}

func (m *BoundViolations) Name() string { return "bound_violations" }

func (m *BoundViolations) Observe(_ float64, regions []float64) {
	m.samples++
	for _, v := range regions {
		if v < m.Lo || v > m.Hi || math.IsNaN(v) || math.IsInf(v, 0) {
			m.violations++
			return
		}
	}
}

func (m *BoundViolations) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.violations) / float64(m.samples)
}

func (m *BoundViolations) Reset() {
	m.violations = 0
	m.samples = 0
}
