package metrics

import "gonum.org/v1/gonum/stat"

// MeanField averages the primary state variable across regions and
// samples.
type MeanField struct {
	sum     float64
	samples int
}

func NewMeanField() *MeanField { return &MeanField{} }

func (m *MeanField) Name() string { return "mean_field" }

func (m *MeanField) Observe(_ float64, regions []float64) {
	if len(regions) == 0 {
		return
	}
	m.sum += stat.Mean(regions, nil)
	m.samples++
}

func (m *MeanField) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanField) Reset() {
	m.sum = 0
	m.samples = 0
}
