package metrics

import "gonum.org/v1/gonum/stat"

// Dispersion is the mean cross-region standard deviation: zero when all
// regions move together, larger the less synchronized the network is.
type Dispersion struct {
	sum     float64
	samples int
}

func NewDispersion() *Dispersion { return &Dispersion{} }

func (m *Dispersion) Name() string { return "dispersion" }

func (m *Dispersion) Observe(_ float64, regions []float64) {
	if len(regions) < 2 {
		return
	}
	m.sum += stat.StdDev(regions, nil)
	m.samples++
}

func (m *Dispersion) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Dispersion) Reset() {
	m.sum = 0
	m.samples = 0
}
