package monitor

import "fmt"

// TemporalAverage records the mean of the variables of interest over
// consecutive windows of the given period (ms).
type TemporalAverage struct {
	VariablesOfInterest []int
	Period              float64

	dt    float64
	nnode int
	istep int
	acc   [][]float64
	count int
}

func NewTemporalAverage(voi []int, period float64) *TemporalAverage {
	return &TemporalAverage{VariablesOfInterest: voi, Period: period}
}

func (m *TemporalAverage) Name() string { return "temporal_average" }

func (m *TemporalAverage) Configure(dt float64, nvar, nnode int) error {
	if err := checkVOI(m.VariablesOfInterest, nvar); err != nil {
		return err
	}
	if m.Period < dt {
		return fmt.Errorf("averaging period %f shorter than dt %f", m.Period, dt)
	}
	m.dt = dt
	m.nnode = nnode
	m.istep = stepsIn(m.Period, dt)
	m.acc = make([][]float64, nnode)
	for i := range m.acc {
		m.acc[i] = make([]float64, nvar)
	}
	m.count = 0
	return nil
}

func (m *TemporalAverage) Sample(step int, state [][]float64) (Sample, bool) {
	for i := range state {
		for v := range state[i] {
			m.acc[i][v] += state[i][v]
		}
	}
	m.count++

	if step%m.istep != 0 {
		return Sample{}, false
	}

	tsr := NewStateTensor(len(m.VariablesOfInterest), m.nnode)
	for k, v := range m.VariablesOfInterest {
		for i := 0; i < m.nnode; i++ {
			tsr.Values[k*m.nnode+i] = m.acc[i][v] / float64(m.count)
		}
	}
	for i := range m.acc {
		for v := range m.acc[i] {
			m.acc[i][v] = 0
		}
	}
	m.count = 0

	return Sample{Time: float64(step) * m.dt, Data: tsr}, true
}
