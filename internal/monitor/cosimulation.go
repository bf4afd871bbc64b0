package monitor

import (
	"fmt"
	"math"

	"github.com/emer/etable/etensor"
)

// ProxyData carries externally computed activity for the proxy regions of
// one run window. Values has the axis order (sample, proxy region, state
// variable, mode); the trailing two axes are singleton.
type ProxyData struct {
	Times  []float64
	Values *etensor.Float64
}

// NewProxyValues allocates a (samples, nproxy, 1, 1) proxy tensor.
func NewProxyValues(samples, nproxy int) *etensor.Float64 {
	return etensor.NewFloat64([]int{samples, nproxy, 1, 1}, nil,
		[]string{"Sample", "Region", "StateVar", "Mode"})
}

// CoSimulation is the co-simulation interface monitor: it emits the coupled
// variable of every region once per synchronization interval (the outbound
// rates for the spiking side) and accepts replacement activity for the
// proxy regions of the current window.
type CoSimulation struct {
	IDProxy         []int
	TimeSynchronize float64
	VariablesOfInterest []int

	dt      float64
	nnode   int
	istep   int
	pending *ProxyData
}

func NewCoSimulation(idProxy []int, timeSynchronize float64) *CoSimulation {
	return &CoSimulation{
		IDProxy:         idProxy,
		TimeSynchronize: timeSynchronize,
		VariablesOfInterest: []int{0},
	}
}

func (m *CoSimulation) Name() string { return "cosimulation" }

func (m *CoSimulation) Configure(dt float64, nvar, nnode int) error {
	if err := checkVOI(m.VariablesOfInterest, nvar); err != nil {
		return err
	}
	if m.TimeSynchronize < dt {
		return fmt.Errorf("synchronization interval %f shorter than dt %f", m.TimeSynchronize, dt)
	}
	for _, id := range m.IDProxy {
		if id < 0 || id >= nnode {
			return fmt.Errorf("proxy index %d out of range [0, %d)", id, nnode)
		}
	}
	m.dt = dt
	m.nnode = nnode
	m.istep = stepsIn(m.TimeSynchronize, dt)
	return nil
}

func (m *CoSimulation) Sample(step int, state [][]float64) (Sample, bool) {
	if step%m.istep != 0 {
		return Sample{}, false
	}
	tsr := NewStateTensor(len(m.VariablesOfInterest), m.nnode)
	fillStateTensor(tsr, m.VariablesOfInterest, state)
	return Sample{Time: float64(step) * m.dt, Data: tsr}, true
}

// SetProxyData installs the proxy activity for a run window of the given
// step count. The values tensor must already be in the
// (samples, proxy, 1, 1) layout; no time-label alignment is checked.
func (m *CoSimulation) SetProxyData(pd *ProxyData, steps int) error {
	if pd.Values == nil {
		return fmt.Errorf("proxy data has no values")
	}
	if pd.Values.NumDims() != 4 {
		return fmt.Errorf("proxy values must have 4 axes, got %d", pd.Values.NumDims())
	}
	if pd.Values.Dim(1) != len(m.IDProxy) {
		return fmt.Errorf("proxy values cover %d regions, expected %d", pd.Values.Dim(1), len(m.IDProxy))
	}
	if pd.Values.Dim(2) != 1 || pd.Values.Dim(3) != 1 {
		return fmt.Errorf("trailing proxy axes must be singleton, got %dx%d",
			pd.Values.Dim(2), pd.Values.Dim(3))
	}
	if pd.Values.Dim(0) != steps {
		return fmt.Errorf("proxy data has %d samples for a %d step window", pd.Values.Dim(0), steps)
	}
	m.pending = pd
	return nil
}

// ClearProxyData drops the installed window data.
func (m *CoSimulation) ClearProxyData() { m.pending = nil }

// ProxyValue returns the injected activity of the k-th proxy region at the
// given window-relative sample, or ok=false when no data is installed.
func (m *CoSimulation) ProxyValue(sample, k int) (float64, bool) {
	if m.pending == nil {
		return 0, false
	}
	if sample < 0 || sample >= m.pending.Values.Dim(0) {
		return 0, false
	}
	off := m.pending.Values.Offset([]int{sample, k, 0, 0})
	return m.pending.Values.Values[off], true
}

// Pending exposes the currently installed proxy tensor, nil when none.
func (m *CoSimulation) Pending() *etensor.Float64 {
	if m.pending == nil {
		return nil
	}
	return m.pending.Values
}

func stepsIn(period, dt float64) int {
	n := int(math.Round(period / dt))
	if n < 1 {
		n = 1
	}
	return n
}
