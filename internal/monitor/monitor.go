package monitor

import (
	"fmt"

	"github.com/emer/etable/etensor"
)

// Sample is one recorded observation. Data has the axis order
// (state variable, region, mode); the mode axis is singleton for the
// single-mode models in this package.
type Sample struct {
	Time float64
	Data *etensor.Float64
}

// Output collects the samples a monitor produced during one run window.
type Output struct {
	Name    string
	Times   []float64
	Samples []*etensor.Float64
}

// Monitor observes simulator state at its own cadence.
type Monitor interface {
	Name() string
	Configure(dt float64, nvar, nnode int) error
	// Sample returns a recorded observation for this step, or ok=false
	// when the monitor does not record at this step.
	Sample(step int, state [][]float64) (Sample, bool)
}

// NewStateTensor allocates a (nvar, nnode, 1) observation tensor.
func NewStateTensor(nvar, nnode int) *etensor.Float64 {
	return etensor.NewFloat64([]int{nvar, nnode, 1}, nil, []string{"StateVar", "Region", "Mode"})
}

func fillStateTensor(tsr *etensor.Float64, voi []int, state [][]float64) {
	nnode := len(state)
	for k, v := range voi {
		for i := 0; i < nnode; i++ {
			tsr.Values[k*nnode+i] = state[i][v]
		}
	}
}

func checkVOI(voi []int, nvar int) error {
	if len(voi) == 0 {
		return fmt.Errorf("no variables of interest")
	}
	for _, v := range voi {
		if v < 0 || v >= nvar {
			return fmt.Errorf("variable of interest %d out of range [0, %d)", v, nvar)
		}
	}
	return nil
}
