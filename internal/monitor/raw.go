package monitor

// Raw records the variables of interest at every integration step.
type Raw struct {
	VariablesOfInterest []int

	dt    float64
	nnode int
}

func NewRaw(voi []int) *Raw {
	return &Raw{VariablesOfInterest: voi}
}

func (r *Raw) Name() string { return "raw" }

func (r *Raw) Configure(dt float64, nvar, nnode int) error {
	if err := checkVOI(r.VariablesOfInterest, nvar); err != nil {
		return err
	}
	r.dt = dt
	r.nnode = nnode
	return nil
}

func (r *Raw) Sample(step int, state [][]float64) (Sample, bool) {
	tsr := NewStateTensor(len(r.VariablesOfInterest), r.nnode)
	fillStateTensor(tsr, r.VariablesOfInterest, state)
	return Sample{Time: float64(step) * r.dt, Data: tsr}, true
}
