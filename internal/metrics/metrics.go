package metrics

// Metric accumulates a scalar over the per-sample region activity of a
// run. Observe receives the recorded value of the primary state variable
// for every region at one sample time.
type Metric interface {
	Name() string
	Observe(t float64, regions []float64)
	Value() float64
	Reset()
}
