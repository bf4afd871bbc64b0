package model

// Model is a neural-mass model: the per-region right-hand side of the
// network equations. Dfun writes the derivative of the region state into
// dx given the current state x and the afferent long-range coupling c of
// the coupled variable.
type Model interface {
	Name() string
	NVar() int
	// CVar is the index of the state variable that enters long-range coupling.
	CVar() int
	VariablesOfInterest() []int
	// InitBounds gives, per state variable, the range used to draw initial
	// history values when no explicit initial condition is supplied.
	InitBounds() [][2]float64
	Dfun(dx, x []float64, c float64)
}
