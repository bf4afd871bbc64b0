package simulator

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/emer/etable/etensor"
	"github.com/sirupsen/logrus"

	"github.com/sontheimer/TVB-NEST-v1/internal/connectivity"
	"github.com/sontheimer/TVB-NEST-v1/internal/coupling"
	"github.com/sontheimer/TVB-NEST-v1/internal/integrator"
	"github.com/sontheimer/TVB-NEST-v1/internal/model"
	"github.com/sontheimer/TVB-NEST-v1/internal/monitor"
)

const defaultSeed = 42

// NewInitialConditions allocates a (samples, nvar, nnode, 1) tensor in the
// layout Configure expects for explicit initial conditions.
func NewInitialConditions(samples, nvar, nnode int) *etensor.Float64 {
	return etensor.NewFloat64([]int{samples, nvar, nnode, 1}, nil,
		[]string{"Sample", "StateVar", "Region", "Mode"})
}

// Simulator steps a delayed brain-network model. It owns all simulation
// state; callers advance it window by window through Run. Not safe for
// concurrent use: each call mutates the shared state in place.
type Simulator struct {
	Model        model.Model
	Connectivity *connectivity.Connectivity
	Coupling     coupling.Coupling
	Integrator   integrator.Integrator
	Monitors     []monitor.Monitor
	Dt           float64
	// InitialConditions, when set, must have the axis order
	// (sample, state variable, region, mode); the last sample seeds the
	// current state and the history.
	InitialConditions *etensor.Float64
	Seed              int64

	state      [][]float64 // [region][variable]
	hist       *history
	step       int
	cosim      *monitor.CoSimulation
	configured bool
}

// Configure validates the pieces, seeds state and history, and prepares
// the monitors. It must be called once before Run.
func (s *Simulator) Configure() error {
	if s.Model == nil || s.Connectivity == nil || s.Coupling == nil || s.Integrator == nil {
		return fmt.Errorf("simulator needs model, connectivity, coupling and integrator")
	}
	if s.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", s.Dt)
	}
	if len(s.Monitors) == 0 {
		return fmt.Errorf("simulator needs at least one monitor")
	}

	if err := s.Connectivity.Configure(s.Dt); err != nil {
		return err
	}

	nnode := s.Connectivity.NumRegions()
	nvar := s.Model.NVar()

	if err := s.initState(nvar, nnode); err != nil {
		return err
	}

	s.hist = newHistory(s.Connectivity.Horizon(), nnode)
	s.hist.fill(s.coupledVar())

	s.cosim = nil
	for _, m := range s.Monitors {
		if err := m.Configure(s.Dt, nvar, nnode); err != nil {
			return err
		}
		if cs, ok := m.(*monitor.CoSimulation); ok && s.cosim == nil {
			s.cosim = cs
		}
	}

	s.step = 0
	s.configured = true

	logrus.Infof("simulator configured: %d regions (%d proxy), model %s, horizon %d steps",
		nnode, len(s.Connectivity.ProxyIndices()), s.Model.Name(), s.Connectivity.Horizon())
	return nil
}

func (s *Simulator) initState(nvar, nnode int) error {
	s.state = make([][]float64, nnode)
	for i := range s.state {
		s.state[i] = make([]float64, nvar)
	}

	if ic := s.InitialConditions; ic != nil {
		if ic.NumDims() != 4 {
			return fmt.Errorf("initial conditions must have 4 axes, got %d", ic.NumDims())
		}
		if ic.Dim(1) != nvar || ic.Dim(2) != nnode {
			return fmt.Errorf("initial conditions shaped for %d variables x %d regions, expected %dx%d",
				ic.Dim(1), ic.Dim(2), nvar, nnode)
		}
		last := ic.Dim(0) - 1
		for v := 0; v < nvar; v++ {
			for i := 0; i < nnode; i++ {
				s.state[i][v] = ic.Values[ic.Offset([]int{last, v, i, 0})]
			}
		}
		return nil
	}

	seed := s.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	bounds := s.Model.InitBounds()
	for v := 0; v < nvar; v++ {
		lo, hi := bounds[v][0], bounds[v][1]
		for i := 0; i < nnode; i++ {
			s.state[i][v] = lo + rng.Float64()*(hi-lo)
		}
	}
	return nil
}

func (s *Simulator) coupledVar() []float64 {
	cv := s.Model.CVar()
	vals := make([]float64, len(s.state))
	for i := range s.state {
		vals[i] = s.state[i][cv]
	}
	return vals
}

// Run advances the simulation by the given length (ms) and returns one
// output per monitor, in monitor order. Proxy data, when supplied, must
// cover every step of the window; it is consumed by this window only.
func (s *Simulator) Run(length float64, proxy *monitor.ProxyData) ([]monitor.Output, error) {
	if !s.configured {
		return nil, fmt.Errorf("simulator not configured")
	}
	if length <= 0 {
		return nil, fmt.Errorf("simulation length must be positive, got %f", length)
	}

	steps := int(math.Round(length / s.Dt))
	if steps < 1 {
		steps = 1
	}

	if proxy != nil {
		if s.cosim == nil {
			return nil, fmt.Errorf("proxy data supplied but no co-simulation monitor attached")
		}
		if err := s.cosim.SetProxyData(proxy, steps); err != nil {
			return nil, err
		}
	}

	outputs := make([]monitor.Output, len(s.Monitors))
	for k, m := range s.Monitors {
		outputs[k].Name = m.Name()
	}

	nnode := len(s.state)
	cv := s.Model.CVar()
	proxyRegion := make([]bool, nnode)
	for _, id := range s.Connectivity.ProxyIndices() {
		proxyRegion[id] = true
	}

	for w := 0; w < steps; w++ {
		c := s.couplingTerms()

		rhs := func(x [][]float64) [][]float64 {
			dx := make([][]float64, nnode)
			for i := range x {
				dx[i] = make([]float64, len(x[i]))
				if proxyRegion[i] {
					continue // externally driven, no local dynamics
				}
				s.Model.Dfun(dx[i], x[i], c[i])
			}
			return dx
		}

		s.state = s.Integrator.Step(s.state, s.Dt, rhs)

		if s.cosim != nil {
			for k, id := range s.cosim.IDProxy {
				if v, ok := s.cosim.ProxyValue(w, k); ok {
					s.state[id][cv] = v
				}
			}
		}

		s.hist.push(s.coupledVar())
		s.step++

		for k, m := range s.Monitors {
			if sample, ok := m.Sample(s.step, s.state); ok {
				outputs[k].Times = append(outputs[k].Times, sample.Time)
				outputs[k].Samples = append(outputs[k].Samples, sample.Data)
			}
		}
	}

	if s.cosim != nil {
		s.cosim.ClearProxyData()
	}

	return outputs, nil
}

// couplingTerms computes the afferent coupling of the coupled variable for
// every region from the delayed history.
func (s *Simulator) couplingTerms() []float64 {
	nnode := len(s.state)
	cv := s.Model.CVar()
	c := make([]float64, nnode)

	for i := 0; i < nnode; i++ {
		gx := 0.0
		for j := 0; j < nnode; j++ {
			w := s.Connectivity.Weights.At(i, j)
			if w == 0 {
				continue
			}
			xj := s.hist.delayed(s.Connectivity.Delay(i, j))[j]
			gx += w * s.Coupling.Pre(xj, s.state[i][cv])
		}
		c[i] = s.Coupling.Post(gx)
	}
	return c
}

// Time is the simulated time in ms reached so far.
func (s *Simulator) Time() float64 { return float64(s.step) * s.Dt }

// State returns the current state of one region, mainly for tests.
func (s *Simulator) State(region int) []float64 { return s.state[region] }
