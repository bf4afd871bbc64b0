// Package cosim is the TVB side of a rate-exchange co-simulation with a
// spiking-network simulator. TvbSim wraps model construction, simulator
// initialization and the stepped run call behind the minimal interface
// the exchange loop needs: advance by one window, optionally inject
// externally computed proxy rates, get back times and gating state.
// Moving the rate data between the two processes is somebody else's job.
package cosim

import (
	"github.com/emer/etable/etensor"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/sontheimer/TVB-NEST-v1/internal/connectivity"
	"github.com/sontheimer/TVB-NEST-v1/internal/coupling"
	"github.com/sontheimer/TVB-NEST-v1/internal/integrator"
	"github.com/sontheimer/TVB-NEST-v1/internal/model"
	"github.com/sontheimer/TVB-NEST-v1/internal/monitor"
	"github.com/sontheimer/TVB-NEST-v1/internal/simulator"
)

// LinearCouplingA is the default long-range coupling strength.
const LinearCouplingA = 0.0154

// ProxyUpdate is one window of externally computed proxy activity:
// Rates is (samples, proxyCount), one sample per integration step.
type ProxyUpdate struct {
	Times []float64
	Rates [][]float64
}

// TvbSim drives a Wong-Wang network whose proxy regions are fed by an
// external spiking simulation. NbNode counts the regions simulated here,
// excluding proxies.
type TvbSim struct {
	NbNode int

	sim     *simulator.Simulator
	idProxy []int
}

// New builds the Wong-Wang model, connectivity, linear coupling and
// bounded Heun integrator, attaches a raw monitor and the co-simulation
// interface monitor, and configures the simulator. Construction errors
// from the engine propagate unmodified.
func New(weights, tractLengths *mat.Dense, idProxy []int, dt, timeSynchronize float64, initial *etensor.Float64) (*TvbSim, error) {
	conn, err := connectivity.NewWithProxies(weights, tractLengths, idProxy)
	if err != nil {
		return nil, err
	}

	ww := model.NewReducedWongWang()
	bounds := &integrator.Bounds{Indices: []int{0}, Boundaries: [][2]float64{{0.0, 1.0}}}

	return NewWithParts(ww, coupling.NewLinear(LinearCouplingA), integrator.NewHeun(bounds),
		conn, dt, timeSynchronize, initial)
}

// NewWithParts assembles the adapter around explicit engine parts, for
// callers that swap the model, coupling or integration scheme.
func NewWithParts(m model.Model, cp coupling.Coupling, ig integrator.Integrator,
	conn *connectivity.Connectivity, dt, timeSynchronize float64, initial *etensor.Float64) (*TvbSim, error) {

	idProxy := conn.ProxyIndices()
	sim := &simulator.Simulator{
		Model:        m,
		Connectivity: conn,
		Coupling:     cp,
		Integrator:   ig,
		Monitors: []monitor.Monitor{
			monitor.NewRaw(m.VariablesOfInterest()),
			monitor.NewCoSimulation(idProxy, timeSynchronize),
		},
		Dt:                dt,
		InitialConditions: initial,
	}
	if err := sim.Configure(); err != nil {
		return nil, err
	}

	n := conn.NumRegions()
	logrus.Infof("tvb co-simulation ready: %d regions, %d proxy, dt %.3f ms, sync %.3f ms",
		n, len(idProxy), dt, timeSynchronize)

	return &TvbSim{
		NbNode:  n - len(idProxy),
		sim:     sim,
		idProxy: idProxy,
	}, nil
}

// Run advances the simulation by simTime (ms). When proxy is non-nil its
// rate matrix is reshaped into the engine's (samples, regions, 1, 1)
// state layout before being handed over; nil proxy never touches that
// path. The returned state is the gating variable per region, one row per
// recorded sample. Engine errors propagate unmodified.
func (t *TvbSim) Run(simTime float64, proxy *ProxyUpdate) ([]float64, [][]float64, error) {
	var pd *monitor.ProxyData
	if proxy != nil {
		pd = &monitor.ProxyData{
			Times:  proxy.Times,
			Values: reshapeProxy(proxy.Rates),
		}
	}

	out, err := t.sim.Run(simTime, pd)
	if err != nil {
		return nil, nil, err
	}

	raw := out[0]
	states := make([][]float64, len(raw.Samples))
	for k, tsr := range raw.Samples {
		nnode := tsr.Dim(1)
		row := make([]float64, nnode)
		for i := 0; i < nnode; i++ {
			row[i] = tsr.Values[tsr.Offset([]int{0, i, 0})]
		}
		states[k] = row
	}
	return raw.Times, states, nil
}

// Time is the simulated time reached so far, in ms.
func (t *TvbSim) Time() float64 { return t.sim.Time() }

// Simulator exposes the underlying engine handle, mainly for observers.
func (t *TvbSim) Simulator() *simulator.Simulator { return t.sim }

// reshapeProxy expands (samples, proxyCount) rates with the two singleton
// axes the engine's state layout expects.
func reshapeProxy(rates [][]float64) *etensor.Float64 {
	samples := len(rates)
	nproxy := 0
	if samples > 0 {
		nproxy = len(rates[0])
	}
	vals := monitor.NewProxyValues(samples, nproxy)
	for s, row := range rates {
		for p, v := range row {
			vals.Values[vals.Offset([]int{s, p, 0, 0})] = v
		}
	}
	return vals
}
