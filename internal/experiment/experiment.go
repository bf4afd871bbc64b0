package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/emer/etable/etensor"
	"github.com/sirupsen/logrus"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/connectivity"
	"github.com/sontheimer/TVB-NEST-v1/internal/cosim"
	"github.com/sontheimer/TVB-NEST-v1/internal/metrics"
	"github.com/sontheimer/TVB-NEST-v1/internal/rates"
)

// Result collects the full trace of a finished run. States has one row
// per recorded sample, one column per region.
type Result struct {
	Times   []float64
	States  [][]float64
	Metrics map[string]float64
}

// Experiment runs a configured network window by window, feeding the
// proxy regions from a rate source in place of an external spiking
// simulation.
type Experiment struct {
	cfg     *config.Config
	tvb     *cosim.TvbSim
	source  rates.Source
	metrics []metrics.Metric

	// OnWindow, when set, receives each window's samples as they are
	// produced. Used by the live viewer.
	OnWindow func(times []float64, states [][]float64)
}

// New assembles an experiment from a validated config via the registry.
func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	return NewWithInitial(cfg, reg, nil)
}

// NewWithInitial is New with explicit initial conditions, shaped
// (samples, statevars, regions, 1). A nil tensor falls back to the
// seeded random start.
func NewWithInitial(cfg *config.Config, reg *Registry, initial *etensor.Float64) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := reg.GetModel(cfg.Model.Name)
	if err != nil {
		return nil, err
	}
	cp, err := reg.GetCoupling(cfg.Coupling)
	if err != nil {
		return nil, err
	}
	ig, err := reg.GetIntegrator(cfg.Integrator, BoundsFor(m))
	if err != nil {
		return nil, err
	}
	src, err := reg.GetSource(cfg.RateSource, cfg.Seed)
	if err != nil {
		return nil, err
	}

	weights, tracts, err := BuildNetwork(cfg.Network)
	if err != nil {
		return nil, err
	}
	conn, err := connectivity.NewWithProxies(weights, tracts, cfg.Network.ProxyIDs)
	if err != nil {
		return nil, err
	}

	tvb, err := cosim.NewWithParts(m, cp, ig, conn, cfg.Dt, cfg.Synchronize, initial)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:     cfg,
		tvb:     tvb,
		source:  src,
		metrics: DefaultMetrics(),
	}, nil
}

// Sim exposes the underlying adapter.
func (e *Experiment) Sim() *cosim.TvbSim { return e.tvb }

// Run advances the network for the configured duration, one
// synchronization window at a time. Cancellation is honored between
// windows; a window in flight always completes.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	nproxy := len(e.cfg.Network.ProxyIDs)
	stepsPerWindow := int(math.Round(e.cfg.Synchronize / e.cfg.Dt))
	windows := int(math.Round(e.cfg.Duration / e.cfg.Synchronize))
	if windows < 1 {
		windows = 1
	}

	logrus.WithFields(logrus.Fields{
		"windows":  windows,
		"steps":    stepsPerWindow,
		"duration": e.cfg.Duration,
	}).Info("starting run")

	res := &Result{Metrics: make(map[string]float64)}
	for w := 0; w < windows; w++ {
		select {
		case <-ctx.Done():
			logrus.Warnf("run cancelled after %d/%d windows", w, windows)
			e.finalize(res)
			return res, ctx.Err()
		default:
		}

		var update *cosim.ProxyUpdate
		if nproxy > 0 {
			times, values := rates.Window(e.source, e.tvb.Time(), e.cfg.Dt, stepsPerWindow, nproxy)
			update = &cosim.ProxyUpdate{Times: times, Rates: values}
		}

		times, states, err := e.tvb.Run(e.cfg.Synchronize, update)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", w, err)
		}

		for k := range times {
			for _, m := range e.metrics {
				m.Observe(times[k], states[k])
			}
		}
		res.Times = append(res.Times, times...)
		res.States = append(res.States, states...)

		if e.OnWindow != nil {
			e.OnWindow(times, states)
		}
	}

	e.finalize(res)
	return res, nil
}

func (e *Experiment) finalize(res *Result) {
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}

// MeanField reduces a result to the network-average trace, one value per
// sample.
func MeanField(res *Result) []float64 {
	out := make([]float64, len(res.States))
	for k, row := range res.States {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if len(row) > 0 {
			out[k] = sum / float64(len(row))
		}
	}
	return out
}

// RegionTrace extracts one region's trace from a result.
func RegionTrace(res *Result, region int) ([]float64, error) {
	if len(res.States) == 0 {
		return nil, fmt.Errorf("empty result")
	}
	if region < 0 || region >= len(res.States[0]) {
		return nil, fmt.Errorf("region %d out of range [0, %d)", region, len(res.States[0]))
	}
	out := make([]float64, len(res.States))
	for k, row := range res.States {
		out[k] = row[region]
	}
	return out, nil
}
