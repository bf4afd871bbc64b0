package experiment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/connectivity"
	"github.com/sontheimer/TVB-NEST-v1/internal/coupling"
	"github.com/sontheimer/TVB-NEST-v1/internal/integrator"
	"github.com/sontheimer/TVB-NEST-v1/internal/metrics"
	"github.com/sontheimer/TVB-NEST-v1/internal/model"
	"github.com/sontheimer/TVB-NEST-v1/internal/rates"
)

type Registry struct {
	models      map[string]func() model.Model
	couplings   map[string]func(cfg config.CouplingConfig) coupling.Coupling
	integrators map[string]func(b *integrator.Bounds) integrator.Integrator
	sources     map[string]func(cfg config.RateConfig, seed int64) rates.Source
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() model.Model),
		couplings:   make(map[string]func(config.CouplingConfig) coupling.Coupling),
		integrators: make(map[string]func(*integrator.Bounds) integrator.Integrator),
		sources:     make(map[string]func(config.RateConfig, int64) rates.Source),
	}

	r.models["reduced_wong_wang"] = func() model.Model { return model.NewReducedWongWang() }
	r.models["generic_2d"] = func() model.Model { return model.NewGeneric2D() }
	r.models["linear"] = func() model.Model { return model.NewLinear() }

	r.couplings["linear"] = func(cfg config.CouplingConfig) coupling.Coupling {
		return &coupling.Linear{A: cfg.A, B: cfg.B}
	}
	r.couplings["sigmoidal"] = func(cfg config.CouplingConfig) coupling.Coupling {
		return coupling.NewSigmoidal()
	}

	r.integrators["heun"] = func(b *integrator.Bounds) integrator.Integrator { return integrator.NewHeun(b) }
	r.integrators["euler"] = func(b *integrator.Bounds) integrator.Integrator { return integrator.NewEuler(b) }

	r.sources["constant"] = func(cfg config.RateConfig, _ int64) rates.Source {
		return rates.NewConstant(cfg.Level)
	}
	r.sources["sinusoid"] = func(cfg config.RateConfig, _ int64) rates.Source {
		return rates.NewSinusoid(cfg.Level, cfg.Amplitude, cfg.Frequency)
	}
	r.sources["poisson"] = func(cfg config.RateConfig, seed int64) rates.Source {
		return rates.NewPoisson(cfg.Level, cfg.Amplitude, seed)
	}

	return r
}

func (r *Registry) GetModel(name string) (model.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetCoupling(cfg config.CouplingConfig) (coupling.Coupling, error) {
	fn, ok := r.couplings[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown coupling: %s", cfg.Name)
	}
	return fn(cfg), nil
}

func (r *Registry) GetIntegrator(name string, b *integrator.Bounds) (integrator.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(b), nil
}

func (r *Registry) GetSource(cfg config.RateConfig, seed int64) (rates.Source, error) {
	fn, ok := r.sources[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown rate source: %s", cfg.Name)
	}
	return fn(cfg, seed), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// BoundsFor returns the state bounds the integrator must enforce for a
// model, nil when the model is unbounded.
func BoundsFor(m model.Model) *integrator.Bounds {
	if _, ok := m.(*model.ReducedWongWang); ok {
		return &integrator.Bounds{Indices: []int{0}, Boundaries: [][2]float64{{0.0, 1.0}}}
	}
	return nil
}

// BuildNetwork generates the weight and tract-length matrices for a
// network config.
func BuildNetwork(cfg config.NetworkConfig) (*mat.Dense, *mat.Dense, error) {
	switch cfg.Topology {
	case "ring", "":
		w, tl := connectivity.Ring(cfg.Regions, cfg.Weight, cfg.TractLength)
		return w, tl, nil
	case "all_to_all":
		w, tl := connectivity.AllToAll(cfg.Regions, cfg.Weight, cfg.TractLength)
		return w, tl, nil
	default:
		return nil, nil, fmt.Errorf("unknown topology: %s", cfg.Topology)
	}
}

// DefaultMetrics is the standard observation set for standalone runs.
func DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewMeanField(),
		metrics.NewDispersion(),
		metrics.NewBoundViolations(0.0, 1.0),
	}
}
