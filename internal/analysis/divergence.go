package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
	"github.com/sontheimer/TVB-NEST-v1/internal/simulator"
)

// TrajectoryDivergence estimates the log separation growth rate per ms
// between a reference trace and a perturbed one started d0 apart. Both
// are (samples, regions). Positive rates mean nearby starts pull apart.
func TrajectoryDivergence(ref, pert [][]float64, dt, d0 float64) float64 {
	if len(ref) == 0 || len(ref) != len(pert) || dt <= 0 || d0 <= 0 {
		return 0
	}

	sumLog := 0.0
	count := 0
	for k := range ref {
		sep := 0.0
		for i := range ref[k] {
			diff := pert[k][i] - ref[k][i]
			sep += diff * diff
		}
		sep = math.Sqrt(sep)
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}

// DivergenceRate runs the configured network twice, the second time from
// an initial state perturbed by d0 on the gating variable of the first
// non-proxy region, and returns the separation growth rate.
func DivergenceRate(ctx context.Context, cfg *config.Config, reg *experiment.Registry, d0 float64) (float64, error) {
	if d0 <= 0 {
		return 0, fmt.Errorf("perturbation must be positive, got %f", d0)
	}

	ref, err := experiment.New(cfg, reg)
	if err != nil {
		return 0, err
	}

	m, err := reg.GetModel(cfg.Model.Name)
	if err != nil {
		return 0, err
	}
	nnode := cfg.Network.Regions
	nvar := m.NVar()

	// Copy the reference start and nudge one region.
	initial := simulator.NewInitialConditions(1, nvar, nnode)
	sim := ref.Sim().Simulator()
	for i := 0; i < nnode; i++ {
		state := sim.State(i)
		for v := 0; v < nvar; v++ {
			initial.Values[initial.Offset([]int{0, v, i, 0})] = state[v]
		}
	}
	target := firstNonProxy(cfg.Network.ProxyIDs, nnode)
	initial.Values[initial.Offset([]int{0, 0, target, 0})] += d0

	pert, err := experiment.NewWithInitial(cfg, reg, initial)
	if err != nil {
		return 0, err
	}

	refRes, err := ref.Run(ctx)
	if err != nil {
		return 0, err
	}
	pertRes, err := pert.Run(ctx)
	if err != nil {
		return 0, err
	}

	return TrajectoryDivergence(refRes.States, pertRes.States, cfg.Dt, d0), nil
}

func firstNonProxy(proxies []int, nnode int) int {
	isProxy := make(map[int]bool, len(proxies))
	for _, id := range proxies {
		isProxy[id] = true
	}
	for i := 0; i < nnode; i++ {
		if !isProxy[i] {
			return i
		}
	}
	return 0
}
