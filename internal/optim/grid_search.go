// Package optim searches configuration space for parameter values that
// minimize a run metric.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// ApplyParam maps a search parameter name onto the config.
func ApplyParam(cfg *config.Config, name string, value float64) error {
	switch name {
	case "coupling_a":
		cfg.Coupling.A = value
	case "coupling_b":
		cfg.Coupling.B = value
	case "weight":
		cfg.Network.Weight = value
	case "tract_length":
		cfg.Network.TractLength = value
	case "rate_level":
		cfg.RateSource.Level = value
	case "rate_amplitude":
		cfg.RateSource.Amplitude = value
	case "rate_frequency":
		cfg.RateSource.Frequency = value
	case "dt":
		cfg.Dt = value
	default:
		return fmt.Errorf("unknown search parameter: %s", name)
	}
	return nil
}

// Minimize runs the base configuration at every grid point and returns
// the parameter set with the lowest value of the named metric.
func (g *GridSearch) Minimize(ctx context.Context, base *config.Config, reg *experiment.Registry,
	metricName string) (map[string]float64, float64, error) {

	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%d parameter names for %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, reg, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("no grid point produced metric %s", metricName)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64,
	base *config.Config, reg *experiment.Registry, metricName string,
	best *float64, bestParams *map[string]float64) error {

	if depth == len(g.paramNames) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		cfg := *base
		for name, value := range current {
			if err := ApplyParam(&cfg, name, value); err != nil {
				return err
			}
		}

		exp, err := experiment.New(&cfg, reg)
		if err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return nil
		}
		logrus.Debugf("grid point %v: %s=%.6f", current, metricName, val)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, value := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[name] = value
		if err := g.searchRecursive(ctx, depth+1, next, base, reg, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
