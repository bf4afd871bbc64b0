package optim

import (
	"context"
	"testing"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Network.Regions = 4
	cfg.Duration = 6.0
	return cfg
}

func TestApplyParam(t *testing.T) {
	cfg := config.DefaultConfig()

	if err := ApplyParam(cfg, "coupling_a", 0.05); err != nil {
		t.Fatal(err)
	}
	if cfg.Coupling.A != 0.05 {
		t.Errorf("coupling_a not applied: %f", cfg.Coupling.A)
	}

	if err := ApplyParam(cfg, "weight", 2.5); err != nil {
		t.Fatal(err)
	}
	if cfg.Network.Weight != 2.5 {
		t.Errorf("weight not applied: %f", cfg.Network.Weight)
	}

	if err := ApplyParam(cfg, "gravity", 9.8); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestMinimizeFindsLowestDispersion(t *testing.T) {
	g := NewGridSearch(
		[]string{"coupling_a"},
		[][]float64{{0.001, 0.0154, 0.05}},
	)

	params, best, err := g.Minimize(context.Background(), baseConfig(), experiment.NewRegistry(), "dispersion")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := params["coupling_a"]; !ok {
		t.Fatalf("missing coupling_a in best params: %v", params)
	}
	if best < 0 {
		t.Errorf("dispersion cannot be negative, got %f", best)
	}
}

func TestMinimizeTwoParameters(t *testing.T) {
	g := NewGridSearch(
		[]string{"coupling_a", "weight"},
		[][]float64{{0.01, 0.02}, {0.5, 1.0}},
	)

	params, _, err := g.Minimize(context.Background(), baseConfig(), experiment.NewRegistry(), "dispersion")
	if err != nil {
		t.Fatal(err)
	}
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters in result, got %v", params)
	}
}

func TestMinimizeValidation(t *testing.T) {
	g := NewGridSearch([]string{"coupling_a"}, nil)
	if _, _, err := g.Minimize(context.Background(), baseConfig(), experiment.NewRegistry(), "dispersion"); err == nil {
		t.Error("expected error for mismatched names and ranges")
	}

	g = NewGridSearch([]string{"coupling_a"}, [][]float64{{0.01}})
	if _, _, err := g.Minimize(context.Background(), baseConfig(), experiment.NewRegistry(), "no_such_metric"); err == nil {
		t.Error("expected error when metric never appears")
	}
}

func TestMinimizeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridSearch([]string{"coupling_a"}, [][]float64{{0.01, 0.02}})
	if _, _, err := g.Minimize(ctx, baseConfig(), experiment.NewRegistry(), "dispersion"); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
