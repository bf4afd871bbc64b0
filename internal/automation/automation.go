// Package automation runs scripted batches: YAML scenarios of named
// simulation steps, and Monte Carlo repeats across seeds.
package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
	"github.com/sontheimer/TVB-NEST-v1/internal/store"
)

// Scenario is a scripted sequence of simulation steps.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step names one run. Config wins over Preset; with neither, the step
// runs the defaults.
type Step struct {
	Name   string         `yaml:"name"`
	Preset string         `yaml:"preset"`
	Config *config.Config `yaml:"config"`
}

// StepResult summarizes one finished step.
type StepResult struct {
	Step    string
	RunID   string
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Step) resolve() (*config.Config, error) {
	if s.Config != nil {
		return s.Config, nil
	}
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		c := *p
		return &c, nil
	}
	return config.DefaultConfig(), nil
}

// RunScenario executes every step in order, persisting each run when a
// store is given. A failing step aborts the batch; finished steps are
// returned alongside the error.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, st *store.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logrus.Infof("scenario %s: step %d/%d (%s)", scenario.Name, i+1, len(scenario.Steps), step.Name)

		cfg, err := step.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}

		exp, err := experiment.New(cfg, reg)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}

		sr := StepResult{Step: step.Name, Metrics: result.Metrics}
		if st != nil {
			sr.RunID, err = st.Save(cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig repeats one configuration across consecutive seeds.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
}

// TrialResult records whether one seeded run stayed inside the model's
// state bounds.
type TrialResult struct {
	TrialID int
	Seed    int64
	Stable  bool
	Metrics map[string]float64
}

// RunMonteCarlo runs the base configuration NumTrials times with seeds
// base, base+1, ... and flags trials with any bound violation.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, reg *experiment.Registry) ([]TrialResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("need at least 1 trial, got %d", cfg.NumTrials)
	}

	results := make([]TrialResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		runCfg := *cfg.Base
		runCfg.Seed = cfg.Base.Seed + int64(trial)

		exp, err := experiment.New(&runCfg, reg)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, TrialResult{
			TrialID: trial,
			Seed:    runCfg.Seed,
			Stable:  result.Metrics["bound_violations"] == 0,
			Metrics: result.Metrics,
		})
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []TrialResult) (stable, unstable int) {
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
