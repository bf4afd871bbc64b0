package analysis

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
)

// SweepPoint records the distinct settled mean-field values observed at
// one coupling strength.
type SweepPoint struct {
	Strength float64
	Values   []float64
}

// CouplingSweep reruns the configured network across a range of linear
// coupling strengths and records, for each strength, the distinct
// mean-field values seen after the transient. Regime changes show up as
// the value set widening.
func CouplingSweep(ctx context.Context, cfg *config.Config, reg *experiment.Registry,
	aMin, aMax float64, steps int, transient float64) ([]SweepPoint, error) {

	if steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}
	if transient >= cfg.Duration {
		return nil, fmt.Errorf("transient %f leaves nothing of duration %f", transient, cfg.Duration)
	}

	stride := (aMax - aMin) / float64(steps-1)
	points := make([]SweepPoint, 0, steps)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return points, ctx.Err()
		default:
		}

		a := aMin + float64(i)*stride
		runCfg := *cfg
		runCfg.Coupling.A = a

		exp, err := experiment.New(&runCfg, reg)
		if err != nil {
			return nil, fmt.Errorf("strength %f: %w", a, err)
		}
		res, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("strength %f: %w", a, err)
		}

		points = append(points, SweepPoint{
			Strength: a,
			Values:   settledValues(res, transient),
		})
		logrus.Debugf("sweep %d/%d: a=%.4f, %d settled values", i+1, steps, a, len(points[i].Values))
	}

	return points, nil
}

// settledValues quantizes the post-transient mean field to 1e-3 and
// keeps each level once.
func settledValues(res *experiment.Result, transient float64) []float64 {
	mf := experiment.MeanField(res)
	seen := make(map[int]bool)
	values := make([]float64, 0, 16)
	for k, t := range res.Times {
		if t < transient {
			continue
		}
		key := int(mf[k] * 1000)
		if !seen[key] {
			seen[key] = true
			values = append(values, mf[k])
		}
	}
	return values
}

// SweepToASCII renders sweep points as a dot plot, strengths across,
// values up.
func SweepToASCII(points []SweepPoint, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var lo, hi float64
	found := false
	for _, p := range points {
		for _, v := range p.Values {
			if !found {
				lo, hi = v, v
				found = true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if !found {
		return ""
	}
	if hi == lo {
		hi = lo + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range points {
		col := i * width / len(points)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-lo)/(hi-lo)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '*'
			}
		}
	}

	out := ""
	for _, row := range canvas {
		out += string(row) + "\n"
	}
	return out
}
