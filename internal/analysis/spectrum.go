// Package analysis provides offline tools for inspecting simulated
// traces: power spectra, coupling-strength sweeps and trajectory
// divergence estimates.
package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the one-sided magnitude spectrum of a trace,
// mean-subtracted so the DC component does not swamp the oscillatory
// bins.
func PowerSpectrum(trace []float64) []float64 {
	n := len(trace)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range trace {
		mean += v
	}
	mean /= float64(n)

	detrended := make([]float64, n)
	for i, v := range trace {
		detrended[i] = v - mean
	}

	spectrum := fft.FFTReal(detrended)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency of a trace in
// Hz. dt is the sampling step in ms.
func DominantFrequency(trace []float64, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("dt must be positive, got %f", dt)
	}
	ps := PowerSpectrum(trace)
	if len(ps) < 2 {
		return 0, fmt.Errorf("trace too short for spectrum: %d samples", len(trace))
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}

	fs := 1000.0 / dt // ms sampling to Hz
	return float64(best) * fs / float64(len(trace)), nil
}
