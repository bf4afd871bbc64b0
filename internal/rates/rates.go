package rates

import (
	"math"
	"math/rand"
)

// Source generates proxy-region activity for standalone runs, standing in
// for the spiking simulator on the other side of the exchange. Fill
// writes one value per proxy region for simulated time t (ms).
type Source interface {
	Name() string
	Fill(t float64, out []float64)
}

// Constant holds every proxy at a fixed level.
type Constant struct {
	Level float64
}

func NewConstant(level float64) *Constant { return &Constant{Level: level} }

func (s *Constant) Name() string { return "constant" }

func (s *Constant) Fill(_ float64, out []float64) {
	for i := range out {
		out[i] = s.Level
	}
}

// Sinusoid drives the proxies with a common oscillation, phase-shifted
// per region.
type Sinusoid struct {
	Level     float64
	Amplitude float64
	Frequency float64 // Hz
}

func NewSinusoid(level, amplitude, frequency float64) *Sinusoid {
	return &Sinusoid{Level: level, Amplitude: amplitude, Frequency: frequency}
}

func (s *Sinusoid) Name() string { return "sinusoid" }

func (s *Sinusoid) Fill(t float64, out []float64) {
	// t is in ms, frequency in Hz
	omega := 2 * math.Pi * s.Frequency / 1000.0
	for i := range out {
		phase := float64(i) * math.Pi / float64(len(out)+1)
		out[i] = s.Level + s.Amplitude*math.Sin(omega*t+phase)
	}
}

// Poisson jitters a base level with seeded noise, a crude stand-in for
// rates estimated from Poisson spiking.
type Poisson struct {
	Level     float64
	Amplitude float64

	rng *rand.Rand
}

func NewPoisson(level, amplitude float64, seed int64) *Poisson {
	return &Poisson{Level: level, Amplitude: amplitude, rng: rand.New(rand.NewSource(seed))}
}

func (s *Poisson) Name() string { return "poisson" }

func (s *Poisson) Fill(_ float64, out []float64) {
	for i := range out {
		v := s.Level + s.Amplitude*(s.rng.Float64()*2-1)
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
}

// Window produces the (samples, proxyCount) rate matrix for one
// synchronization window starting at t0.
func Window(src Source, t0, dt float64, steps, nproxy int) ([]float64, [][]float64) {
	times := make([]float64, steps)
	values := make([][]float64, steps)
	for k := 0; k < steps; k++ {
		times[k] = t0 + float64(k+1)*dt
		values[k] = make([]float64, nproxy)
		src.Fill(times[k], values[k])
	}
	return times, values
}
