package connectivity

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	LabelReal  = "real"
	LabelProxy = "proxy"
)

// Connectivity is the weighted, delayed graph over brain regions. Delays
// are derived from tract lengths and a single conduction speed; regions
// labelled "proxy" are driven externally instead of by the model dynamics.
type Connectivity struct {
	Weights      *mat.Dense
	TractLengths *mat.Dense
	Speed        float64
	RegionLabels []string
	Centres      *mat.Dense // nregions x 3

	idelays [][]int
	horizon int
}

// New validates shapes and builds a connectivity with explicit labels.
func New(weights, tractLengths *mat.Dense, speed float64, labels []string) (*Connectivity, error) {
	wr, wc := weights.Dims()
	tr, tc := tractLengths.Dims()

	if wr != wc {
		return nil, fmt.Errorf("weights must be square, got %dx%d", wr, wc)
	}
	if tr != wr || tc != wc {
		return nil, fmt.Errorf("tract length shape %dx%d does not match weights %dx%d", tr, tc, wr, wc)
	}
	if len(labels) != wr {
		return nil, fmt.Errorf("expected %d region labels, got %d", wr, len(labels))
	}
	if speed <= 0 {
		return nil, fmt.Errorf("conduction speed must be positive, got %f", speed)
	}

	centres := mat.NewDense(wr, 3, nil)
	for i := 0; i < wr; i++ {
		for j := 0; j < 3; j++ {
			centres.Set(i, j, 1.0)
		}
	}

	return &Connectivity{
		Weights:      weights,
		TractLengths: tractLengths,
		Speed:        speed,
		RegionLabels: labels,
		Centres:      centres,
	}, nil
}

// NewWithProxies builds a connectivity whose labels are derived from the
// proxy index set: "proxy" at each listed index, "real" elsewhere.
// Conduction speed is fixed at 1, so tract lengths are delays in ms.
func NewWithProxies(weights, tractLengths *mat.Dense, idProxy []int) (*Connectivity, error) {
	n, _ := weights.Dims()

	labels := make([]string, n)
	for i := range labels {
		labels[i] = LabelReal
	}
	seen := make(map[int]bool, len(idProxy))
	for _, id := range idProxy {
		if id < 0 || id >= n {
			return nil, fmt.Errorf("proxy index %d out of range [0, %d)", id, n)
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate proxy index %d", id)
		}
		seen[id] = true
		labels[id] = LabelProxy
	}

	return New(weights, tractLengths, 1.0, labels)
}

// Configure computes per-pair integer step delays at resolution dt (ms).
func (c *Connectivity) Configure(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", dt)
	}

	n := c.NumRegions()
	c.idelays = make([][]int, n)
	c.horizon = 1
	for i := 0; i < n; i++ {
		c.idelays[i] = make([]int, n)
		for j := 0; j < n; j++ {
			d := int(math.Round(c.TractLengths.At(i, j) / c.Speed / dt))
			if d < 0 {
				return fmt.Errorf("negative delay between regions %d and %d", i, j)
			}
			c.idelays[i][j] = d
			if d+1 > c.horizon {
				c.horizon = d + 1
			}
		}
	}
	return nil
}

func (c *Connectivity) NumRegions() int {
	n, _ := c.Weights.Dims()
	return n
}

// Delay returns the step delay from region j to region i. Configure must
// have been called.
func (c *Connectivity) Delay(i, j int) int { return c.idelays[i][j] }

// Horizon is the history depth in steps needed to serve the longest delay.
func (c *Connectivity) Horizon() int { return c.horizon }

// ProxyIndices lists the regions labelled "proxy", in order.
func (c *Connectivity) ProxyIndices() []int {
	ids := make([]int, 0)
	for i, l := range c.RegionLabels {
		if l == LabelProxy {
			ids = append(ids, i)
		}
	}
	return ids
}

// NumReal counts the regions computed by the model itself.
func (c *Connectivity) NumReal() int {
	return c.NumRegions() - len(c.ProxyIndices())
}
