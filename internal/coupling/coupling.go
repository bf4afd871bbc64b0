package coupling

import "math"

// Coupling transforms delayed activity into the afferent input of a region.
// Pre is applied per connection to the delayed source activity xj (xi is the
// receiving region's current activity), the weighted sum of Pre terms is then
// passed through Post.
type Coupling interface {
	Name() string
	Pre(xj, xi float64) float64
	Post(gx float64) float64
}

// Linear rescales the weighted sum: a*gx + b.
type Linear struct {
	A float64
	B float64
}

func NewLinear(a float64) *Linear {
	return &Linear{A: a}
}

func (c *Linear) Name() string              { return "linear" }
func (c *Linear) Pre(xj, _ float64) float64 { return xj }
func (c *Linear) Post(gx float64) float64   { return c.A*gx + c.B }

// Sigmoidal passes each source activity through a sigmoid before summation.
type Sigmoidal struct {
	CMin     float64
	CMax     float64
	Midpoint float64
	A        float64
	Sigma    float64
}

func NewSigmoidal() *Sigmoidal {
	return &Sigmoidal{CMin: -1.0, CMax: 1.0, Midpoint: 0.0, A: 1.0, Sigma: 230.0}
}

func (c *Sigmoidal) Name() string { return "sigmoidal" }

func (c *Sigmoidal) Pre(xj, _ float64) float64 {
	return c.CMin + (c.CMax-c.CMin)/(1.0+math.Exp(-c.A*((xj-c.Midpoint)/c.Sigma)))
}

func (c *Sigmoidal) Post(gx float64) float64 { return gx }
