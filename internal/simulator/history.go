package simulator

// history is a ring buffer of the coupled state variable per region,
// deep enough to serve the longest connection delay.
type history struct {
	buf     [][]float64 // [horizon][region]
	head    int         // slot holding the most recent value
	horizon int
	nnode   int
}

func newHistory(horizon, nnode int) *history {
	buf := make([][]float64, horizon)
	for i := range buf {
		buf[i] = make([]float64, nnode)
	}
	return &history{buf: buf, horizon: horizon, nnode: nnode}
}

// fill seeds every slot with the same per-region values.
func (h *history) fill(vals []float64) {
	for i := range h.buf {
		copy(h.buf[i], vals)
	}
}

// push records the current values as the newest entry.
func (h *history) push(vals []float64) {
	h.head = (h.head + 1) % h.horizon
	copy(h.buf[h.head], vals)
}

// delayed returns the region values d steps in the past; d=0 is the
// newest entry. d must be below the horizon.
func (h *history) delayed(d int) []float64 {
	idx := h.head - d
	if idx < 0 {
		idx += h.horizon
	}
	return h.buf[idx]
}
