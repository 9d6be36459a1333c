package component

import "infinite-tower/internal/ecs"

const CHealth ecs.ComponentType = 3

type Health struct {
	Current, Max float64
}

// Ratio returns current health as a fraction of max, clamped to [0, 1].
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	r := h.Current / h.Max
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

func (Health) Type() ecs.ComponentType { return CHealth }
