package core

import "math/rand/v2"

// RNG seeds cell fields deterministically from an int64 seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG returns a PCG-backed generator for seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>32|1))}
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// FillBernoulli sets each entry of buf to 1 with probability p and 0 otherwise.
// A p of one half uses a single random bit per cell.
func (r *RNG) FillBernoulli(buf []uint8, p float64) {
	if p == 0.5 {
		for i := range buf {
			buf[i] = uint8(r.r.Uint32() & 1)
		}
		return
	}
	for i := range buf {
		buf[i] = 0
		if r.Chance(p) {
			buf[i] = 1
		}
	}
}
