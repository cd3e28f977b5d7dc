// Package rng provides the seeded generator used for every procedural choice
// in a session: tile jitter, item kind, lane, particle velocities.
package rng

import "math/rand/v2"

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand wraps a PCG source. Same seed, same sequence.
type Rand struct {
	seed uint64
	r    *rand.Rand
}

func New(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{seed: seed, r: rand.New(rand.NewPCG(seed, splitmix64(seed)))}
}

func (r *Rand) Seed() uint64 { return r.seed }

// Derive returns an independent stream for a named purpose, so adding draws in
// one subsystem does not shift another's sequence.
func (r *Rand) Derive(salt uint64) *Rand {
	return New(splitmix64(r.seed ^ salt*0x9E3779B185EBCA87))
}

// Float returns a value in [0, 1).
func (r *Rand) Float() float64 { return r.r.Float64() }

// RangeF returns a value in [lo, hi).
func (r *Rand) RangeF(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Centered returns a value in [-half, half).
func (r *Rand) Centered(half float64) float64 {
	return (r.r.Float64() - 0.5) * 2 * half
}

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.r.Float64() < p
}
