// Package rng provides the seedable pseudo-random stream shared by the
// procedural generators. Output depends only on the seed and the order of
// calls, so a stream replays identically on every platform.
package rng

import "math"

// Stream is a tiny deterministic RNG (xorshift64*).
type Stream struct {
	s uint64
}

// New returns a stream for seed. Seeds are mixed through splitmix64 first so
// that neighbouring seeds (5, 6, ...) do not start from correlated states.
func New(seed uint64) *Stream {
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return &Stream{s: s}
}

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func (r *Stream) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Intn returns a value in [0, n). n <= 0 yields 0 without advancing.
func (r *Stream) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// Range returns a value in [min, max], both inclusive. When max <= min it
// returns min and still consumes one draw, keeping the call sequence fixed
// regardless of the bounds.
func (r *Stream) Range(min, max int) int {
	if max <= min {
		r.NextU64()
		return min
	}
	return min + r.Intn(max-min+1)
}

// Float64 returns a value in [0, 1) with 53 bits of precision.
func (r *Stream) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

// RangeF returns a value in [min, max).
func (r *Stream) RangeF(min, max float64) float64 {
	f := r.Float64()
	if max <= min {
		return min
	}
	// Explicit conversion keeps the multiply and add from fusing.
	return min + float64((max-min)*f)
}

// Angle returns a yaw in [0, 2π).
func (r *Stream) Angle() float64 {
	return r.RangeF(0, 2*math.Pi)
}
