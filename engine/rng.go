package engine

// RNG is a seeded Park–Miller linear-congruential generator with position
// tracking. One stream per session, advanced monotonically, so replaying the
// same action sequence reproduces the same values (the stock market depends
// on this).
type RNG struct {
	seed  int64
	state int64
	pos   int64
}

const (
	lcgMultiplier = 16807
	lcgModulus    = 2147483647
)

// NewRNG creates a deterministic RNG from a seed. Seeds that collapse the
// LCG cycle (multiples of the modulus, including 0) are nudged to 1.
func NewRNG(seed int64) *RNG {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	if s == 0 {
		s = 1
	}
	return &RNG{seed: seed, state: s}
}

// Float64 returns the next value in [0,1).
func (r *RNG) Float64() float64 {
	r.pos++
	r.state = (r.state * lcgMultiplier) % lcgModulus
	return float64(r.state-1) / float64(lcgModulus-1)
}

// Intn returns a value in [0,n). n must be positive.
func (r *RNG) Intn(n int) int {
	v := int(r.Float64() * float64(n))
	if v >= n { // guard the (unreachable in practice) 1.0 edge
		v = n - 1
	}
	return v
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Seed returns the seed this stream was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// RestoreRNG creates an RNG and advances it to the given position, exactly
// reproducing a stream mid-flight.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.Float64()
	}
	rng.pos = position
	return rng
}
