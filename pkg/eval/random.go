package eval

import "math/rand"

// Random adds bounded random noise to leaf evaluations, making otherwise
// deterministic play varied across games. The zero value samples zero, i.e.,
// it is a no-op.
type Random struct {
	rand  *rand.Rand
	limit int // millipawns
}

// NewRandom returns a Random that samples uniformly from [-limit; limit] millipawns.
func NewRandom(limit int, seed int64) Random {
	return Random{rand: rand.New(rand.NewSource(seed)), limit: limit}
}

// Sample returns a random centipawn offset. Safe to call on the zero value.
func (r Random) Sample() int32 {
	if r.rand == nil || r.limit <= 0 {
		return 0
	}
	return int32(r.rand.Intn(2*r.limit+1)-r.limit) / 10
}
