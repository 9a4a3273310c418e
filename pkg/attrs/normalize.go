package attrs

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a PCG-backed generator for [Normalize]. A zero seed draws
// one from the clock, so unknown values differ from run to run.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NormalizeValue maps a raw score onto [MinValue, MaxValue]. Negative scores
// are unknown and become a uniform random draw from that range.
func NormalizeValue(raw int, rng *rand.Rand) int {
	if raw < 0 {
		return rng.IntN(MaxValue-MinValue+1) + MinValue
	}
	return min(MaxValue, max(MinValue, raw))
}

// Normalize returns a copy of s with every value normalized. The input set is
// left untouched.
func Normalize(s Set, rng *rand.Rand) Set {
	out := make(Set, len(s))
	for i, a := range s {
		out[i] = Attribute{Name: a.Name, Value: NormalizeValue(a.Value, rng)}
	}
	return out
}
