// Package smallprimes holds a sieved table of small primes shared by the
// trial division stage, the primality oracle and the Pollard p-1 stage.
package smallprimes

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// Bound is the exclusive sieve limit. Every prime below Bound is in the table.
const Bound = 1 << 17

var (
	once      sync.Once
	composite *bitset.BitSet
	primes    []uint64
)

func sieve() {
	composite = bitset.New(Bound)
	composite.Set(0).Set(1)
	for p := uint(2); p*p < Bound; p++ {
		if composite.Test(p) {
			continue
		}
		for i := p * p; i < Bound; i += p {
			composite.Set(i)
		}
	}
	// ~12k primes below 2^17
	primes = make([]uint64, 0, 12500)
	for i, e := composite.NextClear(2); e && i < Bound; i, e = composite.NextClear(i + 1) {
		primes = append(primes, uint64(i))
	}
}

// Contains reports whether v is a prime below Bound.
func Contains(v uint64) bool {
	if v >= Bound {
		return false
	}
	once.Do(sieve)
	return !composite.Test(uint(v))
}

// Visit calls f on every prime p <= limit in ascending order, stopping early
// when f returns false. Primes above Bound are never visited.
func Visit(limit uint64, f func(p uint64) bool) {
	once.Do(sieve)
	for _, p := range primes {
		if p > limit {
			return
		}
		if !f(p) {
			return
		}
	}
}

// Max returns the largest prime in the table.
func Max() uint64 {
	once.Do(sieve)
	return primes[len(primes)-1]
}
