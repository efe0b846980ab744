package factoring

import (
	"math/big"

	"github.com/corrodedHash/facto/internal/smallprimes"
)

// trialDivision strips every table prime <= bound from n. It emits each
// prime power found and returns the remaining cofactor together with a flag
// reporting whether the scan was exhaustive: when the next candidate squared
// exceeds the cofactor, the cofactor itself is prime (or 1) and the
// factorization is complete. A prime cofactor within the bound is emitted
// like any other table prime; larger ones are returned for the caller to
// certify.
func trialDivision(n *big.Int, bound uint64, emit func(p uint64, exponent int)) (cofactor *big.Int, exhaustive bool) {
	cofactor = new(big.Int).Set(n)
	q, r, p := new(big.Int), new(big.Int), new(big.Int)
	smallprimes.Visit(bound, func(prime uint64) bool {
		p.SetUint64(prime)
		if r.Mul(p, p).Cmp(cofactor) > 0 {
			exhaustive = true
			return false
		}
		exponent := 0
		for {
			q.QuoRem(cofactor, p, r)
			if r.Sign() != 0 {
				break
			}
			cofactor.Set(q)
			exponent++
		}
		if exponent > 0 {
			emit(prime, exponent)
		}
		return true
	})
	if !exhaustive && cofactor.Cmp(bigOne) == 0 {
		exhaustive = true
	}
	if exhaustive && cofactor.Cmp(bigOne) != 0 && cofactor.IsUint64() && cofactor.Uint64() <= bound {
		emit(cofactor.Uint64(), 1)
		cofactor.SetInt64(1)
	}
	return cofactor, exhaustive
}

var bigOne = big.NewInt(1)
