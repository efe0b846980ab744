package factoring

import (
	"fmt"
	"math/big"

	"github.com/corrodedHash/facto/primality"
)

// Factor is one prime power of a factorization, together with the primality
// evidence gathered for the prime.
type Factor struct {
	Prime       *big.Int
	Exponent    int
	Certificate primality.Certificate
}

// Result is a complete factorization of N: Factors are ordered ascending by
// prime, exponents merged, and the product of the prime powers equals N
// exactly.
type Result struct {
	N       *big.Int
	Factors []Factor
}

// Product multiplies the prime powers back together.
func (r *Result) Product() *big.Int {
	p := big.NewInt(1)
	t := new(big.Int)
	for _, f := range r.Factors {
		t.Exp(f.Prime, big.NewInt(int64(f.Exponent)), nil)
		p.Mul(p, t)
	}
	return p
}

// Verify re-checks the result invariants: the product matches N, factors are
// strictly ascending with positive exponents, and no certificate witnesses
// compositeness.
func (r *Result) Verify() error {
	for i, f := range r.Factors {
		if f.Exponent <= 0 {
			return fmt.Errorf("factor %s has exponent %d", f.Prime, f.Exponent)
		}
		if !f.Certificate.IsPrime() {
			return fmt.Errorf("factor %s carries a compositeness certificate", f.Prime)
		}
		if i > 0 && r.Factors[i-1].Prime.Cmp(f.Prime) >= 0 {
			return fmt.Errorf("factors not strictly ascending at %s", f.Prime)
		}
	}
	if p := r.Product(); p.Cmp(r.N) != 0 {
		return fmt.Errorf("product %s does not match input %s", p, r.N)
	}
	return nil
}

// Primes returns the prime factors with multiplicity, ascending. This is the
// shape the proof-chain builder consumes.
func (r *Result) Primes() []*big.Int {
	var out []*big.Int
	for _, f := range r.Factors {
		for i := 0; i < f.Exponent; i++ {
			out = append(out, f.Prime)
		}
	}
	return out
}
