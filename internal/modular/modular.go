// Package modular wraps math/big with a per-modulus context. A Modulus is
// built once for a fixed odd modulus and reused for every operation against
// it; big.Int.Exp amortizes its own Montgomery setup per call, so the context
// mainly caches the derived constants (n-1, bit length) that the primality
// and factoring layers keep re-deriving otherwise.
package modular

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/field/pool"
)

var (
	// ErrEvenModulus is returned by New for even moduli; callers strip
	// factors of 2 before building a context.
	ErrEvenModulus = errors.New("modulus must be odd")
	// ErrSmallModulus is returned by New for moduli <= 1.
	ErrSmallModulus = errors.New("modulus must be > 1")
)

// Modulus is an arithmetic context for a fixed odd modulus. It is not safe
// for concurrent use; each worker builds its own.
type Modulus struct {
	n       *big.Int
	nMinus1 *big.Int
}

// New builds a context for the odd modulus n > 1.
func New(n *big.Int) (*Modulus, error) {
	if n.Sign() <= 0 || n.Cmp(one) == 0 {
		return nil, ErrSmallModulus
	}
	if n.Bit(0) == 0 {
		return nil, ErrEvenModulus
	}
	m := &Modulus{
		n:       new(big.Int).Set(n),
		nMinus1: new(big.Int).Sub(n, one),
	}
	return m, nil
}

var one = big.NewInt(1)

// N returns the modulus. The caller must not mutate it.
func (m *Modulus) N() *big.Int { return m.n }

// NMinus1 returns modulus - 1. The caller must not mutate it.
func (m *Modulus) NMinus1() *big.Int { return m.nMinus1 }

// BitLen returns the bit length of the modulus.
func (m *Modulus) BitLen() int { return m.n.BitLen() }

// Mul sets z = a*b mod n and returns z.
func (m *Modulus) Mul(z, a, b *big.Int) *big.Int {
	z.Mul(a, b)
	return z.Mod(z, m.n)
}

// Add sets z = a+b mod n and returns z.
func (m *Modulus) Add(z, a, b *big.Int) *big.Int {
	z.Add(a, b)
	if z.Cmp(m.n) >= 0 {
		z.Sub(z, m.n)
	}
	return z
}

// Sub sets z = a-b mod n and returns z. Operands must be in [0, n).
func (m *Modulus) Sub(z, a, b *big.Int) *big.Int {
	z.Sub(a, b)
	if z.Sign() < 0 {
		z.Add(z, m.n)
	}
	return z
}

// Exp sets z = base^exp mod n and returns z.
func (m *Modulus) Exp(z, base, exp *big.Int) *big.Int {
	return z.Exp(base, exp, m.n)
}

// Square sets z = a*a mod n and returns z.
func (m *Modulus) Square(z, a *big.Int) *big.Int {
	t := pool.BigInt.Get()
	t.Mul(a, a)
	z.Mod(t, m.n)
	pool.BigInt.Put(t)
	return z
}

// Halve sets z = a/2 mod n for odd n and returns z. a must be in [0, n).
func (m *Modulus) Halve(z, a *big.Int) *big.Int {
	if a.Bit(0) == 0 {
		return z.Rsh(a, 1)
	}
	z.Add(a, m.n)
	return z.Rsh(z, 1)
}
