package factoring

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/pool"

	"github.com/corrodedHash/facto/internal/modular"
)

// pm1Checkpoint is the number of exponent steps between gcd checks.
const pm1Checkpoint = 64

// pollardPMinus1 computes 2^(B!) mod n incrementally and checks
// gcd(2^(B!) - 1, n) at checkpoints. It finds a prime factor p of n whenever
// p-1 divides B!, i.e. when p-1 is B-power-smooth. Returns nil on failure:
// the bound was too small, every factor was hit simultaneously (gcd = n), or
// the budget ran out.
func pollardPMinus1(n *big.Int, bound uint64, budget *Budget) *big.Int {
	m, err := modular.New(n)
	if err != nil {
		return nil
	}

	a := pool.BigInt.Get().SetInt64(2)
	k := pool.BigInt.Get()
	g := pool.BigInt.Get()
	t := pool.BigInt.Get()
	defer func() {
		pool.BigInt.Put(a)
		pool.BigInt.Put(k)
		pool.BigInt.Put(g)
		pool.BigInt.Put(t)
	}()

	checkpoint := func() *big.Int {
		t.Sub(a, bigOne)
		g.GCD(nil, nil, t, n)
		if g.Cmp(bigOne) > 0 && g.Cmp(n) < 0 {
			return new(big.Int).Set(g)
		}
		return nil
	}

	pending := int64(0)
	for step := uint64(2); step <= bound; step++ {
		k.SetUint64(step)
		m.Exp(a, a, k)
		pending++
		if step%pm1Checkpoint == 0 {
			if !budget.Spend(pending) {
				return nil
			}
			pending = 0
			if d := checkpoint(); d != nil {
				return d
			}
			if g.Cmp(n) == 0 {
				// all prime factors collapsed at once; a smaller
				// bound might separate them, escalation won't
				return nil
			}
		}
	}
	if !budget.Spend(pending) {
		return nil
	}
	return checkpoint()
}
