package factoring

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/gnark-crypto/field/pool"
	"golang.org/x/crypto/blake2b"

	"github.com/corrodedHash/facto/internal/modular"
)

// rhoBatch is the number of sequence steps accumulated into one running
// product before a gcd with n is taken.
const rhoBatch = 128

// rhoSeed derives the polynomial increment and starting point for one rho
// attempt from the residue and the attempt counter, so restarts explore
// different sequences while a given (residue, attempt) pair stays
// reproducible.
func rhoSeed(n *big.Int, attempt uint64) (c, x0 *big.Int) {
	h, _ := blake2b.New256(nil)
	h.Write(n.Bytes())
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], attempt)
	h.Write(buf[:])
	sum := h.Sum(nil)

	// c in [1, n-3]: c = 0 degenerates, c = -2 cycles on fixed points
	span := new(big.Int).Sub(n, big.NewInt(3))
	c = new(big.Int).SetBytes(sum[:16])
	c.Mod(c, span).Add(c, bigOne)
	x0 = new(big.Int).SetBytes(sum[16:])
	x0.Mod(x0, n)
	return c, x0
}

// pollardRho looks for a nontrivial factor of the odd composite n with
// Brent's cycle detection: the hare advances in power-of-two blocks, the
// differences to the tortoise are multiplied into a running product and the
// gcd with n is taken per batch. When the batched gcd collapses to n, the
// stage backtracks through the last batch one gcd per step to pull apart
// simultaneous hits. Returns nil if the attempt cycles degenerately or the
// budget runs out.
func pollardRho(n *big.Int, attempt uint64, budget *Budget) *big.Int {
	m, err := modular.New(n)
	if err != nil {
		return nil
	}
	c, x0 := rhoSeed(n, attempt)

	f := func(z, x *big.Int) *big.Int {
		m.Square(z, x)
		return m.Add(z, z, c)
	}

	x := pool.BigInt.Get().Set(x0)     // tortoise
	y := pool.BigInt.Get().Set(x0)     // hare
	ys := pool.BigInt.Get().Set(x0)    // hare at the last checkpoint
	q := pool.BigInt.Get().SetInt64(1) // running product of differences
	g := pool.BigInt.Get().SetInt64(1)
	diff := pool.BigInt.Get()
	defer func() {
		pool.BigInt.Put(x)
		pool.BigInt.Put(y)
		pool.BigInt.Put(ys)
		pool.BigInt.Put(q)
		pool.BigInt.Put(g)
		pool.BigInt.Put(diff)
	}()

	for r := 1; g.Cmp(bigOne) == 0; r <<= 1 {
		x.Set(y)
		for i := 0; i < r; i++ {
			f(y, y)
		}
		if !budget.Spend(int64(r)) {
			return nil
		}
		for k := 0; k < r && g.Cmp(bigOne) == 0; k += rhoBatch {
			ys.Set(y)
			steps := rhoBatch
			if r-k < steps {
				steps = r - k
			}
			for i := 0; i < steps; i++ {
				f(y, y)
				m.Sub(diff, x, y)
				if diff.Sign() != 0 {
					m.Mul(q, q, diff)
				}
			}
			if !budget.Spend(int64(steps)) {
				return nil
			}
			g.GCD(nil, nil, q, n)
		}
	}

	if g.Cmp(n) == 0 {
		// batch collapsed; replay from the checkpoint one step at a time
		for {
			f(ys, ys)
			m.Sub(diff, x, ys)
			if diff.Sign() == 0 {
				return nil
			}
			g.GCD(nil, nil, diff, n)
			if g.Cmp(bigOne) != 0 {
				break
			}
			if !budget.Spend(1) {
				return nil
			}
		}
	}
	if g.Cmp(n) == 0 || g.Cmp(bigOne) == 0 {
		return nil
	}
	return new(big.Int).Set(g)
}
