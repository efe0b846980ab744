package primality

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/pool"
	"github.com/corrodedHash/facto/internal/modular"
)

// StrongLucas runs a strong Lucas probable prime test against the modulus of
// m using Baillie's Method A parameters (P = 1, Q = (1-D)/4). Together with
// a base-2 strong Fermat test this is the BPSW combination.
//
// The modulus must be odd and > 3. The selected parameters are returned so
// the certificate can record them; params is nil when the number is exposed
// as composite before the sequence is evaluated.
func StrongLucas(m *modular.Modulus) (WitnessOutcome, *LucasParams) {
	n := m.N()

	// A perfect square has (D|n) != -1 for every D; the parameter search
	// would never terminate.
	sqrt := pool.BigInt.Get()
	defer pool.BigInt.Put(sqrt)
	sqrt.Sqrt(n)
	tmp := pool.BigInt.Get()
	defer pool.BigInt.Put(tmp)
	if tmp.Mul(sqrt, sqrt).Cmp(n) == 0 {
		return WitnessComposite, nil
	}

	// D = 5, -7, 9, -11, ... until (D|n) = -1
	d := big.NewInt(5)
	for {
		switch big.Jacobi(d, n) {
		case -1:
		case 0:
			// gcd(|D|, n) > 1: a factor, unless n is |D| itself
			if tmp.Abs(d).Cmp(n) != 0 {
				return WitnessComposite, nil
			}
			return WitnessInconclusive, &LucasParams{D: d}
		default:
			if d.Sign() > 0 {
				d.Neg(d).Sub(d, bigTwo)
			} else {
				d.Neg(d).Add(d, bigTwo)
			}
			continue
		}
		break
	}

	params := &LucasParams{D: d, P: 1}
	// Q = (1 - D) / 4
	q := pool.BigInt.Get()
	defer pool.BigInt.Put(q)
	q.Sub(bigOne, d)
	q.Rsh(q, 2)
	params.Q = q.Int64()
	q.Mod(q, n)

	// n+1 = 2^s * k with k odd
	k := pool.BigInt.Get()
	defer pool.BigInt.Put(k)
	k.Add(n, bigOne)
	s := trailingZeroBits(k)
	k.Rsh(k, s)

	u, v, qk := lucasSequence(m, d, q, k)
	defer pool.BigInt.Put(u)
	defer pool.BigInt.Put(v)
	defer pool.BigInt.Put(qk)

	// strong condition: U_k = 0, or V_{k*2^r} = 0 for some r < s
	if u.Sign() == 0 {
		return WitnessInconclusive, params
	}
	for r := uint(0); r < s; r++ {
		if v.Sign() == 0 {
			return WitnessInconclusive, params
		}
		// V_{2j} = V_j^2 - 2*Q^j
		m.Square(v, v)
		m.Sub(v, v, tmp.Lsh(qk, 1).Mod(tmp, n))
		m.Square(qk, qk)
	}
	return WitnessComposite, params
}

// lucasSequence evaluates U_k, V_k and Q^k mod n for P = 1 by the standard
// doubling ladder over the bits of k. Returned values come from the shared
// big.Int pool; the caller puts them back.
func lucasSequence(m *modular.Modulus, d, q, k *big.Int) (u, v, qk *big.Int) {
	n := m.N()
	u = pool.BigInt.Get().SetInt64(1)
	v = pool.BigInt.Get().SetInt64(1) // V_1 = P = 1
	qk = pool.BigInt.Get().Set(q)

	t := pool.BigInt.Get()
	defer pool.BigInt.Put(t)
	dmod := pool.BigInt.Get()
	defer pool.BigInt.Put(dmod)
	dmod.Mod(d, n)

	for i := k.BitLen() - 2; i >= 0; i-- {
		// (U, V)_j -> (U, V)_2j
		m.Mul(u, u, v)
		m.Square(v, v)
		m.Sub(v, v, t.Lsh(qk, 1).Mod(t, n))
		m.Square(qk, qk)
		if k.Bit(i) == 1 {
			// (U, V)_2j -> (U, V)_2j+1 with P = 1:
			// U' = (U + V)/2, V' = (D*U + V)/2
			t.Set(u)
			m.Add(u, u, v)
			m.Halve(u, u)
			m.Mul(t, t, dmod)
			m.Add(v, v, t)
			m.Halve(v, v)
			m.Mul(qk, qk, q)
		}
	}
	return u, v, qk
}
