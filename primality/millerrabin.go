package primality

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/pool"
	"github.com/corrodedHash/facto/internal/modular"
)

// WitnessOutcome is the result of a single compositeness test. A failure to
// prove compositeness does not guarantee primality.
type WitnessOutcome uint8

const (
	// WitnessComposite means the tested number is proven composite.
	WitnessComposite WitnessOutcome = iota
	// WitnessInconclusive means the base did not expose the number as
	// composite; it may be prime.
	WitnessInconclusive
)

// sinclairBases is proven exhaustive for n < 2^64 (Sinclair 2011, verified
// against the Feitsma/Galway strong pseudoprime database). Passing all seven
// is a primality proof below that bound.
var sinclairBases = [7]uint64{2, 325, 9375, 28178, 450775, 9780504, 1795265022}

// deterministicBound is 2^64, the hard bound under which sinclairBases are
// exhaustive and a ProbablyPrime verdict may be upgraded.
var deterministicBound = new(big.Int).Lsh(big.NewInt(1), 64)

// MillerRabin runs a strong Fermat compositeness test for one base against
// the modulus of m. The modulus must be odd and > 2. Deterministic given
// (modulus, base).
func MillerRabin(m *modular.Modulus, base *big.Int) WitnessOutcome {
	// n-1 = 2^s * d with d odd
	nMinus1 := m.NMinus1()
	s := trailingZeroBits(nMinus1)
	d := pool.BigInt.Get()
	defer pool.BigInt.Put(d)
	d.Rsh(nMinus1, s)

	x := pool.BigInt.Get()
	defer pool.BigInt.Put(x)
	x.Mod(base, m.N())
	if x.Sign() == 0 {
		// base is a multiple of n, tells us nothing
		return WitnessInconclusive
	}

	m.Exp(x, x, d)
	if x.Cmp(bigOne) == 0 || x.Cmp(nMinus1) == 0 {
		return WitnessInconclusive
	}
	for i := uint(1); i < s; i++ {
		m.Square(x, x)
		if x.Cmp(nMinus1) == 0 {
			return WitnessInconclusive
		}
	}
	return WitnessComposite
}

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

func trailingZeroBits(v *big.Int) uint {
	i := uint(0)
	for v.Bit(int(i)) == 0 {
		i++
	}
	return i
}
