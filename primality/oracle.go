package primality

import (
	"math/big"

	"github.com/corrodedHash/facto/internal/modular"
	"github.com/corrodedHash/facto/internal/smallprimes"
)

// Config tunes the primality oracle.
type Config struct {
	// TrialBound caps the small-prime divisibility scan (inclusive).
	// Zero means the full table.
	TrialBound uint64
	// Witnesses is the number of Fermat bases tried above the
	// deterministic bound before the Lucas test decides. Zero means
	// DefaultWitnesses.
	Witnesses int
}

// DefaultWitnesses mirrors the original pre-base sweep: bases 2..21
// inclusive. Combined with the strong Lucas test the residual error is
// negligible for any input the engine can factor.
const DefaultWitnesses = 20

func (cfg *Config) trialBound() uint64 {
	if cfg == nil || cfg.TrialBound == 0 {
		return smallprimes.Max()
	}
	return cfg.TrialBound
}

func (cfg *Config) witnesses() int {
	if cfg == nil || cfg.Witnesses <= 0 {
		return DefaultWitnesses
	}
	return cfg.Witnesses
}

// Test runs the oracle state machine on n and returns a certificate for the
// evidence gathered. A Composite verdict is always sound; DefinitelyPrime is
// only issued below the deterministic bound or for table primes.
func Test(n *big.Int, cfg *Config) Certificate {
	cert := Certificate{N: new(big.Int).Set(n)}

	if n.Cmp(bigTwo) < 0 {
		// 0, 1 and negatives are not prime
		cert.Verdict = Composite
		return cert
	}
	if n.Cmp(bigTwo) == 0 || n.Cmp(bigThree) == 0 {
		cert.Verdict = DefinitelyPrime
		return cert
	}
	if n.Bit(0) == 0 {
		cert.Verdict = Composite
		cert.Divisor = big.NewInt(2)
		return cert
	}

	if v, fits := toUint64(n); fits && smallprimes.Contains(v) {
		cert.Verdict = DefinitelyPrime
		return cert
	}
	if d := trialWitness(n, cfg.trialBound()); d != 0 {
		cert.Verdict = Composite
		cert.Divisor = new(big.Int).SetUint64(d)
		return cert
	}

	m, err := modular.New(n)
	if err != nil {
		// n odd and > 3 here
		panic(err)
	}

	if n.Cmp(deterministicBound) < 0 {
		// the Sinclair set is exhaustive below 2^64
		base := new(big.Int)
		for _, b := range sinclairBases {
			base.SetUint64(b)
			if MillerRabin(m, base) == WitnessComposite {
				cert.Verdict = Composite
				cert.Witness = new(big.Int).Set(base)
				return cert
			}
			cert.Bases = append(cert.Bases, new(big.Int).Set(base))
		}
		cert.Verdict = DefinitelyPrime
		return cert
	}

	for i := 0; i < cfg.witnesses(); i++ {
		base := big.NewInt(int64(2 + i))
		if MillerRabin(m, base) == WitnessComposite {
			cert.Verdict = Composite
			cert.Witness = base
			return cert
		}
		cert.Bases = append(cert.Bases, base)
	}

	outcome, params := StrongLucas(m)
	cert.Lucas = params
	if outcome == WitnessComposite {
		cert.Verdict = Composite
		return cert
	}

	cert.Verdict = ProbablyPrime
	return cert
}

var bigThree = big.NewInt(3)

// trialWitness scans the small-prime table up to bound and returns the first
// prime dividing n, or 0. The scan stops once p*p > n; n cannot have a table
// divisor past that point without having had a smaller one.
func trialWitness(n *big.Int, bound uint64) uint64 {
	var found uint64
	r := new(big.Int)
	pp := new(big.Int)
	smallprimes.Visit(bound, func(p uint64) bool {
		pp.SetUint64(p)
		if pp.Mul(pp, pp).Cmp(n) > 0 {
			return false
		}
		pp.SetUint64(p)
		if r.Mod(n, pp).Sign() == 0 {
			found = p
			return false
		}
		return true
	})
	return found
}

func toUint64(n *big.Int) (uint64, bool) {
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}
