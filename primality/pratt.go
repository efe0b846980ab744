package primality

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/consensys/gnark-crypto/field/pool"
	"github.com/corrodedHash/facto/internal/modular"
)

// ErrCompositeInput is returned when a proof chain is requested for a number
// that turns out to be composite.
var ErrCompositeInput = errors.New("cannot certify a composite number")

// ProofElement certifies one number n of a proof chain: Base has full order
// n-1, demonstrated against every unique prime divisor of n-1.
type ProofElement struct {
	N    *big.Int
	Base *big.Int
	// Divisors are the unique prime divisors of N-1. Each must itself be
	// certified by the chain (2 is the root and certifies itself).
	Divisors []*big.Int
}

// ProofChain is a Lucas (n-1) primality proof tree. Elements are kept sorted
// ascending by N and deduplicated; the largest element is the number the
// chain was built for.
type ProofChain struct {
	Elements []ProofElement
}

func (c *ProofChain) push(e ProofElement) {
	i := sort.Search(len(c.Elements), func(i int) bool {
		return c.Elements[i].N.Cmp(e.N) >= 0
	})
	if i < len(c.Elements) && c.Elements[i].N.Cmp(e.N) == 0 {
		return
	}
	c.Elements = append(c.Elements, ProofElement{})
	copy(c.Elements[i+1:], c.Elements[i:])
	c.Elements[i] = e
}

// Contains reports whether the chain holds a proof element for n.
func (c *ProofChain) Contains(n *big.Int) bool {
	return c.Get(n) != nil
}

// Get returns the proof element for n, or nil.
func (c *ProofChain) Get(n *big.Int) *ProofElement {
	i := sort.Search(len(c.Elements), func(i int) bool {
		return c.Elements[i].N.Cmp(n) >= 0
	})
	if i < len(c.Elements) && c.Elements[i].N.Cmp(n) == 0 {
		return &c.Elements[i]
	}
	return nil
}

// MaxElement returns the largest proof element, presumably the element the
// chain was built to certify, or nil for an empty chain.
func (c *ProofChain) MaxElement() *ProofElement {
	if len(c.Elements) == 0 {
		return nil
	}
	return &c.Elements[len(c.Elements)-1]
}

// Verify recomputes every congruence of the chain. It returns nil only when
// each element's base has order N-1 modulo N, every listed divisor is itself
// certified and the divisor lists cover N-1 completely.
func (c *ProofChain) Verify() error {
	for i := range c.Elements {
		if err := c.verifyElement(&c.Elements[i]); err != nil {
			return fmt.Errorf("element %s: %w", c.Elements[i].N, err)
		}
	}
	return nil
}

func (c *ProofChain) verifyElement(e *ProofElement) error {
	if e.N.Cmp(bigTwo) == 0 {
		// root of the tree
		return nil
	}
	m, err := modular.New(e.N)
	if err != nil {
		return err
	}
	x := pool.BigInt.Get()
	defer pool.BigInt.Put(x)
	if m.Exp(x, e.Base, m.NMinus1()).Cmp(bigOne) != 0 {
		return fmt.Errorf("base %s does not satisfy Fermat's little theorem", e.Base)
	}
	remaining := pool.BigInt.Get()
	defer pool.BigInt.Put(remaining)
	remaining.Set(m.NMinus1())
	exp := pool.BigInt.Get()
	defer pool.BigInt.Put(exp)
	rem := pool.BigInt.Get()
	defer pool.BigInt.Put(rem)
	for _, q := range e.Divisors {
		if q.Cmp(bigOne) <= 0 {
			return fmt.Errorf("invalid divisor %s", q)
		}
		if !c.Contains(q) {
			return fmt.Errorf("divisor %s is not certified by the chain", q)
		}
		if exp.QuoRem(m.NMinus1(), q, rem); rem.Sign() != 0 {
			return fmt.Errorf("%s does not divide %s", q, m.NMinus1())
		}
		if m.Exp(x, e.Base, exp).Cmp(bigOne) == 0 {
			return fmt.Errorf("base %s has order dividing (n-1)/%s", e.Base, q)
		}
		for rem.Mod(remaining, q).Sign() == 0 {
			remaining.Quo(remaining, q)
		}
	}
	if remaining.Cmp(bigOne) != 0 {
		return fmt.Errorf("divisors do not cover n-1, remainder %s", remaining)
	}
	return nil
}

// Factorer resolves a number into its prime factors with multiplicity. The
// factoring driver satisfies this; the indirection keeps the proof builder
// free of an import cycle with the factoring package.
type Factorer func(n *big.Int) ([]*big.Int, error)

// BuildChain extends chain with a proof for n, recursively certifying the
// unique prime divisors of n-1. factor supplies the factorization of n-1.
func BuildChain(n *big.Int, chain *ProofChain, factor Factorer) error {
	if chain.Contains(n) {
		return nil
	}
	if n.Cmp(bigTwo) == 0 {
		chain.push(ProofElement{
			N:        new(big.Int).Set(n),
			Base:     big.NewInt(1),
			Divisors: []*big.Int{big.NewInt(1)},
		})
		return nil
	}
	if cert := Test(n, nil); cert.Verdict == Composite {
		return fmt.Errorf("%w: %s", ErrCompositeInput, n)
	}

	nMinus1 := new(big.Int).Sub(n, bigOne)
	factors, err := factor(nMinus1)
	if err != nil {
		return fmt.Errorf("factoring %s: %w", nMinus1, err)
	}
	divisors := uniqueSorted(factors)
	for _, q := range divisors {
		if err := BuildChain(q, chain, factor); err != nil {
			return err
		}
	}

	m, err := modular.New(n)
	if err != nil {
		return err
	}
	base, err := findOrderWitness(m, divisors)
	if err != nil {
		return err
	}
	chain.push(ProofElement{
		N:        new(big.Int).Set(n),
		Base:     base,
		Divisors: divisors,
	})
	return nil
}

// findOrderWitness searches ascending bases for one of full order n-1. For a
// prime modulus a primitive root exists, so the search terminates; a
// Composite outcome here means the compositeness pre-check was beaten, which
// the divisor-driven congruence cannot be for actual primes.
func findOrderWitness(m *modular.Modulus, divisors []*big.Int) (*big.Int, error) {
	x := pool.BigInt.Get()
	defer pool.BigInt.Put(x)
	exp := pool.BigInt.Get()
	defer pool.BigInt.Put(exp)
	for base := big.NewInt(2); base.Cmp(m.N()) < 0; base.Add(base, bigOne) {
		if m.Exp(x, base, m.NMinus1()).Cmp(bigOne) != 0 {
			return nil, fmt.Errorf("%w: Fermat witness %s", ErrCompositeInput, base)
		}
		full := true
		for _, q := range divisors {
			exp.Quo(m.NMinus1(), q)
			if m.Exp(x, base, exp).Cmp(bigOne) == 0 {
				full = false
				break
			}
		}
		if full {
			return new(big.Int).Set(base), nil
		}
	}
	return nil, fmt.Errorf("no witness of full order modulo %s", m.N())
}

func uniqueSorted(factors []*big.Int) []*big.Int {
	sorted := make([]*big.Int, 0, len(factors))
	for _, f := range factors {
		sorted = append(sorted, new(big.Int).Set(f))
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Cmp(sorted[j]) < 0 })
	out := sorted[:0]
	for _, f := range sorted {
		if len(out) == 0 || out[len(out)-1].Cmp(f) != 0 {
			out = append(out, f)
		}
	}
	return out
}
