package primality

import (
	"fmt"
	"math/big"
)

// Verdict is the outcome of a primality test. It is deliberately a closed
// three-way enum rather than a bool: a probable prime is never silently
// promoted to a proven one.
type Verdict uint8

const (
	// Composite means a compositeness proof was found. Always sound.
	Composite Verdict = iota
	// ProbablyPrime means every configured test passed but no proof of
	// primality exists.
	ProbablyPrime
	// DefinitelyPrime means primality is proven: the value sits below the
	// deterministic witness bound, is a table prime, or carries a closed
	// proof chain.
	DefinitelyPrime
)

func (v Verdict) String() string {
	switch v {
	case Composite:
		return "composite"
	case ProbablyPrime:
		return "probably prime"
	case DefinitelyPrime:
		return "definitely prime"
	default:
		return fmt.Sprintf("verdict(%d)", uint8(v))
	}
}

// LucasParams records the discriminant and sequence parameters selected for
// a strong Lucas test.
type LucasParams struct {
	D *big.Int
	P int64
	Q int64
}

// Certificate records which primality evidence was gathered for N and what
// verdict it supports.
type Certificate struct {
	N       *big.Int
	Verdict Verdict

	// Witness is the Fermat base exposing N as composite, nil otherwise.
	Witness *big.Int
	// Divisor is a nontrivial divisor of N stumbled upon during testing,
	// nil if none was found.
	Divisor *big.Int

	// Bases are the Fermat witness bases N passed.
	Bases []*big.Int
	// Lucas holds the strong Lucas parameters, nil if the test did not run.
	Lucas *LucasParams

	// Chain is a closed primality proof tree, non-nil only when it alone
	// justifies a DefinitelyPrime verdict.
	Chain *ProofChain
}

func (c Certificate) String() string {
	return fmt.Sprintf("%s: %s", c.N.String(), c.Verdict)
}

// IsPrime reports whether the certified verdict asserts primality, proven
// or probable.
func (c Certificate) IsPrime() bool {
	return c.Verdict != Composite
}

// Attach records a closed proof chain for N and promotes a ProbablyPrime
// verdict to DefinitelyPrime. The chain must verify and certify N itself.
func (c *Certificate) Attach(chain *ProofChain) error {
	if err := chain.Verify(); err != nil {
		return err
	}
	if !chain.Contains(c.N) {
		return fmt.Errorf("chain does not certify %s", c.N)
	}
	c.Chain = chain
	if c.Verdict == ProbablyPrime {
		c.Verdict = DefinitelyPrime
	}
	return nil
}
