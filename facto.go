package facto

import (
	"context"
	"math/big"

	"github.com/corrodedHash/facto/factoring"
	"github.com/corrodedHash/facto/primality"
)

// Result is a certified factorization. See factoring.Result.
type Result = factoring.Result

// Factor resolves n > 0 into certified prime powers. It returns a
// *factoring.InvalidInputError for non-positive n and a
// *factoring.IncompleteError when a configured budget runs out first.
func Factor(n *big.Int, opts ...factoring.Option) (*Result, error) {
	return factoring.Factorize(context.Background(), n, opts...)
}

// FactorContext is Factor with cooperative cancellation: ctx is checked
// between stage invocations.
func FactorContext(ctx context.Context, n *big.Int, opts ...factoring.Option) (*Result, error) {
	return factoring.Factorize(ctx, n, opts...)
}

// IsPrime reports whether n is prime: proven below 2^64, BPSW probable
// above.
func IsPrime(n *big.Int) bool {
	if n.Cmp(big.NewInt(2)) < 0 {
		return false
	}
	return primality.Test(n, nil).IsPrime()
}

// Test returns the full primality certificate for n.
func Test(n *big.Int) primality.Certificate {
	return primality.Test(n, nil)
}

// Certify builds a Lucas (n-1) proof chain for the prime n, factoring n-1
// recursively with the engine. The returned chain verifies independently
// with ProofChain.Verify; primality.ErrCompositeInput is returned when n
// turns out composite.
func Certify(n *big.Int, opts ...factoring.Option) (*primality.ProofChain, error) {
	chain := &primality.ProofChain{}
	factorer := func(v *big.Int) ([]*big.Int, error) {
		res, err := factoring.Factorize(context.Background(), v, opts...)
		if err != nil {
			return nil, err
		}
		return res.Primes(), nil
	}
	if err := primality.BuildChain(n, chain, factorer); err != nil {
		return nil, err
	}
	return chain, nil
}

// CertifiedTest is Test with proven verdicts wherever possible: when the
// oracle can only answer ProbablyPrime, a Lucas (n-1) proof chain is built
// and attached, upgrading the verdict to DefinitelyPrime.
func CertifiedTest(n *big.Int, opts ...factoring.Option) (primality.Certificate, error) {
	cert := primality.Test(n, nil)
	if cert.Verdict != primality.ProbablyPrime {
		return cert, nil
	}
	chain, err := Certify(n, opts...)
	if err != nil {
		return cert, err
	}
	if err := cert.Attach(chain); err != nil {
		return cert, err
	}
	return cert, nil
}
