// Package facto factors arbitrarily large positive integers into their prime
// constituents and issues a certificate attesting that each returned factor
// is prime.
//
// The engine composes trial division, Pollard's rho (with Brent's cycle
// detection) and Pollard's p-1 behind a work-list driver, and certifies
// primality with a BPSW-style oracle: strong Fermat witnesses plus a strong
// Lucas test. Below 2^64 the witness set is deterministic and verdicts are
// proven; above it, verdicts are ProbablyPrime unless a Lucas (n-1) proof
// chain is requested with Certify.
//
//	result, err := facto.Factor(big.NewInt(60))
//	// 2^2 * 3 * 5, each factor carrying its certificate
package facto

import "github.com/blang/semver/v4"

// Version of the facto library
var Version = semver.MustParse("0.1.0")
