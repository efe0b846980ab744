package factoring

import (
	"fmt"
	"math/big"
)

// InvalidInputError is returned for inputs that are not factorization
// targets (zero or negative).
type InvalidInputError struct {
	N *big.Int
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid factorization input %s: must be positive", e.N)
}

// IncompleteError is returned when the resource budget runs out before the
// input is fully resolved. It carries enough state for a caller to diagnose
// or resume with a larger budget; it is never accompanied by a partial
// Result. The input is exactly the product of Partial's prime powers,
// Residue and every Pending entry.
type IncompleteError struct {
	// Residue is the unresolved remainder the budget died on.
	Residue *big.Int
	// Pending holds split-off parts that were still waiting to be
	// resolved, prime or composite.
	Pending []*big.Int
	// Partial holds the factors proven before the budget ran out.
	Partial []Factor
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("factorization incomplete: budget exhausted with unresolved residue %s", e.Residue)
}
