package factoring

import (
	"math/big"

	"github.com/corrodedHash/facto/debug"
)

// Outcome is the result of one factoring attempt on a residue: a nontrivial
// factor pair, or nothing within the attempt's share of the budget.
type Outcome struct {
	// Factor is a nontrivial divisor of the residue, nil when the stage
	// found none.
	Factor *big.Int
	// Cofactor is residue/Factor, nil when Factor is nil.
	Cofactor *big.Int
}

// Found reports whether the stage produced a split.
func (o Outcome) Found() bool { return o.Factor != nil }

func split(residue, factor *big.Int) Outcome {
	cofactor, rem := new(big.Int).QuoRem(residue, factor, new(big.Int))
	debug.Assert(rem.Sign() == 0, "split factor does not divide residue")
	return Outcome{Factor: new(big.Int).Set(factor), Cofactor: cofactor}
}
