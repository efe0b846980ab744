package factoring

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFactorizeParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 65539359338488163 = 65537 * 1000003 * 1000033; every factor sits
	// above the default trial bound, so rho splits carry the whole load.
	res := mustFactorize(t, 65539359338488163, WithParallelism(4))
	require.Len(t, res.Factors, 3)
	for i, want := range []string{"65537", "1000003", "1000033"} {
		require.Equal(t, want, res.Factors[i].Prime.String())
		require.Equal(t, 1, res.Factors[i].Exponent)
	}
}

func TestFactorizeParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, n := range []int64{64864800, 561, 97, 1, 4295229443} {
		seq := mustFactorize(t, n)
		par := mustFactorize(t, n, WithParallelism(4))
		require.Len(t, par.Factors, len(seq.Factors))
		for i := range seq.Factors {
			require.Zero(t, seq.Factors[i].Prime.Cmp(par.Factors[i].Prime))
			require.Equal(t, seq.Factors[i].Exponent, par.Factors[i].Exponent)
		}
	}
}

func TestFactorizeParallelBudget(t *testing.T) {
	defer goleak.VerifyNone(t)

	n, ok := new(big.Int).SetString("1180591625390335725871", 10)
	require.True(t, ok)

	res, err := Factorize(context.Background(), n, WithParallelism(4), WithBudget(1000))
	require.Nil(t, res)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.NotNil(t, incomplete.Residue)
}

func TestFactorizeParallelIncompleteIsResumable(t *testing.T) {
	defer goleak.VerifyNone(t)

	// 1000003 * 34359738421 * 34359738451: the budget dies partway, with
	// parts of the split spread over workers. Whatever cut the error
	// captures, its payload must multiply back to the input.
	n, ok := new(big.Int).SetString("1180595167165211896878177613", 10)
	require.True(t, ok)

	res, err := Factorize(context.Background(), n, WithParallelism(2), WithBudget(50000))
	require.Nil(t, res)

	var incomplete *IncompleteError
	require.ErrorAs(t, err, &incomplete)
	require.Zero(t, incompleteProduct(incomplete).Cmp(n))
}
