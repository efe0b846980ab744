package factoring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollardPMinus1SmoothFactor(t *testing.T) {
	// 65537 - 1 = 2^16 divides 1000!, so the smooth factor splits off
	// at the first checkpoint.
	n := new(big.Int).Mul(big.NewInt(65537), big.NewInt(1000003))
	d := pollardPMinus1(n, 1000, NewBudget(0))
	require.NotNil(t, d)
	require.Equal(t, "65537", d.String())
}

func TestPollardPMinus1BoundSensitivity(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1000003), big.NewInt(1000033))

	// 1000033 - 1 = 2^5 * 3 * 11 * 947 is 1000-power-smooth.
	d := pollardPMinus1(n, 1000, NewBudget(0))
	require.NotNil(t, d)
	require.Equal(t, "1000033", d.String())

	// 947 > 500, so the smaller bound finds nothing.
	require.Nil(t, pollardPMinus1(n, 500, NewBudget(0)))
}

func TestPollardPMinus1Budget(t *testing.T) {
	n := new(big.Int).Mul(big.NewInt(1000003), big.NewInt(1000033))
	require.Nil(t, pollardPMinus1(n, 1000, NewBudget(32)))
}

func TestPollardPMinus1BudgetIsExact(t *testing.T) {
	// 65537 splits off at the first checkpoint, after the 63 exponent
	// steps 2..64; a budget of exactly 63 must suffice.
	n := new(big.Int).Mul(big.NewInt(65537), big.NewInt(1000003))
	d := pollardPMinus1(n, 1000, NewBudget(63))
	require.NotNil(t, d)
	require.Equal(t, "65537", d.String())

	require.Nil(t, pollardPMinus1(n, 1000, NewBudget(62)))
}

func TestPollardPMinus1RejectsSmallInput(t *testing.T) {
	require.Nil(t, pollardPMinus1(big.NewInt(4), 100, NewBudget(0)))
}
